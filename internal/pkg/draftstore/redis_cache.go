package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

// RedisCache is the Redis-backed local draft cache. Entries carry no
// TTL; an offline session must survive until the merchant comes back.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a local draft cache on an existing Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func draftKey(publicID string) string {
	return fmt.Sprintf("draft:%s", publicID)
}

// PutDraft stores the serialized draft under its public id.
func (c *RedisCache) PutDraft(ctx context.Context, page *models.CheckoutPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to serialize draft %s: %w", page.PublicID, err)
	}
	return c.client.Set(ctx, draftKey(page.PublicID), payload, 0).Err()
}

// GetDraft loads a cached draft by public id.
func (c *RedisCache) GetDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error) {
	payload, err := c.client.Get(ctx, draftKey(publicID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	var page models.CheckoutPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, fmt.Errorf("failed to deserialize draft %s: %w", publicID, err)
	}
	return &page, nil
}
