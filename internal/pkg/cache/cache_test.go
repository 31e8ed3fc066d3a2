package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start test redis: %v", err)
	}
	t.Cleanup(mr.Close)

	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client = nil })

	return mr
}

func TestSetAndGet(t *testing.T) {
	setupTestCache(t)

	if err := Set("stripe:event:evt_1", "1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, err := Get("stripe:event:evt_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "1" {
		t.Fatalf("expected stored value, got %q", val)
	}
}

func TestGet_MissingKey(t *testing.T) {
	setupTestCache(t)

	if _, err := Get("no:such:key"); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil for missing key, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	setupTestCache(t)

	if err := Set("stripe:event:evt_2", "1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Delete("stripe:event:evt_2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Get("stripe:event:evt_2"); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected key to be gone, got %v", err)
	}
}

func TestSet_ExpiryApplies(t *testing.T) {
	mr := setupTestCache(t)

	if err := Set("stripe:event:evt_3", "1", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := Get("stripe:event:evt_3"); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected key to expire, got %v", err)
	}
}
