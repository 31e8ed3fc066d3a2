package controllers

import (
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/zapiertracker-hub/Whopify-sub000/app/repository"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/cache"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/draftstore"
)

var (
	draftSyncer     *draftstore.Syncer
	draftSyncerOnce sync.Once
)

// getDraftSyncer returns the session-wide draft syncer. It is the single
// policy point for draft writes: remote first, local Redis cache once
// the store proves unreachable.
func getDraftSyncer() *draftstore.Syncer {
	draftSyncerOnce.Do(func() {
		repo := repository.GetGlobalFactory().GetCheckoutRepository()
		local := draftstore.NewRedisCache(cache.GetClient())
		draftSyncer = draftstore.NewSyncer(repo, local)
	})
	return draftSyncer
}

// currentUserID identifies the acting merchant. Authentication is
// handled upstream of this service; the dashboard proxy injects the
// tenant id.
func currentUserID(c *fiber.Ctx) uint {
	if v, err := strconv.ParseUint(c.Get("X-User-ID", "1"), 10, 32); err == nil && v > 0 {
		return uint(v)
	}
	return 1
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}
