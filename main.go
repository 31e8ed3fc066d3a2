package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/zapiertracker-hub/Whopify-sub000/app/repository"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/cache"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/database"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/env"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/metrics/counter"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.SetGlobalFactory(repository.NewFactory(database.GetDB()))

	app := fiber.New(fiber.Config{
		AppName: "Whopify",
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	startViewCountFlusher()

	// ROUTER
	router.InstallRouter(app)

	return app
}

// startViewCountFlusher drains the buffered checkout view counters to
// the database once a minute.
func startViewCountFlusher() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if err := counter.FlushAll(); err != nil {
				log.Printf("failed to flush view counters: %v", err)
			}
		}
	}()
}
