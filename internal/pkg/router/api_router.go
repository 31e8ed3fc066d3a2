package router

import (
	apiv1 "github.com/zapiertracker-hub/Whopify-sub000/internal/api/v1"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes consumed by the hosted checkout renderer
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer()

	v1.Get("/ping", apiServer.GetPing)
	v1.Get("/public-config/:id", apiServer.GetPublicConfig)
	v1.Post("/checkout/:id/quote", apiServer.PostQuote)
	v1.Post("/checkout/:id/intent", apiServer.PostPaymentIntent)
	v1.Post("/checkout/confirm", apiServer.PostPaymentConfirm)
	v1.Post("/webhooks/stripe", apiServer.PostStripeWebhook)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
