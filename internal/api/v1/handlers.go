package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/zapiertracker-hub/Whopify-sub000/app/controllers"
)

// APIServer implements the public storefront API
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// GetPublicConfig serves the hosted renderer's checkout configuration,
// including the resolved offerable payment methods.
func (s *APIServer) GetPublicConfig(c *fiber.Ctx) error {
	return controllers.HandlePublicConfig(c)
}

// PostQuote prices the current selection, with an optional coupon code.
func (s *APIServer) PostQuote(c *fiber.Ctx) error {
	return controllers.HandleQuote(c)
}

// PostPaymentIntent opens a payment attempt with the card processor.
func (s *APIServer) PostPaymentIntent(c *fiber.Ctx) error {
	return controllers.HandleCreateIntent(c)
}

// PostPaymentConfirm finalizes a payment attempt.
func (s *APIServer) PostPaymentConfirm(c *fiber.Ctx) error {
	return controllers.HandleConfirmPayment(c)
}

// PostStripeWebhook receives asynchronous processor events.
func (s *APIServer) PostStripeWebhook(c *fiber.Ctx) error {
	return controllers.HandleStripeWebhook(c)
}
