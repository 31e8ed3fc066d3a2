package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
	"github.com/zapiertracker-hub/Whopify-sub000/app/repository"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/cache"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/discount"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/geo"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/metrics/counter"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/payment"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/paymethod"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/pricing"
)

var countryDetector = geo.NewDetectorFromEnv()

// loadPublishedPage resolves a hosted checkout by share slug, falling
// back to the public id for preview links.
func loadPublishedPage(identifier string) (*models.CheckoutPage, error) {
	repo := repository.GetGlobalFactory().GetCheckoutRepository()
	page, err := repo.GetBySlug(identifier)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return repo.GetByPublicID(identifier)
}

// HandlePublicConfig serves the configuration the hosted renderer needs:
// the page, its resolved offerable payment methods, and the public half
// of the gateway credentials. An empty offerable list is a blocking
// state the renderer must surface, so it is flagged explicitly.
func HandlePublicConfig(c *fiber.Ctx) error {
	page, err := loadPublishedPage(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}
	if !page.Published() {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout is not published")
	}

	settings := models.GetStoreSettings()
	flags := settings.GatewayFlags()
	offerable := paymethod.ResolveOfferable(page.PaymentMethods, flags)

	// Candidate bumps for the renderer: legacy + list merged, disabled
	// ones dropped.
	agg := pricing.NewAggregator(page, page.Currency)

	products := make([]fiber.Map, 0, len(page.Products))
	for i := range page.Products {
		p := &page.Products[i]
		products = append(products, fiber.Map{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"image_url":   p.ImageURL,
			"price":       pricing.EffectiveProductPrice(p, page.Currency),
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	// Buffered in Redis; a failed increment never degrades the page.
	if err := counter.AddCheckoutView(page.ID); err != nil {
		log.Printf("failed to buffer view for checkout %d: %v", page.ID, err)
	}

	resp := fiber.Map{
		"checkout": fiber.Map{
			"public_id":       page.PublicID,
			"headline":        page.Headline,
			"currency":        page.Currency,
			"products":        products,
			"order_bumps":     agg.Candidates(),
			"collect_name":    page.CollectName,
			"collect_phone":   page.CollectPhone,
			"collect_address": page.CollectAddress,
		},
		"payment_methods": offerable,
		"visitor_country": countryDetector.Country(ctx),
		"store_name":      settings.StoreName,
	}
	if len(offerable) == 0 {
		resp["blocked"] = "no_payment_methods"
	}
	if offerable.Contains(paymethod.MethodStripe) {
		resp["stripe_public_key"] = settings.StripePublicKey
	}
	if offerable.Contains(paymethod.MethodBankTransfer) {
		resp["bank_account_details"] = settings.BankAccountDetails
	}
	if offerable.Contains(paymethod.MethodCrypto) {
		resp["crypto_wallet_address"] = settings.CryptoWalletAddress
	}
	if offerable.Contains(paymethod.MethodManual) {
		resp["manual_instructions"] = settings.ManualInstructions
	}

	return c.JSON(resp)
}

// HandleQuote prices a checkout for the current selection and an
// optional coupon code. Coupon rejections never block checkout; they
// come back inline as a payload next to the coupon input.
func HandleQuote(c *fiber.Ctx) error {
	var req struct {
		SelectedUpsellIDs []uint `json:"selected_upsell_ids"`
		CouponCode        string `json:"coupon_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	page, err := loadPublishedPage(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}
	if !page.Published() {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout is not published")
	}

	agg := pricing.NewAggregator(page, page.Currency)
	agg.Select(req.SelectedUpsellIDs)
	subtotal := agg.Subtotal()

	resp := fiber.Map{
		"currency": page.Currency,
		"subtotal": subtotal,
		"discount": decimal.Zero,
		"total":    subtotal,
	}

	if req.CouponCode != "" {
		catalog := repository.GetGlobalFactory().GetCouponRepository()
		applied, err := discount.Evaluate(c.Context(), req.CouponCode, catalog, subtotal, time.Now())
		if err != nil {
			resp["coupon_error"] = discount.UserMessage(err)
		} else {
			resp["coupon"] = applied.Code
			resp["discount"] = applied.Discount
			resp["total"] = applied.Total
		}
	}

	return c.JSON(resp)
}

// storeQuoter prices checkouts from persisted state for the payment
// processor, so client-supplied totals never reach the charge.
type storeQuoter struct{}

func (storeQuoter) Quote(ctx context.Context, checkoutID string, selectedUpsellIDs []uint) (decimal.Decimal, string, error) {
	page, err := loadPublishedPage(checkoutID)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("checkout %s not found: %w", checkoutID, err)
	}
	if !page.Published() {
		return decimal.Zero, "", fmt.Errorf("checkout %s is not published", checkoutID)
	}
	agg := pricing.NewAggregator(page, page.Currency)
	agg.Select(selectedUpsellIDs)
	return agg.Subtotal(), page.Currency, nil
}

// getProcessor builds the card processor from the tenant's gateway
// credentials.
func getProcessor() *payment.StripeProcessor {
	settings := models.GetStoreSettings()
	return payment.NewStripeProcessor(&payment.StripeConfig{
		SecretKey:     settings.StripeSecretKey,
		WebhookSecret: settings.StripeWebhookSecret,
	}, storeQuoter{})
}

// HandleCreateIntent opens a payment attempt. Only the selected upsell
// ids travel to the processor; the charged amount is quoted server-side.
func HandleCreateIntent(c *fiber.Ctx) error {
	var req struct {
		CustomerEmail     string `json:"customer_email"`
		CustomerName      string `json:"customer_name"`
		SelectedUpsellIDs []uint `json:"selected_upsell_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	page, err := loadPublishedPage(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}
	if !page.Published() {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout is not published")
	}

	flags := models.GetStoreSettings().GatewayFlags()
	if !paymethod.ResolveOfferable(page.PaymentMethods, flags).Contains(paymethod.MethodStripe) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "gateway_disabled", "Card payments are not available on this checkout")
	}

	intent, err := getProcessor().CreateIntent(c.Context(), page.PublicID, req.CustomerEmail, req.CustomerName, req.SelectedUpsellIDs)
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, "processor_error", "Could not start the payment")
	}
	return c.JSON(intent)
}

// HandleConfirmPayment finalizes a payment attempt. A decline is
// terminal for the attempt and mutates nothing locally; a success
// consumes the applied coupon.
func HandleConfirmPayment(c *fiber.Ctx) error {
	var req struct {
		ClientSecret    string `json:"client_secret"`
		PaymentMethodID string `json:"payment_method_id"`
		CouponCode      string `json:"coupon_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	result, err := getProcessor().Confirm(c.Context(), req.ClientSecret, req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentDeclined) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"error":   "payment_declined",
				"message": err.Error(),
			})
		}
		return jsonError(c, fiber.StatusBadGateway, "processor_error", "Payment confirmation failed")
	}

	// Usage counting is tied to completed payment, never to apply.
	if req.CouponCode != "" {
		if err := repository.GetGlobalFactory().GetCouponRepository().IncrementUsage(req.CouponCode); err != nil {
			// The charge went through; a failed counter update must not
			// fail the purchase.
			log.Printf("failed to increment coupon usage for %s: %v", req.CouponCode, err)
		}
	}

	return c.JSON(result)
}

// HandleStripeWebhook verifies and records asynchronous processor
// events for hosted checkouts. Stripe retries deliveries, so processed
// event ids are remembered in the cache and replays are acknowledged
// without reprocessing.
func HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := getProcessor().VerifyWebhookEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_signature", "Webhook signature verification failed")
	}

	dedupeKey := "stripe:event:" + event.ID
	if _, err := cache.Get(dedupeKey); err == nil {
		return c.JSON(fiber.Map{"received": true, "duplicate": true})
	}
	if err := cache.Set(dedupeKey, "1", 24*time.Hour); err != nil {
		log.Printf("failed to record webhook event %s: %v", event.ID, err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		if id, ok := event.Data.Object["id"].(string); ok {
			if err := getProcessor().Verify(c.Context(), id); err != nil {
				// Forget the event so Stripe's retry gets another pass.
				if derr := cache.Delete(dedupeKey); derr != nil {
					log.Printf("failed to release webhook event %s: %v", event.ID, derr)
				}
				return jsonError(c, fiber.StatusBadGateway, "processor_error", "Could not verify payment")
			}
		}
	}

	return c.JSON(fiber.Map{"received": true})
}
