package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
	"github.com/zapiertracker-hub/Whopify-sub000/app/repository"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/constants"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/paymethod"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/shortener"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/wizard"
)

// HandleCreateCheckout creates a new draft checkout page.
func HandleCreateCheckout(c *fiber.Ctx) error {
	var req struct {
		InternalName string `json:"internal_name"`
		Currency     string `json:"currency"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "usd"
	}

	page := &models.CheckoutPage{
		UserID:         currentUserID(c),
		InternalName:   strings.TrimSpace(req.InternalName),
		Currency:       currency,
		Status:         models.CheckoutStatusDraft,
		PaymentMethods: paymethod.MethodList{},
		CollectName:    true,
	}

	repo := repository.GetGlobalFactory().GetCheckoutRepository()
	if err := repo.Create(page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create checkout")
	}

	return c.Status(fiber.StatusCreated).JSON(page)
}

// HandleListCheckouts lists the merchant's checkout pages.
func HandleListCheckouts(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetCheckoutRepository()
	pages, err := repo.ListByUser(currentUserID(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list checkouts")
	}
	return c.JSON(fiber.Map{"checkouts": pages, "offline": getDraftSyncer().Offline()})
}

// HandleGetCheckout loads one draft for the builder, falling back to the
// local cache when the session is offline.
func HandleGetCheckout(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}
	return c.JSON(fiber.Map{"checkout": page, "offline": getDraftSyncer().Offline()})
}

// HandleUpdateCheckout overwrites the draft's editable fields and
// persists through the write-through syncer.
func HandleUpdateCheckout(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	var req struct {
		InternalName   *string `json:"internal_name"`
		Headline       *string `json:"headline"`
		Currency       *string `json:"currency"`
		CollectName    *bool   `json:"collect_name"`
		CollectPhone   *bool   `json:"collect_phone"`
		CollectAddress *bool   `json:"collect_address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if req.InternalName != nil {
		page.InternalName = strings.TrimSpace(*req.InternalName)
	}
	if req.Headline != nil {
		page.Headline = *req.Headline
	}
	if req.Currency != nil {
		page.Currency = strings.ToLower(strings.TrimSpace(*req.Currency))
	}
	if req.CollectName != nil {
		page.CollectName = *req.CollectName
	}
	if req.CollectPhone != nil {
		page.CollectPhone = *req.CollectPhone
	}
	if req.CollectAddress != nil {
		page.CollectAddress = *req.CollectAddress
	}

	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.JSON(fiber.Map{"checkout": page, "offline": getDraftSyncer().Offline()})
}

// HandleDeleteCheckout removes a checkout page and its owned rows.
func HandleDeleteCheckout(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetCheckoutRepository()
	page, err := repo.GetByPublicID(c.Params("publicID"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load checkout")
	}
	if err := repo.Delete(page.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete checkout")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleWizardTransition applies a wizard action to the builder. The
// draft is persisted before validation runs: a step transition is always
// also a save, even when the transition ends up blocked.
func HandleWizardTransition(c *fiber.Ctx) error {
	var req struct {
		Step   string `json:"step"`
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	// Save-on-next: persist unconditionally before validating.
	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save draft")
	}

	step := wizard.Step(req.Step)
	action := wizard.Action(req.Action)
	validator := &wizard.PageValidator{Page: page}

	next, err := wizard.Advance(step, action, validator)
	if err != nil {
		var rej *wizard.Rejection
		if errors.As(err, &rej) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "validation_failed",
				"message": rej.Message,
				"step":    rej.Step.String(),
			})
		}
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	if action == wizard.ActionPublish {
		slug, err := shortener.GenerateSecureSlug(shortener.SlugLength)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to generate share link")
		}
		repo := repository.GetGlobalFactory().GetCheckoutRepository()
		if err := repo.Publish(page.ID, slug); err != nil {
			return jsonError(c, fiber.StatusServiceUnavailable, "store_unreachable", "Could not publish, store unreachable")
		}
		page.Status = models.CheckoutStatusActive
		page.Slug = slug
		return c.JSON(fiber.Map{
			"checkout":  page,
			"step":      step.String(),
			"published": true,
			"share_url": constants.HostedCheckoutPrefix + slug,
		})
	}

	return c.JSON(fiber.Map{
		"checkout": page,
		"step":     next.String(),
		"offline":  getDraftSyncer().Offline(),
	})
}

// HandleAddPaymentMethod appends a method to the checkout's ordered
// list. Globally disabled gateways are rejected at add time.
func HandleAddPaymentMethod(c *fiber.Ctx) error {
	var req struct {
		Method string `json:"method"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	flags := models.GetStoreSettings().GatewayFlags()
	updated, err := paymethod.Add(page.PaymentMethods, paymethod.Method(req.Method), flags)
	if err != nil {
		switch {
		case errors.Is(err, paymethod.ErrGatewayDisabled):
			return jsonError(c, fiber.StatusUnprocessableEntity, "gateway_disabled", "Enable this gateway in store settings first")
		case errors.Is(err, paymethod.ErrUnknownMethod):
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "Unknown payment method")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to add payment method")
		}
	}

	page.PaymentMethods = updated
	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.JSON(fiber.Map{"payment_methods": page.PaymentMethods})
}

// HandleRemovePaymentMethod removes a method from the checkout's list.
func HandleRemovePaymentMethod(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	page.PaymentMethods = paymethod.Remove(page.PaymentMethods, paymethod.Method(c.Params("method")))
	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.JSON(fiber.Map{"payment_methods": page.PaymentMethods})
}

// HandleMovePaymentMethod swaps a method with its adjacent neighbor.
// Arbitrary re-indexing is not supported.
func HandleMovePaymentMethod(c *fiber.Ctx) error {
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid index")
	}
	var req struct {
		Direction string `json:"direction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	var updated paymethod.MethodList
	switch req.Direction {
	case "up":
		updated, err = paymethod.SwapUp(page.PaymentMethods, idx)
	case "down":
		updated, err = paymethod.SwapDown(page.PaymentMethods, idx)
	default:
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Direction must be up or down")
	}
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	page.PaymentMethods = updated
	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.JSON(fiber.Map{"payment_methods": page.PaymentMethods})
}
