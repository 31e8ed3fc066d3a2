package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
	"github.com/zapiertracker-hub/Whopify-sub000/app/repository"
)

// HandleGetStoreSettings returns the tenant-wide store settings.
func HandleGetStoreSettings(c *fiber.Ctx) error {
	settings, err := repository.GetGlobalFactory().GetSettingRepository().Get()
	if err != nil || settings == nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}
	return c.JSON(settings)
}

// storeSettingsRequest is the settings write payload. The secret fields
// are write-only: they are accepted here but never serialized back out
// by StoreSettings.
type storeSettingsRequest struct {
	StoreName string `json:"store_name" validate:"max=255"`

	StripeEnabled       bool `json:"stripe_enabled"`
	BankTransferEnabled bool `json:"bank_transfer_enabled"`
	CryptoEnabled       bool `json:"crypto_enabled"`
	ManualEnabled       bool `json:"manual_enabled"`

	StripePublicKey     string `json:"stripe_public_key"`
	StripeSecretKey     string `json:"stripe_secret_key"`
	StripeWebhookSecret string `json:"stripe_webhook_secret"`
	BankAccountDetails  string `json:"bank_account_details"`
	CryptoWalletAddress string `json:"crypto_wallet_address"`
	ManualInstructions  string `json:"manual_instructions"`
}

// apply merges the request onto the current settings. An omitted secret
// keeps its stored value, so a save that only flips a gateway switch
// never erases the Stripe credentials.
func (req storeSettingsRequest) apply(current *models.StoreSettings) *models.StoreSettings {
	next := &models.StoreSettings{
		StoreName:           req.StoreName,
		StripeEnabled:       req.StripeEnabled,
		BankTransferEnabled: req.BankTransferEnabled,
		CryptoEnabled:       req.CryptoEnabled,
		ManualEnabled:       req.ManualEnabled,
		StripePublicKey:     req.StripePublicKey,
		StripeSecretKey:     req.StripeSecretKey,
		StripeWebhookSecret: req.StripeWebhookSecret,
		BankAccountDetails:  req.BankAccountDetails,
		CryptoWalletAddress: req.CryptoWalletAddress,
		ManualInstructions:  req.ManualInstructions,
	}
	if current == nil {
		return next
	}
	if next.StripeSecretKey == "" {
		next.StripeSecretKey = current.StripeSecretKey
	}
	if next.StripeWebhookSecret == "" {
		next.StripeWebhookSecret = current.StripeWebhookSecret
	}
	return next
}

// HandleSaveStoreSettings saves the tenant-wide store settings.
// Disabling a gateway here hides it on every checkout at render time
// without touching the pages' stored method lists.
func HandleSaveStoreSettings(c *fiber.Ctx) error {
	var req storeSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	next := req.apply(models.GetStoreSettings())
	if err := repository.GetGlobalFactory().GetSettingRepository().Save(next); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save settings")
	}
	return c.JSON(next)
}
