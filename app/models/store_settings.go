package models

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/paymethod"
)

// Setting represents a single tenant setting row
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreSettings is the tenant-wide configuration singleton. Gateway
// enablement here gates what any checkout page may actually offer at
// render time; disabling a gateway hides it everywhere without touching
// the pages' stored method lists.
type StoreSettings struct {
	StoreName string `json:"store_name" validate:"max=255"`

	StripeEnabled       bool `json:"stripe_enabled"`
	BankTransferEnabled bool `json:"bank_transfer_enabled"`
	CryptoEnabled       bool `json:"crypto_enabled"`
	ManualEnabled       bool `json:"manual_enabled"`

	StripePublicKey     string `json:"stripe_public_key"`
	StripeSecretKey     string `json:"-"`
	StripeWebhookSecret string `json:"-"`
	BankAccountDetails  string `json:"bank_account_details"`
	CryptoWalletAddress string `json:"crypto_wallet_address"`
	ManualInstructions  string `json:"manual_instructions"`

	mu sync.RWMutex
}

// Global settings instance
var (
	storeSettings *StoreSettings
	settingsMu    sync.RWMutex
)

// GetStoreSettings returns the current store settings
func GetStoreSettings() *StoreSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return storeSettings
}

// GatewayFlags snapshots the enablement switches into the value struct
// the payment method resolver takes as an explicit argument.
func (s *StoreSettings) GatewayFlags() paymethod.GatewayFlags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paymethod.GatewayFlags{
		Stripe:       s.StripeEnabled,
		BankTransfer: s.BankTransferEnabled,
		Crypto:       s.CryptoEnabled,
		Manual:       s.ManualEnabled,
	}
}

// LoadStoreSettings loads settings from database into memory
func LoadStoreSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Initialize with defaults
	storeSettings = &StoreSettings{
		StoreName:     "My Store",
		StripeEnabled: true,
	}

	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load store settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case "store_name":
			storeSettings.StoreName = setting.Value
		case "stripe_enabled":
			storeSettings.StripeEnabled = setting.Value == "true"
		case "bank_transfer_enabled":
			storeSettings.BankTransferEnabled = setting.Value == "true"
		case "crypto_enabled":
			storeSettings.CryptoEnabled = setting.Value == "true"
		case "manual_enabled":
			storeSettings.ManualEnabled = setting.Value == "true"
		case "stripe_public_key":
			storeSettings.StripePublicKey = setting.Value
		case "stripe_secret_key":
			storeSettings.StripeSecretKey = setting.Value
		case "stripe_webhook_secret":
			storeSettings.StripeWebhookSecret = setting.Value
		case "bank_account_details":
			storeSettings.BankAccountDetails = setting.Value
		case "crypto_wallet_address":
			storeSettings.CryptoWalletAddress = setting.Value
		case "manual_instructions":
			storeSettings.ManualInstructions = setting.Value
		}
	}

	return nil
}

// SaveStoreSettings saves the settings to the database and swaps the
// in-memory singleton.
func SaveStoreSettings(db *gorm.DB, settings *StoreSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	values := map[string]string{
		"store_name":            settings.StoreName,
		"stripe_enabled":        boolValue(settings.StripeEnabled),
		"bank_transfer_enabled": boolValue(settings.BankTransferEnabled),
		"crypto_enabled":        boolValue(settings.CryptoEnabled),
		"manual_enabled":        boolValue(settings.ManualEnabled),
		"stripe_public_key":     settings.StripePublicKey,
		"stripe_secret_key":     settings.StripeSecretKey,
		"stripe_webhook_secret": settings.StripeWebhookSecret,
		"bank_account_details":  settings.BankAccountDetails,
		"crypto_wallet_address": settings.CryptoWalletAddress,
		"manual_instructions":   settings.ManualInstructions,
	}

	for key, value := range values {
		var setting Setting
		err := db.Where("setting_key = ?", key).First(&setting).Error
		if err == gorm.ErrRecordNotFound {
			setting = Setting{Key: key, Value: value}
			if err := db.Create(&setting).Error; err != nil {
				return fmt.Errorf("failed to create setting %s: %w", key, err)
			}
			continue
		} else if err != nil {
			return err
		}
		setting.Value = value
		if err := db.Save(&setting).Error; err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	storeSettings = settings
	return nil
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
