package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

func TestStoreSettingsRequestApply_PreservesOmittedSecrets(t *testing.T) {
	current := &models.StoreSettings{
		StoreName:           "My Store",
		StripeEnabled:       true,
		StripeSecretKey:     "sk_live_abc",
		StripeWebhookSecret: "whsec_abc",
	}

	// A save that only edits public fields must not erase the stored
	// Stripe credentials.
	req := storeSettingsRequest{
		StoreName:     "Renamed Store",
		StripeEnabled: true,
		CryptoEnabled: true,
	}

	next := req.apply(current)
	assert.Equal(t, "Renamed Store", next.StoreName)
	assert.True(t, next.CryptoEnabled)
	assert.Equal(t, "sk_live_abc", next.StripeSecretKey)
	assert.Equal(t, "whsec_abc", next.StripeWebhookSecret)
}

func TestStoreSettingsRequestApply_ReplacesProvidedSecrets(t *testing.T) {
	current := &models.StoreSettings{
		StripeSecretKey:     "sk_live_old",
		StripeWebhookSecret: "whsec_old",
	}

	req := storeSettingsRequest{
		StripeSecretKey:     "sk_live_new",
		StripeWebhookSecret: "whsec_new",
	}

	next := req.apply(current)
	assert.Equal(t, "sk_live_new", next.StripeSecretKey)
	assert.Equal(t, "whsec_new", next.StripeWebhookSecret)
}

func TestStoreSettingsRequestApply_NilCurrent(t *testing.T) {
	req := storeSettingsRequest{StoreName: "Fresh Store"}

	next := req.apply(nil)
	assert.Equal(t, "Fresh Store", next.StoreName)
	assert.Empty(t, next.StripeSecretKey)
	assert.Empty(t, next.StripeWebhookSecret)
}
