package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PricingModeOneTime      = "one_time"
	PricingModeSubscription = "subscription"
	PricingModePaymentPlan  = "payment_plan"
)

const (
	BillingIntervalMonth = "month"
	BillingIntervalYear  = "year"
)

// PriceMap maps a lowercase currency code to a merchant-entered price.
// There is no conversion between currencies; each entry stands alone.
type PriceMap map[string]decimal.Decimal

// Value implements driver.Valuer for GORM JSON storage.
func (m PriceMap) Value() (driver.Value, error) {
	if m == nil {
		m = PriceMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for GORM JSON storage.
func (m *PriceMap) Scan(value interface{}) error {
	if value == nil {
		*m = PriceMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into PriceMap", value)
	}
}

// OneTimePricing is a single charge.
type OneTimePricing struct {
	Prices PriceMap `json:"prices"`
}

// SubscriptionPricing is a recurring charge on a billing interval.
type SubscriptionPricing struct {
	Prices   PriceMap `json:"prices"`
	Interval string   `json:"interval"`
}

// PaymentPlanPricing splits the price into a fixed number of installments.
type PaymentPlanPricing struct {
	Prices       PriceMap `json:"prices"`
	Installments int      `json:"installments"`
}

// PricingOptions holds the three mutually exclusive pricing modes of a
// product. ActiveMode selects which one determines the effective price.
type PricingOptions struct {
	ActiveMode   string              `json:"active_mode"`
	OneTime      OneTimePricing      `json:"one_time"`
	Subscription SubscriptionPricing `json:"subscription"`
	PaymentPlan  PaymentPlanPricing  `json:"payment_plan"`
}

// EffectivePrices returns the price map of the active pricing mode.
// An unset or unknown mode falls back to one-time pricing.
func (p PricingOptions) EffectivePrices() PriceMap {
	switch p.ActiveMode {
	case PricingModeSubscription:
		return p.Subscription.Prices
	case PricingModePaymentPlan:
		return p.PaymentPlan.Prices
	default:
		return p.OneTime.Prices
	}
}

// Value implements driver.Valuer for GORM JSON storage.
func (p PricingOptions) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for GORM JSON storage.
func (p *PricingOptions) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = PricingOptions{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PricingOptions", value)
	}
}

// Product is a sellable item owned by exactly one checkout page.
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CheckoutPageID uint           `gorm:"not null;index" json:"checkout_page_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Description    string         `gorm:"type:text" json:"description"`
	ImageURL       string         `gorm:"type:varchar(512)" json:"image_url"`
	Position       int            `gorm:"not null;default:0" json:"position"`
	Pricing        PricingOptions `gorm:"type:json" json:"pricing"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
