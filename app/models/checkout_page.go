package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/paymethod"
)

const (
	CheckoutStatusDraft  = "draft"
	CheckoutStatusActive = "active"
)

// CheckoutPage is a hosted checkout configuration. It exclusively owns
// its products and order bumps; the tenant's StoreSettings are only
// referenced, never owned. A page starts as a draft and becomes active
// only through the builder's publish gate.
type CheckoutPage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	PublicID     string `gorm:"type:varchar(36);not null;uniqueIndex" json:"public_id"`
	InternalName string `gorm:"type:varchar(255);not null;default:''" json:"internal_name"`
	Headline     string `gorm:"type:varchar(255)" json:"headline"`
	// Currency is the lowercase code the page charges in.
	Currency string `gorm:"type:varchar(8);not null;default:'usd'" json:"currency"`
	Status   string `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	// Slug is the shareable identifier, minted on publish.
	Slug string `gorm:"type:varchar(32);index" json:"slug"`

	// PaymentMethods is the merchant-ordered method list. The first
	// offerable entry is the default selection on the rendered page.
	PaymentMethods paymethod.MethodList `gorm:"type:json" json:"payment_methods"`

	CollectName    bool `gorm:"not null;default:true" json:"collect_name"`
	CollectPhone   bool `gorm:"not null;default:false" json:"collect_phone"`
	CollectAddress bool `gorm:"not null;default:false" json:"collect_address"`

	Products   []Product   `gorm:"constraint:OnDelete:CASCADE" json:"products"`
	OrderBumps []OrderBump `gorm:"constraint:OnDelete:CASCADE" json:"order_bumps"`

	// LegacyUpsell carries the pre-list single upsell for old pages.
	LegacyUpsell *UpsellOffer `gorm:"type:json" json:"legacy_upsell,omitempty"`

	// ViewCount is incremented in batches from the Redis view buffer.
	ViewCount uint64 `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the public identifier used in hosted URLs.
func (cp *CheckoutPage) BeforeCreate(tx *gorm.DB) error {
	if cp.PublicID == "" {
		cp.PublicID = uuid.NewString()
	}
	return nil
}

// Published reports whether the page has passed the publish gate.
func (cp *CheckoutPage) Published() bool {
	return cp.Status == CheckoutStatusActive
}

// LegacyBump returns the legacy single upsell in the common bump shape,
// or nil when the page never had one.
func (cp *CheckoutPage) LegacyBump() *OrderBump {
	if cp.LegacyUpsell == nil {
		return nil
	}
	b := cp.LegacyUpsell.AsBump(cp.ID)
	return &b
}
