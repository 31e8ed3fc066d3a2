package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

const (
	CouponStatusActive   = "active"
	CouponStatusExpired  = "expired"
	CouponStatusDisabled = "disabled"
)

// Coupon is a merchant-created discount code. Codes are unique and
// case-insensitive; they are stored lowercase and normalized on lookup.
// Usage is counted on confirmed payment, never on apply.
type Coupon struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	Code         string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"code" validate:"required,min=1,max=64"`
	DiscountType string          `gorm:"type:varchar(20);not null" json:"discount_type" validate:"required,oneof=percentage fixed"`
	Value        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
	Status       string          `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	UsageLimit   *int            `json:"usage_limit,omitempty"`
	UsedCount    int             `gorm:"not null;default:0" json:"used_count"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NormalizeCouponCode trims and lowercases a user-entered code so lookups
// are case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// BeforeSave keeps stored codes in normalized form.
func (c *Coupon) BeforeSave(tx *gorm.DB) error {
	c.Code = NormalizeCouponCode(c.Code)
	return nil
}

// Exhausted reports whether the usage cap has been reached. Coupons
// without a cap never exhaust.
func (c *Coupon) Exhausted() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}

// ExpiredAt reports whether the coupon's expiry timestamp has passed.
// Coupons without an expiry never expire by calendar.
func (c *Coupon) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
