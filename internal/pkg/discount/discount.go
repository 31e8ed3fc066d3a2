package discount

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

var (
	// ErrCodeInvalid is returned when no active coupon matches the
	// entered code.
	ErrCodeInvalid = errors.New("invalid coupon code")
	// ErrCodeExhausted is returned when the usage cap is reached. It is
	// shown to the customer with the same message as ErrCodeExpired.
	ErrCodeExhausted = errors.New("coupon usage limit reached")
	// ErrCodeExpired is returned when the coupon's expiry has passed.
	ErrCodeExpired = errors.New("coupon has expired")
)

// Catalog is the read side of the coupon store. The evaluator never
// writes back; usage counting happens externally on confirmed payment.
type Catalog interface {
	FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// Applied is a successfully evaluated discount.
type Applied struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Evaluate runs one stateless discount attempt against the catalog.
// Eligibility is checked at application time, never cached. The returned
// discount is clamped so the total stays within [0, subtotal].
func Evaluate(ctx context.Context, code string, catalog Catalog, subtotal decimal.Decimal, now time.Time) (Applied, error) {
	normalized := models.NormalizeCouponCode(code)
	if normalized == "" {
		return Applied{}, ErrCodeInvalid
	}

	coupon, err := catalog.FindActiveByCode(ctx, normalized)
	if err != nil || coupon == nil {
		return Applied{}, ErrCodeInvalid
	}
	if coupon.Exhausted() {
		return Applied{}, ErrCodeExhausted
	}
	if coupon.ExpiredAt(now) {
		return Applied{}, ErrCodeExpired
	}

	var raw decimal.Decimal
	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		raw = subtotal.Mul(coupon.Value).Div(decimal.NewFromInt(100)).Round(2)
	case models.DiscountTypeFixed:
		raw = coupon.Value
	default:
		return Applied{}, ErrCodeInvalid
	}

	// A discount can never push the total below zero.
	applied := raw
	if applied.GreaterThan(subtotal) {
		applied = subtotal
	}
	total := subtotal.Sub(applied)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Applied{Code: coupon.Code, Discount: applied, Total: total}, nil
}

// Remove undoes an application, restoring the pre-discount subtotal.
// It is the pure inverse of Evaluate; no counters move here.
func Remove(a Applied) decimal.Decimal {
	return a.Total.Add(a.Discount)
}

// UserMessage maps a rejection to the inline message shown next to the
// coupon input. Exhausted and calendar-expired codes intentionally read
// the same to the customer.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrCodeExhausted), errors.Is(err, ErrCodeExpired):
		return "This coupon has expired"
	case errors.Is(err, ErrCodeInvalid):
		return "Invalid coupon code"
	default:
		return "Coupon could not be applied"
	}
}
