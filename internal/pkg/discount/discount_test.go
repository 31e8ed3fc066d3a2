package discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fakeCatalog struct {
	coupons map[string]*models.Coupon
	err     error
}

func (f *fakeCatalog) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.coupons[code], nil
}

func intPtr(v int) *int { return &v }

func TestEvaluate_Percentage(t *testing.T) {
	catalog := &fakeCatalog{coupons: map[string]*models.Coupon{
		"save20": {Code: "save20", DiscountType: models.DiscountTypePercentage, Value: d("20")},
	}}

	applied, err := Evaluate(context.Background(), "SAVE20", catalog, d("100.00"), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !applied.Discount.Equal(d("20.00")) {
		t.Fatalf("expected discount 20.00, got %s", applied.Discount)
	}
	if !applied.Total.Equal(d("80.00")) {
		t.Fatalf("expected total 80.00, got %s", applied.Total)
	}
	if applied.Code != "save20" {
		t.Fatalf("expected normalized code save20, got %q", applied.Code)
	}
}

func TestEvaluate_FixedClampedToSubtotal(t *testing.T) {
	catalog := &fakeCatalog{coupons: map[string]*models.Coupon{
		"bigsave": {Code: "bigsave", DiscountType: models.DiscountTypeFixed, Value: d("50.00")},
	}}

	applied, err := Evaluate(context.Background(), "bigsave", catalog, d("10.00"), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !applied.Discount.Equal(d("10.00")) {
		t.Fatalf("expected discount clamped to 10.00, got %s", applied.Discount)
	}
	if !applied.Total.Equal(decimal.Zero) {
		t.Fatalf("expected total 0, got %s", applied.Total)
	}
}

func TestEvaluate_Rejections(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	catalog := &fakeCatalog{coupons: map[string]*models.Coupon{
		"usedup":  {Code: "usedup", DiscountType: models.DiscountTypeFixed, Value: d("5"), UsageLimit: intPtr(3), UsedCount: 3},
		"toolate": {Code: "toolate", DiscountType: models.DiscountTypeFixed, Value: d("5"), ExpiresAt: &past},
	}}

	tests := []struct {
		code string
		want error
	}{
		{code: "nosuchcode", want: ErrCodeInvalid},
		{code: "", want: ErrCodeInvalid},
		{code: "usedup", want: ErrCodeExhausted},
		{code: "toolate", want: ErrCodeExpired},
	}

	for _, tt := range tests {
		_, err := Evaluate(context.Background(), tt.code, catalog, d("100"), now)
		if !errors.Is(err, tt.want) {
			t.Fatalf("Evaluate(%q) error = %v, want %v", tt.code, err, tt.want)
		}
	}
}

func TestEvaluate_CatalogErrorReadsAsInvalid(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}

	_, err := Evaluate(context.Background(), "save20", catalog, d("100"), time.Now())
	if !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid on catalog failure, got %v", err)
	}
}

func TestRemove_RestoresSubtotal(t *testing.T) {
	catalog := &fakeCatalog{coupons: map[string]*models.Coupon{
		"save20": {Code: "save20", DiscountType: models.DiscountTypePercentage, Value: d("20")},
	}}

	subtotal := d("123.45")
	applied, err := Evaluate(context.Background(), "save20", catalog, subtotal, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Remove(applied); !got.Equal(subtotal) {
		t.Fatalf("Remove() = %s, want subtotal %s", got, subtotal)
	}
}

func TestUserMessage(t *testing.T) {
	// Exhausted and calendar-expired read identically to the customer.
	if got := UserMessage(ErrCodeExhausted); got != "This coupon has expired" {
		t.Fatalf("unexpected exhausted message: %q", got)
	}
	if got := UserMessage(ErrCodeExpired); got != "This coupon has expired" {
		t.Fatalf("unexpected expired message: %q", got)
	}
	if got := UserMessage(ErrCodeInvalid); got != "Invalid coupon code" {
		t.Fatalf("unexpected invalid message: %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "Coupon could not be applied" {
		t.Fatalf("unexpected fallback message: %q", got)
	}
}
