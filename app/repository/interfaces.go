package repository

import (
	"context"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

// CheckoutRepository defines the interface for checkout-page database
// operations. SaveDraft/LoadDraft double as the remote side of the
// draft syncer.
type CheckoutRepository interface {
	Create(page *models.CheckoutPage) error
	GetByID(id uint) (*models.CheckoutPage, error)
	GetByPublicID(publicID string) (*models.CheckoutPage, error)
	GetBySlug(slug string) (*models.CheckoutPage, error)
	ListByUser(userID uint) ([]models.CheckoutPage, error)
	Save(page *models.CheckoutPage) error
	Delete(id uint) error
	Publish(id uint, slug string) error

	SaveDraft(ctx context.Context, page *models.CheckoutPage) error
	LoadDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error)
}

// CouponRepository defines the interface for coupon catalog operations.
// FindActiveByCode is the read side the discount evaluator consumes;
// IncrementUsage is only called on confirmed payment.
type CouponRepository interface {
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id uint) error
	ListByUser(userID uint) ([]models.Coupon, error)
	FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error)
	IncrementUsage(code string) error
}

// SettingRepository defines the interface for tenant store settings
type SettingRepository interface {
	Get() (*models.StoreSettings, error)
	Save(settings *models.StoreSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}
