package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

// couponRepository implements the CouponRepository interface
type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a new coupon repository instance
func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *models.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *couponRepository) Update(coupon *models.Coupon) error {
	return r.db.Save(coupon).Error
}

func (r *couponRepository) Delete(id uint) error {
	return r.db.Delete(&models.Coupon{}, id).Error
}

func (r *couponRepository) ListByUser(userID uint) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&coupons).Error
	return coupons, err
}

// FindActiveByCode looks up an active coupon by its normalized code.
// A missing or non-active coupon returns nil without error; the
// evaluator rejects both as an invalid code.
func (r *couponRepository) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ? AND status = ?", models.NormalizeCouponCode(code), models.CouponStatusActive).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// IncrementUsage bumps the usage counter after a confirmed payment.
func (r *couponRepository) IncrementUsage(code string) error {
	return r.db.Model(&models.Coupon{}).
		Where("code = ?", models.NormalizeCouponCode(code)).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}
