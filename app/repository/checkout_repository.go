package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/draftstore"
)

// checkoutRepository implements the CheckoutRepository interface
type checkoutRepository struct {
	db *gorm.DB
}

// NewCheckoutRepository creates a new checkout repository instance
func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepository{db: db}
}

func (r *checkoutRepository) Create(page *models.CheckoutPage) error {
	return r.db.Create(page).Error
}

func (r *checkoutRepository) GetByID(id uint) (*models.CheckoutPage, error) {
	var page models.CheckoutPage
	err := r.db.Preload("Products", orderByPosition).
		Preload("OrderBumps", orderByPosition).
		First(&page, id).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *checkoutRepository) GetByPublicID(publicID string) (*models.CheckoutPage, error) {
	var page models.CheckoutPage
	err := r.db.Preload("Products", orderByPosition).
		Preload("OrderBumps", orderByPosition).
		Where("public_id = ?", publicID).
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *checkoutRepository) GetBySlug(slug string) (*models.CheckoutPage, error) {
	var page models.CheckoutPage
	err := r.db.Preload("Products", orderByPosition).
		Preload("OrderBumps", orderByPosition).
		Where("slug = ?", slug).
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *checkoutRepository) ListByUser(userID uint) ([]models.CheckoutPage, error) {
	var pages []models.CheckoutPage
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pages).Error
	return pages, err
}

// Save persists the page including its owned products and bumps.
func (r *checkoutRepository) Save(page *models.CheckoutPage) error {
	return saveOwnedRows(r.db, page)
}

// Delete removes the page and its owned rows. No soft delete.
func (r *checkoutRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checkout_page_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("checkout_page_id = ?", id).Delete(&models.OrderBump{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CheckoutPage{}, id).Error
	})
}

// Publish flips the page to active and mints its shareable slug.
func (r *checkoutRepository) Publish(id uint, slug string) error {
	return r.db.Model(&models.CheckoutPage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": models.CheckoutStatusActive,
			"slug":   slug,
		}).Error
}

// SaveDraft implements the remote side of the draft syncer.
func (r *checkoutRepository) SaveDraft(ctx context.Context, page *models.CheckoutPage) error {
	return saveOwnedRows(r.db.WithContext(ctx), page)
}

// saveOwnedRows persists the page together with its owned products and
// bumps. FullSaveAssociations upserts association rows but leaves
// removed ones in place, so rows absent from the page are deleted
// explicitly before the save.
func saveOwnedRows(db *gorm.DB, page *models.CheckoutPage) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if page.ID != 0 {
			if err := pruneOwnedRows(tx, page.ID, &models.Product{}, productIDs(page.Products)); err != nil {
				return err
			}
			if err := pruneOwnedRows(tx, page.ID, &models.OrderBump{}, bumpIDs(page.OrderBumps)); err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(page).Error
	})
}

// pruneOwnedRows deletes the page's rows whose ids are no longer on the
// in-memory page. New rows carry id 0 and are excluded from keep.
func pruneOwnedRows(tx *gorm.DB, pageID uint, model interface{}, keep []uint) error {
	q := tx.Where("checkout_page_id = ?", pageID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	return q.Delete(model).Error
}

func productIDs(products []models.Product) []uint {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		if p.ID != 0 {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func bumpIDs(bumps []models.OrderBump) []uint {
	ids := make([]uint, 0, len(bumps))
	for _, b := range bumps {
		if b.ID != 0 {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// LoadDraft implements the remote side of the draft syncer.
func (r *checkoutRepository) LoadDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error) {
	var page models.CheckoutPage
	err := r.db.WithContext(ctx).
		Preload("Products", orderByPosition).
		Preload("OrderBumps", orderByPosition).
		Where("public_id = ?", publicID).
		First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, draftstore.ErrDraftNotFound
		}
		return nil, err
	}
	return &page, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}
