package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OfferTypeOneTime    = "one_time"
	OfferTypeMultiMonth = "multi_month"
)

// OrderBump is an optional add-on offered below the main products of a
// checkout page. A multi-month bump derives its total price from the
// monthly unit price and the duration; the derived value is persisted
// and re-synced whenever either factor changes.
type OrderBump struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CheckoutPageID uint            `gorm:"not null;index" json:"checkout_page_id"`
	Title          string          `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Description    string          `gorm:"type:text" json:"description"`
	Enabled        bool            `gorm:"not null;default:true" json:"enabled"`
	Position       int             `gorm:"not null;default:0" json:"position"`
	OfferType      string          `gorm:"type:varchar(20);not null;default:'one_time'" json:"offer_type"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	MonthlyPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"monthly_price"`
	DurationMonths int             `gorm:"not null;default:0" json:"duration_months"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SyncDerivedPrice keeps Price consistent with the multi-month factors.
// Invariant: price == round(monthly_price * duration_months, 2) whenever
// the offer type is multi_month. Flat offers keep Price as entered.
func (b *OrderBump) SyncDerivedPrice() {
	if b.OfferType != OfferTypeMultiMonth {
		return
	}
	b.Price = b.MonthlyPrice.Mul(decimal.NewFromInt(int64(b.DurationMonths))).Round(2)
}

// ResolvedPrice is the amount added to the subtotal when the bump is
// selected: the derived bundle price for multi-month offers, the flat
// price otherwise.
func (b *OrderBump) ResolvedPrice() decimal.Decimal {
	return b.Price
}

// UpsellOffer is the embedded single-upsell payload kept on checkout
// pages created before list upsells existed. It has no row of its own;
// normalization folds it into the bump sequence with id 0.
type UpsellOffer struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Enabled        bool            `json:"enabled"`
	OfferType      string          `json:"offer_type"`
	Price          decimal.Decimal `json:"price"`
	MonthlyPrice   decimal.Decimal `json:"monthly_price"`
	DurationMonths int             `json:"duration_months"`
}

// AsBump converts the legacy payload into the common bump shape. The
// zero ID marks it as the legacy slot; real rows always have id > 0.
func (u *UpsellOffer) AsBump(checkoutPageID uint) OrderBump {
	b := OrderBump{
		CheckoutPageID: checkoutPageID,
		Title:          u.Title,
		Description:    u.Description,
		Enabled:        u.Enabled,
		OfferType:      u.OfferType,
		Price:          u.Price,
		MonthlyPrice:   u.MonthlyPrice,
		DurationMonths: u.DurationMonths,
	}
	b.SyncDerivedPrice()
	return b
}

// Value implements driver.Valuer for GORM JSON storage.
func (u UpsellOffer) Value() (driver.Value, error) {
	return json.Marshal(u)
}

// Scan implements sql.Scanner for GORM JSON storage.
func (u *UpsellOffer) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*u = UpsellOffer{}
		return nil
	case []byte:
		return json.Unmarshal(v, u)
	case string:
		return json.Unmarshal([]byte(v), u)
	default:
		return fmt.Errorf("cannot scan %T into UpsellOffer", value)
	}
}
