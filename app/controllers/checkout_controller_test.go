package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
	"github.com/zapiertracker-hub/Whopify-sub000/app/repository"
)

// stubCheckoutRepository serves a fixed set of pages keyed by public id.
type stubCheckoutRepository struct {
	pages map[string]*models.CheckoutPage
}

func (s *stubCheckoutRepository) Create(page *models.CheckoutPage) error { return nil }

func (s *stubCheckoutRepository) GetByID(id uint) (*models.CheckoutPage, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCheckoutRepository) GetByPublicID(publicID string) (*models.CheckoutPage, error) {
	if page, ok := s.pages[publicID]; ok {
		return page, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCheckoutRepository) GetBySlug(slug string) (*models.CheckoutPage, error) {
	for _, page := range s.pages {
		if page.Slug == slug && page.Slug != "" {
			return page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCheckoutRepository) ListByUser(userID uint) ([]models.CheckoutPage, error) {
	return nil, nil
}

func (s *stubCheckoutRepository) Save(page *models.CheckoutPage) error { return nil }
func (s *stubCheckoutRepository) Delete(id uint) error                 { return nil }
func (s *stubCheckoutRepository) Publish(id uint, slug string) error   { return nil }

func (s *stubCheckoutRepository) SaveDraft(ctx context.Context, page *models.CheckoutPage) error {
	return nil
}

func (s *stubCheckoutRepository) LoadDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error) {
	return s.GetByPublicID(publicID)
}

func installStubPages(pages ...*models.CheckoutPage) {
	byID := make(map[string]*models.CheckoutPage, len(pages))
	for _, p := range pages {
		byID[p.PublicID] = p
	}
	repository.SetGlobalFactory(repository.NewFactoryWithRepositories(&repository.Repositories{
		Checkout: &stubCheckoutRepository{pages: byID},
	}))
}

func storefrontApp() *fiber.App {
	app := fiber.New()
	app.Post("/checkout/:id/quote", HandleQuote)
	app.Post("/checkout/:id/intent", HandleCreateIntent)
	return app
}

func pricedProduct(name, price string) models.Product {
	v, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return models.Product{
		Name: name,
		Pricing: models.PricingOptions{
			OneTime: models.OneTimePricing{Prices: models.PriceMap{"usd": v}},
		},
	}
}

func TestHandleQuote_RejectsUnpublishedDraft(t *testing.T) {
	installStubPages(&models.CheckoutPage{
		PublicID: "draft-1",
		Currency: "usd",
		Status:   models.CheckoutStatusDraft,
		Products: []models.Product{pricedProduct("Course", "49.00")},
	})

	req := httptest.NewRequest("POST", "/checkout/draft-1/quote", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := storefrontApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleQuote_PricesPublishedPage(t *testing.T) {
	installStubPages(&models.CheckoutPage{
		PublicID: "live-1",
		Currency: "usd",
		Status:   models.CheckoutStatusActive,
		Slug:     "aBcDeFgHiJ",
		Products: []models.Product{pricedProduct("Course", "49.00")},
	})

	req := httptest.NewRequest("POST", "/checkout/live-1/quote", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := storefrontApp().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Subtotal decimal.Decimal `json:"subtotal"`
		Total    decimal.Decimal `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Subtotal.Equal(decimal.RequireFromString("49.00")), "subtotal = %s", body.Subtotal)
	assert.True(t, body.Total.Equal(body.Subtotal))
}

func TestHandleCreateIntent_RejectsUnpublishedDraft(t *testing.T) {
	installStubPages(&models.CheckoutPage{
		PublicID: "draft-2",
		Currency: "usd",
		Status:   models.CheckoutStatusDraft,
		Products: []models.Product{pricedProduct("Course", "49.00")},
	})

	req := httptest.NewRequest("POST", "/checkout/draft-2/intent", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := storefrontApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
