package pricing

import (
	"testing"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

func testPage() *models.CheckoutPage {
	return &models.CheckoutPage{
		Currency: "usd",
		Products: []models.Product{
			{ID: 10, Name: "Course", Pricing: models.PricingOptions{
				OneTime: models.OneTimePricing{Prices: models.PriceMap{"usd": d("100.00")}},
			}},
		},
		OrderBumps: []models.OrderBump{
			{ID: 1, Title: "Workbook", Enabled: true, Price: d("15.00")},
			{ID: 2, Title: "Hidden", Enabled: false, Price: d("50.00")},
		},
	}
}

func TestAggregator_DisabledBumpsAreNotCandidates(t *testing.T) {
	agg := NewAggregator(testPage(), "usd")

	candidates := agg.Candidates()
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].ID != 1 {
		t.Fatalf("expected enabled bump 1, got %d", candidates[0].ID)
	}

	// Selecting the disabled bump must be a no-op.
	agg.Toggle(2)
	if got := agg.Subtotal(); !got.Equal(d("100.00")) {
		t.Fatalf("disabled bump leaked into subtotal: %s", got)
	}
}

func TestAggregator_ToggleIsIdempotentPair(t *testing.T) {
	agg := NewAggregator(testPage(), "usd")

	base := agg.Subtotal()
	if !base.Equal(d("100.00")) {
		t.Fatalf("expected base subtotal 100.00, got %s", base)
	}

	agg.Toggle(1)
	if got := agg.Subtotal(); !got.Equal(d("115.00")) {
		t.Fatalf("expected subtotal 115.00 after select, got %s", got)
	}

	agg.Toggle(1)
	if got := agg.Subtotal(); !got.Equal(base) {
		t.Fatalf("expected subtotal restored to %s after deselect, got %s", base, got)
	}
}

func TestAggregator_SelectReplacesAndDropsUnknownIDs(t *testing.T) {
	agg := NewAggregator(testPage(), "usd")

	agg.Toggle(1)
	agg.Select([]uint{999})

	if got := agg.SelectedIDs(); len(got) != 0 {
		t.Fatalf("expected unknown ids to be dropped, got %v", got)
	}
	if got := agg.Subtotal(); !got.Equal(d("100.00")) {
		t.Fatalf("expected subtotal 100.00, got %s", got)
	}
}

func TestAggregator_LegacyUpsellJoinsCandidates(t *testing.T) {
	page := testPage()
	page.LegacyUpsell = &models.UpsellOffer{
		Title:          "Yearly bundle",
		Enabled:        true,
		OfferType:      models.OfferTypeMultiMonth,
		MonthlyPrice:   d("2.99"),
		DurationMonths: 12,
	}

	agg := NewAggregator(page, "usd")
	candidates := agg.Candidates()
	if len(candidates) != 2 {
		t.Fatalf("expected legacy + enabled list bump, got %d candidates", len(candidates))
	}
	if candidates[0].ID != 0 {
		t.Fatalf("expected legacy slot with id 0 first, got id %d", candidates[0].ID)
	}
	if !candidates[0].Price.Equal(d("35.88")) {
		t.Fatalf("expected derived bundle price 35.88, got %s", candidates[0].Price)
	}

	// The legacy slot is selectable under its zero id.
	agg.Toggle(0)
	if got := agg.Subtotal(); !got.Equal(d("135.88")) {
		t.Fatalf("expected subtotal 135.88 with legacy bump, got %s", got)
	}
}

func TestAggregator_SubtotalUsesPageCurrencyFallback(t *testing.T) {
	page := testPage()
	page.Currency = "gbp"

	// No gbp entry; the usd price must back the subtotal.
	agg := NewAggregator(page, page.Currency)
	if got := agg.Subtotal(); !got.Equal(d("100.00")) {
		t.Fatalf("expected usd fallback subtotal 100.00, got %s", got)
	}
}
