package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

// Aggregator sums resolved prices across a checkout's products and the
// bumps the customer has selected. Candidates are fixed at construction:
// disabled bumps are filtered out entirely, so they can neither be
// selected nor contribute to the subtotal.
type Aggregator struct {
	products []models.Product
	bumps    []models.OrderBump
	currency string
	selected map[uint]struct{}
}

// NewAggregator builds an aggregator for a checkout page in the given
// currency. The legacy single upsell and the list upsells are merged
// into one candidate sequence here.
func NewAggregator(page *models.CheckoutPage, currency string) *Aggregator {
	candidates := make([]models.OrderBump, 0, len(page.OrderBumps)+1)
	for _, b := range NormalizeBumps(page.LegacyBump(), page.OrderBumps) {
		if b.Enabled {
			candidates = append(candidates, b)
		}
	}
	return &Aggregator{
		products: page.Products,
		bumps:    candidates,
		currency: currency,
		selected: make(map[uint]struct{}),
	}
}

// Candidates returns the selectable bumps in render order.
func (a *Aggregator) Candidates() []models.OrderBump {
	return a.bumps
}

// Toggle flips the selection state of a bump id. Toggling twice returns
// the aggregator to its prior subtotal exactly. Ids outside the
// candidate list are ignored.
func (a *Aggregator) Toggle(id uint) {
	if !a.isCandidate(id) {
		return
	}
	if _, ok := a.selected[id]; ok {
		delete(a.selected, id)
		return
	}
	a.selected[id] = struct{}{}
}

// Select marks a set of bump ids as selected, replacing any prior
// selection. Non-candidate ids are dropped.
func (a *Aggregator) Select(ids []uint) {
	a.selected = make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if a.isCandidate(id) {
			a.selected[id] = struct{}{}
		}
	}
}

// SelectedIDs returns the currently selected bump ids in candidate order.
func (a *Aggregator) SelectedIDs() []uint {
	ids := make([]uint, 0, len(a.selected))
	for _, b := range a.bumps {
		if _, ok := a.selected[b.ID]; ok {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// Subtotal is the sum of every resolved product price plus the resolved
// price of each selected bump.
func (a *Aggregator) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range a.products {
		total = total.Add(EffectiveProductPrice(&a.products[i], a.currency))
	}
	for _, b := range a.bumps {
		if _, ok := a.selected[b.ID]; ok {
			total = total.Add(b.ResolvedPrice())
		}
	}
	return total
}

func (a *Aggregator) isCandidate(id uint) bool {
	for _, b := range a.bumps {
		if b.ID == id {
			return true
		}
	}
	return false
}
