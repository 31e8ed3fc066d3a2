package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

// FallbackCurrency is the price map entry used when the requested
// currency has no merchant-entered value.
const FallbackCurrency = "usd"

// ResolvePrice looks up the price for a currency in a merchant-entered
// price map. The key is the lowercased currency code; an absent key
// falls back to the usd entry, and an absent usd entry degrades to
// zero. Downstream validation treats zero as "not priced" and blocks
// publish; this function never fails.
func ResolvePrice(prices models.PriceMap, currency string) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	if p, ok := prices[strings.ToLower(strings.TrimSpace(currency))]; ok {
		return p
	}
	if p, ok := prices[FallbackCurrency]; ok {
		return p
	}
	return decimal.Zero
}

// EffectiveProductPrice resolves a product's unit price in the given
// currency using its active pricing mode.
func EffectiveProductPrice(p *models.Product, currency string) decimal.Decimal {
	return ResolvePrice(p.Pricing.EffectivePrices(), currency)
}

// DeriveBundlePrice computes the total of a multi-month bundle:
// round(monthly * months, 2).
func DeriveBundlePrice(monthly decimal.Decimal, months int) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(int64(months))).Round(2)
}

// NormalizeBumps merges the legacy single upsell and the list upsells
// into one sequence. The merge happens once at load time; nothing
// downstream branches on which shape a bump came from. The legacy slot
// leads the sequence, matching its historical render position.
func NormalizeBumps(legacy *models.OrderBump, list []models.OrderBump) []models.OrderBump {
	out := make([]models.OrderBump, 0, len(list)+1)
	if legacy != nil {
		out = append(out, *legacy)
	}
	out = append(out, list...)
	return out
}
