package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIntentIDFromClientSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "pi_123_secret_456", want: "pi_123"},
		{in: "pi_abc_secret_", want: "pi_abc"},
		{in: "_secret_456", want: ""},
		{in: "garbage", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := IntentIDFromClientSecret(tt.in); got != tt.want {
			t.Fatalf("IntentIDFromClientSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     int64
	}{
		{amount: "12.34", currency: "usd", want: 1234},
		{amount: "12.34", currency: "USD", want: 1234},
		{amount: "100", currency: "eur", want: 10000},
		{amount: "0.005", currency: "usd", want: 1},
		{amount: "1200", currency: "jpy", want: 1200},
		{amount: "1200.4", currency: "jpy", want: 1200},
	}

	for _, tt := range tests {
		amount, err := decimal.NewFromString(tt.amount)
		if err != nil {
			t.Fatalf("bad fixture amount %q: %v", tt.amount, err)
		}
		if got := minorUnits(amount, tt.currency); got != tt.want {
			t.Fatalf("minorUnits(%s, %s) = %d, want %d", tt.amount, tt.currency, got, tt.want)
		}
	}
}
