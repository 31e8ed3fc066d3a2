package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrPaymentDeclined wraps a processor decline. The attempt is terminal;
// local draft state is never mutated by a decline.
var ErrPaymentDeclined = errors.New("payment declined")

// Intent is a created payment attempt the storefront can confirm.
type Intent struct {
	ClientSecret string `json:"client_secret"`
}

// ConfirmResult is the processor's verdict on a confirmation attempt.
type ConfirmResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// Processor is the hosted card-payment collaborator. Callers pass the
// selected upsell ids, never computed totals; the charged amount is
// quoted server-side from persisted checkout state.
type Processor interface {
	CreateIntent(ctx context.Context, checkoutID, customerEmail, customerName string, selectedUpsellIDs []uint) (*Intent, error)
	Confirm(ctx context.Context, clientSecret, paymentMethodID string) (*ConfirmResult, error)
	Verify(ctx context.Context, transactionID string) error
}

// Quoter prices a checkout from persisted state. It keeps the processor
// boundary the source of truth for the final charged amount.
type Quoter interface {
	Quote(ctx context.Context, checkoutID string, selectedUpsellIDs []uint) (amount decimal.Decimal, currency string, err error)
}
