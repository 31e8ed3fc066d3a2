package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeConfig holds Stripe configuration
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// StripeProcessor implements Processor on the Stripe PaymentIntents API.
type StripeProcessor struct {
	config *StripeConfig
	quoter Quoter
}

// NewStripeProcessor creates a Stripe-backed processor. The quoter
// prices checkouts from persisted state so the client can never dictate
// the charged amount.
func NewStripeProcessor(config *StripeConfig, quoter Quoter) *StripeProcessor {
	// Set Stripe API key
	stripe.Key = config.SecretKey

	return &StripeProcessor{config: config, quoter: quoter}
}

// Currencies Stripe charges in whole units rather than cents.
var zeroDecimalCurrencies = map[string]bool{
	"jpy": true,
	"krw": true,
	"vnd": true,
}

func minorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return amount.Round(0).IntPart()
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateIntent quotes the checkout with the selected upsells and opens
// a payment intent for the resulting amount.
func (p *StripeProcessor) CreateIntent(ctx context.Context, checkoutID, customerEmail, customerName string, selectedUpsellIDs []uint) (*Intent, error) {
	amount, currency, err := p.quoter.Quote(ctx, checkoutID, selectedUpsellIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to quote checkout %s: %w", checkoutID, err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("checkout %s has no chargeable amount", checkoutID)
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(minorUnits(amount, currency)),
		Currency:     stripe.String(strings.ToLower(currency)),
		ReceiptEmail: stripe.String(customerEmail),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("checkout_id", checkoutID)
	params.AddMetadata("customer_name", customerName)
	for _, id := range selectedUpsellIDs {
		params.AddMetadata(fmt.Sprintf("upsell_%d", id), "selected")
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{ClientSecret: pi.ClientSecret}, nil
}

// Confirm finalizes a payment intent with the customer's payment method.
func (p *StripeProcessor) Confirm(ctx context.Context, clientSecret, paymentMethodID string) (*ConfirmResult, error) {
	intentID := IntentIDFromClientSecret(clientSecret)
	if intentID == "" {
		return nil, fmt.Errorf("malformed client secret")
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx

	pi, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded && pi.Status != stripe.PaymentIntentStatusProcessing {
		return nil, fmt.Errorf("%w: intent status %s", ErrPaymentDeclined, pi.Status)
	}

	return &ConfirmResult{Status: string(pi.Status), TransactionID: pi.ID}, nil
}

// Verify re-reads a transaction from Stripe and confirms it succeeded.
func (p *StripeProcessor) Verify(ctx context.Context, transactionID string) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(transactionID, params)
	if err != nil {
		return fmt.Errorf("failed to fetch payment intent %s: %w", transactionID, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent %s not succeeded: %s", transactionID, pi.Status)
	}
	return nil
}

// VerifyWebhookEvent checks a webhook payload's signature and parses
// the event.
func (p *StripeProcessor) VerifyWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signatureHeader, p.config.WebhookSecret)
}

// IntentIDFromClientSecret extracts the intent id from a client secret
// of the form "pi_xxx_secret_yyy".
func IntentIDFromClientSecret(clientSecret string) string {
	idx := strings.Index(clientSecret, "_secret")
	if idx <= 0 {
		return ""
	}
	return clientSecret[:idx]
}
