package paymethod

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Method identifies a payment method a checkout page can offer.
type Method string

const (
	MethodStripe       Method = "stripe"
	MethodBankTransfer Method = "bank_transfer"
	MethodCrypto       Method = "crypto"
	MethodManual       Method = "manual"
)

var (
	// ErrNoMethodsAvailable is returned when the intersection of a
	// checkout's methods and the tenant's enabled gateways is empty.
	// The renderer must show a blocking state, not an empty list.
	ErrNoMethodsAvailable = errors.New("no payment methods available")

	// ErrGatewayDisabled is returned when a method is added to a
	// checkout while its gateway is globally disabled.
	ErrGatewayDisabled = errors.New("payment gateway is disabled for this store")

	// ErrUnknownMethod is returned for method identifiers outside the
	// supported set.
	ErrUnknownMethod = errors.New("unknown payment method")
)

// Valid reports whether m is a supported payment method.
func Valid(m Method) bool {
	switch m {
	case MethodStripe, MethodBankTransfer, MethodCrypto, MethodManual:
		return true
	default:
		return false
	}
}

// GatewayFlags carries the tenant-wide gateway enablement switches.
// It is always passed explicitly; there is no ambient global.
type GatewayFlags struct {
	Stripe       bool `json:"stripe"`
	BankTransfer bool `json:"bank_transfer"`
	Crypto       bool `json:"crypto"`
	Manual       bool `json:"manual"`
}

// Enabled reports whether the tenant has globally enabled the gateway
// behind the given method.
func (f GatewayFlags) Enabled(m Method) bool {
	switch m {
	case MethodStripe:
		return f.Stripe
	case MethodBankTransfer:
		return f.BankTransfer
	case MethodCrypto:
		return f.Crypto
	case MethodManual:
		return f.Manual
	default:
		return false
	}
}

// MethodList is an ordered list of payment methods. Order is significant:
// the first offerable method is the default selection on the checkout.
// Stored as a JSON column.
type MethodList []Method

// Value implements driver.Valuer for GORM JSON storage.
func (l MethodList) Value() (driver.Value, error) {
	if l == nil {
		l = MethodList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GORM JSON storage.
func (l *MethodList) Scan(value interface{}) error {
	if value == nil {
		*l = MethodList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into MethodList", value)
	}
}

// Contains reports whether the list contains m.
func (l MethodList) Contains(m Method) bool {
	for _, v := range l {
		if v == m {
			return true
		}
	}
	return false
}

// ResolveOfferable intersects the checkout's ordered method list with the
// tenant's gateway flags. The result preserves the checkout's stored
// order and is always a subset of it. A gateway disabled after a method
// was added is hidden here without mutating the stored list.
func ResolveOfferable(methods MethodList, flags GatewayFlags) MethodList {
	offerable := make(MethodList, 0, len(methods))
	for _, m := range methods {
		if flags.Enabled(m) {
			offerable = append(offerable, m)
		}
	}
	return offerable
}

// Default returns the first offerable method, which is the pre-selected
// method on the rendered checkout.
func Default(methods MethodList, flags GatewayFlags) (Method, error) {
	offerable := ResolveOfferable(methods, flags)
	if len(offerable) == 0 {
		return "", ErrNoMethodsAvailable
	}
	return offerable[0], nil
}

// Add appends a method to the checkout's list. A globally disabled
// gateway cannot be added; this is the only place enablement is checked
// at write time.
func Add(methods MethodList, m Method, flags GatewayFlags) (MethodList, error) {
	if !Valid(m) {
		return methods, ErrUnknownMethod
	}
	if !flags.Enabled(m) {
		return methods, ErrGatewayDisabled
	}
	if methods.Contains(m) {
		return methods, nil
	}
	return append(methods, m), nil
}

// Remove deletes a method from the checkout's list, preserving the order
// of the remaining entries.
func Remove(methods MethodList, m Method) MethodList {
	out := make(MethodList, 0, len(methods))
	for _, v := range methods {
		if v != m {
			out = append(out, v)
		}
	}
	return out
}

// SwapUp moves the method at index i one position towards the front.
// Reordering is restricted to adjacent swaps.
func SwapUp(methods MethodList, i int) (MethodList, error) {
	if i <= 0 || i >= len(methods) {
		return methods, fmt.Errorf("cannot move method at index %d up", i)
	}
	out := make(MethodList, len(methods))
	copy(out, methods)
	out[i-1], out[i] = out[i], out[i-1]
	return out, nil
}

// SwapDown moves the method at index i one position towards the back.
func SwapDown(methods MethodList, i int) (MethodList, error) {
	if i < 0 || i >= len(methods)-1 {
		return methods, fmt.Errorf("cannot move method at index %d down", i)
	}
	out := make(MethodList, len(methods))
	copy(out, methods)
	out[i], out[i+1] = out[i+1], out[i]
	return out, nil
}

// FromStrings converts raw method identifiers into a MethodList,
// dropping anything outside the supported set.
func FromStrings(raw []string) MethodList {
	out := make(MethodList, 0, len(raw))
	for _, s := range raw {
		if m := Method(s); Valid(m) {
			out = append(out, m)
		}
	}
	return out
}
