package paymethod

import (
	"errors"
	"reflect"
	"testing"
)

func allEnabled() GatewayFlags {
	return GatewayFlags{Stripe: true, BankTransfer: true, Crypto: true, Manual: true}
}

func TestResolveOfferable_PreservesStoredOrder(t *testing.T) {
	methods := MethodList{MethodCrypto, MethodStripe, MethodBankTransfer}

	got := ResolveOfferable(methods, allEnabled())
	if !reflect.DeepEqual(got, methods) {
		t.Fatalf("expected order preserved, got %v", got)
	}
}

func TestResolveOfferable_HidesDisabledGateways(t *testing.T) {
	methods := MethodList{MethodStripe, MethodCrypto, MethodBankTransfer}
	flags := GatewayFlags{Crypto: true}

	got := ResolveOfferable(methods, flags)
	if !reflect.DeepEqual(got, MethodList{MethodCrypto}) {
		t.Fatalf("expected only crypto offerable, got %v", got)
	}

	// The stored list is untouched; hiding happens at resolve time.
	if !reflect.DeepEqual(methods, MethodList{MethodStripe, MethodCrypto, MethodBankTransfer}) {
		t.Fatalf("stored list mutated: %v", methods)
	}
}

func TestDefault(t *testing.T) {
	methods := MethodList{MethodBankTransfer, MethodStripe}

	m, err := Default(methods, allEnabled())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != MethodBankTransfer {
		t.Fatalf("expected first offerable method, got %v", m)
	}

	_, err = Default(methods, GatewayFlags{})
	if !errors.Is(err, ErrNoMethodsAvailable) {
		t.Fatalf("expected ErrNoMethodsAvailable, got %v", err)
	}
}

func TestAdd(t *testing.T) {
	methods := MethodList{MethodStripe}

	// Disabled gateways cannot be added.
	_, err := Add(methods, MethodCrypto, GatewayFlags{Stripe: true})
	if !errors.Is(err, ErrGatewayDisabled) {
		t.Fatalf("expected ErrGatewayDisabled, got %v", err)
	}

	_, err = Add(methods, Method("paypal"), allEnabled())
	if !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}

	// Adding an existing method is a no-op, not an error.
	got, err := Add(methods, MethodStripe, allEnabled())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, methods) {
		t.Fatalf("expected no-op re-add, got %v", got)
	}

	got, err = Add(methods, MethodCrypto, allEnabled())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, MethodList{MethodStripe, MethodCrypto}) {
		t.Fatalf("expected crypto appended, got %v", got)
	}
}

func TestRemove(t *testing.T) {
	methods := MethodList{MethodStripe, MethodCrypto, MethodManual}

	got := Remove(methods, MethodCrypto)
	if !reflect.DeepEqual(got, MethodList{MethodStripe, MethodManual}) {
		t.Fatalf("expected remaining order preserved, got %v", got)
	}

	got = Remove(methods, MethodBankTransfer)
	if !reflect.DeepEqual(got, methods) {
		t.Fatalf("expected removal of absent method to be a no-op, got %v", got)
	}
}

func TestSwapUpAndDown(t *testing.T) {
	methods := MethodList{MethodStripe, MethodCrypto, MethodManual}

	got, err := SwapUp(methods, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, MethodList{MethodStripe, MethodManual, MethodCrypto}) {
		t.Fatalf("unexpected order after swap up: %v", got)
	}

	got, err = SwapDown(methods, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, MethodList{MethodCrypto, MethodStripe, MethodManual}) {
		t.Fatalf("unexpected order after swap down: %v", got)
	}

	// Only adjacent swaps exist; the edges reject.
	if _, err := SwapUp(methods, 0); err == nil {
		t.Fatalf("expected error swapping first entry up")
	}
	if _, err := SwapDown(methods, 2); err == nil {
		t.Fatalf("expected error swapping last entry down")
	}
	if _, err := SwapUp(methods, 5); err == nil {
		t.Fatalf("expected error for out of range index")
	}
}

func TestFromStrings(t *testing.T) {
	got := FromStrings([]string{"stripe", "paypal", "crypto", ""})
	if !reflect.DeepEqual(got, MethodList{MethodStripe, MethodCrypto}) {
		t.Fatalf("expected unsupported identifiers dropped, got %v", got)
	}
}

func TestMethodListScanRoundTrip(t *testing.T) {
	original := MethodList{MethodCrypto, MethodManual}

	raw, err := original.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var restored MethodList
	if err := restored.Scan(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(restored, original) {
		t.Fatalf("round trip mismatch: %v != %v", restored, original)
	}

	var empty MethodList
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("unexpected error scanning nil: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list from nil column, got %v", empty)
	}
}
