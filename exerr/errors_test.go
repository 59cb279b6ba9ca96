package exerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindHierarchy(t *testing.T) {
	tests := []struct {
		err    error
		target error
		want   bool
	}{
		{ErrPermissionDenied, ErrAuthentication, true},
		{ErrPermissionDenied, ErrExchange, true},
		{ErrAccountSuspended, ErrAuthentication, true},
		{ErrBadSymbol, ErrBadRequest, true},
		{ErrOrderNotFound, ErrInvalidOrder, true},
		{ErrAddressPending, ErrInvalidAddress, true},
		{ErrRateLimitExceeded, ErrDDoSProtection, true},
		{ErrRateLimitExceeded, ErrNetwork, true},
		{ErrOnMaintenance, ErrExchangeNotAvailable, true},
		{ErrRateLimitExceeded, ErrExchange, false},
		{ErrInvalidOrder, ErrOrderNotFound, false},
		{ErrAuthentication, ErrPermissionDenied, false},
	}

	for _, tt := range tests {
		if got := errors.Is(tt.err, tt.target); got != tt.want {
			t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	err := fmt.Errorf("fetch balance: %w", New(ErrPermissionDenied, "buda", "forbidden"))

	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("expected wrapped error to match ErrAuthentication")
	}

	var exErr *Error
	if !errors.As(err, &exErr) {
		t.Fatalf("expected errors.As to find *Error")
	}
	if exErr.Exchange != "buda" {
		t.Errorf("Exchange = %q, want buda", exErr.Exchange)
	}
	if KindOf(err) != ErrPermissionDenied {
		t.Errorf("KindOf = %v, want PermissionDenied", KindOf(err))
	}
}

func TestCategories(t *testing.T) {
	transient := New(ErrRateLimitExceeded, "hitbtc", "too many requests")
	permanent := New(ErrInvalidOrder, "hitbtc", "bad price")
	credential := New(ErrAuthentication, "hitbtc", "bad key")

	if !IsTransient(transient) || IsPermanent(transient) || IsCredential(transient) {
		t.Errorf("rate limit should only be transient")
	}
	if !IsPermanent(permanent) || IsTransient(permanent) || IsCredential(permanent) {
		t.Errorf("invalid order should only be permanent")
	}
	if !IsCredential(credential) || IsTransient(credential) || IsPermanent(credential) {
		t.Errorf("authentication should only be a credential error")
	}
}

func TestNumericError(t *testing.T) {
	err := &NumericError{Op: "div", Operands: []string{"1", "0"}, Reason: "division by zero"}
	if !errors.Is(err, ErrNumeric) {
		t.Fatalf("NumericError should match ErrNumeric")
	}
	if errors.Is(err, ErrExchange) {
		t.Errorf("NumericError should not be an exchange error")
	}
}

func TestClassifier(t *testing.T) {
	c := NewClassifier("demo",
		map[string]*Kind{
			"20001":           ErrInsufficientFunds,
			"Order not found": ErrOrderNotFound,
		},
		map[string]*Kind{
			"not found":      ErrBadRequest,
			"insufficient":   ErrInsufficientFunds,
			"rate limit":     ErrRateLimitExceeded,
			"rate limit hit": ErrDDoSProtection,
		},
	)

	tests := []struct {
		name    string
		code    string
		message string
		want    *Kind
	}{
		{"exact code", "20001", "whatever", ErrInsufficientFunds},
		{"exact code beats broad", "20001", "rate limit", ErrInsufficientFunds},
		{"exact message", "", "Order not found", ErrOrderNotFound},
		{"broad", "999", "account insufficient balance", ErrInsufficientFunds},
		{"longest broad first", "", "rate limit hit again", ErrDDoSProtection},
		{"unmatched", "1", "something odd", ErrExchange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Classify(tt.code, tt.message, "")
			if err.Kind != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.code, tt.message, err.Kind, tt.want)
			}
			if err.Message != tt.message {
				t.Errorf("Message = %q, want %q", err.Message, tt.message)
			}
		})
	}
}
