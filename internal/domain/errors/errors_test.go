package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors tests that all sentinel errors are defined
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrAccountNotFound", ErrAccountNotFound},
		{"ErrDuplicateHolderType", ErrDuplicateHolderType},
		{"ErrNoHolderAccounts", ErrNoHolderAccounts},
		{"ErrInsufficientFunds", ErrInsufficientFunds},
		{"ErrInvalidCommand", ErrInvalidCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("%s should not be nil", tt.name)
			}
			if tt.err.Error() == "" {
				t.Errorf("%s should have an error message", tt.name)
			}
		})
	}
}

// TestDomainError_Error tests DomainError error message formatting
func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		contains []string
	}{
		{
			name:     "with underlying error",
			err:      NewDomainError(CodeAccountNotFound, "100011234 account does not exist.", ErrAccountNotFound),
			contains: []string{CodeAccountNotFound, "100011234 account does not exist.", "account not found"},
		},
		{
			name:     "without underlying error",
			err:      NewDomainError(CodeInvalidCommand, "Invalid command!", nil),
			contains: []string{CodeInvalidCommand, "Invalid command!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("Error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	de := NewDomainError(CodeInsufficientFunds, "Insufficient funds.", ErrInsufficientFunds)

	if !errors.Is(de, ErrInsufficientFunds) {
		t.Error("errors.Is should see the wrapped sentinel")
	}
	if (&DomainError{Code: "X"}).Unwrap() != nil {
		t.Error("Unwrap() on a bare DomainError should be nil")
	}
}

func TestAsDomainError_ThroughWrapping(t *testing.T) {
	de := NewDomainError(CodeNoHolderAccounts, "no accounts", ErrNoHolderAccounts)
	wrapped := fmt.Errorf("close account: %w", de)

	got, ok := AsDomainError(wrapped)
	if !ok {
		t.Fatal("AsDomainError() should find the DomainError")
	}
	if got.Code != CodeNoHolderAccounts {
		t.Errorf("Code = %q, want %q", got.Code, CodeNoHolderAccounts)
	}
	if CodeOf(wrapped) != CodeNoHolderAccounts {
		t.Errorf("CodeOf() = %q", CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Error("CodeOf() on a plain error should be empty")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("lookup: %w", ErrAccountNotFound)) {
		t.Error("IsNotFound should match a wrapped ErrAccountNotFound")
	}
	if IsNotFound(ErrInsufficientFunds) {
		t.Error("IsNotFound should not match other errors")
	}
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("open: %w", ValidationError{Field: "amount", Message: "must be positive"})

	if !IsValidationError(err) {
		t.Error("IsValidationError should match a wrapped ValidationError")
	}
	if !strings.Contains(err.Error(), "amount") {
		t.Errorf("message %q should name the field", err.Error())
	}
}

func TestBusinessRuleViolation(t *testing.T) {
	brv := NewBusinessRuleViolation("ONE_ACCOUNT_PER_TYPE", "duplicate", map[string]interface{}{"type": "CHECKING"})

	if !IsBusinessRuleViolation(fmt.Errorf("wrap: %w", brv)) {
		t.Error("IsBusinessRuleViolation should match a wrapped violation")
	}
	if !strings.Contains(brv.Error(), "ONE_ACCOUNT_PER_TYPE") {
		t.Errorf("message %q should contain the rule", brv.Error())
	}
	if IsBusinessRuleViolation(ErrAccountNotFound) {
		t.Error("sentinel errors are not business rule violations")
	}
}
