// Package valueobjects_test covers the ledger value objects.
// Domain tests have NO external dependencies - pure unit tests.
//
// Testing Principles:
// - Test business rules and invariants
// - Test value object immutability
// - Test error conditions
// - No mocks needed (pure domain logic)
package valueobjects_test

import (
	"errors"
	"testing"

	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// TestNewMoney tests balance creation from decimal strings.
func TestNewMoney(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		want    string
		wantErr error
	}{
		{name: "Whole dollars", amount: "600", want: "600.00"},
		{name: "Cents", amount: "100.5", want: "100.50"},
		{name: "Zero amount", amount: "0", want: "0.00"},
		{name: "Negative amount", amount: "-1", wantErr: valueobjects.ErrNegativeAmount},
		{name: "Not a number", amount: "abc", wantErr: valueobjects.ErrInvalidAmount},
		{name: "Rounded to cents", amount: "1999.999", want: "2000.00"},
		{name: "Rounded down", amount: "500.001", want: "500.00"},
		{name: "Exponent notation", amount: "1.5e2", want: "150.00"},
		{name: "Tiny exponent", amount: "1e-200000000", wantErr: valueobjects.ErrInvalidAmount},
		{name: "Huge exponent", amount: "1e999999999", wantErr: valueobjects.ErrInvalidAmount},
		{name: "Too many integer digits", amount: "1234567890123456", wantErr: valueobjects.ErrInvalidAmount},
		{name: "Too long", amount: "1.000000000000000000000000000000000", wantErr: valueobjects.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := valueobjects.NewMoney(tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewMoney(%q) error = %v, want %v", tt.amount, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMoney(%q) unexpected error: %v", tt.amount, err)
			}
			if money.String() != tt.want {
				t.Errorf("String() = %q, want %q", money.String(), tt.want)
			}
		})
	}
}

// TestParseAmount tests that transaction amounts must be strictly positive.
func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{name: "Positive", amount: "100"},
		{name: "Fraction", amount: "0.01"},
		{name: "Zero", amount: "0", wantErr: valueobjects.ErrNonPositiveAmount},
		{name: "Negative", amount: "-50", wantErr: valueobjects.ErrNonPositiveAmount},
		{name: "Letters", amount: "1o0", wantErr: valueobjects.ErrInvalidAmount},
		{name: "Empty", amount: "", wantErr: valueobjects.ErrInvalidAmount},
		{name: "Largest accepted", amount: "999999999999999.99"},
		{name: "Below a cent", amount: "0.001", wantErr: valueobjects.ErrNonPositiveAmount},
		{name: "Tiny exponent", amount: "1e-200000000", wantErr: valueobjects.ErrInvalidAmount},
		{name: "Huge exponent", amount: "1e999999999", wantErr: valueobjects.ErrInvalidAmount},
		{name: "Huge negative exponent value", amount: "-1e999999999", wantErr: valueobjects.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := valueobjects.ParseAmount(tt.amount)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.amount, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseAmount(%q) error = %v, want %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}

// TestMoney_Arithmetic tests Add/Subtract and that balances never go negative.
func TestMoney_Arithmetic(t *testing.T) {
	balance := valueobjects.MustNewMoney("700")

	sum := balance.Add(valueobjects.MustNewMoney("0.25"))
	if sum.String() != "700.25" {
		t.Errorf("Add() = %s, want 700.25", sum)
	}
	if balance.String() != "700.00" {
		t.Errorf("Add() must not mutate the receiver, got %s", balance)
	}

	diff, err := balance.Subtract(valueobjects.MustNewMoney("700"))
	if err != nil {
		t.Fatalf("Subtract() unexpected error: %v", err)
	}
	if !diff.IsZero() {
		t.Errorf("Subtract() = %s, want 0.00", diff)
	}

	if _, err := balance.Subtract(valueobjects.MustNewMoney("750")); !errors.Is(err, valueobjects.ErrInsufficientAmount) {
		t.Errorf("Subtract() over balance error = %v, want ErrInsufficientAmount", err)
	}
}

func TestMoney_Comparisons(t *testing.T) {
	low := valueobjects.MustNewMoney("1999.99")
	limit := valueobjects.MustNewMoney("2000")

	if !low.LessThan(limit) {
		t.Error("1999.99 should be less than 2000")
	}
	if !limit.GreaterThanOrEqual(valueobjects.MustNewMoney("2000.00")) {
		t.Error("2000 should be >= 2000.00")
	}
	if !limit.Equals(valueobjects.MustNewMoney("2000.000")) {
		t.Error("Equals should ignore trailing zeros")
	}
	if low.Cmp(limit) != -1 || limit.Cmp(low) != 1 {
		t.Error("Cmp() should order amounts")
	}
}
