// Package valueobjects - Money is the balance and amount type of the ledger.
package valueobjects

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a non-negative dollar amount.
// Uses decimal.Decimal to avoid floating-point errors on balances.
//
// Value Object Pattern:
// - Immutable: All operations return new Money instances
// - Self-validating: Cannot create negative Money
type Money struct {
	amount decimal.Decimal
}

// Common domain errors for Money operations
var (
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrNonPositiveAmount  = errors.New("amount must be greater than zero")
	ErrInsufficientAmount = errors.New("insufficient amount")
	ErrInvalidAmount      = errors.New("invalid amount format")
)

// Bounds on accepted amount text. Exponent notation like "1e-200000000" is
// short but would make every later rescale allocate a huge big.Int.
const (
	maxAmountLength  = 32
	maxIntegerDigits = 15
	centPlaces       = 2
)

// parseDecimal parses amount text within the bounds above and rounds it to cents.
func parseDecimal(amountStr string) (decimal.Decimal, error) {
	if len(amountStr) > maxAmountLength {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amountStr)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amountStr)
	}
	exp := int64(amount.Exponent())
	if exp < -maxAmountLength || exp+int64(amount.NumDigits()) > maxIntegerDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, amountStr)
	}
	return amount.Round(centPlaces), nil
}

// NewMoney parses a decimal string (e.g. "100.50") into Money, rounded to cents.
//
// Returns error if:
//   - Amount cannot be parsed or is out of range (ErrInvalidAmount)
//   - Amount is negative (ErrNegativeAmount)
func NewMoney(amountStr string) (Money, error) {
	amount, err := parseDecimal(amountStr)
	if err != nil {
		return Money{}, err
	}
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount}, nil
}

// ParseAmount parses a transaction amount from a command token.
// Unlike NewMoney it rejects zero and negative values with ErrNonPositiveAmount.
// An amount that rounds to 0.00 counts as zero.
func ParseAmount(amountStr string) (Money, error) {
	amount, err := parseDecimal(amountStr)
	if err != nil {
		return Money{}, err
	}
	if !amount.IsPositive() {
		return Money{}, ErrNonPositiveAmount
	}
	return Money{amount: amount}, nil
}

// MustNewMoney panics on invalid input. Use only for constants and tests.
func MustNewMoney(amountStr string) Money {
	m, err := NewMoney(amountStr)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromInt creates Money from whole dollars.
func NewMoneyFromInt(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: decimal.NewFromInt(amount)}, nil
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount with two decimals, e.g. "700.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Float64 returns the amount as float64.
// WARNING: Use only for metrics, not for calculations!
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns the difference, or ErrInsufficientAmount if it would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		return Money{}, ErrInsufficientAmount
	}
	return Money{amount: diff}, nil
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Cmp compares two amounts: -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// GreaterThanOrEqual checks if this money is >= another.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// LessThan checks if this money is less than another.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equals checks if two amounts are numerically equal ("1.0" equals "1").
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}
