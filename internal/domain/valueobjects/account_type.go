package valueobjects

import (
	"errors"
	"strings"
)

// AccountType is the kind of account. The numeric value is the declaration
// order, which reports use as the primary key when ordering by type.
type AccountType int

const (
	Checking AccountType = iota + 1
	Savings
	MoneyMarket
)

// ErrUnknownAccountType is returned for unrecognized type names or codes.
var ErrUnknownAccountType = errors.New("unknown account type")

var accountTypeCodes = map[AccountType]string{
	Checking:    "01",
	Savings:     "02",
	MoneyMarket: "03",
}

var accountTypeNames = map[AccountType]string{
	Checking:    "CHECKING",
	Savings:     "SAVINGS",
	MoneyMarket: "MONEY_MARKET",
}

// ParseAccountType resolves a type token from the command line.
// Accepts CHECKING, SAVINGS, MONEYMARKET and MONEY_MARKET in any case.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CHECKING":
		return Checking, nil
	case "SAVINGS":
		return Savings, nil
	case "MONEYMARKET", "MONEY_MARKET":
		return MoneyMarket, nil
	default:
		return 0, ErrUnknownAccountType
	}
}

// AccountTypeByCode resolves the 2-digit code used inside identifiers.
func AccountTypeByCode(code string) (AccountType, error) {
	for t, c := range accountTypeCodes {
		if c == code {
			return t, nil
		}
	}
	return 0, ErrUnknownAccountType
}

// AccountTypes returns all types in declaration order.
func AccountTypes() []AccountType {
	return []AccountType{Checking, Savings, MoneyMarket}
}

// IsValid checks if the account type is one of the declared constants.
func (t AccountType) IsValid() bool {
	_, ok := accountTypeCodes[t]
	return ok
}

// Code returns the 2-digit identifier code, or "" for an invalid type.
func (t AccountType) Code() string {
	return accountTypeCodes[t]
}

// Compare orders types by declaration: CHECKING < SAVINGS < MONEY_MARKET.
func (t AccountType) Compare(other AccountType) int {
	switch {
	case t < other:
		return -1
	case t > other:
		return 1
	default:
		return 0
	}
}

// String returns the upper-case type name, e.g. "MONEY_MARKET".
func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}
