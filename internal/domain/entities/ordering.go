package entities

import (
	"fmt"
	"strings"
)

// AccountOrder selects how reports order live accounts.
type AccountOrder string

const (
	OrderNone     AccountOrder = "none"   // store order, no sorting
	OrderByBranch AccountOrder = "branch" // county, branch name, identifier
	OrderByHolder AccountOrder = "holder" // holder (last, first, dob), identifier
	OrderByType   AccountOrder = "type"   // type declaration order, identifier
)

// ParseAccountOrder reads an order name; empty means OrderNone.
func ParseAccountOrder(s string) (AccountOrder, error) {
	switch o := AccountOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderNone, nil
	case OrderNone, OrderByBranch, OrderByHolder, OrderByType:
		return o, nil
	default:
		return "", fmt.Errorf("unknown account order %q", s)
	}
}

// IsValid checks if the order is one of the declared constants.
func (o AccountOrder) IsValid() bool {
	switch o {
	case OrderNone, OrderByBranch, OrderByHolder, OrderByType:
		return true
	default:
		return false
	}
}

// Compare returns the ordering of a and b under o. Every order ends with the
// identifier, so only the same account compares equal. OrderNone compares
// everything as equal.
func (o AccountOrder) Compare(a, b *Account) int {
	switch o {
	case OrderByBranch:
		if c := strings.Compare(a.Branch().County(), b.Branch().County()); c != 0 {
			return c
		}
		if c := strings.Compare(a.Branch().Name(), b.Branch().Name()); c != 0 {
			return c
		}
	case OrderByHolder:
		if c := a.Holder().Compare(b.Holder()); c != 0 {
			return c
		}
	case OrderByType:
		if c := a.AccountType().Compare(b.AccountType()); c != 0 {
			return c
		}
	default:
		return 0
	}
	return a.Compare(b)
}

