// Package entities - Account is the core entity of the ledger.
// It holds a balance for one holder and enforces the non-negative balance rule.
package entities

import (
	"fmt"

	"github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// MoneyMarketMinimum is the balance below which a money market account is
// downgraded to savings after a withdrawal.
var MoneyMarketMinimum = valueobjects.MustNewMoney("2000")

// Account represents a live account in the store.
//
// Entity Pattern:
// - Has identity (Identifier); holder and balance are not part of equality
// - Enforces invariants (balance >= 0)
// - Rich behavior (deposit, withdraw, downgrade)
type Account struct {
	id      valueobjects.Identifier
	holder  valueobjects.Profile
	balance valueobjects.Money
}

// NewAccount creates an account with an opening balance.
//
// Business Rules:
// - Identifier must be set
// - Opening balance must be positive (checked again here, first by the use case)
func NewAccount(id valueobjects.Identifier, holder valueobjects.Profile, opening valueobjects.Money) (*Account, error) {
	if id.IsZero() {
		return nil, errors.ValidationError{
			Field:   "identifier",
			Message: "identifier is required",
		}
	}
	if !opening.IsPositive() {
		return nil, errors.ValidationError{
			Field:   "balance",
			Message: "opening balance must be greater than zero",
		}
	}

	return &Account{
		id:      id,
		holder:  holder,
		balance: opening,
	}, nil
}

// Getters

func (a *Account) ID() valueobjects.Identifier {
	return a.id
}

func (a *Account) Holder() valueobjects.Profile {
	return a.holder
}

func (a *Account) Balance() valueobjects.Money {
	return a.balance
}

func (a *Account) AccountType() valueobjects.AccountType {
	return a.id.AccountType()
}

func (a *Account) Branch() valueobjects.Branch {
	return a.id.Branch()
}

// Business Operations

// Deposit adds amount to the balance. Non-positive amounts are ignored.
func (a *Account) Deposit(amount valueobjects.Money) {
	if !amount.IsPositive() {
		return
	}
	a.balance = a.balance.Add(amount)
}

// CanWithdraw reports whether Withdraw(amount) would change the balance.
func (a *Account) CanWithdraw(amount valueobjects.Money) bool {
	return amount.IsPositive() && a.balance.GreaterThanOrEqual(amount)
}

// Withdraw subtracts amount when 0 < amount <= balance; otherwise it is a
// no-op. Callers that need to tell the cases apart use CanWithdraw first.
func (a *Account) Withdraw(amount valueobjects.Money) {
	if !a.CanWithdraw(amount) {
		return
	}
	rest, err := a.balance.Subtract(amount)
	if err != nil {
		return
	}
	a.balance = rest
}

// DowngradeIfBelowMinimum turns a money market account into a savings
// account when its balance is under MoneyMarketMinimum. Branch and serial of
// the identifier are kept. Returns true if the type changed.
func (a *Account) DowngradeIfBelowMinimum() bool {
	if a.id.AccountType() != valueobjects.MoneyMarket {
		return false
	}
	if !a.balance.LessThan(MoneyMarketMinimum) {
		return false
	}
	a.id.OverrideType(valueobjects.Savings)
	return true
}

// Equals compares accounts by identifier only.
func (a *Account) Equals(other *Account) bool {
	return a.id.Equals(other.id)
}

// Compare orders accounts by identifier.
func (a *Account) Compare(other *Account) int {
	return a.id.Compare(other.id)
}

// Snapshot returns an independent copy, used for archive entries.
func (a *Account) Snapshot() *Account {
	c := *a
	return &c
}

// String renders the account the way reports print it.
func (a *Account) String() string {
	return fmt.Sprintf("Account#[%s] Holder[%s] Balance[$%s] Branch [%s]",
		a.id, a.holder, a.balance, a.id.Branch().Name())
}
