package entities

import (
	"github.com/samber/lo"

	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

// TypeTotals is the number of accounts of one type and their combined balance.
type TypeTotals struct {
	AccountType valueobjects.AccountType
	Count       int
	Balance     valueobjects.Money
}

// Summary aggregates a set of accounts per account type and overall.
// ByType always lists every account type in declaration order, empty ones included.
type Summary struct {
	ByType  []TypeTotals
	Count   int
	Balance valueobjects.Money
}

// Summarize builds a Summary over accounts.
func Summarize(accounts []*Account) Summary {
	byType := lo.GroupBy(accounts, func(a *Account) valueobjects.AccountType {
		return a.AccountType()
	})

	totals := lo.Map(valueobjects.AccountTypes(), func(t valueobjects.AccountType, _ int) TypeTotals {
		group := byType[t]
		return TypeTotals{
			AccountType: t,
			Count:       len(group),
			Balance:     sumBalances(group),
		}
	})

	return Summary{
		ByType:  totals,
		Count:   len(accounts),
		Balance: sumBalances(accounts),
	}
}

func sumBalances(accounts []*Account) valueobjects.Money {
	return lo.Reduce(accounts, func(total valueobjects.Money, a *Account, _ int) valueobjects.Money {
		return total.Add(a.Balance())
	}, valueobjects.Zero())
}

// HolderAccounts returns the accounts owned by holder, in input order.
func HolderAccounts(accounts []*Account, holder valueobjects.Profile) []*Account {
	return lo.Filter(accounts, func(a *Account, _ int) bool {
		return a.Holder().Equals(holder)
	})
}
