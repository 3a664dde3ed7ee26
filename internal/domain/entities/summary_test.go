package entities

import (
	"testing"

	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

func mustAccount(t *testing.T, id string, holder valueobjects.Profile, balance string) *Account {
	t.Helper()
	acc, err := NewAccount(mustID(t, id), holder, valueobjects.MustNewMoney(balance))
	if err != nil {
		t.Fatalf("NewAccount(%s): %v", id, err)
	}
	return acc
}

func TestSummarize(t *testing.T) {
	john := valueobjects.NewProfile("John", "Doe", valueobjects.NewDate(5, 7, 1995))
	jane := valueobjects.NewProfile("Jane", "Roe", valueobjects.NewDate(1, 2, 1980))

	accounts := []*Account{
		mustAccount(t, "100011000", john, "600"),
		mustAccount(t, "200012222", jane, "150.50"),
		mustAccount(t, "300035555", john, "2500"),
	}

	s := Summarize(accounts)

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if got := s.Balance.String(); got != "3250.50" {
		t.Errorf("Balance = %s, want 3250.50", got)
	}
	if len(s.ByType) != 3 {
		t.Fatalf("ByType has %d entries, want 3", len(s.ByType))
	}

	tests := []struct {
		accountType valueobjects.AccountType
		count       int
		balance     string
	}{
		{valueobjects.Checking, 2, "750.50"},
		{valueobjects.Savings, 0, "0.00"},
		{valueobjects.MoneyMarket, 1, "2500.00"},
	}

	for i, tt := range tests {
		got := s.ByType[i]
		if got.AccountType != tt.accountType {
			t.Errorf("ByType[%d].AccountType = %v, want %v", i, got.AccountType, tt.accountType)
		}
		if got.Count != tt.count {
			t.Errorf("%v count = %d, want %d", tt.accountType, got.Count, tt.count)
		}
		if got.Balance.String() != tt.balance {
			t.Errorf("%v balance = %s, want %s", tt.accountType, got.Balance, tt.balance)
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	if s.Count != 0 || !s.Balance.IsZero() {
		t.Errorf("empty summary = %+v", s)
	}
	if len(s.ByType) != 3 {
		t.Errorf("ByType has %d entries, want 3", len(s.ByType))
	}
}

func TestHolderAccounts(t *testing.T) {
	john := valueobjects.NewProfile("John", "Doe", valueobjects.NewDate(5, 7, 1995))
	jane := valueobjects.NewProfile("Jane", "Roe", valueobjects.NewDate(1, 2, 1980))

	accounts := []*Account{
		mustAccount(t, "100011000", john, "600"),
		mustAccount(t, "200012222", jane, "150"),
		mustAccount(t, "300035555", john, "2500"),
	}

	got := HolderAccounts(accounts, valueobjects.NewProfile("JOHN", "doe", valueobjects.NewDate(5, 7, 1995)))
	if len(got) != 2 || got[0].ID().String() != "100011000" || got[1].ID().String() != "300035555" {
		t.Errorf("HolderAccounts returned %v", got)
	}
}
