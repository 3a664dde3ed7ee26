package entities

import (
	"testing"

	"github.com/Haleralex/branchledger/internal/domain/errors"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
)

func mustID(t *testing.T, s string) valueobjects.Identifier {
	t.Helper()
	id, err := valueobjects.ParseIdentifier(s)
	if err != nil {
		t.Fatalf("ParseIdentifier(%q): %v", s, err)
	}
	return id
}

func johnDoe() valueobjects.Profile {
	return valueobjects.NewProfile("John", "Doe", valueobjects.NewDate(5, 7, 1995))
}

func newTestAccount(t *testing.T, id, balance string) *Account {
	t.Helper()
	acc, err := NewAccount(mustID(t, id), johnDoe(), valueobjects.MustNewMoney(balance))
	if err != nil {
		t.Fatalf("NewAccount() error = %v", err)
	}
	return acc
}

// TestNewAccount_Success tests successful account creation
func TestNewAccount_Success(t *testing.T) {
	acc := newTestAccount(t, "100011234", "600")

	if acc.ID().String() != "100011234" {
		t.Errorf("ID = %s, want 100011234", acc.ID())
	}
	if !acc.Holder().Equals(johnDoe()) {
		t.Errorf("Holder = %s", acc.Holder())
	}
	if acc.Balance().String() != "600.00" {
		t.Errorf("Balance = %s, want 600.00", acc.Balance())
	}
	if acc.AccountType() != valueobjects.Checking {
		t.Errorf("AccountType = %v, want CHECKING", acc.AccountType())
	}
	if !acc.Branch().Equals(valueobjects.Edison) {
		t.Errorf("Branch = %v, want EDISON", acc.Branch())
	}
}

func TestNewAccount_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      valueobjects.Identifier
		opening valueobjects.Money
	}{
		{"Missing identifier", valueobjects.Identifier{}, valueobjects.MustNewMoney("10")},
		{"Zero opening balance", mustID(t, "100011234"), valueobjects.Zero()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAccount(tt.id, johnDoe(), tt.opening)
			if !errors.IsValidationError(err) {
				t.Errorf("NewAccount() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestAccount_Deposit(t *testing.T) {
	tests := []struct {
		name   string
		amount valueobjects.Money
		want   string
	}{
		{"Positive amount", valueobjects.MustNewMoney("100"), "700.00"},
		{"Zero is ignored", valueobjects.Zero(), "600.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newTestAccount(t, "100011234", "600")
			acc.Deposit(tt.amount)
			if acc.Balance().String() != tt.want {
				t.Errorf("Balance = %s, want %s", acc.Balance(), tt.want)
			}
		})
	}
}

// TestAccount_Withdraw tests that the balance never goes below zero.
func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantOK  bool
		balance string
	}{
		{"Partial", "200", true, "500.00"},
		{"Whole balance", "700", true, "0.00"},
		{"More than balance", "750", false, "700.00"},
		{"Zero", "0", false, "700.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newTestAccount(t, "100011234", "700")
			amount := valueobjects.MustNewMoney(tt.amount)

			if got := acc.CanWithdraw(amount); got != tt.wantOK {
				t.Errorf("CanWithdraw(%s) = %v, want %v", tt.amount, got, tt.wantOK)
			}
			acc.Withdraw(amount)
			if acc.Balance().String() != tt.balance {
				t.Errorf("Balance = %s, want %s", acc.Balance(), tt.balance)
			}
		})
	}
}

// TestAccount_DowngradeIfBelowMinimum tests the money market minimum balance rule.
func TestAccount_DowngradeIfBelowMinimum(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		balance   string
		wantDown  bool
		wantIDStr string
	}{
		{"Money market below 2000", "300035555", "1900", true, "300025555"},
		{"Money market at 2000", "300035555", "2000", false, "300035555"},
		{"Money market above 2000", "300035555", "2500", false, "300035555"},
		{"Checking below 2000", "300015555", "10", false, "300015555"},
		{"Savings below 2000", "300025555", "10", false, "300025555"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newTestAccount(t, tt.id, tt.balance)

			if got := acc.DowngradeIfBelowMinimum(); got != tt.wantDown {
				t.Errorf("DowngradeIfBelowMinimum() = %v, want %v", got, tt.wantDown)
			}
			if acc.ID().String() != tt.wantIDStr {
				t.Errorf("ID = %s, want %s", acc.ID(), tt.wantIDStr)
			}
		})
	}
}

func TestAccount_EqualityByIdentifier(t *testing.T) {
	a := newTestAccount(t, "100011234", "600")
	b, _ := NewAccount(mustID(t, "100011234"),
		valueobjects.NewProfile("Jane", "Roe", valueobjects.NewDate(1, 1, 1980)),
		valueobjects.MustNewMoney("5"))
	c := newTestAccount(t, "100019999", "600")

	if !a.Equals(b) {
		t.Error("accounts with the same identifier should be equal")
	}
	if a.Equals(c) {
		t.Error("accounts with different identifiers should differ")
	}
	if a.Compare(c) >= 0 {
		t.Error("Compare should follow the identifier")
	}
}

func TestAccount_Snapshot(t *testing.T) {
	acc := newTestAccount(t, "100011234", "600")
	snap := acc.Snapshot()

	acc.Deposit(valueobjects.MustNewMoney("100"))

	if snap.Balance().String() != "600.00" {
		t.Errorf("snapshot balance changed to %s", snap.Balance())
	}
}

func TestAccount_String(t *testing.T) {
	acc := newTestAccount(t, "100011234", "600")

	want := "Account#[100011234] Holder[John Doe 5/7/1995] Balance[$600.00] Branch [EDISON]"
	if acc.String() != want {
		t.Errorf("String() = %q\nwant %q", acc.String(), want)
	}
}
