package events

import (
	"testing"
	"time"

	"github.com/Haleralex/branchledger/internal/domain/entities"
	"github.com/Haleralex/branchledger/internal/domain/valueobjects"
	"github.com/google/uuid"
)

func testAccount(t *testing.T, id, balance string) *entities.Account {
	t.Helper()
	ident, err := valueobjects.ParseIdentifier(id)
	if err != nil {
		t.Fatalf("ParseIdentifier(%q): %v", id, err)
	}
	holder := valueobjects.NewProfile("John", "Doe", valueobjects.NewDate(5, 7, 1995))
	acc, err := entities.NewAccount(ident, holder, valueobjects.MustNewMoney(balance))
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	return acc
}

// TestBaseEvent tests base event functionality
func TestBaseEvent(t *testing.T) {
	event := newBaseEvent("test.event", "100011234")

	if event.EventID() == uuid.Nil {
		t.Error("EventID should not be nil")
	}

	if event.EventType() != "test.event" {
		t.Errorf("EventType = %q, want %q", event.EventType(), "test.event")
	}

	if event.AggregateID() != "100011234" {
		t.Errorf("AggregateID = %q, want 100011234", event.AggregateID())
	}

	if time.Since(event.OccurredAt()) > 1*time.Second {
		t.Error("OccurredAt should be recent")
	}
}

func TestAccountEvents(t *testing.T) {
	acc := testAccount(t, "300031111", "2500")

	tests := []struct {
		name      string
		event     DomainEvent
		eventType string
	}{
		{"opened", NewAccountOpened(acc), EventTypeAccountOpened},
		{"closed", NewAccountClosed(acc, ClosedByHolder), EventTypeAccountClosed},
		{"deposited", NewFundsDeposited(acc, "100.00"), EventTypeFundsDeposited},
		{"withdrawn", NewFundsWithdrawn(acc, "600.00"), EventTypeFundsWithdrawn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.EventType() != tt.eventType {
				t.Errorf("EventType = %q, want %q", tt.event.EventType(), tt.eventType)
			}
			if tt.event.AggregateID() != "300031111" {
				t.Errorf("AggregateID = %q", tt.event.AggregateID())
			}
		})
	}

	opened := NewAccountOpened(acc)
	if opened.AccountType != "MONEY_MARKET" || opened.Branch != "PRINCETON" || opened.InitialDeposit != "2500.00" {
		t.Errorf("AccountOpened payload = %+v", opened)
	}
	closed := NewAccountClosed(acc, ClosedByIdentifier)
	if closed.ClosedBy != ClosedByIdentifier || closed.ClosingFunds != "2500.00" {
		t.Errorf("AccountClosed payload = %+v", closed)
	}
}

func TestNewAccountDowngraded(t *testing.T) {
	acc := testAccount(t, "300031111", "1900")
	previous := acc.ID().String()
	acc.DowngradeIfBelowMinimum()

	event := NewAccountDowngraded(previous, acc)

	if event.AggregateID() != "300021111" {
		t.Errorf("AggregateID = %q, want the new identifier", event.AggregateID())
	}
	if event.PreviousID != "300031111" {
		t.Errorf("PreviousID = %q", event.PreviousID)
	}
	if event.Balance != "1900.00" {
		t.Errorf("Balance = %q", event.Balance)
	}
}
