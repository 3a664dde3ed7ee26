// Package events defines domain events that represent significant ledger occurrences.
// Events are immutable facts about what happened in the past.
//
// SOLID Principles:
// - SRP: Each event type represents one business occurrence
// - OCP: New events can be added without modifying existing code
// - ISP: Event consumers only handle events they care about
//
// Pattern: Domain Events (Observer Pattern foundation)
// - Events are raised by use cases after the store changes
// - Publishers fan them out to logs, metrics and the message bus
package events

import (
	"time"

	"github.com/Haleralex/branchledger/internal/domain/entities"
	"github.com/google/uuid"
)

// DomainEvent is the base interface for all domain events.
// All events must have an ID, timestamp, and type.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() string // account identifier the event is about
}

// BaseEvent provides common fields for all events.
// Embedded in specific event types to avoid duplication (DRY).
type BaseEvent struct {
	eventID     uuid.UUID
	eventType   string
	occurredAt  time.Time
	aggregateID string
}

func newBaseEvent(eventType string, aggregateID string) BaseEvent {
	return BaseEvent{
		eventID:     uuid.New(),
		eventType:   eventType,
		occurredAt:  time.Now(),
		aggregateID: aggregateID,
	}
}

func (e BaseEvent) EventID() uuid.UUID {
	return e.eventID
}

func (e BaseEvent) EventType() string {
	return e.eventType
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

func (e BaseEvent) AggregateID() string {
	return e.aggregateID
}

// Event Types (constants for type checking)
const (
	EventTypeAccountOpened     = "account.opened"
	EventTypeAccountClosed     = "account.closed"
	EventTypeFundsDeposited    = "account.deposited"
	EventTypeFundsWithdrawn    = "account.withdrawn"
	EventTypeAccountDowngraded = "account.downgraded"
)

// ClosedBy tells how an account was selected for closing.
type ClosedBy string

const (
	ClosedByIdentifier ClosedBy = "identifier"
	ClosedByHolder     ClosedBy = "holder"
)

// ===== Account Events =====

// AccountOpened is raised when an account is added to the store.
type AccountOpened struct {
	BaseEvent
	Holder         string `json:"holder"`
	AccountType    string `json:"account_type"`
	Branch         string `json:"branch"`
	InitialDeposit string `json:"initial_deposit"`
}

func NewAccountOpened(acc *entities.Account) *AccountOpened {
	return &AccountOpened{
		BaseEvent:      newBaseEvent(EventTypeAccountOpened, acc.ID().String()),
		Holder:         acc.Holder().String(),
		AccountType:    acc.AccountType().String(),
		Branch:         acc.Branch().Name(),
		InitialDeposit: acc.Balance().String(),
	}
}

// AccountClosed is raised once per account moved to the archive.
type AccountClosed struct {
	BaseEvent
	Holder       string   `json:"holder"`
	AccountType  string   `json:"account_type"`
	ClosingFunds string   `json:"closing_balance"`
	ClosedBy     ClosedBy `json:"closed_by"`
}

func NewAccountClosed(acc *entities.Account, by ClosedBy) *AccountClosed {
	return &AccountClosed{
		BaseEvent:    newBaseEvent(EventTypeAccountClosed, acc.ID().String()),
		Holder:       acc.Holder().String(),
		AccountType:  acc.AccountType().String(),
		ClosingFunds: acc.Balance().String(),
		ClosedBy:     by,
	}
}

// FundsDeposited is raised after a successful deposit.
type FundsDeposited struct {
	BaseEvent
	AccountType string `json:"account_type"`
	Amount      string `json:"amount"`
	NewBalance  string `json:"new_balance"`
}

func NewFundsDeposited(acc *entities.Account, amount string) *FundsDeposited {
	return &FundsDeposited{
		BaseEvent:   newBaseEvent(EventTypeFundsDeposited, acc.ID().String()),
		AccountType: acc.AccountType().String(),
		Amount:      amount,
		NewBalance:  acc.Balance().String(),
	}
}

// FundsWithdrawn is raised after a successful withdrawal, before any downgrade.
type FundsWithdrawn struct {
	BaseEvent
	AccountType string `json:"account_type"`
	Amount      string `json:"amount"`
	NewBalance  string `json:"new_balance"`
}

func NewFundsWithdrawn(acc *entities.Account, amount string) *FundsWithdrawn {
	return &FundsWithdrawn{
		BaseEvent:   newBaseEvent(EventTypeFundsWithdrawn, acc.ID().String()),
		AccountType: acc.AccountType().String(),
		Amount:      amount,
		NewBalance:  acc.Balance().String(),
	}
}

// AccountDowngraded is raised when a money market account falls under the
// minimum balance and becomes a savings account. AggregateID is the new
// identifier; PreviousID is the one the account had before.
type AccountDowngraded struct {
	BaseEvent
	PreviousID string `json:"previous_id"`
	Balance    string `json:"balance"`
}

func NewAccountDowngraded(previousID string, acc *entities.Account) *AccountDowngraded {
	return &AccountDowngraded{
		BaseEvent:  newBaseEvent(EventTypeAccountDowngraded, acc.ID().String()),
		PreviousID: previousID,
		Balance:    acc.Balance().String(),
	}
}
