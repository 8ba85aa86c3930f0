// Package events defines the notification events emitted by the write paths.
// Subscribers receive them through the injected event bus.
package events

import (
	"time"

	"github.com/google/uuid"
)

// TransactionCreated is emitted after a transaction is persisted.
type TransactionCreated struct {
	TransactionID uuid.UUID
	GroupID       uuid.UUID
	CreatedByID   uuid.UUID
	Amount        float64
	OccurredAt    time.Time
}

// Type implements common.Event.
func (TransactionCreated) Type() string { return "TransactionCreated" }

// TransactionPaid is emitted after a transaction is marked paid and any
// linked bank balance delta has been applied.
type TransactionPaid struct {
	TransactionID uuid.UUID
	GroupID       uuid.UUID
	BankAccountID *uuid.UUID
	Amount        float64
	PaidAt        time.Time
}

// Type implements common.Event.
func (TransactionPaid) Type() string { return "TransactionPaid" }

// BankAccountChanged is emitted when a bank account is created, updated or
// removed. The owner's balance snapshot depends on the stored balance.
type BankAccountChanged struct {
	AccountID  uuid.UUID
	UserID     uuid.UUID
	OccurredAt time.Time
}

// Type implements common.Event.
func (BankAccountChanged) Type() string { return "BankAccountChanged" }

// CreditCardChanged is emitted when a credit card is created, updated or
// removed.
type CreditCardChanged struct {
	CardID     uuid.UUID
	UserID     uuid.UUID
	OccurredAt time.Time
}

// Type implements common.Event.
func (CreditCardChanged) Type() string { return "CreditCardChanged" }

// GroupMemberAdded is emitted when a user is added to a collaborative group.
type GroupMemberAdded struct {
	GroupID    uuid.UUID
	UserID     uuid.UUID
	AddedByID  uuid.UUID
	OccurredAt time.Time
}

// Type implements common.Event.
func (GroupMemberAdded) Type() string { return "GroupMemberAdded" }
