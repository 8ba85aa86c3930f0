// Package transaction models income and expense entries. Amounts are always
// non-negative; the sign of a transaction's effect on a balance is implied by
// its type.
package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Status is the payment lifecycle state.
type Status string

const (
	StatusPending       Status = "PENDING"
	StatusPaid          Status = "PAID"
	StatusOverdue       Status = "OVERDUE"
	StatusCancelled     Status = "CANCELLED"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
)

// CardDebtStatuses are the statuses that count toward a credit card's current
// debt. Cancelled and partially paid entries are excluded from debt math;
// this predicate is intentionally different from the bank real-balance
// predicate (is_paid only).
var CardDebtStatuses = []Status{StatusPending, StatusPaid}

// CardDebtWindow is the fixed trailing window approximating an open billing
// cycle when computing card debt.
const CardDebtWindow = 40 * 24 * time.Hour

var (
	// ErrTransactionNotFound is returned when a transaction cannot be found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrNegativeAmount is returned for amounts below zero.
	ErrNegativeAmount = errors.New("transaction amount must be non-negative")
	// ErrInvalidType is returned for a type outside INCOME/EXPENSE.
	ErrInvalidType = errors.New("invalid transaction type")
	// ErrInvalidStatus is returned for an unknown payment status.
	ErrInvalidStatus = errors.New("invalid transaction status")
	// ErrAccountCardExclusive is returned when both a bank account and a
	// credit card are linked to the same transaction.
	ErrAccountCardExclusive = errors.New("bank account and credit card are mutually exclusive")
	// ErrAlreadyPaid is returned when paying a transaction twice.
	ErrAlreadyPaid = errors.New("transaction already paid")
)

// Transaction represents an income or expense entry inside a group.
type Transaction struct {
	ID              uuid.UUID  `json:"id"`
	GroupID         uuid.UUID  `json:"group_id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	BankAccountID   *uuid.UUID `json:"bank_account_id,omitempty"`
	CreditCardID    *uuid.UUID `json:"credit_card_id,omitempty"`
	PaymentMethodID *uuid.UUID `json:"payment_method_id,omitempty"`
	CreatedByID     uuid.UUID  `json:"created_by_id"`
	Description     string     `json:"description"`
	Amount          float64    `json:"amount"`
	Type            Type       `json:"type"`
	Status          Status     `json:"status"`
	IsPaid          bool       `json:"is_paid"`
	TransactionDate time.Time  `json:"transaction_date"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created"`
	UpdatedAt       time.Time  `json:"updated"`
}

// Validate checks the structural invariants of a transaction.
func (t *Transaction) Validate() error {
	if t.Amount < 0 {
		return ErrNegativeAmount
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return ErrInvalidType
	}
	switch t.Status {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled, StatusPartiallyPaid:
	default:
		return ErrInvalidStatus
	}
	if t.BankAccountID != nil && t.CreditCardID != nil {
		return ErrAccountCardExclusive
	}
	return nil
}

// SignedAmount returns the amount with the sign implied by the type: positive
// for income, negative for expense.
func (t *Transaction) SignedAmount() float64 {
	if t.Type == TypeExpense {
		return -t.Amount
	}
	return t.Amount
}

// IsOverdue reports whether the transaction is unpaid with a due date
// strictly before now.
func (t *Transaction) IsOverdue(now time.Time) bool {
	return !t.IsPaid && t.DueDate != nil && t.DueDate.Before(now)
}
