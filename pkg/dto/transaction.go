package dto

import (
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/google/uuid"
)

// TransactionCreate represents the data needed to persist a new transaction.
type TransactionCreate struct {
	ID              uuid.UUID          `json:"id"`
	GroupID         uuid.UUID          `json:"group_id"`
	CategoryID      *uuid.UUID         `json:"category_id,omitempty"`
	BankAccountID   *uuid.UUID         `json:"bank_account_id,omitempty"`
	CreditCardID    *uuid.UUID         `json:"credit_card_id,omitempty"`
	PaymentMethodID *uuid.UUID         `json:"payment_method_id,omitempty"`
	CreatedByID     uuid.UUID          `json:"created_by_id"`
	Description     string             `json:"description"`
	Amount          float64            `json:"amount"`
	Type            transaction.Type   `json:"type"`
	Status          transaction.Status `json:"status"`
	IsPaid          bool               `json:"is_paid"`
	TransactionDate time.Time          `json:"transaction_date"`
	DueDate         *time.Time         `json:"due_date,omitempty"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
}

// TransactionUpdate represents the mutable fields of a transaction.
type TransactionUpdate struct {
	CategoryID      *uuid.UUID          `json:"category_id,omitempty"`
	BankAccountID   *uuid.UUID          `json:"bank_account_id,omitempty"`
	CreditCardID    *uuid.UUID          `json:"credit_card_id,omitempty"`
	PaymentMethodID *uuid.UUID          `json:"payment_method_id,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Amount          *float64            `json:"amount,omitempty"`
	Status          *transaction.Status `json:"status,omitempty"`
	TransactionDate *time.Time          `json:"transaction_date,omitempty"`
	DueDate         *time.Time          `json:"due_date,omitempty"`
}

// TransactionRead is a read view with related display names attached, so
// report builders never re-join per row.
type TransactionRead struct {
	ID              uuid.UUID          `json:"id"`
	GroupID         uuid.UUID          `json:"group_id"`
	GroupName       string             `json:"group_name"`
	CategoryID      *uuid.UUID         `json:"category_id,omitempty"`
	CategoryName    string             `json:"category_name,omitempty"`
	BankAccountID   *uuid.UUID         `json:"bank_account_id,omitempty"`
	BankAccountName string             `json:"bank_account_name,omitempty"`
	CreditCardID    *uuid.UUID         `json:"credit_card_id,omitempty"`
	CreditCardName  string             `json:"credit_card_name,omitempty"`
	CreditCardLast4 string             `json:"credit_card_last4,omitempty"`
	PaymentMethodID *uuid.UUID         `json:"payment_method_id,omitempty"`
	CreatedByID     uuid.UUID          `json:"created_by_id"`
	CreatedByName   string             `json:"created_by_name,omitempty"`
	Description     string             `json:"description"`
	Amount          float64            `json:"amount"`
	Type            transaction.Type   `json:"type"`
	Status          transaction.Status `json:"status"`
	IsPaid          bool               `json:"is_paid"`
	TransactionDate time.Time          `json:"transaction_date"`
	DueDate         *time.Time         `json:"due_date,omitempty"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// TransactionFilter narrows transaction listings. Nil fields are ignored.
type TransactionFilter struct {
	GroupIDs      []uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
	CategoryID    *uuid.UUID
	BankAccountID *uuid.UUID
	CreditCardID  *uuid.UUID
	Type          *transaction.Type
	Statuses      []transaction.Status
	IsPaid        *bool
	// UnlinkedOnly selects transactions with neither a bank account nor a
	// credit card attached (the group-balance predicate).
	UnlinkedOnly bool
	// WithoutCreditCard selects transactions with no credit card attached
	// (the bank real-balance predicate).
	WithoutCreditCard bool
}
