package transaction

import "time"

// NewTransaction is the request body for creating a transaction.
type NewTransaction struct {
	GroupID         string     `json:"group_id" validate:"required,uuid"`
	CategoryID      *string    `json:"category_id,omitempty" validate:"omitempty,uuid"`
	BankAccountID   *string    `json:"bank_account_id,omitempty" validate:"omitempty,uuid"`
	CreditCardID    *string    `json:"credit_card_id,omitempty" validate:"omitempty,uuid"`
	PaymentMethodID *string    `json:"payment_method_id,omitempty" validate:"omitempty,uuid"`
	Description     string     `json:"description" validate:"required,max=255"`
	Amount          float64    `json:"amount" validate:"gte=0"`
	Type            string     `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED PARTIALLY_PAID"`
	IsPaid          bool       `json:"is_paid"`
	TransactionDate *time.Time `json:"transaction_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

// UpdateTransactionInput is the request body for transaction updates.
type UpdateTransactionInput struct {
	CategoryID      *string    `json:"category_id,omitempty" validate:"omitempty,uuid"`
	BankAccountID   *string    `json:"bank_account_id,omitempty" validate:"omitempty,uuid"`
	CreditCardID    *string    `json:"credit_card_id,omitempty" validate:"omitempty,uuid"`
	PaymentMethodID *string    `json:"payment_method_id,omitempty" validate:"omitempty,uuid"`
	Description     *string    `json:"description,omitempty" validate:"omitempty,max=255"`
	Amount          *float64   `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING PAID OVERDUE CANCELLED PARTIALLY_PAID"`
	TransactionDate *time.Time `json:"transaction_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}
