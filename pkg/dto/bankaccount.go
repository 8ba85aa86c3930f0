package dto

import (
	"time"

	"github.com/google/uuid"
)

// BankAccountCreate represents the data needed to create a bank account.
type BankAccountCreate struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name" validate:"required,min=1,max=100"`
	Bank    string    `json:"bank" validate:"required,min=1,max=100"`
	Balance float64   `json:"balance"`
}

// BankAccountUpdate represents the mutable fields of a bank account.
type BankAccountUpdate struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Bank     *string  `json:"bank,omitempty" validate:"omitempty,min=1,max=100"`
	Balance  *float64 `json:"balance,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// BankAccountRead represents a read-optimized view of a bank account.
// Balance is the stored running balance; the realized balance including paid
// transactions is computed by the balance aggregator.
type BankAccountRead struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Bank      string    `json:"bank"`
	Balance   float64   `json:"balance"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
