package dto

import (
	"time"

	"github.com/google/uuid"
)

// CardType discriminates how a card can be used.
type CardType string

const (
	CardTypeCredit CardType = "CREDIT"
	CardTypeDebit  CardType = "DEBIT"
	CardTypeBoth   CardType = "BOTH"
)

// CreditCardCreate represents the data needed to register a card.
type CreditCardCreate struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Last4Digits string    `json:"last_4_digits" validate:"required,len=4,numeric"`
	Brand       string    `json:"brand" validate:"required,min=1,max=50"`
	Type        CardType  `json:"type"`
	CreditLimit *float64  `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	ClosingDay  *int      `json:"closing_day,omitempty" validate:"omitempty,min=1,max=31"`
	DueDay      *int      `json:"due_day,omitempty" validate:"omitempty,min=1,max=31"`
}

// CreditCardUpdate represents the mutable fields of a card.
type CreditCardUpdate struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	CreditLimit *float64 `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	ClosingDay  *int     `json:"closing_day,omitempty" validate:"omitempty,min=1,max=31"`
	DueDay      *int     `json:"due_day,omitempty" validate:"omitempty,min=1,max=31"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// CreditCardRead represents a read-optimized view of a card. Debt is derived,
// never stored.
type CreditCardRead struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Last4Digits string    `json:"last_4_digits"`
	Brand       string    `json:"brand"`
	Type        CardType  `json:"type"`
	CreditLimit *float64  `json:"credit_limit,omitempty"`
	ClosingDay  *int      `json:"closing_day,omitempty"`
	DueDay      *int      `json:"due_day,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayName renders the card's report label: name plus masked digits.
func (c *CreditCardRead) DisplayName() string {
	return c.Name + " (**** " + c.Last4Digits + ")"
}
