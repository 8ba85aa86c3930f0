package dto

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethodCreate represents the data needed to create a payment method.
// Payment methods are informational tags; they never affect balance math.
type PaymentMethodCreate struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Type        string    `json:"type" validate:"required,min=1,max=50"`
	Description string    `json:"description,omitempty" validate:"max=500"`
}

// PaymentMethodUpdate represents the mutable fields of a payment method.
type PaymentMethodUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Type        *string `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// PaymentMethodRead represents a read-optimized view of a payment method.
type PaymentMethodRead struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
