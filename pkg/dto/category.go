package dto

import (
	"time"

	"github.com/google/uuid"
)

// CategoryCreate represents the data needed to create a financial category.
type CategoryCreate struct {
	ID      uuid.UUID `json:"id"`
	GroupID uuid.UUID `json:"group_id"`
	Name    string    `json:"name" validate:"required,min=1,max=100"`
}

// CategoryUpdate represents the mutable fields of a category.
type CategoryUpdate struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

// CategoryRead represents a read-optimized view of a category.
type CategoryRead struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
