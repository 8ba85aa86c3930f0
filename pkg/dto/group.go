package dto

import (
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/google/uuid"
)

// GroupCreate represents the data needed to create a financial group.
type GroupCreate struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	Description string     `json:"description,omitempty" validate:"max=500"`
	Type        group.Type `json:"type"`
	CreatedByID uuid.UUID  `json:"created_by_id"`
}

// GroupUpdate represents the mutable fields of a group.
type GroupUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// GroupRead represents a read-optimized view of a group.
type GroupRead struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        group.Type `json:"type"`
	CreatedByID uuid.UUID  `json:"created_by_id"`
	MemberCount int        `json:"member_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GroupMemberRead represents a membership row with the member's display data.
type GroupMemberRead struct {
	UserID   uuid.UUID `json:"user_id"`
	GroupID  uuid.UUID `json:"group_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsOwner  bool      `json:"is_owner"`
	JoinedAt time.Time `json:"joined_at"`
}
