// Package group models financial groups, the unit that owns transactions and
// categories. Membership rows are the access-control boundary: a user may
// touch a group's data only if a membership row exists.
package group

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type discriminates personal groups (auto-created, single implicit owner)
// from collaborative ones.
type Type string

const (
	TypePersonal      Type = "PERSONAL"
	TypeCollaborative Type = "COLLABORATIVE"
)

var (
	// ErrGroupNotFound is returned when a group cannot be found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotMember is returned when the caller has no membership row for the
	// group.
	ErrNotMember = errors.New("user is not a member of the group")
	// ErrNotOwner is returned on member management by a non-owner.
	ErrNotOwner = errors.New("user is not an owner of the group")
	// ErrEmptyName is returned when a group name is blank.
	ErrEmptyName = errors.New("group name cannot be empty")
	// ErrPersonalGroupImmutable is returned on attempts to delete or share a
	// personal group.
	ErrPersonalGroupImmutable = errors.New("personal group cannot be modified")
)

// Group represents a financial group.
type Group struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        Type      `json:"type"`
	CreatedByID uuid.UUID `json:"created_by_id"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"updated"`
}

// Member represents a membership row linking a user to a group.
type Member struct {
	UserID  uuid.UUID `json:"user_id"`
	GroupID uuid.UUID `json:"group_id"`
	IsOwner bool      `json:"is_owner"`
}

// New creates a collaborative group owned by createdBy.
func New(name, description string, createdBy uuid.UUID) (*Group, error) {
	return newGroup(name, description, TypeCollaborative, createdBy)
}

// NewPersonal creates the per-user personal group. It is created once at
// registration and excluded from collaborative listings.
func NewPersonal(name string, createdBy uuid.UUID) (*Group, error) {
	return newGroup(name, "", TypePersonal, createdBy)
}

func newGroup(name, description string, t Type, createdBy uuid.UUID) (*Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Group{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Type:        t,
		CreatedByID: createdBy,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}, nil
}

// IsPersonal reports whether the group is the per-user personal group.
func (g *Group) IsPersonal() bool {
	return g.Type == TypePersonal
}
