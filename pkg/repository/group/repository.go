package group

import (
	"context"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for financial group data access
// operations, including the membership rows that gate all group access.
type Repository interface {
	// Create inserts a new group record from a DTO.
	Create(ctx context.Context, create dto.GroupCreate) error

	// Update updates an existing group by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.GroupUpdate) error

	// Get retrieves a group by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.GroupRead, error)

	// Delete deletes a group and its membership rows.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListCollaborativeForUser lists the collaborative groups the user is a
	// member of. PERSONAL groups are never included.
	ListCollaborativeForUser(ctx context.Context, userID uuid.UUID) ([]*dto.GroupRead, error)

	// GetPersonalForUser retrieves the user's auto-created PERSONAL group.
	GetPersonalForUser(ctx context.Context, userID uuid.UUID) (*dto.GroupRead, error)

	// AccessibleGroupIDs returns the ids of every group the user is a member
	// of, unioned with the groups the user created, de-duplicated.
	AccessibleGroupIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// AccessibleGroups returns the full group rows behind AccessibleGroupIDs.
	AccessibleGroups(ctx context.Context, userID uuid.UUID) ([]*dto.GroupRead, error)

	// AddMember inserts a membership row.
	AddMember(ctx context.Context, groupID, userID uuid.UUID, isOwner bool) error

	// RemoveMember deletes a membership row.
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error

	// IsMember checks whether a membership row exists.
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)

	// IsOwner checks whether the user's membership row has the owner flag.
	IsOwner(ctx context.Context, groupID, userID uuid.UUID) (bool, error)

	// ListMembers lists the group's membership rows with usernames attached.
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]*dto.GroupMemberRead, error)
}
