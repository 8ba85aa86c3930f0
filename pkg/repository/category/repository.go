package category

import (
	"context"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for category data access operations.
type Repository interface {
	// Create inserts a new category record from a DTO.
	Create(ctx context.Context, create dto.CategoryCreate) error

	// Update updates an existing category by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.CategoryUpdate) error

	// Get retrieves a category by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error)

	// ListByGroup lists the categories scoped to a group, ordered by name.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*dto.CategoryRead, error)

	// ExistsByName checks the per-group name uniqueness constraint.
	ExistsByName(ctx context.Context, groupID uuid.UUID, name string) (bool, error)

	// Delete deletes a category by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
