package transaction

import (
	"context"
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for transaction data access operations
// with support for CQRS (Command/Query Responsibility Segregation).
type Repository interface {
	// Create inserts a new transaction record from a DTO.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// Update updates the set fields of a transaction by its ID.
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error

	// Get retrieves a transaction by its ID as a read-optimized DTO with
	// related display names attached.
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)

	// List retrieves transactions matching the filter, with related display
	// names attached, ordered by transaction date descending.
	List(ctx context.Context, filter dto.TransactionFilter) ([]*dto.TransactionRead, error)

	// MarkPaid flips a transaction to paid in a single conditional update.
	// The update only matches rows that are still unpaid, so two concurrent
	// pay requests cannot both succeed. Returns domain.ErrNotFound when no
	// row matched.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error

	// Delete deletes a transaction by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
