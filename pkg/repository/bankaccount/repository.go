package bankaccount

import (
	"context"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for bank account data access operations.
type Repository interface {
	// Create inserts a new bank account record from a DTO.
	Create(ctx context.Context, create dto.BankAccountCreate) error

	// Update updates an existing bank account by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.BankAccountUpdate) error

	// Get retrieves a bank account by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.BankAccountRead, error)

	// ListByUser lists all of the user's bank accounts.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.BankAccountRead, error)

	// ListActiveByUser lists the user's active bank accounts.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*dto.BankAccountRead, error)

	// ApplyDelta adjusts the stored balance by delta in a single conditional
	// update. For a negative delta the update only matches when the stored
	// balance covers it, so the sufficiency check and the write are one
	// atomic step. Returns domain.ErrInsufficientBalance when no row matched
	// but the account exists.
	ApplyDelta(ctx context.Context, id uuid.UUID, delta float64) error

	// Delete deletes a bank account by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
