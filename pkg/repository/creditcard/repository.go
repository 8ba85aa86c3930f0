package creditcard

import (
	"context"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for credit card data access operations.
type Repository interface {
	// Create inserts a new card record from a DTO.
	Create(ctx context.Context, create dto.CreditCardCreate) error

	// Update updates an existing card by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.CreditCardUpdate) error

	// Get retrieves a card by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.CreditCardRead, error)

	// ListByUser lists all of the user's cards.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.CreditCardRead, error)

	// ListActiveCreditByUser lists the user's active cards of type CREDIT or
	// BOTH, the only ones that carry credit exposure.
	ListActiveCreditByUser(ctx context.Context, userID uuid.UUID) ([]*dto.CreditCardRead, error)

	// ListByIDs retrieves the cards with the given ids, for report
	// enrichment.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*dto.CreditCardRead, error)

	// Delete deletes a card by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
