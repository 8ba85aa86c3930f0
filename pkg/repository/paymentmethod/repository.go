package paymentmethod

import (
	"context"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for payment method data access operations.
type Repository interface {
	// Create inserts a new payment method record from a DTO.
	Create(ctx context.Context, create dto.PaymentMethodCreate) error

	// Update updates an existing payment method by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.PaymentMethodUpdate) error

	// Get retrieves a payment method by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.PaymentMethodRead, error)

	// ListByUser lists all of the user's payment methods.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.PaymentMethodRead, error)

	// Delete deletes a payment method by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
