// Package paymentmethod provides business logic for the informational
// payment tags attached to transactions.
package paymentmethod

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	paymentmethodrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/paymentmethod"
	"github.com/google/uuid"
)

// Service provides business logic for payment method operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateMethod registers a payment method for the caller.
func (s *Service) CreateMethod(
	ctx context.Context,
	userID uuid.UUID,
	create dto.PaymentMethodCreate,
) (m *dto.PaymentMethodRead, err error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	create.UserID = userID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, create); err != nil {
			return err
		}
		m, err = repo.Get(ctx, create.ID)
		return err
	})
	if err != nil {
		m = nil
	}
	return
}

// ListMethods lists the caller's payment methods.
func (s *Service) ListMethods(
	ctx context.Context,
	userID uuid.UUID,
) (methods []*dto.PaymentMethodRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		methods, err = repo.ListByUser(ctx, userID)
		return err
	})
	return
}

// UpdateMethod updates one of the caller's payment methods.
func (s *Service) UpdateMethod(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.PaymentMethodUpdate,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if _, err := getOwned(ctx, repo, id, userID); err != nil {
			return err
		}
		return repo.Update(ctx, id, update)
	})
}

// DeleteMethod removes one of the caller's payment methods.
func (s *Service) DeleteMethod(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if _, err := getOwned(ctx, repo, id, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func getOwned(
	ctx context.Context,
	repo paymentmethodrepo.Repository,
	id, userID uuid.UUID,
) (*dto.PaymentMethodRead, error) {
	m, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func getRepo(uow repository.UnitOfWork) (paymentmethodrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*paymentmethodrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(paymentmethodrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}
