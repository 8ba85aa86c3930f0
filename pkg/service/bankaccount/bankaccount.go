// Package bankaccount provides business logic for user-owned bank accounts.
package bankaccount

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	bankaccountrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/bankaccount"
	"github.com/google/uuid"
)

// Service provides business logic for bank account operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// CreateAccount registers a bank account for the caller.
func (s *Service) CreateAccount(
	ctx context.Context,
	userID uuid.UUID,
	create dto.BankAccountCreate,
) (a *dto.BankAccountRead, err error) {
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
		a, err = repo.Get(ctx, create.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.emitChanged(ctx, a.ID, userID)
	return a, nil
}

// GetAccount retrieves one of the caller's accounts.
func (s *Service) GetAccount(
	ctx context.Context,
	userID, id uuid.UUID,
) (a *dto.BankAccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		a, err = getOwned(ctx, repo, id, userID)
		return err
	})
	if err != nil {
		a = nil
	}
	return
}

// ListAccounts lists the caller's accounts.
func (s *Service) ListAccounts(
	ctx context.Context,
	userID uuid.UUID,
) (accounts []*dto.BankAccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		accounts, err = repo.ListByUser(ctx, userID)
		return err
	})
	return
}

// UpdateAccount updates one of the caller's accounts.
func (s *Service) UpdateAccount(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.BankAccountUpdate,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if _, err := getOwned(ctx, repo, id, userID); err != nil {
			return err
		}
		return repo.Update(ctx, id, update)
	})
	if err != nil {
		return err
	}
	s.emitChanged(ctx, id, userID)
	return nil
}

// DeleteAccount removes one of the caller's accounts.
func (s *Service) DeleteAccount(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if _, err := getOwned(ctx, repo, id, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.emitChanged(ctx, id, userID)
	return nil
}

func (s *Service) emitChanged(ctx context.Context, accountID, userID uuid.UUID) {
	if emitErr := s.bus.Emit(ctx, events.BankAccountChanged{
		AccountID:  accountID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}); emitErr != nil {
		s.logger.Error("failed to emit event", "error", emitErr)
	}
}

// getOwned fetches an account and hides other users' accounts behind
// NotFound rather than Forbidden, so ids cannot be probed.
func getOwned(
	ctx context.Context,
	repo bankaccountrepo.Repository,
	id, userID uuid.UUID,
) (*dto.BankAccountRead, error) {
	a, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func getRepo(uow repository.UnitOfWork) (bankaccountrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*bankaccountrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(bankaccountrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}
