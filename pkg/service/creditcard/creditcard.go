// Package creditcard provides business logic for user-owned cards.
package creditcard

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
	creditcardrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/creditcard"
	"github.com/google/uuid"
)

// Service provides business logic for credit card operations.
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

// CreateCard registers a card for the caller.
func (s *Service) CreateCard(
	ctx context.Context,
	userID uuid.UUID,
	create dto.CreditCardCreate,
) (c *dto.CreditCardRead, err error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	create.UserID = userID
	if create.CreditLimit != nil && *create.CreditLimit < 0 {
		return nil, domain.ErrValidation
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, create); err != nil {
			return err
		}
		c, err = repo.Get(ctx, create.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.emitChanged(ctx, c.ID, userID)
	return c, nil
}

// GetCard retrieves one of the caller's cards.
func (s *Service) GetCard(
	ctx context.Context,
	userID, id uuid.UUID,
) (c *dto.CreditCardRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		c, err = getOwned(ctx, repo, id, userID)
		return err
	})
	if err != nil {
		c = nil
	}
	return
}

// ListCards lists the caller's cards.
func (s *Service) ListCards(
	ctx context.Context,
	userID uuid.UUID,
) (cards []*dto.CreditCardRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getRepo(uow)
		if err != nil {
			return err
		}
		cards, err = repo.ListByUser(ctx, userID)
		return err
	})
	return
}

// UpdateCard updates one of the caller's cards.
func (s *Service) UpdateCard(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.CreditCardUpdate,
) error {
	if update.CreditLimit != nil && *update.CreditLimit < 0 {
		return domain.ErrValidation
	}
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

// DeleteCard removes one of the caller's cards.
func (s *Service) DeleteCard(
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

func (s *Service) emitChanged(ctx context.Context, cardID, userID uuid.UUID) {
	if emitErr := s.bus.Emit(ctx, events.CreditCardChanged{
		CardID:     cardID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}); emitErr != nil {
		s.logger.Error("failed to emit event", "error", emitErr)
	}
}

func getOwned(
	ctx context.Context,
	repo creditcardrepo.Repository,
	id, userID uuid.UUID,
) (*dto.CreditCardRead, error) {
	c, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func getRepo(uow repository.UnitOfWork) (creditcardrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*creditcardrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(creditcardrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}
