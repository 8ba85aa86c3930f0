// Package transaction provides business logic for transaction writes,
// including the pay path that atomically moves money on a linked bank
// account.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	bankaccountrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/bankaccount"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	txrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/transaction"
	"github.com/google/uuid"
)

// Service provides business logic for transaction operations.
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

// CreateTransaction validates and persists a transaction in a group the
// caller belongs to.
func (s *Service) CreateTransaction(
	ctx context.Context,
	userID uuid.UUID,
	create dto.TransactionCreate,
) (created *dto.TransactionRead, err error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	create.CreatedByID = userID
	if create.Status == "" {
		create.Status = txdomain.StatusPending
	}
	if create.IsPaid {
		create.Status = txdomain.StatusPaid
		if create.PaidAt == nil {
			now := time.Now().UTC()
			create.PaidAt = &now
		}
	}
	if create.TransactionDate.IsZero() {
		create.TransactionDate = time.Now().UTC()
	}

	t := &txdomain.Transaction{
		ID:            create.ID,
		GroupID:       create.GroupID,
		BankAccountID: create.BankAccountID,
		CreditCardID:  create.CreditCardID,
		Amount:        create.Amount,
		Type:          create.Type,
		Status:        create.Status,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := requireMember(ctx, uow, create.GroupID, userID); err != nil {
			return err
		}
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, create); err != nil {
			return err
		}
		created, err = repo.Get(ctx, create.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if emitErr := s.bus.Emit(ctx, events.TransactionCreated{
		TransactionID: created.ID,
		GroupID:       created.GroupID,
		CreatedByID:   userID,
		Amount:        created.Amount,
		OccurredAt:    time.Now().UTC(),
	}); emitErr != nil {
		s.logger.Error("failed to emit event", "error", emitErr)
	}
	return created, nil
}

// GetTransaction retrieves a transaction visible to the caller.
func (s *Service) GetTransaction(
	ctx context.Context,
	userID, id uuid.UUID,
) (t *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}
		t, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		return requireMember(ctx, uow, t.GroupID, userID)
	})
	if err != nil {
		t = nil
	}
	return
}

// ListTransactions lists transactions across the caller's accessible groups,
// optionally narrowed by the filter. Group ids outside the accessible set
// are silently dropped.
func (s *Service) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) (list []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		groupRepo, err := getGroupRepo(uow)
		if err != nil {
			return err
		}
		accessible, err := groupRepo.AccessibleGroupIDs(ctx, userID)
		if err != nil {
			return err
		}
		filter.GroupIDs = intersectGroups(filter.GroupIDs, accessible)
		if len(filter.GroupIDs) == 0 {
			list = []*dto.TransactionRead{}
			return nil
		}
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}
		list, err = repo.List(ctx, filter)
		return err
	})
	return
}

// UpdateTransaction updates mutable fields. Linking rules are re-validated
// against the resulting state.
func (s *Service) UpdateTransaction(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.TransactionUpdate,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, uow, existing.GroupID, userID); err != nil {
			return err
		}

		accountID := existing.BankAccountID
		if update.BankAccountID != nil {
			accountID = update.BankAccountID
		}
		cardID := existing.CreditCardID
		if update.CreditCardID != nil {
			cardID = update.CreditCardID
		}
		if accountID != nil && *accountID != uuid.Nil &&
			cardID != nil && *cardID != uuid.Nil {
			return txdomain.ErrAccountCardExclusive
		}
		if update.Amount != nil && *update.Amount < 0 {
			return txdomain.ErrNegativeAmount
		}
		return repo.Update(ctx, id, update)
	})
}

// DeleteTransaction removes a transaction from a group the caller belongs
// to.
func (s *Service) DeleteTransaction(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, uow, existing.GroupID, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// PayTransaction marks a transaction paid and, when the transaction is
// linked to a bank account, applies the signed amount to the stored balance.
// The status flip and the balance delta run in one database transaction;
// both writes are conditional updates, so concurrent pay requests cannot
// double-spend.
func (s *Service) PayTransaction(
	ctx context.Context,
	userID, id uuid.UUID,
) (paid *dto.TransactionRead, err error) {
	paidAt := time.Now().UTC()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := getTxRepo(uow)
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := requireMember(ctx, uow, existing.GroupID, userID); err != nil {
			return err
		}
		if existing.IsPaid {
			return txdomain.ErrAlreadyPaid
		}

		if err := repo.MarkPaid(ctx, id, paidAt); err != nil {
			return err
		}

		if existing.BankAccountID != nil {
			accountRepoAny, err := uow.GetRepository((*bankaccountrepo.Repository)(nil))
			if err != nil {
				return err
			}
			accountRepo, ok := accountRepoAny.(bankaccountrepo.Repository)
			if !ok {
				return fmt.Errorf("unexpected repository type")
			}
			delta := existing.Amount
			if existing.Type == txdomain.TypeExpense {
				delta = -existing.Amount
			}
			if err := accountRepo.ApplyDelta(ctx, *existing.BankAccountID, delta); err != nil {
				return err
			}
		}

		paid, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if emitErr := s.bus.Emit(ctx, events.TransactionPaid{
		TransactionID: paid.ID,
		GroupID:       paid.GroupID,
		BankAccountID: paid.BankAccountID,
		Amount:        paid.Amount,
		PaidAt:        paidAt,
	}); emitErr != nil {
		s.logger.Error("failed to emit event", "error", emitErr)
	}
	return paid, nil
}

func getTxRepo(uow repository.UnitOfWork) (txrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*txrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(txrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}

func getGroupRepo(uow repository.UnitOfWork) (grouprepo.Repository, error) {
	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(grouprepo.Repository)
	if !ok {
		return nil, fmt.Errorf("unexpected repository type")
	}
	return repo, nil
}

func requireMember(
	ctx context.Context,
	uow repository.UnitOfWork,
	groupID, userID uuid.UUID,
) error {
	repo, err := getGroupRepo(uow)
	if err != nil {
		return err
	}
	member, err := repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return groupdomain.ErrNotMember
	}
	return nil
}

// intersectGroups keeps only requested ids that are accessible. With no
// requested ids, every accessible group is in scope.
func intersectGroups(requested, accessible []uuid.UUID) []uuid.UUID {
	if len(requested) == 0 {
		return accessible
	}
	allowed := make(map[uuid.UUID]struct{}, len(accessible))
	for _, id := range accessible {
		allowed[id] = struct{}{}
	}
	out := make([]uuid.UUID, 0, len(requested))
	for _, id := range requested {
		if _, ok := allowed[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
