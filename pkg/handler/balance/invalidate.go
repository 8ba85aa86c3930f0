// Package balance contains event handlers that keep the per-user balance
// snapshot cache consistent with the write paths.
package balance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/common"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	balancesvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/balance"
	"github.com/google/uuid"
)

// HandleTransactionCreated invalidates the snapshot of every member of the
// transaction's group. A stale snapshot is tolerable for the cache TTL at
// worst, so handler failures are logged by the bus and never fail the write.
func HandleTransactionCreated(
	svc *balancesvc.Service,
	uow repository.UnitOfWork,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.TransactionCreated)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.Type())
		}
		return invalidateGroupMembers(ctx, svc, uow, e.GroupID)
	}
}

// HandleTransactionPaid invalidates the snapshot of every member of the
// transaction's group after a pay operation changes balances.
func HandleTransactionPaid(
	svc *balancesvc.Service,
	uow repository.UnitOfWork,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.TransactionPaid)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.Type())
		}
		return invalidateGroupMembers(ctx, svc, uow, e.GroupID)
	}
}

// HandleGroupMemberAdded invalidates the new member's snapshot; the group's
// transactions now count toward their balance.
func HandleGroupMemberAdded(
	svc *balancesvc.Service,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.GroupMemberAdded)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.Type())
		}
		svc.InvalidateForUser(ctx, e.UserID)
		return nil
	}
}

// HandleBankAccountChanged invalidates the owner's snapshot; the stored
// balance feeds the bank totals directly.
func HandleBankAccountChanged(
	svc *balancesvc.Service,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.BankAccountChanged)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.Type())
		}
		svc.InvalidateForUser(ctx, e.UserID)
		return nil
	}
}

// HandleCreditCardChanged invalidates the owner's snapshot.
func HandleCreditCardChanged(
	svc *balancesvc.Service,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.CreditCardChanged)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.Type())
		}
		svc.InvalidateForUser(ctx, e.UserID)
		return nil
	}
}

func invalidateGroupMembers(
	ctx context.Context,
	svc *balancesvc.Service,
	uow repository.UnitOfWork,
	groupID uuid.UUID,
) error {
	var memberIDs []uuid.UUID
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
		if err != nil {
			return err
		}
		repo, ok := repoAny.(grouprepo.Repository)
		if !ok {
			return fmt.Errorf("unexpected repository type")
		}
		members, err := repo.ListMembers(ctx, groupID)
		if err != nil {
			return err
		}
		for _, m := range members {
			memberIDs = append(memberIDs, m.UserID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, id := range memberIDs {
		svc.InvalidateForUser(ctx, id)
	}
	return nil
}
