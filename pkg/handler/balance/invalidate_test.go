package balance_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infracache "github.com/TeamSorcerers/app-financeiro-sub000/infra/cache"
	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	handler "github.com/TeamSorcerers/app-financeiro-sub000/pkg/handler/balance"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	txrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/transaction"
	balancesvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/balance"
	"github.com/google/uuid"
)

type env struct {
	svc    *balancesvc.Service
	uow    *memuow.MemUoW
	logger *slog.Logger
	owner  uuid.UUID
	member uuid.UUID
	group  uuid.UUID
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.New()
	cfg := &config.BalanceCache{TTL: time.Hour, Prefix: "balance:snapshot:"}
	svc := balancesvc.New(uow, infracache.NewMemoryCache(), cfg, logger)

	e := &env{
		svc:    svc,
		uow:    uow,
		logger: logger,
		owner:  uuid.New(),
		member: uuid.New(),
	}

	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(grouprepo.Repository)
	e.group = uuid.New()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, dto.GroupCreate{
		ID:          e.group,
		Name:        "Household",
		Type:        groupdomain.TypeCollaborative,
		CreatedByID: e.owner,
	}))
	require.NoError(t, repo.AddMember(ctx, e.group, e.owner, true))
	require.NoError(t, repo.AddMember(ctx, e.group, e.member, false))
	return e
}

func (e *env) seedIncome(t *testing.T, amount float64) {
	t.Helper()
	repoAny, err := e.uow.GetRepository((*txrepo.Repository)(nil))
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, repoAny.(txrepo.Repository).Create(context.Background(), dto.TransactionCreate{
		ID:              uuid.New(),
		GroupID:         e.group,
		CreatedByID:     e.owner,
		Amount:          amount,
		Type:            txdomain.TypeIncome,
		Status:          txdomain.StatusPaid,
		IsPaid:          true,
		PaidAt:          &now,
		TransactionDate: now,
	}))
}

func (e *env) balanceOf(t *testing.T, userID uuid.UUID) float64 {
	t.Helper()
	snapshot, err := e.svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return snapshot.TotalBalance
}

func TestHandleTransactionCreated_InvalidatesAllMembers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.seedIncome(t, 100)
	require.Equal(t, 100.0, e.balanceOf(t, e.owner))
	require.Equal(t, 100.0, e.balanceOf(t, e.member))

	// Both snapshots are cached and blind to new rows until invalidated.
	e.seedIncome(t, 50)
	require.Equal(t, 100.0, e.balanceOf(t, e.owner))
	require.Equal(t, 100.0, e.balanceOf(t, e.member))

	h := handler.HandleTransactionCreated(e.svc, e.uow, e.logger)
	require.NoError(t, h(ctx, events.TransactionCreated{
		TransactionID: uuid.New(),
		GroupID:       e.group,
		CreatedByID:   e.owner,
		Amount:        50,
		OccurredAt:    time.Now().UTC(),
	}))

	assert.Equal(t, 150.0, e.balanceOf(t, e.owner))
	assert.Equal(t, 150.0, e.balanceOf(t, e.member))
}

func TestHandleTransactionPaid_InvalidatesAllMembers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.seedIncome(t, 100)
	require.Equal(t, 100.0, e.balanceOf(t, e.owner))

	e.seedIncome(t, 25)
	h := handler.HandleTransactionPaid(e.svc, e.uow, e.logger)
	require.NoError(t, h(ctx, events.TransactionPaid{
		TransactionID: uuid.New(),
		GroupID:       e.group,
		Amount:        25,
		PaidAt:        time.Now().UTC(),
	}))

	assert.Equal(t, 125.0, e.balanceOf(t, e.owner))
}

func TestHandleGroupMemberAdded_InvalidatesNewMember(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	newcomer := uuid.New()

	require.Equal(t, 0.0, e.balanceOf(t, newcomer))

	repoAny, err := e.uow.GetRepository((*grouprepo.Repository)(nil))
	require.NoError(t, err)
	require.NoError(t, repoAny.(grouprepo.Repository).AddMember(ctx, e.group, newcomer, false))
	e.seedIncome(t, 80)

	h := handler.HandleGroupMemberAdded(e.svc, e.logger)
	require.NoError(t, h(ctx, events.GroupMemberAdded{
		GroupID:    e.group,
		UserID:     newcomer,
		AddedByID:  e.owner,
		OccurredAt: time.Now().UTC(),
	}))

	assert.Equal(t, 80.0, e.balanceOf(t, newcomer))
}

func TestHandleBankAccountChanged_InvalidatesOwnerOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.seedIncome(t, 100)
	require.Equal(t, 100.0, e.balanceOf(t, e.owner))
	require.Equal(t, 100.0, e.balanceOf(t, e.member))

	e.seedIncome(t, 60)
	h := handler.HandleBankAccountChanged(e.svc, e.logger)
	require.NoError(t, h(ctx, events.BankAccountChanged{
		AccountID:  uuid.New(),
		UserID:     e.owner,
		OccurredAt: time.Now().UTC(),
	}))

	assert.Equal(t, 160.0, e.balanceOf(t, e.owner))
	// The other member's snapshot is untouched until its own invalidation.
	assert.Equal(t, 100.0, e.balanceOf(t, e.member))
}

func TestHandlers_RejectUnexpectedPayload(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created := handler.HandleTransactionCreated(e.svc, e.uow, e.logger)
	assert.Error(t, created(ctx, events.GroupMemberAdded{}))

	paid := handler.HandleTransactionPaid(e.svc, e.uow, e.logger)
	assert.Error(t, paid(ctx, events.TransactionCreated{}))

	added := handler.HandleGroupMemberAdded(e.svc, e.logger)
	assert.Error(t, added(ctx, events.TransactionPaid{}))

	account := handler.HandleBankAccountChanged(e.svc, e.logger)
	assert.Error(t, account(ctx, events.CreditCardChanged{}))

	card := handler.HandleCreditCardChanged(e.svc, e.logger)
	assert.Error(t, card(ctx, events.BankAccountChanged{}))
}
