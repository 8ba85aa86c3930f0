package transaction_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/TeamSorcerers/app-financeiro-sub000/infra/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/events"
	groupdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	txdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/transaction"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	bankaccountrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/bankaccount"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/transaction"
	"github.com/google/uuid"
)

type env struct {
	svc    *transaction.Service
	uow    *memuow.MemUoW
	bus    *infraeventbus.MemoryEventBus
	userID uuid.UUID
	group  uuid.UUID
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.New()
	bus := infraeventbus.NewWithMemory(logger)

	userID := uuid.New()
	groupID := seedGroup(t, uow, userID)
	return &env{
		svc:    transaction.New(uow, bus, logger),
		uow:    uow,
		bus:    bus,
		userID: userID,
		group:  groupID,
	}
}

func seedGroup(t *testing.T, uow *memuow.MemUoW, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	repoAny, err := uow.GetRepository((*grouprepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(grouprepo.Repository)
	groupID := uuid.New()
	require.NoError(t, repo.Create(ctx, dto.GroupCreate{
		ID:          groupID,
		Name:        "Household",
		Type:        groupdomain.TypeCollaborative,
		CreatedByID: ownerID,
	}))
	require.NoError(t, repo.AddMember(ctx, groupID, ownerID, true))
	return groupID
}

func seedAccount(t *testing.T, uow *memuow.MemUoW, userID uuid.UUID, balance float64) uuid.UUID {
	t.Helper()
	repoAny, err := uow.GetRepository((*bankaccountrepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(bankaccountrepo.Repository)
	accountID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), dto.BankAccountCreate{
		ID:      accountID,
		UserID:  userID,
		Name:    "Checking",
		Bank:    "Banco do Teste",
		Balance: balance,
	}))
	return accountID
}

func TestCreateTransaction(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.CreateTransaction(ctx, e.userID, dto.TransactionCreate{
		GroupID:     e.group,
		Description: "salary",
		Amount:      700,
		Type:        txdomain.TypeIncome,
	})
	require.NoError(t, err)
	assert.Equal(t, e.group, created.GroupID)
	assert.Equal(t, txdomain.StatusPending, created.Status)
	assert.False(t, created.IsPaid)
	assert.False(t, created.TransactionDate.IsZero())
	assert.Equal(t, "Household", created.GroupName)

	published := e.bus.Published()
	require.Len(t, published, 1)
	ev, ok := published[0].(events.TransactionCreated)
	require.True(t, ok)
	assert.Equal(t, created.ID, ev.TransactionID)
	assert.Equal(t, 700.0, ev.Amount)
}

func TestCreateTransaction_NonMember(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.CreateTransaction(context.Background(), uuid.New(), dto.TransactionCreate{
		GroupID: e.group,
		Amount:  10,
		Type:    txdomain.TypeExpense,
	})
	assert.ErrorIs(t, err, groupdomain.ErrNotMember)
}

func TestCreateTransaction_NegativeAmount(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.CreateTransaction(context.Background(), e.userID, dto.TransactionCreate{
		GroupID: e.group,
		Amount:  -5,
		Type:    txdomain.TypeExpense,
	})
	assert.ErrorIs(t, err, txdomain.ErrNegativeAmount)
}

func TestCreateTransaction_AccountCardExclusive(t *testing.T) {
	e := newEnv(t)
	accountID := uuid.New()
	cardID := uuid.New()

	_, err := e.svc.CreateTransaction(context.Background(), e.userID, dto.TransactionCreate{
		GroupID:       e.group,
		Amount:        10,
		Type:          txdomain.TypeExpense,
		BankAccountID: &accountID,
		CreditCardID:  &cardID,
	})
	assert.ErrorIs(t, err, txdomain.ErrAccountCardExclusive)
}

func TestCreateTransaction_PrePaid(t *testing.T) {
	e := newEnv(t)

	created, err := e.svc.CreateTransaction(context.Background(), e.userID, dto.TransactionCreate{
		GroupID: e.group,
		Amount:  50,
		Type:    txdomain.TypeExpense,
		IsPaid:  true,
	})
	require.NoError(t, err)
	assert.True(t, created.IsPaid)
	assert.Equal(t, txdomain.StatusPaid, created.Status)
	require.NotNil(t, created.PaidAt)
}

func TestListTransactions_ScopedToAccessibleGroups(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CreateTransaction(ctx, e.userID, dto.TransactionCreate{
		GroupID: e.group,
		Amount:  10,
		Type:    txdomain.TypeIncome,
	})
	require.NoError(t, err)

	// A second user's group stays invisible to the first user.
	otherUser := uuid.New()
	otherGroup := seedGroup(t, e.uow, otherUser)
	_, err = e.svc.CreateTransaction(ctx, otherUser, dto.TransactionCreate{
		GroupID: otherGroup,
		Amount:  20,
		Type:    txdomain.TypeIncome,
	})
	require.NoError(t, err)

	list, err := e.svc.ListTransactions(ctx, e.userID, dto.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, e.group, list[0].GroupID)

	// Requesting the inaccessible group explicitly yields nothing, not an
	// error.
	list, err = e.svc.ListTransactions(ctx, e.userID, dto.TransactionFilter{
		GroupIDs: []uuid.UUID{otherGroup},
	})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPayTransaction(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.CreateTransaction(ctx, e.userID, dto.TransactionCreate{
		GroupID: e.group,
		Amount:  100,
		Type:    txdomain.TypeExpense,
	})
	require.NoError(t, err)

	paid, err := e.svc.PayTransaction(ctx, e.userID, created.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, txdomain.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.WithinDuration(t, time.Now().UTC(), *paid.PaidAt, time.Minute)

	published := e.bus.Published()
	require.Len(t, published, 2)
	_, ok := published[1].(events.TransactionPaid)
	assert.True(t, ok)
}

func TestPayTransaction_AlreadyPaid(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.CreateTransaction(ctx, e.userID, dto.TransactionCreate{
		GroupID: e.group,
		Amount:  100,
		Type:    txdomain.TypeExpense,
	})
	require.NoError(t, err)

	_, err = e.svc.PayTransaction(ctx, e.userID, created.ID)
	require.NoError(t, err)

	_, err = e.svc.PayTransaction(ctx, e.userID, created.ID)
	assert.ErrorIs(t, err, txdomain.ErrAlreadyPaid)
}

func TestPayTransaction_AppliesBankDelta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	accountID := seedAccount(t, e.uow, e.userID, 500)

	created, err := e.svc.CreateTransaction(ctx, e.userID, dto.TransactionCreate{
		GroupID:       e.group,
		Amount:        120,
		Type:          txdomain.TypeExpense,
		BankAccountID: &accountID,
	})
	require.NoError(t, err)

	_, err = e.svc.PayTransaction(ctx, e.userID, created.ID)
	require.NoError(t, err)

	repoAny, err := e.uow.GetRepository((*bankaccountrepo.Repository)(nil))
	require.NoError(t, err)
	account, err := repoAny.(bankaccountrepo.Repository).Get(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 380.0, account.Balance)
}

func TestPayTransaction_InsufficientBalance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	accountID := seedAccount(t, e.uow, e.userID, 50)

	created, err := e.svc.CreateTransaction(ctx, e.userID, dto.TransactionCreate{
		GroupID:       e.group,
		Amount:        120,
		Type:          txdomain.TypeExpense,
		BankAccountID: &accountID,
	})
	require.NoError(t, err)

	_, err = e.svc.PayTransaction(ctx, e.userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestUpdateTransaction_RejectsAccountAndCard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	accountID := seedAccount(t, e.uow, e.userID, 100)

	created, err := e.svc.CreateTransaction(ctx, e.userID, dto.TransactionCreate{
		GroupID:       e.group,
		Amount:        10,
		Type:          txdomain.TypeExpense,
		BankAccountID: &accountID,
	})
	require.NoError(t, err)

	cardID := uuid.New()
	err = e.svc.UpdateTransaction(ctx, e.userID, created.ID, dto.TransactionUpdate{
		CreditCardID: &cardID,
	})
	assert.ErrorIs(t, err, txdomain.ErrAccountCardExclusive)
}

func TestDeleteTransaction(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.svc.CreateTransaction(ctx, e.userID, dto.TransactionCreate{
		GroupID: e.group,
		Amount:  10,
		Type:    txdomain.TypeIncome,
	})
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteTransaction(ctx, e.userID, created.ID))

	_, err = e.svc.GetTransaction(ctx, e.userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
