package bankaccount_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/TeamSorcerers/app-financeiro-sub000/infra/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/bankaccount"
	"github.com/google/uuid"
)

func newService(t *testing.T) *bankaccount.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return bankaccount.New(memuow.New(), infraeventbus.NewWithMemory(logger), logger)
}

func TestCreateAccount(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	a, err := svc.CreateAccount(context.Background(), userID, dto.BankAccountCreate{
		Name:    "Checking",
		Bank:    "Banco do Teste",
		Balance: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, a.UserID)
	assert.Equal(t, 250.0, a.Balance)
	assert.True(t, a.IsActive)
}

func TestCreateAccount_IgnoresForeignUserID(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	// The owner is always the caller, whatever the payload claims.
	a, err := svc.CreateAccount(context.Background(), userID, dto.BankAccountCreate{
		UserID: uuid.New(),
		Name:   "Checking",
		Bank:   "Banco do Teste",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, a.UserID)
}

func TestGetAccount_OtherUsersAccountIsNotFound(t *testing.T) {
	svc := newService(t)
	owner := uuid.New()

	a, err := svc.CreateAccount(context.Background(), owner, dto.BankAccountCreate{
		Name: "Checking",
		Bank: "Banco do Teste",
	})
	require.NoError(t, err)

	got, err := svc.GetAccount(context.Background(), uuid.New(), a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestListAccounts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.CreateAccount(ctx, userID, dto.BankAccountCreate{Name: "Checking", Bank: "A"})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, userID, dto.BankAccountCreate{Name: "Savings", Bank: "B"})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, uuid.New(), dto.BankAccountCreate{Name: "Other", Bank: "C"})
	require.NoError(t, err)

	list, err := svc.ListAccounts(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdateAccount_Deactivate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	a, err := svc.CreateAccount(ctx, userID, dto.BankAccountCreate{Name: "Checking", Bank: "A"})
	require.NoError(t, err)

	inactive := false
	require.NoError(t, svc.UpdateAccount(ctx, userID, a.ID, dto.BankAccountUpdate{
		IsActive: &inactive,
	}))

	got, err := svc.GetAccount(ctx, userID, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUpdateAccount_OtherUsersAccount(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.CreateAccount(ctx, uuid.New(), dto.BankAccountCreate{Name: "Checking", Bank: "A"})
	require.NoError(t, err)

	name := "hijacked"
	err = svc.UpdateAccount(ctx, uuid.New(), a.ID, dto.BankAccountUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAccount(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	a, err := svc.CreateAccount(ctx, userID, dto.BankAccountCreate{Name: "Checking", Bank: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, userID, a.ID))

	_, err = svc.GetAccount(ctx, userID, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
