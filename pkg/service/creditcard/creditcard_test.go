package creditcard_test

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
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/creditcard"
	"github.com/google/uuid"
)

func newService(t *testing.T) *creditcard.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return creditcard.New(memuow.New(), infraeventbus.NewWithMemory(logger), logger)
}

func TestCreateCard(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()
	limit := 1000.0

	c, err := svc.CreateCard(context.Background(), userID, dto.CreditCardCreate{
		Name:        "Platinum",
		Last4Digits: "4242",
		Brand:       "Visa",
		Type:        dto.CardTypeCredit,
		CreditLimit: &limit,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, c.UserID)
	assert.Equal(t, "Platinum (**** 4242)", c.DisplayName())
	assert.True(t, c.IsActive)
}

func TestCreateCard_NegativeLimit(t *testing.T) {
	svc := newService(t)
	limit := -10.0

	c, err := svc.CreateCard(context.Background(), uuid.New(), dto.CreditCardCreate{
		Name:        "Platinum",
		Last4Digits: "4242",
		Brand:       "Visa",
		Type:        dto.CardTypeCredit,
		CreditLimit: &limit,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Nil(t, c)
}

func TestGetCard_OtherUsersCardIsNotFound(t *testing.T) {
	svc := newService(t)

	c, err := svc.CreateCard(context.Background(), uuid.New(), dto.CreditCardCreate{
		Name: "Platinum", Last4Digits: "4242", Brand: "Visa", Type: dto.CardTypeCredit,
	})
	require.NoError(t, err)

	got, err := svc.GetCard(context.Background(), uuid.New(), c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestUpdateCard_NegativeLimit(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	c, err := svc.CreateCard(ctx, userID, dto.CreditCardCreate{
		Name: "Platinum", Last4Digits: "4242", Brand: "Visa", Type: dto.CardTypeCredit,
	})
	require.NoError(t, err)

	limit := -1.0
	err = svc.UpdateCard(ctx, userID, c.ID, dto.CreditCardUpdate{CreditLimit: &limit})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateCard_Deactivate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	c, err := svc.CreateCard(ctx, userID, dto.CreditCardCreate{
		Name: "Platinum", Last4Digits: "4242", Brand: "Visa", Type: dto.CardTypeCredit,
	})
	require.NoError(t, err)

	inactive := false
	require.NoError(t, svc.UpdateCard(ctx, userID, c.ID, dto.CreditCardUpdate{
		IsActive: &inactive,
	}))

	got, err := svc.GetCard(ctx, userID, c.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestListCards(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.CreateCard(ctx, userID, dto.CreditCardCreate{
		Name: "Platinum", Last4Digits: "4242", Brand: "Visa", Type: dto.CardTypeCredit,
	})
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, uuid.New(), dto.CreditCardCreate{
		Name: "Gold", Last4Digits: "1111", Brand: "Master", Type: dto.CardTypeDebit,
	})
	require.NoError(t, err)

	list, err := svc.ListCards(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Platinum", list[0].Name)
}

func TestDeleteCard(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	c, err := svc.CreateCard(ctx, userID, dto.CreditCardCreate{
		Name: "Platinum", Last4Digits: "4242", Brand: "Visa", Type: dto.CardTypeCredit,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCard(ctx, userID, c.ID))

	_, err = svc.GetCard(ctx, userID, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
