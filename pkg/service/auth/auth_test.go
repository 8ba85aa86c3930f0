package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	userdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/user"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	userrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/user"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/utils"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func newService(t *testing.T) (*auth.Service, uuid.UUID) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.New()
	cfg := &config.Jwt{Secret: testSecret, Expiry: time.Hour}
	svc := auth.NewWithJWT(uow, cfg, logger)

	hashed, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
	require.NoError(t, err)
	repo := repoAny.(userrepo.Repository)
	userID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &dto.UserCreate{
		ID:       userID,
		Username: "alice",
		Email:    "alice@example.com",
		Password: hashed,
	}))
	return svc, userID
}

func TestLogin_ByUsername(t *testing.T) {
	svc, userID := newService(t)

	u, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
}

func TestLogin_ByEmail(t *testing.T) {
	svc, userID := newService(t)

	u, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newService(t)

	u, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, userdomain.ErrUserUnauthorized)
	assert.Nil(t, u)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newService(t)

	u, err := svc.Login(context.Background(), "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, userdomain.ErrUserUnauthorized)
	assert.Nil(t, u)
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	svc, userID := newService(t)
	ctx := context.Background()

	u, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)

	signed, err := svc.GenerateToken(ctx, u)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	resolved, err := svc.GetCurrentUserId(token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestGetCurrentUserId_MissingClaim(t *testing.T) {
	svc, _ := newService(t)

	token := jwt.New(jwt.SigningMethodHS256)
	_, err := svc.GetCurrentUserId(token)
	assert.ErrorIs(t, err, userdomain.ErrUserUnauthorized)
}
