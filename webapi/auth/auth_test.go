package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	userrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/user"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/utils"
	authweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/auth"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
	"github.com/google/uuid"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.New()
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

	hashed, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
	require.NoError(t, err)
	require.NoError(t, repoAny.(userrepo.Repository).Create(context.Background(), &dto.UserCreate{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Password: hashed,
	}))

	app := fiber.New()
	authweb.Routes(app, authsvc.NewWithJWT(uow, cfg, logger))
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) (*fiber.Map, int) {
	t.Helper()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10_000)
	require.NoError(t, err)

	var envelope common.Response
	if resp.StatusCode == fiber.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		m := fiber.Map(data)
		return &m, resp.StatusCode
	}
	return nil, resp.StatusCode
}

func TestLogin_Success(t *testing.T) {
	app := newApp(t)

	data, status := postLogin(t, app, `{"identity":"alice","password":"s3cret-pass"}`)
	require.Equal(t, fiber.StatusOK, status)
	token, ok := (*data)["token"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, token)
}

func TestLogin_ByEmail(t *testing.T) {
	app := newApp(t)

	_, status := postLogin(t, app, `{"identity":"alice@example.com","password":"s3cret-pass"}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newApp(t)

	_, status := postLogin(t, app, `{"identity":"alice","password":"wrong-pass"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLogin_UnknownUser(t *testing.T) {
	app := newApp(t)

	_, status := postLogin(t, app, `{"identity":"nobody","password":"s3cret-pass"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLogin_ShortPassword(t *testing.T) {
	app := newApp(t)

	_, status := postLogin(t, app, `{"identity":"alice","password":"short"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLogin_MalformedBody(t *testing.T) {
	app := newApp(t)

	_, status := postLogin(t, app, `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
