package group_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/TeamSorcerers/app-financeiro-sub000/infra/eventbus"
	"github.com/TeamSorcerers/app-financeiro-sub000/internal/fixtures/memuow"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	groupsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
	groupweb "github.com/TeamSorcerers/app-financeiro-sub000/webapi/group"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memuow.New()
	cfg := &config.App{
		Auth: &config.Auth{
			Strategy: "jwt",
			Jwt:      &config.Jwt{Secret: testSecret, Expiry: time.Hour},
		},
	}
	svc := groupsvc.New(uow, infraeventbus.NewWithMemory(logger), logger)
	auth := authsvc.NewWithJWT(uow, cfg.Auth.Jwt, logger)

	app := fiber.New()
	groupweb.Routes(app, svc, auth, cfg)
	return app
}

func tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID.String()
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var envelope common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	return data
}

func TestRoutes_RequireAuth(t *testing.T) {
	app := newApp(t)

	resp := doJSON(t, app, "GET", "/api/groups/", "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateAndGetGroup(t *testing.T) {
	app := newApp(t)
	userID := uuid.New()
	token := tokenFor(t, userID)

	resp := doJSON(t, app, "POST", "/api/groups/", token,
		`{"name":"Household","description":"shared expenses"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeData(t, resp)
	groupID := data["id"].(string)
	assert.Equal(t, "Household", data["name"])

	resp = doJSON(t, app, "GET", "/api/groups/"+groupID, token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)
	assert.Equal(t, "COLLABORATIVE", data["type"])
}

func TestCreateGroup_MissingName(t *testing.T) {
	app := newApp(t)
	token := tokenFor(t, uuid.New())

	resp := doJSON(t, app, "POST", "/api/groups/", token, `{"description":"no name"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetGroup_NonMemberIsForbidden(t *testing.T) {
	app := newApp(t)
	owner := uuid.New()

	resp := doJSON(t, app, "POST", "/api/groups/", tokenFor(t, owner), `{"name":"Household"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	groupID := decodeData(t, resp)["id"].(string)

	resp = doJSON(t, app, "GET", "/api/groups/"+groupID, tokenFor(t, uuid.New()), "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetGroup_InvalidID(t *testing.T) {
	app := newApp(t)

	resp := doJSON(t, app, "GET", "/api/groups/not-a-uuid", tokenFor(t, uuid.New()), "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAddAndRemoveMember(t *testing.T) {
	app := newApp(t)
	owner := uuid.New()
	member := uuid.New()
	ownerToken := tokenFor(t, owner)

	resp := doJSON(t, app, "POST", "/api/groups/", ownerToken, `{"name":"Household"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	groupID := decodeData(t, resp)["id"].(string)

	resp = doJSON(t, app, "POST", "/api/groups/"+groupID+"/members", ownerToken,
		`{"user_id":"`+member.String()+`"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/groups/"+groupID+"/members", tokenFor(t, member), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/api/groups/"+groupID+"/members/"+member.String(), ownerToken, "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/groups/"+groupID+"/members", tokenFor(t, member), "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateGroup_NonOwnerIsForbidden(t *testing.T) {
	app := newApp(t)
	owner := uuid.New()
	member := uuid.New()
	ownerToken := tokenFor(t, owner)

	resp := doJSON(t, app, "POST", "/api/groups/", ownerToken, `{"name":"Household"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	groupID := decodeData(t, resp)["id"].(string)

	resp = doJSON(t, app, "POST", "/api/groups/"+groupID+"/members", ownerToken,
		`{"user_id":"`+member.String()+`"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "PUT", "/api/groups/"+groupID, tokenFor(t, member), `{"name":"Renamed"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
