// Package balance exposes the consolidated balance endpoint.
package balance

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	balancesvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/balance"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

func Routes(app *fiber.App, balanceSvc *balancesvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Get("/api/balance", middleware.JwtProtected(cfg.Auth.Jwt), GetBalance(balanceSvc, authSvc))
}

// GetBalance returns the caller's consolidated balance snapshot.
// @Summary Get consolidated balance
// @Description Aggregate group balances, bank account real balances, and credit card debt into one snapshot
// @Tags balance
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /api/balance [get]
// @Security Bearer
func GetBalance(balanceSvc *balancesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		snapshot, err := balanceSvc.GetBalance(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance computed", snapshot)
	}
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	id, err := authSvc.GetCurrentUserId(token)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
