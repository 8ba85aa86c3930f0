// Package report exposes the monthly and yearly report endpoints.
package report

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	reportsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/report"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

func Routes(app *fiber.App, reportSvc *reportsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	r := app.Group("/api/reports", middleware.JwtProtected(cfg.Auth.Jwt))
	r.Get("/monthly", MonthlyReport(reportSvc, authSvc))
	r.Get("/yearly", YearlyReport(reportSvc, authSvc))
}

// MonthlyReport builds the report for one calendar month. Missing or
// non-numeric month and year parameters fall back to the current period.
// @Summary Monthly report
// @Description Build a monthly financial report with breakdowns keyed by entity id
// @Tags reports
// @Produce json
// @Param month query int false "Month (1-12, defaults to current)"
// @Param year query int false "Year (defaults to current)"
// @Param categoryId query string false "Category ID filter"
// @Param accountId query string false "Bank account ID filter"
// @Param cardId query string false "Credit card ID filter"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/reports/monthly [get]
// @Security Bearer
func MonthlyReport(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		filter, err := filterFromQuery(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query parameters", nil, err.Error(), fiber.StatusBadRequest)
		}
		report, err := reportSvc.MonthlyReport(c.Context(), userID, c.QueryInt("month"), c.QueryInt("year"), *filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't build report", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Report built", report)
	}
}

// YearlyReport builds the report for a full calendar year.
// @Summary Yearly report
// @Description Build a yearly report with monthly data, card usage, prior-year comparison, and insights
// @Tags reports
// @Produce json
// @Param year query int false "Year (defaults to current)"
// @Param categoryId query string false "Category ID filter"
// @Param accountId query string false "Bank account ID filter"
// @Param cardId query string false "Credit card ID filter"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/reports/yearly [get]
// @Security Bearer
func YearlyReport(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		filter, err := filterFromQuery(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query parameters", nil, err.Error(), fiber.StatusBadRequest)
		}
		report, err := reportSvc.YearlyReport(c.Context(), userID, c.QueryInt("year"), *filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't build report", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Report built", report)
	}
}

func filterFromQuery(c *fiber.Ctx) (*dto.ReportFilter, error) {
	filter := &dto.ReportFilter{}
	var err error
	if filter.CategoryID, err = parseQueryUUID(c, "categoryId"); err != nil {
		return nil, err
	}
	if filter.BankAccountID, err = parseQueryUUID(c, "accountId"); err != nil {
		return nil, err
	}
	if filter.CreditCardID, err = parseQueryUUID(c, "cardId"); err != nil {
		return nil, err
	}
	return filter, nil
}

func parseQueryUUID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
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
