// Package bankaccount exposes bank account endpoints.
package bankaccount

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	bankaccountsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/bankaccount"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

// NewBankAccount is the request body for registering a bank account.
type NewBankAccount struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Bank    string  `json:"bank" validate:"required,min=1,max=100"`
	Balance float64 `json:"balance"`
}

// UpdateBankAccountInput is the request body for bank account updates.
// Setting is_active to false soft-deactivates the account.
type UpdateBankAccountInput struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Bank     *string  `json:"bank,omitempty" validate:"omitempty,min=1,max=100"`
	Balance  *float64 `json:"balance,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}

func Routes(app *fiber.App, accountSvc *bankaccountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	a := app.Group("/api/bank-accounts", middleware.JwtProtected(cfg.Auth.Jwt))
	a.Post("/", CreateAccount(accountSvc, authSvc))
	a.Get("/", ListAccounts(accountSvc, authSvc))
	a.Get("/:id", GetAccount(accountSvc, authSvc))
	a.Put("/:id", UpdateAccount(accountSvc, authSvc))
	a.Delete("/:id", DeleteAccount(accountSvc, authSvc))
}

// CreateAccount registers a bank account for the caller.
// @Summary Create bank account
// @Description Register a bank account with an opening balance
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param request body NewBankAccount true "Bank account data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/bank-accounts [post]
// @Security Bearer
func CreateAccount(accountSvc *bankaccountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewBankAccount](c)
		if input == nil {
			return err // error response already written
		}
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		account, err := accountSvc.CreateAccount(c.Context(), userID, dto.BankAccountCreate{
			Name:    input.Name,
			Bank:    input.Bank,
			Balance: input.Balance,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create bank account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created bank account", account)
	}
}

// ListAccounts lists the caller's bank accounts.
// @Summary List bank accounts
// @Description List the caller's bank accounts, active and inactive
// @Tags bank-accounts
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/bank-accounts [get]
// @Security Bearer
func ListAccounts(accountSvc *bankaccountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		accounts, err := accountSvc.ListAccounts(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list bank accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank accounts found", accounts)
	}
}

// GetAccount retrieves one of the caller's bank accounts.
// @Summary Get bank account by ID
// @Description Retrieve a bank account owned by the caller
// @Tags bank-accounts
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/bank-accounts/{id} [get]
// @Security Bearer
func GetAccount(accountSvc *bankaccountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := callerAndAccountID(c, authSvc)
		if !ok {
			return nil // error response already written
		}
		account, err := accountSvc.GetAccount(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get bank account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank account found", account)
	}
}

// UpdateAccount updates one of the caller's bank accounts.
// @Summary Update bank account
// @Description Update a bank account; is_active=false soft-deactivates it
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param id path string true "Bank account ID"
// @Param request body UpdateBankAccountInput true "Bank account update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/bank-accounts/{id} [put]
// @Security Bearer
func UpdateAccount(accountSvc *bankaccountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateBankAccountInput](c)
		if input == nil {
			return err // error response already written
		}
		userID, id, ok := callerAndAccountID(c, authSvc)
		if !ok {
			return nil
		}
		err = accountSvc.UpdateAccount(c.Context(), userID, id, dto.BankAccountUpdate{
			Name:     input.Name,
			Bank:     input.Bank,
			Balance:  input.Balance,
			IsActive: input.IsActive,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update bank account", err)
		}
		account, err := accountSvc.GetAccount(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update bank account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank account updated", account)
	}
}

// DeleteAccount removes one of the caller's bank accounts.
// @Summary Delete bank account
// @Description Delete a bank account owned by the caller
// @Tags bank-accounts
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 204 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/bank-accounts/{id} [delete]
// @Security Bearer
func DeleteAccount(accountSvc *bankaccountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := callerAndAccountID(c, authSvc)
		if !ok {
			return nil
		}
		if err := accountSvc.DeleteAccount(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete bank account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Bank account deleted", nil)
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

func callerAndAccountID(c *fiber.Ctx, authSvc *authsvc.Service) (userID, id uuid.UUID, ok bool) {
	userID, ok = currentUserID(c, authSvc)
	if !ok {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid bank account ID", nil, "Bank account ID must be a valid UUID", fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
