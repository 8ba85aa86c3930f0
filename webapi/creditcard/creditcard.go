// Package creditcard exposes credit card endpoints.
package creditcard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	creditcardsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/creditcard"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

// NewCreditCard is the request body for registering a card.
type NewCreditCard struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Last4Digits string   `json:"last_4_digits" validate:"required,len=4,numeric"`
	Brand       string   `json:"brand" validate:"required,min=1,max=50"`
	Type        string   `json:"type,omitempty" validate:"omitempty,oneof=CREDIT DEBIT BOTH"`
	CreditLimit *float64 `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	ClosingDay  *int     `json:"closing_day,omitempty" validate:"omitempty,min=1,max=31"`
	DueDay      *int     `json:"due_day,omitempty" validate:"omitempty,min=1,max=31"`
}

// UpdateCreditCardInput is the request body for card updates.
type UpdateCreditCardInput struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	CreditLimit *float64 `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	ClosingDay  *int     `json:"closing_day,omitempty" validate:"omitempty,min=1,max=31"`
	DueDay      *int     `json:"due_day,omitempty" validate:"omitempty,min=1,max=31"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func Routes(app *fiber.App, cardSvc *creditcardsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	cc := app.Group("/api/credit-cards", middleware.JwtProtected(cfg.Auth.Jwt))
	cc.Post("/", CreateCard(cardSvc, authSvc))
	cc.Get("/", ListCards(cardSvc, authSvc))
	cc.Get("/:id", GetCard(cardSvc, authSvc))
	cc.Put("/:id", UpdateCard(cardSvc, authSvc))
	cc.Delete("/:id", DeleteCard(cardSvc, authSvc))
}

// CreateCard registers a card for the caller.
// @Summary Create credit card
// @Description Register a card; type defaults to CREDIT
// @Tags credit-cards
// @Accept json
// @Produce json
// @Param request body NewCreditCard true "Card data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/credit-cards [post]
// @Security Bearer
func CreateCard(cardSvc *creditcardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewCreditCard](c)
		if input == nil {
			return err // error response already written
		}
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		card, err := cardSvc.CreateCard(c.Context(), userID, dto.CreditCardCreate{
			Name:        input.Name,
			Last4Digits: input.Last4Digits,
			Brand:       input.Brand,
			Type:        dto.CardType(input.Type),
			CreditLimit: input.CreditLimit,
			ClosingDay:  input.ClosingDay,
			DueDay:      input.DueDay,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create credit card", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created credit card", card)
	}
}

// ListCards lists the caller's cards.
// @Summary List credit cards
// @Description List the caller's cards, active and inactive
// @Tags credit-cards
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/credit-cards [get]
// @Security Bearer
func ListCards(cardSvc *creditcardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		cards, err := cardSvc.ListCards(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list credit cards", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Credit cards found", cards)
	}
}

// GetCard retrieves one of the caller's cards.
// @Summary Get credit card by ID
// @Description Retrieve a card owned by the caller
// @Tags credit-cards
// @Produce json
// @Param id path string true "Credit card ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/credit-cards/{id} [get]
// @Security Bearer
func GetCard(cardSvc *creditcardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := callerAndCardID(c, authSvc)
		if !ok {
			return nil // error response already written
		}
		card, err := cardSvc.GetCard(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get credit card", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Credit card found", card)
	}
}

// UpdateCard updates one of the caller's cards.
// @Summary Update credit card
// @Description Update a card; is_active=false soft-deactivates it
// @Tags credit-cards
// @Accept json
// @Produce json
// @Param id path string true "Credit card ID"
// @Param request body UpdateCreditCardInput true "Card update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/credit-cards/{id} [put]
// @Security Bearer
func UpdateCard(cardSvc *creditcardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateCreditCardInput](c)
		if input == nil {
			return err // error response already written
		}
		userID, id, ok := callerAndCardID(c, authSvc)
		if !ok {
			return nil
		}
		err = cardSvc.UpdateCard(c.Context(), userID, id, dto.CreditCardUpdate{
			Name:        input.Name,
			CreditLimit: input.CreditLimit,
			ClosingDay:  input.ClosingDay,
			DueDay:      input.DueDay,
			IsActive:    input.IsActive,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update credit card", err)
		}
		card, err := cardSvc.GetCard(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update credit card", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Credit card updated", card)
	}
}

// DeleteCard removes one of the caller's cards.
// @Summary Delete credit card
// @Description Delete a card owned by the caller
// @Tags credit-cards
// @Produce json
// @Param id path string true "Credit card ID"
// @Success 204 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/credit-cards/{id} [delete]
// @Security Bearer
func DeleteCard(cardSvc *creditcardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := callerAndCardID(c, authSvc)
		if !ok {
			return nil
		}
		if err := cardSvc.DeleteCard(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete credit card", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Credit card deleted", nil)
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

func callerAndCardID(c *fiber.Ctx, authSvc *authsvc.Service) (userID, id uuid.UUID, ok bool) {
	userID, ok = currentUserID(c, authSvc)
	if !ok {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid credit card ID", nil, "Credit card ID must be a valid UUID", fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
