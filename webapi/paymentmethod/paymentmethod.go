// Package paymentmethod exposes payment method endpoints.
package paymentmethod

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	paymentmethodsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/paymentmethod"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

// NewPaymentMethod is the request body for creating a payment method.
type NewPaymentMethod struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Type        string `json:"type" validate:"required,min=1,max=50"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// UpdatePaymentMethodInput is the request body for payment method updates.
type UpdatePaymentMethodInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Type        *string `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

func Routes(app *fiber.App, methodSvc *paymentmethodsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	m := app.Group("/api/payment-methods", middleware.JwtProtected(cfg.Auth.Jwt))
	m.Post("/", CreateMethod(methodSvc, authSvc))
	m.Get("/", ListMethods(methodSvc, authSvc))
	m.Put("/:id", UpdateMethod(methodSvc, authSvc))
	m.Delete("/:id", DeleteMethod(methodSvc, authSvc))
}

// CreateMethod creates a payment method for the caller.
// @Summary Create payment method
// @Description Create an informational payment tag; payment methods never affect balance math
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param request body NewPaymentMethod true "Payment method data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/payment-methods [post]
// @Security Bearer
func CreateMethod(methodSvc *paymentmethodsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewPaymentMethod](c)
		if input == nil {
			return err // error response already written
		}
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		method, err := methodSvc.CreateMethod(c.Context(), userID, dto.PaymentMethodCreate{
			Name:        input.Name,
			Type:        input.Type,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create payment method", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created payment method", method)
	}
}

// ListMethods lists the caller's payment methods.
// @Summary List payment methods
// @Description List the caller's payment methods
// @Tags payment-methods
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/payment-methods [get]
// @Security Bearer
func ListMethods(methodSvc *paymentmethodsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		methods, err := methodSvc.ListMethods(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list payment methods", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment methods found", methods)
	}
}

// UpdateMethod updates one of the caller's payment methods.
// @Summary Update payment method
// @Description Update a payment method owned by the caller
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param id path string true "Payment method ID"
// @Param request body UpdatePaymentMethodInput true "Payment method update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/payment-methods/{id} [put]
// @Security Bearer
func UpdateMethod(methodSvc *paymentmethodsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdatePaymentMethodInput](c)
		if input == nil {
			return err // error response already written
		}
		userID, id, ok := callerAndMethodID(c, authSvc)
		if !ok {
			return nil
		}
		err = methodSvc.UpdateMethod(c.Context(), userID, id, dto.PaymentMethodUpdate{
			Name:        input.Name,
			Type:        input.Type,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update payment method", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment method updated", nil)
	}
}

// DeleteMethod removes one of the caller's payment methods.
// @Summary Delete payment method
// @Description Delete a payment method owned by the caller
// @Tags payment-methods
// @Produce json
// @Param id path string true "Payment method ID"
// @Success 204 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/payment-methods/{id} [delete]
// @Security Bearer
func DeleteMethod(methodSvc *paymentmethodsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := callerAndMethodID(c, authSvc)
		if !ok {
			return nil
		}
		if err := methodSvc.DeleteMethod(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete payment method", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Payment method deleted", nil)
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

func callerAndMethodID(c *fiber.Ctx, authSvc *authsvc.Service) (userID, id uuid.UUID, ok bool) {
	userID, ok = currentUserID(c, authSvc)
	if !ok {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid payment method ID", nil, "Payment method ID must be a valid UUID", fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
