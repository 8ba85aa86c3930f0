package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	usersvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/user"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/user", CreateUser(userSvc))
	app.Get("/user/:id", middleware.JwtProtected(cfg.Auth.Jwt), GetUser(userSvc, authSvc))
	app.Put("/user/:id", middleware.JwtProtected(cfg.Auth.Jwt), UpdateUser(userSvc, authSvc))
	app.Delete("/user/:id", middleware.JwtProtected(cfg.Auth.Jwt), DeleteUser(userSvc, authSvc))
}

// CreateUser creates a new user account. Registration also creates the user's
// personal group in the same transaction.
// @Summary Create a new user
// @Description Create a new user account with username, email, and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body NewUser true "User creation data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user [post]
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewUser](c)
		if input == nil {
			return err // error response already written
		}
		if len(input.Password) > 72 {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil, "Password too long", fiber.StatusBadRequest)
		}
		user, err := userSvc.CreateUser(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		})
	}
}

// GetUser retrieves the authenticated user's own record.
// @Summary Get user by ID
// @Description Retrieve a user by their ID (self only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [get]
// @Security Bearer
func GetUser(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, callerID, err := pathAndCallerID(c, authSvc)
		if err != nil {
			return nil // error response already written
		}
		if id != callerID {
			// Generic error to prevent user enumeration
			return common.ProblemDetailsJSON(c, "Invalid credentials", nil, fiber.StatusUnauthorized)
		}
		user, err := userSvc.GetUser(c.Context(), id)
		if err != nil || user == nil {
			return common.ProblemDetailsJSON(c, "Invalid credentials", nil, fiber.StatusUnauthorized)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", user)
	}
}

// UpdateUser updates the authenticated user's own record.
// @Summary Update user
// @Description Update user information by ID (self only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserInput true "User update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user/{id} [put]
// @Security Bearer
func UpdateUser(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err // error response already written
		}
		id, callerID, err := pathAndCallerID(c, authSvc)
		if err != nil {
			return nil
		}
		if id != callerID {
			return common.ProblemDetailsJSON(c, "Forbidden", nil, "You are not allowed to update this user", fiber.StatusForbidden)
		}
		err = userSvc.UpdateUser(c.Context(), id, dto.UserUpdate{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
			Name:     input.Name,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		updated, err := userSvc.GetUser(c.Context(), id)
		if err != nil || updated == nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", updated)
	}
}

// DeleteUser deletes the authenticated user's own account.
// @Summary Delete user
// @Description Delete a user account by ID (self only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 204 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user/{id} [delete]
// @Security Bearer
func DeleteUser(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, callerID, err := pathAndCallerID(c, authSvc)
		if err != nil {
			return nil
		}
		if id != callerID {
			return common.ProblemDetailsJSON(c, "Forbidden", nil, "You are not allowed to delete this user", fiber.StatusForbidden)
		}
		if err := userSvc.DeleteUser(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "User successfully deleted", nil)
	}
}

// errHandled signals that the handler already wrote a response.
var errHandled = errors.New("response already written")

// pathAndCallerID parses the :id path parameter and resolves the caller from
// the JWT. On failure the error response is already written and errHandled is
// returned.
func pathAndCallerID(c *fiber.Ctx, authSvc *authsvc.Service) (id, callerID uuid.UUID, err error) {
	id, err = uuid.Parse(c.Params("id"))
	if err != nil {
		log.Errorf("Invalid user ID: %v", err)
		_ = common.ProblemDetailsJSON(c, "Invalid user ID", nil, "User ID must be a valid UUID", fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, errHandled
	}
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, errHandled
	}
	callerID, err = authSvc.GetCurrentUserId(token)
	if err != nil {
		log.Errorf("Failed to parse user ID from token: %v", err)
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, errHandled
	}
	return id, callerID, nil
}
