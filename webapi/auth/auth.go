package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	userdomain "github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/user"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/login", Login(authSvc))
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate user with identity (username or email) and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // Error already written by BindAndValidate
		}
		user, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			if errors.Is(err, userdomain.ErrUserUnauthorized) {
				return common.ProblemDetailsJSON(c, "Invalid identity or password", nil, "Identity or password is incorrect", fiber.StatusUnauthorized)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, fiber.StatusInternalServerError)
		}
		if user == nil {
			return common.ProblemDetailsJSON(c, "Invalid identity or password", nil, "Identity or password is incorrect", fiber.StatusUnauthorized)
		}
		token, err := authSvc.GenerateToken(c.Context(), user)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, fiber.StatusInternalServerError)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
