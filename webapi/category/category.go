// Package category exposes group-scoped category endpoints.
package category

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	categorysvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/category"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

// NewCategory is the request body for creating a category.
type NewCategory struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateCategoryInput is the request body for category renames.
type UpdateCategoryInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

func Routes(app *fiber.App, categorySvc *categorysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/api/groups/:id/categories", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", CreateCategory(categorySvc, authSvc))
	g.Get("/", ListCategories(categorySvc, authSvc))
	g.Put("/:categoryId", UpdateCategory(categorySvc, authSvc))
	g.Delete("/:categoryId", DeleteCategory(categorySvc, authSvc))
}

// CreateCategory creates a category inside a group the caller belongs to.
// @Summary Create category
// @Description Create a category in a group; names are unique per group
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body NewCategory true "Category data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/groups/{id}/categories [post]
// @Security Bearer
func CreateCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewCategory](c)
		if input == nil {
			return err // error response already written
		}
		userID, groupID, ok := callerAndGroupID(c, authSvc)
		if !ok {
			return nil
		}
		category, err := categorySvc.CreateCategory(c.Context(), userID, groupID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created category", category)
	}
}

// ListCategories lists a group's categories.
// @Summary List categories
// @Description List the categories of a group the caller belongs to
// @Tags categories
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /api/groups/{id}/categories [get]
// @Security Bearer
func ListCategories(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, groupID, ok := callerAndGroupID(c, authSvc)
		if !ok {
			return nil
		}
		categories, err := categorySvc.ListCategories(c.Context(), userID, groupID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list categories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories found", categories)
	}
}

// UpdateCategory renames a category.
// @Summary Update category
// @Description Rename a category; the per-group uniqueness rule is re-checked
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param categoryId path string true "Category ID"
// @Param request body UpdateCategoryInput true "Category update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/groups/{id}/categories/{categoryId} [put]
// @Security Bearer
func UpdateCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateCategoryInput](c)
		if input == nil {
			return err // error response already written
		}
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		categoryID, err := uuid.Parse(c.Params("categoryId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", nil, "Category ID must be a valid UUID", fiber.StatusBadRequest)
		}
		err = categorySvc.UpdateCategory(c.Context(), userID, categoryID, dto.CategoryUpdate{Name: input.Name})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category updated", nil)
	}
}

// DeleteCategory removes a category.
// @Summary Delete category
// @Description Delete a category from a group the caller belongs to
// @Tags categories
// @Produce json
// @Param id path string true "Group ID"
// @Param categoryId path string true "Category ID"
// @Success 204 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/groups/{id}/categories/{categoryId} [delete]
// @Security Bearer
func DeleteCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		categoryID, err := uuid.Parse(c.Params("categoryId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", nil, "Category ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := categorySvc.DeleteCategory(c.Context(), userID, categoryID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Category deleted", nil)
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

func callerAndGroupID(c *fiber.Ctx, authSvc *authsvc.Service) (userID, groupID uuid.UUID, ok bool) {
	userID, ok = currentUserID(c, authSvc)
	if !ok {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid group ID", nil, "Group ID must be a valid UUID", fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, groupID, true
}
