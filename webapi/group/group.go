package group

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/middleware"
	authsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/auth"
	groupsvc "github.com/TeamSorcerers/app-financeiro-sub000/pkg/service/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/webapi/common"
)

func Routes(app *fiber.App, groupSvc *groupsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/api/groups", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", CreateGroup(groupSvc, authSvc))
	g.Get("/", ListGroups(groupSvc, authSvc))
	g.Get("/personal", GetPersonalGroup(groupSvc, authSvc))
	g.Get("/:id", GetGroup(groupSvc, authSvc))
	g.Put("/:id", UpdateGroup(groupSvc, authSvc))
	g.Delete("/:id", DeleteGroup(groupSvc, authSvc))
	g.Get("/:id/members", ListMembers(groupSvc, authSvc))
	g.Post("/:id/members", AddMember(groupSvc, authSvc))
	g.Delete("/:id/members/:userId", RemoveMember(groupSvc, authSvc))
}

// CreateGroup creates a collaborative group owned by the caller.
// @Summary Create group
// @Description Create a collaborative financial group with the caller as owner
// @Tags groups
// @Accept json
// @Produce json
// @Param request body NewGroup true "Group data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/groups [post]
// @Security Bearer
func CreateGroup(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewGroup](c)
		if input == nil {
			return err // error response already written
		}
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		group, err := groupSvc.CreateGroup(c.Context(), userID, input.Name, input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create group", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created group", group)
	}
}

// ListGroups lists the caller's collaborative groups.
// @Summary List groups
// @Description List the caller's collaborative groups; personal groups are excluded
// @Tags groups
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/groups [get]
// @Security Bearer
func ListGroups(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		groups, err := groupSvc.ListGroups(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list groups", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Groups found", groups)
	}
}

// GetPersonalGroup returns the caller's auto-created personal group.
// @Summary Get personal group
// @Description Retrieve the caller's personal group
// @Tags groups
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/groups/personal [get]
// @Security Bearer
func GetPersonalGroup(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		group, err := groupSvc.GetPersonalGroup(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get personal group", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Group found", group)
	}
}

// GetGroup retrieves a group the caller belongs to.
// @Summary Get group by ID
// @Description Retrieve a group; the caller must be a member
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/groups/{id} [get]
// @Security Bearer
func GetGroup(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, groupID, ok := callerAndGroupID(c, authSvc)
		if !ok {
			return nil // error response already written
		}
		group, err := groupSvc.GetGroup(c.Context(), userID, groupID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get group", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Group found", group)
	}
}

// UpdateGroup updates a group's name or description.
// @Summary Update group
// @Description Update group name or description; owner only, personal groups immutable
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body UpdateGroupInput true "Group update data"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/groups/{id} [put]
// @Security Bearer
func UpdateGroup(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateGroupInput](c)
		if input == nil {
			return err // error response already written
		}
		userID, groupID, ok := callerAndGroupID(c, authSvc)
		if !ok {
			return nil
		}
		err = groupSvc.UpdateGroup(c.Context(), userID, groupID, dto.GroupUpdate{
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update group", err)
		}
		group, err := groupSvc.GetGroup(c.Context(), userID, groupID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update group", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Group updated", group)
	}
}

// DeleteGroup deletes a collaborative group.
// @Summary Delete group
// @Description Delete a collaborative group; owner only, personal groups immutable
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 204 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/groups/{id} [delete]
// @Security Bearer
func DeleteGroup(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, groupID, ok := callerAndGroupID(c, authSvc)
		if !ok {
			return nil
		}
		if err := groupSvc.DeleteGroup(c.Context(), userID, groupID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete group", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Group deleted", nil)
	}
}

// ListMembers lists a group's members.
// @Summary List group members
// @Description List members of a group the caller belongs to
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /api/groups/{id}/members [get]
// @Security Bearer
func ListMembers(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, groupID, ok := callerAndGroupID(c, authSvc)
		if !ok {
			return nil
		}
		members, err := groupSvc.ListMembers(c.Context(), userID, groupID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list members", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Members found", members)
	}
}

// AddMember adds a user to a collaborative group.
// @Summary Add group member
// @Description Add a user to a collaborative group; owner only
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body NewMember true "Member data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/groups/{id}/members [post]
// @Security Bearer
func AddMember(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewMember](c)
		if input == nil {
			return err // error response already written
		}
		userID, groupID, ok := callerAndGroupID(c, authSvc)
		if !ok {
			return nil
		}
		memberID, err := uuid.Parse(input.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil, "User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := groupSvc.AddMember(c.Context(), userID, groupID, memberID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't add member", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Member added", nil)
	}
}

// RemoveMember removes a user from a collaborative group.
// @Summary Remove group member
// @Description Owners remove any member; members may remove themselves. The creator cannot be removed
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Param userId path string true "User ID"
// @Success 204 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /api/groups/{id}/members/{userId} [delete]
// @Security Bearer
func RemoveMember(groupSvc *groupsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, groupID, ok := callerAndGroupID(c, authSvc)
		if !ok {
			return nil
		}
		memberID, err := uuid.Parse(c.Params("userId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil, "User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := groupSvc.RemoveMember(c.Context(), userID, groupID, memberID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't remove member", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Member removed", nil)
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

// callerAndGroupID resolves the caller and parses the :id path parameter. On
// failure the error response is already written.
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
