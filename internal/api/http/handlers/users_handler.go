package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lrms/workforce-service/internal/api/dto"
	"github.com/lrms/workforce-service/internal/domain"
	"github.com/lrms/workforce-service/internal/repository"
	"github.com/lrms/workforce-service/internal/service"
	apperrors "github.com/lrms/workforce-service/pkg/util"
)

// UsersHandler exposes user listing, profile and role management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext(), repository.UserFilter{})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Profile handles GET /users/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// ByRole handles GET /users/role/:role.
func (h *UsersHandler) ByRole(c *fiber.Ctx) error {
	role, ok := domain.ParseRole(c.Params("role"))
	if !ok {
		return apperrors.NewValidationError("invalid role", map[string]any{"role": c.Params("role")})
	}
	users, err := h.users.ListByRole(c.UserContext(), role)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// UpdateRole handles PUT /users/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateRole(c.UserContext(), principal, req.UserID, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User role updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}
