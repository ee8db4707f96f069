package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lrms/workforce-service/internal/api/dto"
	"github.com/lrms/workforce-service/internal/domain"
	"github.com/lrms/workforce-service/internal/repository"
	"github.com/lrms/workforce-service/internal/service"
	apperrors "github.com/lrms/workforce-service/pkg/util"
)

// AdminHandler exposes the /admin endpoints.
type AdminHandler struct {
	admin *service.AdminService
	users *service.UserService
	auth  *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService, users *service.UserService, authService *service.AuthService) *AdminHandler {
	return &AdminHandler{admin: admin, users: users, auth: authService}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	stats, err := h.admin.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":    "Admin dashboard stats",
		"admin":      principalView(principal),
		"statistics": stats,
	})
}

// SystemSettings handles GET /admin/system-settings.
func (h *AdminHandler) SystemSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":  "System settings retrieved",
		"settings": h.admin.SystemSettings(),
	})
}

// Users handles GET /admin/users.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.UserContext(), repository.UserFilter{})
	if err != nil {
		return err
	}
	dist, err := h.users.RoleDistribution(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":    "All users retrieved successfully",
		"admin":      principal.Email,
		"totalUsers": dist.Total,
		"users":      dto.NewUserResponses(users),
	})
}

// CreateUser handles POST /admin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.auth.CreateUser(c.UserContext(), principal, service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"admin":   principal.Email,
		"user":    dto.NewUserResponse(user),
	})
}

// UpdateUserRole handles PUT /admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateRole(c.UserContext(), principal, id, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User role updated successfully",
		"admin":   principal.Email,
		"updatedUser": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Delete(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
		"admin":   principal.Email,
		"deletedUser": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// AuditLogs handles GET /admin/audit-logs.
func (h *AdminHandler) AuditLogs(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	logs, err := h.admin.AuditLogs(c.UserContext(), int64(c.QueryInt("limit", 100)))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Audit logs retrieved",
		"admin":   principal.Email,
		"logs":    logs,
	})
}

// UpdateSystemConfig handles PUT /admin/system-config.
func (h *AdminHandler) UpdateSystemConfig(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var config map[string]any
	if err := c.BodyParser(&config); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return c.JSON(fiber.Map{
		"message":       "System configuration updated successfully",
		"admin":         principal.Email,
		"updatedConfig": config,
		"timestamp":     h.admin.Now(),
	})
}

// Report handles GET /admin/reports/:type.
func (h *AdminHandler) Report(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	reportType := c.Params("type")
	data, _, err := h.admin.GenerateReport(c.UserContext(), reportType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     fmt.Sprintf("%s report generated successfully", reportType),
		"admin":       principal.Email,
		"reportType":  reportType,
		"data":        data,
		"generatedAt": h.admin.Now(),
	})
}
