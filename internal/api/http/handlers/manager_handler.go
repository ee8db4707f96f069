package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lrms/workforce-service/internal/api/dto"
	"github.com/lrms/workforce-service/internal/service"
)

// ManagerHandler exposes the /manager endpoints.
type ManagerHandler struct {
	manager *service.ManagerService
}

// NewManagerHandler constructs handler.
func NewManagerHandler(manager *service.ManagerService) *ManagerHandler {
	return &ManagerHandler{manager: manager}
}

// Dashboard handles GET /manager/dashboard.
func (h *ManagerHandler) Dashboard(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	stats, err := h.manager.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":    "Manager dashboard stats",
		"manager":    principalView(principal),
		"statistics": stats,
	})
}

// Team handles GET /manager/team.
func (h *ManagerHandler) Team(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	members, err := h.manager.Team(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Team members retrieved successfully",
		"manager":  principal.Email,
		"teamSize": len(members),
		"members":  dto.NewUserResponses(members),
	})
}

// Employees handles GET /manager/employees.
func (h *ManagerHandler) Employees(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	employees, err := h.manager.Employees(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":        "Employees retrieved successfully",
		"manager":        principal.Email,
		"totalEmployees": len(employees),
		"employees":      employees,
	})
}

// LeaveRequests handles GET /manager/leave-requests.
func (h *ManagerHandler) LeaveRequests(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":         "Leave requests retrieved successfully",
		"manager":         principal.Email,
		"pendingRequests": h.manager.PendingLeaveRequests(),
	})
}

// DecideLeave handles PUT /manager/leave-requests/:id/approve.
func (h *ManagerHandler) DecideLeave(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.LeaveDecisionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	decision := h.manager.DecideLeave(id, req.Approved, req.Comments)
	return c.JSON(fiber.Map{
		"message":     fmt.Sprintf("Leave request %s successfully", strings.ToLower(decision.Decision)),
		"manager":     principal.Email,
		"requestId":   decision.RequestID,
		"decision":    decision.Decision,
		"comments":    decision.Comments,
		"processedAt": decision.ProcessedAt,
	})
}

// Reports handles GET /manager/reports.
func (h *ManagerHandler) Reports(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Department reports generated successfully",
		"manager": principal.Email,
		"reports": h.manager.DepartmentReports(),
	})
}

// EmployeePerformance handles GET /manager/employees/:id/performance.
func (h *ManagerHandler) EmployeePerformance(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	employee, performance, err := h.manager.EmployeePerformance(c.UserContext(), id)
	if err != nil {
		return err
	}
	if employee == nil {
		return c.JSON(fiber.Map{
			"message":    "Employee not found or not in your team",
			"manager":    principal.Email,
			"employeeId": id,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Employee performance data retrieved",
		"manager": principal.Email,
		"employee": fiber.Map{
			"id":    employee.ID,
			"name":  employee.FullName(),
			"email": employee.Email,
		},
		"performance": performance,
	})
}

// Schedules handles GET /manager/schedules.
func (h *ManagerHandler) Schedules(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":   "Team schedules retrieved successfully",
		"manager":   principal.Email,
		"schedules": h.manager.TeamSchedules(),
	})
}

// CreateAnnouncement handles POST /manager/announcements.
func (h *ManagerHandler) CreateAnnouncement(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AnnouncementRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":      "Announcement created successfully",
		"manager":      principal.Email,
		"announcement": h.manager.CreateAnnouncement(principal, req.Title, req.Message),
	})
}

// Resources handles GET /manager/resources.
func (h *ManagerHandler) Resources(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":   "Team resources retrieved successfully",
		"manager":   principal.Email,
		"resources": h.manager.TeamResources(),
	})
}
