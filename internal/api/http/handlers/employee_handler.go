package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lrms/workforce-service/internal/api/dto"
	"github.com/lrms/workforce-service/internal/domain"
	"github.com/lrms/workforce-service/internal/service"
)

// EmployeeHandler exposes the /employee endpoints.
type EmployeeHandler struct {
	employee *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employee *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employee: employee}
}

// Dashboard handles GET /employee/dashboard.
func (h *EmployeeHandler) Dashboard(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	summary, notifications := h.employee.Dashboard()
	return c.JSON(fiber.Map{
		"message":       "Employee dashboard data",
		"employee":      principalView(principal),
		"summary":       summary,
		"notifications": notifications,
	})
}

// Profile handles GET /employee/profile.
func (h *EmployeeHandler) Profile(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	profile, err := h.employee.Profile(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Profile retrieved successfully",
		"profile": profile,
	})
}

// UpdateProfile handles PUT /employee/profile.
func (h *EmployeeHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, updatedAt, err := h.employee.UpdateProfile(c.UserContext(), principal, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Profile updated successfully",
		"employee": principal.Email,
		"updatedFields": fiber.Map{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
		"updatedAt": updatedAt,
	})
}

// Schedule handles GET /employee/schedule.
func (h *EmployeeHandler) Schedule(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":            "Schedule retrieved successfully",
		"employee":           principal.Email,
		"currentWeek":        h.employee.Schedule(),
		"totalHoursThisWeek": 40,
	})
}

// LeaveRequests handles GET /employee/leave-requests.
func (h *EmployeeHandler) LeaveRequests(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	requests := h.employee.LeaveRequests()
	return c.JSON(fiber.Map{
		"message":       "Leave requests retrieved successfully",
		"employee":      principal.Email,
		"totalRequests": len(requests),
		"requests":      requests,
	})
}

// SubmitLeave handles POST /employee/leave-requests.
func (h *EmployeeHandler) SubmitLeave(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.LeaveSubmitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	request := h.employee.SubmitLeave(service.LeaveInput{
		LeaveType: req.LeaveType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "Leave request submitted successfully",
		"employee": principal.Email,
		"request":  request,
	})
}

// CancelLeave handles PUT /employee/leave-requests/:id/cancel.
func (h *EmployeeHandler) CancelLeave(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Leave request cancelled successfully",
		"employee":    principal.Email,
		"requestId":   id,
		"cancelledAt": h.employee.Now(),
	})
}

// Tasks handles GET /employee/tasks.
func (h *EmployeeHandler) Tasks(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Tasks retrieved successfully",
		"employee": principal.Email,
		"tasks":    h.employee.Tasks(),
	})
}

// UpdateTaskStatus handles PUT /employee/tasks/:id/status.
func (h *EmployeeHandler) UpdateTaskStatus(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TaskStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comments := req.Comments
	if comments == "" {
		comments = "No additional comments"
	}
	return c.JSON(fiber.Map{
		"message":  "Task status updated successfully",
		"employee": principal.Email,
		"task": fiber.Map{
			"id":        id,
			"status":    req.Status,
			"comments":  comments,
			"updatedAt": h.employee.Now(),
		},
	})
}

// Timesheet handles GET /employee/timesheet.
func (h *EmployeeHandler) Timesheet(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Timesheet retrieved successfully",
		"employee":    principal.Email,
		"currentWeek": h.employee.Timesheet(),
	})
}

// SubmitTimeEntry handles POST /employee/timesheet.
func (h *EmployeeHandler) SubmitTimeEntry(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.TimeEntryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	entry := h.employee.SubmitTimeEntry(domain.TimeEntry{
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		BreakTime:   req.BreakTime,
		Description: req.Description,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "Time entry submitted successfully",
		"employee": principal.Email,
		"entry":    entry,
	})
}

// Announcements handles GET /employee/announcements.
func (h *EmployeeHandler) Announcements(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":       "Announcements retrieved successfully",
		"employee":      principal.Email,
		"announcements": h.employee.Announcements(),
	})
}

// MarkAnnouncementRead handles PUT /employee/announcements/:id/read.
func (h *EmployeeHandler) MarkAnnouncementRead(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":        "Announcement marked as read",
		"employee":       principal.Email,
		"announcementId": id,
		"readAt":         h.employee.Now(),
	})
}

// Resources handles GET /employee/resources.
func (h *EmployeeHandler) Resources(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":   "Resources retrieved successfully",
		"employee":  principal.Email,
		"resources": h.employee.Resources(),
	})
}

// ReportIssue handles POST /employee/issues.
func (h *EmployeeHandler) ReportIssue(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.IssueReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	issue := h.employee.ReportIssue(service.IssueInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "Issue reported successfully",
		"employee": principal.Email,
		"issue":    issue,
	})
}
