package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lrms/workforce-service/internal/auth"
	"github.com/lrms/workforce-service/internal/domain"
)

// EmployeeSummary backs the employee dashboard.
type EmployeeSummary struct {
	PendingTasks           int    `json:"pendingTasks"`
	CompletedTasksThisWeek int    `json:"completedTasksThisWeek"`
	UpcomingDeadlines      int    `json:"upcomingDeadlines"`
	LeaveBalance           int    `json:"leaveBalance"`
	LastLoginTime          string `json:"lastLoginTime"`
}

// EmployeeProfile extends the stored user with HR details.
type EmployeeProfile struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name,omitempty"`
	LastName    string      `json:"last_name,omitempty"`
	Role        domain.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
	Department  string      `json:"department"`
	Position    string      `json:"position"`
	Manager     string      `json:"manager"`
	StartDate   time.Time   `json:"startDate"`
	PhoneNumber string      `json:"phoneNumber"`
	Address     string      `json:"address"`
}

// Timesheet is the current week's time record.
type Timesheet struct {
	TotalHours    float64            `json:"totalHours"`
	RegularHours  float64            `json:"regularHours"`
	OvertimeHours float64            `json:"overtimeHours"`
	Entries       []domain.TimeEntry `json:"entries"`
}

// LeaveInput is a new leave request.
type LeaveInput struct {
	LeaveType string
	StartDate string
	EndDate   string
	Reason    string
}

// EmployeeService produces the employee self-service views.
type EmployeeService struct {
	users *UserService
	now   func() time.Time
}

// NewEmployeeService constructs the service.
func NewEmployeeService(users *UserService) *EmployeeService {
	return &EmployeeService{users: users, now: time.Now}
}

// Dashboard returns the caller's work summary and notifications.
func (s *EmployeeService) Dashboard() (EmployeeSummary, []string) {
	return EmployeeSummary{
			PendingTasks:           5,
			CompletedTasksThisWeek: 12,
			UpcomingDeadlines:      2,
			LeaveBalance:           15,
			LastLoginTime:          stamp(s.now),
		}, []string{
			"Your leave request has been approved",
			"New task assigned: Update project documentation",
			"Team meeting scheduled for tomorrow at 2 PM",
		}
}

// Profile loads the caller's stored profile.
func (s *EmployeeService) Profile(ctx context.Context, principal *auth.Principal) (*EmployeeProfile, error) {
	user, err := s.users.Get(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	return &EmployeeProfile{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		Department:  "General",
		Position:    "Team Member",
		Manager:     "manager@company.com",
		StartDate:   user.CreatedAt,
		PhoneNumber: "+1234567890",
		Address:     "123 Main St, City, State",
	}, nil
}

// UpdateProfile persists the caller's name fields.
func (s *EmployeeService) UpdateProfile(ctx context.Context, principal *auth.Principal, firstName, lastName string) (*domain.User, string, error) {
	user, err := s.users.UpdateProfile(ctx, principal, firstName, lastName)
	if err != nil {
		return nil, "", err
	}
	return user, stamp(s.now), nil
}

// Schedule returns the caller's current week.
func (s *EmployeeService) Schedule() map[string]domain.Shift {
	shift := domain.Shift{Start: "9:00 AM", End: "5:00 PM", Status: "Scheduled"}
	return map[string]domain.Shift{
		"monday": shift, "tuesday": shift, "wednesday": shift, "thursday": shift, "friday": shift,
	}
}

// LeaveRequests returns the caller's leave history.
func (s *EmployeeService) LeaveRequests() []domain.LeaveRequest {
	return []domain.LeaveRequest{
		{
			ID: "1", Type: "Annual Leave", StartDate: "2025-08-01", EndDate: "2025-08-05", Days: 5,
			Status: "Approved", Reason: "Family vacation", SubmittedAt: "2025-07-20T10:00:00Z",
			ReviewedBy: "manager@company.com",
		},
		{
			ID: "2", Type: "Sick Leave", StartDate: "2025-07-15", EndDate: "2025-07-16", Days: 2,
			Status: "Approved", Reason: "Medical appointment", SubmittedAt: "2025-07-10T09:00:00Z",
			ReviewedBy: "manager@company.com",
		},
		{
			ID: "3", Type: "Personal Leave", StartDate: "2025-09-10", EndDate: "2025-09-10", Days: 1,
			Status: "Pending", Reason: "Personal matters", SubmittedAt: "2025-07-22T14:30:00Z",
		},
	}
}

// SubmitLeave echoes a pending leave request.
func (s *EmployeeService) SubmitLeave(in LeaveInput) domain.LeaveRequest {
	return domain.LeaveRequest{
		ID:          uuid.NewString(),
		Type:        in.LeaveType,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Reason:      in.Reason,
		Status:      "Pending",
		SubmittedAt: stamp(s.now),
	}
}

// Tasks returns the caller's assigned tasks.
func (s *EmployeeService) Tasks() []domain.Task {
	return []domain.Task{
		{
			ID: "1", Title: "Complete project documentation", Description: "Update all project documentation for Q3",
			Priority: "High", Status: "In Progress", DueDate: "2025-08-01", AssignedBy: "manager@company.com", Progress: 75,
		},
		{
			ID: "2", Title: "Review team proposals", Description: "Review and provide feedback on team project proposals",
			Priority: "Medium", Status: "Pending", DueDate: "2025-07-30", AssignedBy: "manager@company.com", Progress: 0,
		},
		{
			ID: "3", Title: "Attend training session", Description: "Mandatory security training session",
			Priority: "Medium", Status: "Completed", DueDate: "2025-07-20", AssignedBy: "hr@company.com", Progress: 100,
		},
	}
}

// Timesheet returns the current week's entries.
func (s *EmployeeService) Timesheet() Timesheet {
	return Timesheet{
		TotalHours:   38.5,
		RegularHours: 38.5,
		Entries: []domain.TimeEntry{
			{Date: "2025-07-21", StartTime: "9:00 AM", EndTime: "5:00 PM", BreakTime: 60, TotalHours: 7, Description: "Regular work day"},
			{Date: "2025-07-22", StartTime: "9:00 AM", EndTime: "4:30 PM", BreakTime: 30, TotalHours: 7, Description: "Early leave for appointment"},
		},
	}
}

// SubmitTimeEntry echoes a recorded time entry.
func (s *EmployeeService) SubmitTimeEntry(entry domain.TimeEntry) domain.TimeEntry {
	entry.ID = uuid.NewString()
	entry.SubmittedAt = stamp(s.now)
	return entry
}

// Announcements returns the team announcements visible to the caller.
func (s *EmployeeService) Announcements() []domain.Announcement {
	unread, read := false, true
	return []domain.Announcement{
		{
			ID: "1", Title: "Office Renovation Update",
			Message:   "The office renovation will begin next Monday. Please plan accordingly.",
			CreatedBy: "manager@company.com", CreatedAt: "2025-07-22T09:00:00Z", Priority: "High", Read: &unread,
		},
		{
			ID: "2", Title: "Team Building Event",
			Message:   "Join us for a team building event this Friday at 4 PM.",
			CreatedBy: "hr@company.com", CreatedAt: "2025-07-20T14:30:00Z", Priority: "Medium", Read: &read,
		},
	}
}

// Resources returns the caller's equipment, software and documents.
func (s *EmployeeService) Resources() map[string]any {
	return map[string]any{
		"assignedEquipment": []domain.Equipment{
			{ID: 1, Type: "Laptop", Model: "MacBook Pro", SerialNumber: "MBP12345"},
			{ID: 2, Type: "Monitor", Model: `27" Display`, SerialNumber: "MON67890"},
		},
		"softwareAccess": []map[string]string{
			{"name": "Project Management Tool", "accessLevel": "User", "expiresAt": "2025-12-31"},
			{"name": "Email Client", "accessLevel": "Full", "expiresAt": "Permanent"},
		},
		"documents": []map[string]string{
			{"name": "Employee Handbook", "url": "/documents/handbook.pdf"},
			{"name": "Safety Guidelines", "url": "/documents/safety.pdf"},
		},
	}
}

// IssueInput is a newly reported issue.
type IssueInput struct {
	Title       string
	Description string
	Priority    string
	Category    string
}

// ReportIssue echoes an open issue routed to support.
func (s *EmployeeService) ReportIssue(in IssueInput) domain.Issue {
	return domain.Issue{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Category:    in.Category,
		Status:      "Open",
		ReportedAt:  stamp(s.now),
		AssignedTo:  "support@company.com",
	}
}

// Now returns the current service time formatted for payloads.
func (s *EmployeeService) Now() string {
	return stamp(s.now)
}
