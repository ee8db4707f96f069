package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lrms/workforce-service/internal/auth"
	"github.com/lrms/workforce-service/internal/domain"
)

// ManagerStatistics backs the manager dashboard.
type ManagerStatistics struct {
	TotalEmployees        int64   `json:"totalEmployees"`
	PendingLeaveRequests  int     `json:"pendingLeaveRequests"`
	ApprovedLeaveRequests int     `json:"approvedLeaveRequests"`
	TeamPerformance       float64 `json:"teamPerformance"`
	UpcomingDeadlines     int     `json:"upcomingDeadlines"`
}

// EmployeeOverview is an employee row in the manager's view.
type EmployeeOverview struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"`
	Department   string    `json:"department"`
	LastActivity string    `json:"lastActivity"`
}

// LeaveDecision is the outcome of a manager reviewing a leave request.
type LeaveDecision struct {
	RequestID   int64  `json:"requestId"`
	Decision    string `json:"decision"`
	Comments    string `json:"comments"`
	ProcessedAt string `json:"processedAt"`
}

// Performance summarises an employee review.
type Performance struct {
	Rating         float64  `json:"rating"`
	TasksCompleted int      `json:"tasksCompleted"`
	Punctuality    string   `json:"punctuality"`
	Teamwork       float64  `json:"teamwork"`
	Innovation     float64  `json:"innovation"`
	LastReview     string   `json:"lastReview"`
	Goals          []string `json:"goals"`
}

// ManagerService produces the manager dashboard views.
type ManagerService struct {
	users *UserService
	now   func() time.Time
}

// NewManagerService constructs the service.
func NewManagerService(users *UserService) *ManagerService {
	return &ManagerService{users: users, now: time.Now}
}

// Dashboard returns team statistics.
func (s *ManagerService) Dashboard(ctx context.Context) (ManagerStatistics, error) {
	employees, err := s.users.CountRole(ctx, domain.RoleEmployee)
	if err != nil {
		return ManagerStatistics{}, err
	}
	return ManagerStatistics{
		TotalEmployees:        employees,
		PendingLeaveRequests:  5,
		ApprovedLeaveRequests: 12,
		TeamPerformance:       87.5,
		UpcomingDeadlines:     3,
	}, nil
}

// Team lists the employees managed by the caller.
func (s *ManagerService) Team(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleEmployee)
}

// Employees lists employees with their working status.
func (s *ManagerService) Employees(ctx context.Context) ([]EmployeeOverview, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}
	now := stamp(s.now)
	result := make([]EmployeeOverview, 0, len(users))
	for _, u := range users {
		result = append(result, EmployeeOverview{
			ID:           u.ID,
			Email:        u.Email,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			CreatedAt:    u.CreatedAt,
			Status:       "Active",
			Department:   "General",
			LastActivity: now,
		})
	}
	return result, nil
}

// PendingLeaveRequests returns the team's open leave requests.
func (s *ManagerService) PendingLeaveRequests() []domain.LeaveRequest {
	return []domain.LeaveRequest{
		{
			ID: "1", EmployeeID: 5, EmployeeName: "John Employee", Type: "Annual Leave",
			StartDate: "2025-08-01", EndDate: "2025-08-05", Reason: "Family vacation",
			Status: "Pending", SubmittedAt: "2025-07-20T10:00:00Z",
		},
		{
			ID: "2", EmployeeID: 6, EmployeeName: "Jane Worker", Type: "Sick Leave",
			StartDate: "2025-07-25", EndDate: "2025-07-26", Reason: "Medical appointment",
			Status: "Pending", SubmittedAt: "2025-07-21T09:30:00Z",
		},
	}
}

// DecideLeave echoes an approval or rejection.
func (s *ManagerService) DecideLeave(requestID int64, approved bool, comments string) LeaveDecision {
	decision := "Rejected"
	if approved {
		decision = "Approved"
	}
	if comments == "" {
		comments = "No additional comments"
	}
	return LeaveDecision{
		RequestID:   requestID,
		Decision:    decision,
		Comments:    comments,
		ProcessedAt: stamp(s.now),
	}
}

// DepartmentReports returns attendance, productivity and leave summaries.
func (s *ManagerService) DepartmentReports() map[string]any {
	return map[string]any{
		"attendance": map[string]any{
			"averageAttendance": "95.2%",
			"lateArrivals":      3,
			"earlyDepartures":   1,
		},
		"productivity": map[string]any{
			"tasksCompleted":  127,
			"averageTaskTime": "4.2 hours",
			"efficiency":      "92.8%",
		},
		"leaveBalance": map[string]any{
			"totalLeavesTaken":        45,
			"pendingRequests":         5,
			"averageLeavePerEmployee": "8.5 days",
		},
	}
}

// EmployeePerformance returns the review of an employee. The user is nil when
// id does not belong to an employee.
func (s *ManagerService) EmployeePerformance(ctx context.Context, id int64) (*domain.User, *Performance, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if user.Role != domain.RoleEmployee {
		return nil, nil, nil
	}
	return user, &Performance{
		Rating:         4.2,
		TasksCompleted: 23,
		Punctuality:    "96%",
		Teamwork:       4.5,
		Innovation:     4.0,
		LastReview:     "2025-06-15",
		Goals: []string{
			"Improve project documentation",
			"Lead junior team member mentoring",
			"Complete certification program",
		},
	}, nil
}

// TeamSchedules returns the weekly schedule of each team member.
func (s *ManagerService) TeamSchedules() []domain.TeamSchedule {
	week := func(hours string) map[string]string {
		return map[string]string{
			"monday": hours, "tuesday": hours, "wednesday": hours, "thursday": hours, "friday": hours,
		}
	}
	return []domain.TeamSchedule{
		{EmployeeID: 5, EmployeeName: "John Employee", Schedule: week("9:00 AM - 5:00 PM"), Status: "Active"},
		{EmployeeID: 6, EmployeeName: "Jane Worker", Schedule: week("8:00 AM - 4:00 PM"), Status: "On Leave"},
	}
}

// CreateAnnouncement echoes a published announcement.
func (s *ManagerService) CreateAnnouncement(author *auth.Principal, title, message string) domain.Announcement {
	return domain.Announcement{
		ID:             uuid.NewString(),
		Title:          title,
		Message:        message,
		CreatedBy:      author.Email,
		CreatedAt:      stamp(s.now),
		TargetAudience: "Team Members",
		Status:         "Published",
	}
}

// TeamResources returns equipment, licences and budget.
func (s *ManagerService) TeamResources() map[string]any {
	return map[string]any{
		"equipment": []domain.Equipment{
			{ID: 1, Type: "Laptop", Assigned: "John Employee", Status: "Active"},
			{ID: 2, Type: "Monitor", Assigned: "Jane Worker", Status: "Active"},
		},
		"software": []map[string]any{
			{"name": "Project Management Tool", "licenses": 10, "used": 8},
			{"name": "Design Software", "licenses": 5, "used": 3},
		},
		"budget": map[string]any{
			"allocated":   50000,
			"spent":       32500,
			"remaining":   17500,
			"utilization": "65%",
		},
	}
}

func stamp(now func() time.Time) string {
	return now().UTC().Format(time.RFC3339)
}
