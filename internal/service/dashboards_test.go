package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrms/workforce-service/internal/domain"
)

func TestAdminDashboardCountsRoles(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "admin@x.com", domain.RoleAdmin)
	f.createUser(t, "e@x.com", domain.RoleEmployee)
	admin := NewAdminService(f.cfg, f.users, NewAuditService(nil, nil, nil))

	stats, err := admin.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, map[string]int64{"admins": 1, "managers": 0, "employees": 1}, stats.RoleDistribution)
	assert.Equal(t, "Active", stats.SystemStatus)
}

func TestAdminSystemSettingsReflectConfig(t *testing.T) {
	f := newFixture(t, nil)
	settings := NewAdminService(f.cfg, f.users, nil).SystemSettings()
	assert.Equal(t, "7d", settings.JWTExpirationTime)
	assert.Equal(t, 5, settings.MaxLoginAttempts)
	assert.Equal(t, 5, settings.PasswordPolicy.MinLength)
	assert.Equal(t, "1.0.0", settings.SystemVersion)
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "7d", formatTTL(7*24*time.Hour))
	assert.Equal(t, "1h30m0s", formatTTL(90*time.Minute))
}

func TestAdminReports(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "m@x.com", domain.RoleManager)
	admin := NewAdminService(f.cfg, f.users, nil)
	ctx := context.Background()

	data, ok, err := admin.GenerateReport(ctx, ReportUsers)
	require.NoError(t, err)
	assert.True(t, ok)
	report := data.(map[string]any)
	assert.Equal(t, int64(1), report["totalUsers"])

	_, ok, err = admin.GenerateReport(ctx, ReportSecurity)
	require.NoError(t, err)
	assert.True(t, ok)

	data, ok, err = admin.GenerateReport(ctx, "finance")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"error": "Report type not found"}, data)
}

func TestManagerEmployeePerformance(t *testing.T) {
	f := newFixture(t, nil)
	manager := NewManagerService(f.users)
	ctx := context.Background()
	emp := f.createUser(t, "e@x.com", domain.RoleEmployee)
	boss := f.createUser(t, "m@x.com", domain.RoleManager)

	user, perf, err := manager.EmployeePerformance(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 4.2, perf.Rating)

	user, _, err = manager.EmployeePerformance(ctx, boss.ID)
	require.NoError(t, err)
	assert.Nil(t, user, "managers are not reviewed as employees")

	user, _, err = manager.EmployeePerformance(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestManagerDecideLeave(t *testing.T) {
	manager := NewManagerService(nil)
	manager.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }

	approved := manager.DecideLeave(3, true, "")
	assert.Equal(t, "Approved", approved.Decision)
	assert.Equal(t, "No additional comments", approved.Comments)
	assert.Equal(t, "2025-07-01T09:00:00Z", approved.ProcessedAt)

	rejected := manager.DecideLeave(3, false, "busy week")
	assert.Equal(t, "Rejected", rejected.Decision)
	assert.Equal(t, "busy week", rejected.Comments)
}

func TestManagerDashboardCountsEmployees(t *testing.T) {
	f := newFixture(t, nil)
	f.createUser(t, "e1@x.com", domain.RoleEmployee)
	f.createUser(t, "e2@x.com", domain.RoleEmployee)
	f.createUser(t, "m@x.com", domain.RoleManager)

	stats, err := NewManagerService(f.users).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEmployees)
}

func TestEmployeeProfileAndEchoes(t *testing.T) {
	f := newFixture(t, nil)
	employee := NewEmployeeService(f.users)
	ctx := context.Background()
	alice := f.createUser(t, "alice@x.com", domain.RoleEmployee)

	profile, err := employee.Profile(ctx, principalOf(alice))
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", profile.Email)
	assert.Equal(t, "General", profile.Department)

	request := employee.SubmitLeave(LeaveInput{LeaveType: "Annual Leave", StartDate: "2025-08-01", EndDate: "2025-08-02"})
	assert.Equal(t, "Pending", request.Status)
	assert.NotEmpty(t, request.ID)

	entry := employee.SubmitTimeEntry(domain.TimeEntry{Date: "2025-07-21", StartTime: "9:00 AM", EndTime: "5:00 PM"})
	assert.NotEmpty(t, entry.ID)
	assert.NotEmpty(t, entry.SubmittedAt)

	assert.Len(t, employee.Schedule(), 5)
	assert.Len(t, employee.Tasks(), 3)
}

func TestEmployeeReportIssue(t *testing.T) {
	f := newFixture(t, nil)
	employee := NewEmployeeService(f.users)
	employee.now = func() time.Time { return time.Date(2025, 7, 23, 10, 0, 0, 0, time.UTC) }

	issue := employee.ReportIssue(IssueInput{
		Title:       "Laptop will not boot",
		Description: "Black screen after update",
		Priority:    "High",
		Category:    "Hardware",
	})
	assert.NotEmpty(t, issue.ID)
	assert.Equal(t, "Laptop will not boot", issue.Title)
	assert.Equal(t, "Hardware", issue.Category)
	assert.Equal(t, "Open", issue.Status)
	assert.Equal(t, "2025-07-23T10:00:00Z", issue.ReportedAt)
	assert.Equal(t, "support@company.com", issue.AssignedTo)

	other := employee.ReportIssue(IssueInput{Title: "Second"})
	assert.NotEqual(t, issue.ID, other.ID)
}
