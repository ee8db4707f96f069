package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/lrms/workforce-service/internal/api/http/handlers"
	"github.com/lrms/workforce-service/internal/auth"
	"github.com/lrms/workforce-service/internal/domain"
	"github.com/lrms/workforce-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	Manager        *handlers.ManagerHandler
	Employee       *handlers.EmployeeHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// Route is one entry of the access table. Public routes skip authentication;
// otherwise an empty Roles admits any authenticated principal.
type Route struct {
	Method  string
	Path    string
	Public  bool
	Roles   []domain.Role
	Handler fiber.Handler
}

var (
	adminOnly    = []domain.Role{domain.RoleAdmin}
	staff        = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	employeeOnly = []domain.Role{domain.RoleEmployee}
)

// Routes returns the access table.
func Routes(cfg RouteConfig) []Route {
	a, u, adm, m, e := cfg.Auth, cfg.Users, cfg.Admin, cfg.Manager, cfg.Employee
	return []Route{
		{Method: fiber.MethodPost, Path: "/auth/register", Public: true, Handler: a.Register},
		{Method: fiber.MethodPost, Path: "/auth/login", Public: true, Handler: a.Login},
		{Method: fiber.MethodPost, Path: "/auth/password/change", Handler: a.ChangePassword},

		{Method: fiber.MethodGet, Path: "/users", Roles: staff, Handler: u.List},
		{Method: fiber.MethodGet, Path: "/users/profile", Handler: u.Profile},
		{Method: fiber.MethodGet, Path: "/users/role/:role", Roles: staff, Handler: u.ByRole},
		{Method: fiber.MethodPut, Path: "/users/role", Roles: adminOnly, Handler: u.UpdateRole},

		{Method: fiber.MethodGet, Path: "/admin/dashboard", Roles: adminOnly, Handler: adm.Dashboard},
		{Method: fiber.MethodGet, Path: "/admin/system-settings", Roles: adminOnly, Handler: adm.SystemSettings},
		{Method: fiber.MethodGet, Path: "/admin/users", Roles: adminOnly, Handler: adm.Users},
		{Method: fiber.MethodPost, Path: "/admin/users", Roles: adminOnly, Handler: adm.CreateUser},
		{Method: fiber.MethodPut, Path: "/admin/users/:id/role", Roles: adminOnly, Handler: adm.UpdateUserRole},
		{Method: fiber.MethodDelete, Path: "/admin/users/:id", Roles: adminOnly, Handler: adm.DeleteUser},
		{Method: fiber.MethodGet, Path: "/admin/audit-logs", Roles: adminOnly, Handler: adm.AuditLogs},
		{Method: fiber.MethodPut, Path: "/admin/system-config", Roles: adminOnly, Handler: adm.UpdateSystemConfig},
		{Method: fiber.MethodGet, Path: "/admin/reports/:type", Roles: adminOnly, Handler: adm.Report},

		{Method: fiber.MethodGet, Path: "/manager/dashboard", Roles: staff, Handler: m.Dashboard},
		{Method: fiber.MethodGet, Path: "/manager/team", Roles: staff, Handler: m.Team},
		{Method: fiber.MethodGet, Path: "/manager/employees", Roles: staff, Handler: m.Employees},
		{Method: fiber.MethodGet, Path: "/manager/leave-requests", Roles: staff, Handler: m.LeaveRequests},
		{Method: fiber.MethodPut, Path: "/manager/leave-requests/:id/approve", Roles: staff, Handler: m.DecideLeave},
		{Method: fiber.MethodGet, Path: "/manager/reports", Roles: staff, Handler: m.Reports},
		{Method: fiber.MethodGet, Path: "/manager/employees/:id/performance", Roles: staff, Handler: m.EmployeePerformance},
		{Method: fiber.MethodGet, Path: "/manager/schedules", Roles: staff, Handler: m.Schedules},
		{Method: fiber.MethodPost, Path: "/manager/announcements", Roles: staff, Handler: m.CreateAnnouncement},
		{Method: fiber.MethodGet, Path: "/manager/resources", Roles: staff, Handler: m.Resources},

		{Method: fiber.MethodGet, Path: "/employee/dashboard", Roles: employeeOnly, Handler: e.Dashboard},
		{Method: fiber.MethodGet, Path: "/employee/profile", Roles: employeeOnly, Handler: e.Profile},
		{Method: fiber.MethodPut, Path: "/employee/profile", Roles: employeeOnly, Handler: e.UpdateProfile},
		{Method: fiber.MethodGet, Path: "/employee/schedule", Roles: employeeOnly, Handler: e.Schedule},
		{Method: fiber.MethodGet, Path: "/employee/leave-requests", Roles: employeeOnly, Handler: e.LeaveRequests},
		{Method: fiber.MethodPost, Path: "/employee/leave-requests", Roles: employeeOnly, Handler: e.SubmitLeave},
		{Method: fiber.MethodPut, Path: "/employee/leave-requests/:id/cancel", Roles: employeeOnly, Handler: e.CancelLeave},
		{Method: fiber.MethodGet, Path: "/employee/tasks", Roles: employeeOnly, Handler: e.Tasks},
		{Method: fiber.MethodPut, Path: "/employee/tasks/:id/status", Roles: employeeOnly, Handler: e.UpdateTaskStatus},
		{Method: fiber.MethodGet, Path: "/employee/timesheet", Roles: employeeOnly, Handler: e.Timesheet},
		{Method: fiber.MethodPost, Path: "/employee/timesheet", Roles: employeeOnly, Handler: e.SubmitTimeEntry},
		{Method: fiber.MethodGet, Path: "/employee/announcements", Roles: employeeOnly, Handler: e.Announcements},
		{Method: fiber.MethodPut, Path: "/employee/announcements/:id/read", Roles: employeeOnly, Handler: e.MarkAnnouncementRead},
		{Method: fiber.MethodGet, Path: "/employee/resources", Roles: employeeOnly, Handler: e.Resources},
		{Method: fiber.MethodPost, Path: "/employee/issues", Roles: employeeOnly, Handler: e.ReportIssue},
	}
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	if cfg.AuthRateLimit > 0 {
		window := cfg.AuthRateWindow
		if window <= 0 {
			window = time.Minute
		}
		app.Group("/auth", authRateLimiter(cfg.AuthRateLimit, window))
	}

	for _, route := range Routes(cfg) {
		chain := []fiber.Handler{}
		if !route.Public {
			chain = append(chain, cfg.AuthMiddleware.Handle, auth.RequireRoles(route.Roles...))
		}
		chain = append(chain, route.Handler)
		app.Add(route.Method, route.Path, chain...)
	}
}
