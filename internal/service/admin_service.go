package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lrms/workforce-service/internal/config"
)

// PasswordPolicy describes the password rules shown to admins.
type PasswordPolicy struct {
	MinLength           int  `json:"minLength"`
	RequireNumbers      bool `json:"requireNumbers"`
	RequireSpecialChars bool `json:"requireSpecialChars"`
}

// SystemSettings is the read-only settings view for admins.
type SystemSettings struct {
	MaintenanceMode         bool           `json:"maintenanceMode"`
	UserRegistrationEnabled bool           `json:"userRegistrationEnabled"`
	PasswordPolicy          PasswordPolicy `json:"passwordPolicy"`
	JWTExpirationTime       string         `json:"jwtExpirationTime"`
	MaxLoginAttempts        int            `json:"maxLoginAttempts"`
	SystemVersion           string         `json:"systemVersion"`
}

// AdminStatistics backs the admin dashboard.
type AdminStatistics struct {
	TotalUsers       int64            `json:"totalUsers"`
	RoleDistribution map[string]int64 `json:"roleDistribution"`
	SystemStatus     string           `json:"systemStatus"`
	LastLogin        string           `json:"lastLogin"`
}

// Report types understood by GenerateReport.
const (
	ReportUsers    = "users"
	ReportActivity = "activity"
	ReportSecurity = "security"
)

// AdminService produces the admin dashboard views.
type AdminService struct {
	users    *UserService
	audit    *AuditService
	settings SystemSettings
	now      func() time.Time
}

// NewAdminService constructs the service.
func NewAdminService(cfg config.Config, users *UserService, audit *AuditService) *AdminService {
	return &AdminService{
		users: users,
		audit: audit,
		settings: SystemSettings{
			MaintenanceMode:         false,
			UserRegistrationEnabled: true,
			PasswordPolicy: PasswordPolicy{
				MinLength:      cfg.Auth.PasswordMinLength,
				RequireNumbers: true,
			},
			JWTExpirationTime: formatTTL(cfg.Auth.AccessTokenTTL),
			MaxLoginAttempts:  cfg.Auth.MaxLoginAttempts,
			SystemVersion:     cfg.App.Version,
		},
		now: time.Now,
	}
}

// Dashboard returns user counts per role.
func (s *AdminService) Dashboard(ctx context.Context) (AdminStatistics, error) {
	dist, err := s.users.RoleDistribution(ctx)
	if err != nil {
		return AdminStatistics{}, err
	}
	return AdminStatistics{
		TotalUsers: dist.Total,
		RoleDistribution: map[string]int64{
			"admins":    dist.Admins,
			"managers":  dist.Managers,
			"employees": dist.Employees,
		},
		SystemStatus: "Active",
		LastLogin:    stamp(s.now),
	}, nil
}

// SystemSettings returns the effective settings.
func (s *AdminService) SystemSettings() SystemSettings {
	return s.settings
}

// AuditLogs returns the latest audit entries.
func (s *AdminService) AuditLogs(ctx context.Context, limit int64) ([]AuditEntry, error) {
	entries, err := s.audit.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GenerateReport builds the named report. ok is false for unknown types.
func (s *AdminService) GenerateReport(ctx context.Context, reportType string) (any, bool, error) {
	switch reportType {
	case ReportUsers:
		dist, err := s.users.RoleDistribution(ctx)
		if err != nil {
			return nil, false, err
		}
		return map[string]any{
			"totalUsers": dist.Total,
			"roleStats": map[string]int64{
				"admins":    dist.Admins,
				"managers":  dist.Managers,
				"employees": dist.Employees,
			},
		}, true, nil
	case ReportActivity:
		return map[string]int{
			"totalLogins":      150,
			"activeUsers":      45,
			"newRegistrations": 12,
		}, true, nil
	case ReportSecurity:
		return map[string]int{
			"failedLoginAttempts":  5,
			"suspiciousActivities": 0,
			"passwordResets":       3,
		}, true, nil
	default:
		return map[string]string{"error": "Report type not found"}, false, nil
	}
}

// Now returns the current service time formatted for payloads.
func (s *AdminService) Now() string {
	return stamp(s.now)
}

func formatTTL(ttl time.Duration) string {
	day := 24 * time.Hour
	if ttl > 0 && ttl%day == 0 {
		return fmt.Sprintf("%dd", ttl/day)
	}
	return ttl.String()
}
