package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lrms/workforce-service/internal/api/http/handlers"
	"github.com/lrms/workforce-service/internal/auth"
	"github.com/lrms/workforce-service/internal/config"
	"github.com/lrms/workforce-service/internal/domain"
	"github.com/lrms/workforce-service/internal/events"
	"github.com/lrms/workforce-service/internal/observability"
	"github.com/lrms/workforce-service/internal/repository"
	"github.com/lrms/workforce-service/internal/service"
)

type testServer struct {
	app    *fiber.App
	auth   *service.AuthService
	tokens *auth.TokenManager
	repo   repository.UserRepository
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()
	cfg := config.Config{
		App: config.AppConfig{Name: "workforce-service", Version: "test"},
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			AccessTokenTTL:    7 * 24 * time.Hour,
			BcryptCost:        bcrypt.MinCost,
			PasswordMinLength: 5,
		},
	}
	logger := zap.NewNop()
	repo := repository.NewMemoryUserRepository()
	dispatcher := events.NewInMemoryDispatcher(logger)
	audit := service.NewAuditService(dispatcher, nil, logger)
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   repo,
		Hasher:     auth.NewPasswordHasher(bcrypt.MinCost),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	users := service.NewUserService(repo, dispatcher, logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{Logger: logger, Metrics: metrics, Timeout: 5 * time.Second})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(users),
		Admin:          handlers.NewAdminHandler(service.NewAdminService(cfg, users, audit), users, authService),
		Manager:        handlers.NewManagerHandler(service.NewManagerService(users)),
		Employee:       handlers.NewEmployeeHandler(service.NewEmployeeService(users)),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
		Metrics:        metrics,
		AuthRateLimit:  rateLimit,
		AuthRateWindow: time.Minute,
	})
	return &testServer{app: app, auth: authService, tokens: authService.TokenManager(), repo: repo}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (s *testServer) seedAdmin(t *testing.T) (*domain.User, string) {
	t.Helper()
	admin, err := s.auth.CreateUser(context.Background(), nil, service.RegisterInput{
		Email: "admin@lrms.com", Password: "admin123", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	result, err := s.auth.IssueToken(admin)
	require.NoError(t, err)
	return admin, result.Token
}

func errorCode(body map[string]any) string {
	errBody, _ := body["error"].(map[string]any)
	code, _ := errBody["code"].(string)
	return code
}

func TestRegisterLoginAndRoleUpdateFlow(t *testing.T) {
	s := newTestServer(t, 0)
	admin, adminToken := s.seedAdmin(t)

	status, body := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "alice@x.com", "password": "pw123",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.NotEmpty(t, body["access_token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "employee", user["role"])
	assert.NotContains(t, user, "password_hash")
	aliceID := int64(user["id"].(float64))

	status, body = s.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "alice@x.com", "password": "wrongpw",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(body))

	status, body = s.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "alice@x.com", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, status, body)
	principal, err := s.tokens.ParseToken(body["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, principal.Role)
	aliceToken := body["access_token"].(string)

	status, body = s.do(t, http.MethodPut, "/users/role", adminToken, map[string]any{
		"userId": aliceID, "role": "manager",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "manager", body["user"].(map[string]any)["role"])
	stored, err := s.repo.GetByID(context.Background(), aliceID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, stored.Role)

	status, body = s.do(t, http.MethodPut, "/users/role", adminToken, map[string]any{
		"userId": admin.ID, "role": "employee",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	status, _ = s.do(t, http.MethodPut, "/users/role", aliceToken, map[string]any{
		"userId": admin.ID, "role": "employee",
	})
	assert.Equal(t, http.StatusForbidden, status, "role check precedes the self guard")
}

func TestRegisterDuplicateReturnsConflict(t *testing.T) {
	s := newTestServer(t, 0)
	payload := map[string]any{"email": "bob@x.com", "password": "secret1"}

	status, _ := s.do(t, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, status)
	status, body := s.do(t, http.MethodPost, "/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(body))
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t, 0)
	status, body := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{"email": "not-an-email", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestProtectedRoutesRequireValidToken(t *testing.T) {
	s := newTestServer(t, 0)

	status, body := s.do(t, http.MethodGet, "/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, _ = s.do(t, http.MethodGet, "/users/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	expired, _, err := s.tokens.WithClock(func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }).
		GenerateToken(&domain.User{ID: 1, Email: "a@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	status, _ = s.do(t, http.MethodGet, "/admin/dashboard", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoleTable(t *testing.T) {
	s := newTestServer(t, 0)
	_, adminToken := s.seedAdmin(t)
	token := func(role domain.Role) string {
		tok, _, err := s.tokens.GenerateToken(&domain.User{ID: 1000, Email: string(role) + "@x.com", Role: role})
		require.NoError(t, err)
		return tok
	}

	cases := []struct {
		path   string
		token  string
		status int
	}{
		{"/admin/dashboard", adminToken, http.StatusOK},
		{"/admin/dashboard", token(domain.RoleManager), http.StatusForbidden},
		{"/manager/dashboard", token(domain.RoleManager), http.StatusOK},
		{"/manager/dashboard", adminToken, http.StatusOK},
		{"/manager/dashboard", token(domain.RoleEmployee), http.StatusForbidden},
		{"/employee/tasks", token(domain.RoleEmployee), http.StatusOK},
		{"/employee/tasks", adminToken, http.StatusForbidden},
		{"/users", token(domain.RoleEmployee), http.StatusForbidden},
		{"/users", token(domain.RoleManager), http.StatusOK},
		{"/users/role/intern", adminToken, http.StatusBadRequest},
	}
	for _, tc := range cases {
		status, _ := s.do(t, http.MethodGet, tc.path, tc.token, nil)
		assert.Equal(t, tc.status, status, tc.path)
	}

	issue := map[string]any{
		"title": "VPN drops", "description": "Disconnects hourly", "priority": "High", "category": "Network",
	}
	for _, tc := range []struct {
		token  string
		status int
	}{
		{token(domain.RoleEmployee), http.StatusCreated},
		{token(domain.RoleManager), http.StatusForbidden},
		{adminToken, http.StatusForbidden},
		{"", http.StatusUnauthorized},
	} {
		status, _ := s.do(t, http.MethodPost, "/employee/issues", tc.token, issue)
		assert.Equal(t, tc.status, status, "POST /employee/issues")
	}
}

func TestEmployeeReportsIssue(t *testing.T) {
	s := newTestServer(t, 0)
	tok, _, err := s.tokens.GenerateToken(&domain.User{ID: 5, Email: "emp@x.com", Role: domain.RoleEmployee})
	require.NoError(t, err)

	status, body := s.do(t, http.MethodPost, "/employee/issues", tok, map[string]any{
		"title": "VPN drops", "description": "Disconnects hourly", "priority": "High", "category": "Network",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "emp@x.com", body["employee"])
	issue := body["issue"].(map[string]any)
	assert.Equal(t, "Open", issue["status"])
	assert.Equal(t, "Network", issue["category"])
	assert.NotEmpty(t, issue["id"])

	status, body = s.do(t, http.MethodPost, "/employee/issues", tok, map[string]any{"title": "no details"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestOverlongPasswordIsAValidationError(t *testing.T) {
	s := newTestServer(t, 0)
	_, adminToken := s.seedAdmin(t)

	status, body := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "long@x.com", "password": strings.Repeat("a", 80),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	// 40 runes but 80 bytes: passes the payload check, caught by the byte limit.
	status, body = s.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "wide@x.com", "password": strings.Repeat("é", 40),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, body = s.do(t, http.MethodPost, "/admin/users", adminToken, map[string]any{
		"email": "wide@x.com", "password": strings.Repeat("é", 40), "role": "manager",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, body = s.do(t, http.MethodPost, "/auth/password/change", adminToken, map[string]any{
		"current_password": "admin123", "new_password": strings.Repeat("é", 40),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestAdminUsersReportsStoreTotal(t *testing.T) {
	s := newTestServer(t, 0)
	_, adminToken := s.seedAdmin(t)
	ctx := context.Background()
	for i := 0; i < 105; i++ {
		require.NoError(t, s.repo.Create(ctx, &domain.User{
			Email: "user" + strconv.Itoa(i) + "@x.com", PasswordHash: "x", Role: domain.RoleEmployee,
		}))
	}

	status, body := s.do(t, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(106), body["totalUsers"])
	assert.Len(t, body["users"], 100)
}

func TestAdminUserLifecycle(t *testing.T) {
	s := newTestServer(t, 0)
	admin, adminToken := s.seedAdmin(t)

	status, body := s.do(t, http.MethodPost, "/admin/users", adminToken, map[string]any{
		"email": "carol@x.com", "password": "secret1", "role": "manager",
	})
	require.Equal(t, http.StatusCreated, status, body)
	created := body["user"].(map[string]any)
	assert.Equal(t, "manager", created["role"])
	carolID := int64(created["id"].(float64))

	status, _ = s.do(t, http.MethodPut, "/admin/users/999/role", adminToken, map[string]any{"role": "employee"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodDelete, "/admin/users/"+itoa(admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = s.do(t, http.MethodDelete, "/admin/users/"+itoa(carolID), adminToken, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "carol@x.com", body["deletedUser"].(map[string]any)["email"])

	status, _ = s.do(t, http.MethodDelete, "/admin/users/"+itoa(carolID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	s := newTestServer(t, 0)
	status, body := s.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServer(t, 2)
	payload := map[string]any{"email": "ghost@x.com", "password": "whatever"}

	for i := 0; i < 2; i++ {
		status, _ := s.do(t, http.MethodPost, "/auth/login", "", payload)
		assert.Equal(t, http.StatusUnauthorized, status)
	}
	status, body := s.do(t, http.MethodPost, "/auth/login", "", payload)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", errorCode(body))
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, 0)

	status, body := s.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = s.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "workforce_http_requests_total")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
