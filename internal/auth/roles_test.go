package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrms/workforce-service/internal/domain"
	apperrors "github.com/lrms/workforce-service/pkg/util"
)

func TestAuthorize(t *testing.T) {
	employee := &Principal{ID: 1, Role: domain.RoleEmployee}
	admin := &Principal{ID: 2, Role: domain.RoleAdmin}

	assert.NoError(t, Authorize(employee, NewRoleSet()))
	assert.NoError(t, Authorize(admin, NewRoleSet(domain.RoleAdmin)))
	assert.True(t, apperrors.HasCode(Authorize(employee, NewRoleSet(domain.RoleAdmin, domain.RoleManager)), "FORBIDDEN"))
	assert.True(t, apperrors.HasCode(Authorize(nil, NewRoleSet()), "UNAUTHORIZED"))
}

func TestGuardSelfAction(t *testing.T) {
	assert.NoError(t, GuardSelfAction(1, 2, domain.SelfActionChangeRole))
	assert.NoError(t, GuardSelfAction(1, 2, domain.SelfActionDelete))

	err := GuardSelfAction(5, 5, domain.SelfActionChangeRole)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))
	assert.Contains(t, err.Error(), "own role")

	err = GuardSelfAction(5, 5, domain.SelfActionDelete)
	assert.True(t, apperrors.HasCode(err, "FORBIDDEN"))
	assert.Contains(t, err.Error(), "own account")
}

func TestAuthenticateHeader(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	mw := NewAuthMiddleware(tm)
	token, _, err := tm.GenerateToken(&domain.User{ID: 9, Email: "d@x.com", Role: domain.RoleEmployee})
	require.NoError(t, err)

	principal, err := mw.Authenticate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), principal.ID)

	for _, header := range []string{"", "Bearer", "Basic " + token, token, "Bearer bogus"} {
		_, err := mw.Authenticate(header)
		assert.True(t, apperrors.HasCode(err, "UNAUTHORIZED"), "header %q", header)
	}
}

func TestRequireRolesMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	mw := NewAuthMiddleware(tm)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/admin", mw.Handle, RequireRoles(domain.RoleAdmin), func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.SendString(p.Email)
	})

	issue := func(role domain.Role) string {
		token, _, err := tm.GenerateToken(&domain.User{ID: 1, Email: "u@x.com", Role: role})
		require.NoError(t, err)
		return token
	}

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"employee", "Bearer " + issue(domain.RoleEmployee), http.StatusForbidden},
		{"admin", "Bearer " + issue(domain.RoleAdmin), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
