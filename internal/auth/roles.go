package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lrms/workforce-service/internal/domain"
	apperrors "github.com/lrms/workforce-service/pkg/util"
)

// RoleSet is the set of roles a route admits. An empty set admits any
// authenticated principal.
type RoleSet map[domain.Role]struct{}

// NewRoleSet builds a RoleSet from roles.
func NewRoleSet(roles ...domain.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// Admits reports whether role satisfies the set.
func (s RoleSet) Admits(role domain.Role) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[role]
	return ok
}

// Authorize admits the principal when its role is in required.
func Authorize(principal *Principal, required RoleSet) error {
	if principal == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !required.Admits(principal.Role) {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}

// GuardSelfAction denies privileged actions a principal targets at itself,
// whatever its role.
func GuardSelfAction(actorID, targetID int64, action domain.SelfAction) error {
	if actorID != targetID {
		return nil
	}
	switch action {
	case domain.SelfActionChangeRole:
		return apperrors.NewForbidden("cannot change your own role")
	case domain.SelfActionDelete:
		return apperrors.NewForbidden("cannot delete your own account")
	default:
		return apperrors.NewForbidden("action not permitted on own account")
	}
}

// RequireRoles ensures the authenticated principal has one of the allowed roles.
// It must run after AuthMiddleware.Handle.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	required := NewRoleSet(allowed...)
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := Authorize(principal, required); err != nil {
			return err
		}
		return c.Next()
	}
}
