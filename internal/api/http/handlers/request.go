package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lrms/workforce-service/internal/api/dto"
	"github.com/lrms/workforce-service/internal/auth"
	apperrors "github.com/lrms/workforce-service/pkg/util"
)

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(req)
}

func currentPrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: c.Params(name)})
	}
	return id, nil
}

func principalView(p *auth.Principal) fiber.Map {
	return fiber.Map{"id": p.ID, "email": p.Email, "role": p.Role}
}
