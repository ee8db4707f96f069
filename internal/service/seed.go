package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lrms/workforce-service/internal/config"
	"github.com/lrms/workforce-service/internal/domain"
	apperrors "github.com/lrms/workforce-service/pkg/util"
)

// EnsureAdmin creates the bootstrap administrator unless its email is
// already registered. It reports whether an account was created.
func EnsureAdmin(ctx context.Context, authService *AuthService, seed config.SeedConfig, logger *zap.Logger) (bool, error) {
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		return false, nil
	}
	user, err := authService.CreateUser(ctx, nil, RegisterInput{
		Email:     seed.AdminEmail,
		Password:  seed.AdminPassword,
		FirstName: seed.AdminFirstName,
		LastName:  seed.AdminLastName,
		Role:      domain.RoleAdmin,
	})
	if err != nil {
		if apperrors.HasCode(err, "CONFLICT") {
			logger.Info("admin user already exists", zap.String("email", domain.NormalizeEmail(seed.AdminEmail)))
			return false, nil
		}
		return false, err
	}
	logger.Info("admin user created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return true, nil
}
