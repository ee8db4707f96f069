package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lrms/workforce-service/internal/auth"
	"github.com/lrms/workforce-service/internal/domain"
	"github.com/lrms/workforce-service/internal/events"
	"github.com/lrms/workforce-service/internal/repository"
	apperrors "github.com/lrms/workforce-service/pkg/util"
)

// UserService manages user accounts after sign-up.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher(logger)
	}
	return &UserService{users: users, dispatcher: dispatcher, logger: logger}
}

// List returns users newest first, without password hashes.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ListByRole returns users holding role.
func (s *UserService) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}
	return s.List(ctx, repository.UserFilter{Role: &role})
}

// Get loads a single user without its hash.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return user.Sanitized(), nil
}

// UpdateRole changes the role of target. The actor may never target itself.
// Concurrent updates to the same user are last-write-wins.
func (s *UserService) UpdateRole(ctx context.Context, actor *auth.Principal, targetID int64, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}
	if err := auth.GuardSelfAction(actor.ID, targetID, domain.SelfActionChangeRole); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	oldRole := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFoundOrInternal(err)
	}

	s.logger.Info("user role updated",
		zap.Int64("actor_id", actor.ID),
		zap.Int64("user_id", user.ID),
		zap.String("old_role", string(oldRole)),
		zap.String("new_role", string(role)))
	_ = s.dispatcher.Publish(ctx, events.New(events.EventUserRoleChanged, user.ID, actorOf(actor),
		events.RoleChangedPayload{OldRole: oldRole, NewRole: role}))
	return user.Sanitized(), nil
}

// Delete removes target. The actor may never delete itself.
func (s *UserService) Delete(ctx context.Context, actor *auth.Principal, targetID int64) (*domain.User, error) {
	if err := auth.GuardSelfAction(actor.ID, targetID, domain.SelfActionDelete); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return nil, notFoundOrInternal(err)
	}

	s.logger.Info("user deleted", zap.Int64("actor_id", actor.ID), zap.Int64("user_id", targetID))
	_ = s.dispatcher.Publish(ctx, events.New(events.EventUserDeleted, targetID, actorOf(actor),
		events.UserPayload{Email: user.Email, Role: user.Role}))
	return user.Sanitized(), nil
}

// UpdateProfile sets the non-empty name fields of the caller's own account.
func (s *UserService) UpdateProfile(ctx context.Context, actor *auth.Principal, firstName, lastName string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFoundOrInternal(err)
	}
	_ = s.dispatcher.Publish(ctx, events.New(events.EventUserProfileUpdated, user.ID, actorOf(actor), nil))
	return user.Sanitized(), nil
}

// RoleDistribution counts users per role concurrently.
func (s *UserService) RoleDistribution(ctx context.Context) (domain.RoleDistribution, error) {
	var dist domain.RoleDistribution
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, role *domain.Role) {
		g.Go(func() error {
			n, err := s.users.Count(gctx, role)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	admin, manager, employee := domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee
	count(&dist.Total, nil)
	count(&dist.Admins, &admin)
	count(&dist.Managers, &manager)
	count(&dist.Employees, &employee)

	if err := g.Wait(); err != nil {
		return domain.RoleDistribution{}, apperrors.NewInternalError(err)
	}
	return dist, nil
}

// CountRole counts users holding role.
func (s *UserService) CountRole(ctx context.Context, role domain.Role) (int64, error) {
	n, err := s.users.Count(ctx, &role)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return n, nil
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("user", nil)
	}
	return apperrors.NewInternalError(err)
}

func isNotFound(err error) bool {
	return apperrors.HasCode(err, "NOT_FOUND")
}
