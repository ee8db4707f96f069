package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lrms/workforce-service/internal/auth"
	"github.com/lrms/workforce-service/internal/config"
	"github.com/lrms/workforce-service/internal/domain"
	"github.com/lrms/workforce-service/internal/events"
	"github.com/lrms/workforce-service/internal/repository"
	apperrors "github.com/lrms/workforce-service/pkg/util"
)

// ErrInvalidCredentials is returned by VerifyCredentials for an unknown email
// and for a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// AuthResult is a freshly issued token together with its user.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration, login and token issuance.
type AuthService struct {
	users         repository.UserRepository
	hasher        *auth.PasswordHasher
	tokenMgr      *auth.TokenManager
	throttle      *LoginThrottle
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	allowSelfRole bool
	minPassword   int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.PasswordHasher
	Throttle   *LoginThrottle
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher(logger)
	}
	return &AuthService{
		users:         deps.UserRepo,
		hasher:        hasher,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL),
		throttle:      deps.Throttle,
		dispatcher:    dispatcher,
		logger:        logger,
		allowSelfRole: cfg.Auth.AllowSelfRole,
		minPassword:   cfg.Auth.PasswordMinLength,
	}
}

// Register creates an employee account and signs the caller in. A requested
// role is only honoured when self role selection is enabled.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if !s.allowSelfRole || in.Role == "" {
		in.Role = domain.RoleEmployee
	}
	user, err := s.createUser(ctx, in)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventUserRegistered, user.ID,
		events.Actor{UserID: user.ID, Email: user.Email, Role: user.Role},
		events.UserPayload{Email: user.Email, Role: user.Role}))

	return s.IssueToken(user)
}

// CreateUser creates an account with the requested role on behalf of an admin.
func (s *AuthService) CreateUser(ctx context.Context, actor *auth.Principal, in RegisterInput) (*domain.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleEmployee
	}
	user, err := s.createUser(ctx, in)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventUserCreated, user.ID, actorOf(actor),
		events.UserPayload{Email: user.Email, Role: user.Role}))
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": in.Role})
	}
	if err := s.checkPassword(in.Password); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(in.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user with this email already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("user with this email already exists", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user.Sanitized(), nil
}

// VerifyCredentials returns the user, without its hash, when the password
// matches. Unknown emails still pay for one bcrypt comparison.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.CompareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user.Sanitized(), nil
}

// Login authenticates by email and password and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized := domain.NormalizeEmail(email)
	if !s.throttle.Acquire(ctx, normalized) {
		return nil, apperrors.NewTooManyRequests("too many failed login attempts, try again later")
	}

	user, err := s.VerifyCredentials(ctx, normalized, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.publish(ctx, events.New(events.EventUserLoginFailed, 0, events.Actor{Email: normalized}, nil))
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.throttle.Reset(ctx, normalized)
	s.publish(ctx, events.New(events.EventUserLoggedIn, user.ID,
		events.Actor{UserID: user.ID, Email: user.Email, Role: user.Role}, nil))
	return s.IssueToken(user)
}

// IssueToken signs a token for user.
func (s *AuthService) IssueToken(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user.Sanitized(), Token: token, ExpiresAt: exp}, nil
}

// ChangePassword verifies current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, principal *auth.Principal, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.NewInternalError(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewInvalidCredentials()
	}
	if err := s.checkPassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.New(events.EventUserPasswordChanged, user.ID, actorOf(principal), nil))
	return nil
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func (s *AuthService) checkPassword(password string) error {
	if len(password) < s.minPassword {
		return apperrors.NewValidationError("password too short", map[string]any{"min_length": s.minPassword})
	}
	if len(password) > maxPasswordBytes {
		return apperrors.NewValidationError("password too long", map[string]any{"max_length": maxPasswordBytes})
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(principal *auth.Principal) events.Actor {
	if principal == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: principal.ID, Email: principal.Email, Role: principal.Role}
}
