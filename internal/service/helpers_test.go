package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lrms/workforce-service/internal/auth"
	"github.com/lrms/workforce-service/internal/config"
	"github.com/lrms/workforce-service/internal/domain"
	"github.com/lrms/workforce-service/internal/events"
	"github.com/lrms/workforce-service/internal/repository"
)

type fixture struct {
	cfg        config.Config
	repo       repository.UserRepository
	dispatcher events.Dispatcher
	auth       *AuthService
	users      *UserService
	published  []events.Event
}

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{Name: "workforce-service", Version: "1.0.0"},
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			AccessTokenTTL:    7 * 24 * time.Hour,
			BcryptCost:        bcrypt.MinCost,
			MaxLoginAttempts:  5,
			LoginLockout:      15 * time.Minute,
			PasswordMinLength: 5,
		},
	}
}

func newFixture(t *testing.T, throttle *LoginThrottle, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	f := &fixture{
		cfg:        cfg,
		repo:       repository.NewMemoryUserRepository(),
		dispatcher: events.NewInMemoryDispatcher(zap.NewNop()),
	}
	for _, eventType := range events.AllEventTypes() {
		f.dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}
	f.auth = NewAuthService(cfg, AuthDependencies{
		UserRepo:   f.repo,
		Hasher:     auth.NewPasswordHasher(bcrypt.MinCost),
		Throttle:   throttle,
		Dispatcher: f.dispatcher,
		Logger:     zap.NewNop(),
	})
	f.users = NewUserService(f.repo, f.dispatcher, zap.NewNop())
	return f
}

func (f *fixture) createUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := f.auth.CreateUser(context.Background(), nil, RegisterInput{
		Email:    email,
		Password: "password",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func principalOf(u *domain.User) *auth.Principal {
	return &auth.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (f *fixture) eventTypes() []events.EventType {
	out := make([]events.EventType, 0, len(f.published))
	for _, e := range f.published {
		out = append(out, e.Type)
	}
	return out
}
