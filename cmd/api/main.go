package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/lrms/workforce-service/internal/api/http"
	"github.com/lrms/workforce-service/internal/api/http/handlers"
	"github.com/lrms/workforce-service/internal/auth"
	"github.com/lrms/workforce-service/internal/config"
	"github.com/lrms/workforce-service/internal/events"
	"github.com/lrms/workforce-service/internal/observability"
	"github.com/lrms/workforce-service/internal/persistence"
	"github.com/lrms/workforce-service/internal/repository"
	"github.com/lrms/workforce-service/internal/service"
	"github.com/lrms/workforce-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var userRepo repository.UserRepository
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pg.PoolHandle())
	} else {
		userRepo = repository.NewMemoryUserRepository()
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	auditService := service.NewAuditService(dispatcher, redis.Client, logger)
	worker.StartAuditWorker(auditService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Hasher:     auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		Throttle:   service.NewLoginThrottle(redis.Client, cfg.Auth.MaxLoginAttempts, cfg.Auth.LoginLockout, logger),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	userService := service.NewUserService(userRepo, dispatcher, logger)
	adminService := service.NewAdminService(*cfg, userService, auditService)
	managerService := service.NewManagerService(userService)
	employeeService := service.NewEmployeeService(userService)

	if !pg.Enabled() {
		if _, err := service.EnsureAdmin(ctx, authService, cfg.Seed, logger); err != nil {
			logger.Fatal("failed to seed admin", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.IsProduction(),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:     logger,
		Metrics:    metrics,
		Timeout:    cfg.HTTP.RequestTimeout,
		Production: cfg.IsProduction(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Admin:          handlers.NewAdminHandler(adminService, userService, authService),
		Manager:        handlers.NewManagerHandler(managerService),
		Employee:       handlers.NewEmployeeHandler(employeeService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
		Metrics:        metrics,
		AuthRateLimit:  cfg.HTTP.AuthRateLimit,
		AuthRateWindow: cfg.HTTP.AuthRateWindow,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
