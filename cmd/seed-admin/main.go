package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/lrms/workforce-service/internal/config"
	"github.com/lrms/workforce-service/internal/observability"
	"github.com/lrms/workforce-service/internal/persistence"
	"github.com/lrms/workforce-service/internal/repository"
	"github.com/lrms/workforce-service/internal/service"
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if !pg.Enabled() {
		logger.Fatal("POSTGRES_DSN is required to seed the admin user")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: repository.NewUserRepository(pg.PoolHandle()),
		Logger:   logger,
	})
	created, err := service.EnsureAdmin(ctx, authService, cfg.Seed, logger)
	if err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}
	if created {
		logger.Warn("change the seeded admin password after first login")
	}
}
