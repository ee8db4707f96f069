package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	HTTP     HTTPConfig
	Seed     SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string `envconfig:"APP_NAME" default:"workforce-service"`
	Env     string `envconfig:"APP_ENV" default:"development"`
	Host    string `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port    string `envconfig:"APP_PORT" default:"8080"`
	Version string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// PostgresConfig holds DB connection values. An empty DSN selects the
// in-memory user store.
type PostgresConfig struct {
	DSN             string        `envconfig:"POSTGRES_DSN"`
	MaxConns        int32         `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
	MinConns        int32         `envconfig:"POSTGRES_MIN_CONNS" default:"2"`
	RunMigrations   bool          `envconfig:"POSTGRES_RUN_MIGRATIONS" default:"true"`
	MigrationsDir   string        `envconfig:"POSTGRES_MIGRATIONS_DIR" default:"migrations"`
	ConnMaxIdleTime time.Duration `envconfig:"POSTGRES_CONN_MAX_IDLE" default:"30s"`
	ConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFE" default:"5m"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret         string        `envconfig:"AUTH_JWT_SECRET" default:"dev-secret"`
	AccessTokenTTL    time.Duration `envconfig:"AUTH_ACCESS_TOKEN_TTL" default:"168h"`
	BcryptCost        int           `envconfig:"AUTH_BCRYPT_COST" default:"10"`
	MaxLoginAttempts  int           `envconfig:"AUTH_MAX_LOGIN_ATTEMPTS" default:"5"`
	LoginLockout      time.Duration `envconfig:"AUTH_LOGIN_LOCKOUT" default:"15m"`
	AllowSelfRole     bool          `envconfig:"AUTH_ALLOW_SELF_ROLE" default:"false"`
	PasswordMinLength int           `envconfig:"AUTH_PASSWORD_MIN_LENGTH" default:"5"`
}

// HTTPConfig tunes the HTTP surface.
type HTTPConfig struct {
	RequestTimeout time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"30s"`
	AuthRateLimit  int           `envconfig:"HTTP_AUTH_RATE_LIMIT" default:"30"`
	AuthRateWindow time.Duration `envconfig:"HTTP_AUTH_RATE_WINDOW" default:"1m"`
}

// SeedConfig describes the bootstrap administrator.
type SeedConfig struct {
	AdminEmail     string `envconfig:"SEED_ADMIN_EMAIL" default:"admin@lrms.com"`
	AdminPassword  string `envconfig:"SEED_ADMIN_PASSWORD" default:"admin123"`
	AdminFirstName string `envconfig:"SEED_ADMIN_FIRST_NAME" default:"Admin"`
	AdminLastName  string `envconfig:"SEED_ADMIN_LAST_NAME" default:"User"`
}

const defaultJWTSecret = "dev-secret"

// Load reads configuration from the environment (and an optional .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot run safely.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must be set")
	}
	if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return errors.New("AUTH_JWT_SECRET must be overridden in production")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return errors.New("AUTH_ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c != nil && c.App.Env == "production"
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}
