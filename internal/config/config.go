package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fieldwork/internal/database"
)

type Config struct {
	App struct {
		Name    string `envconfig:"APP_NAME" default:"Fieldwork"`
		Port    int    `envconfig:"PORT" default:"8080"`
		Version string `envconfig:"APP_VERSION" default:"1.0.0"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"fieldwork"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

		Migrate bool `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Auth struct {
		// Mutating routes require a bearer token signed with this secret.
		// Empty disables authentication.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	Billing struct {
		DefaultTaxRate decimal.Decimal `envconfig:"BILLING_DEFAULT_TAX_RATE" default:"0.08"`
	}

	RateLimit struct {
		RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
		Burst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
	}

	Metrics struct {
		Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func (c *Config) PoolOptions() database.PoolOptions {
	return database.PoolOptions{
		MaxOpenConns:    c.DB.MaxOpenConns,
		MaxIdleConns:    c.DB.MaxIdleConns,
		ConnMaxLifetime: c.DB.ConnMaxLifetime,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	one := decimal.NewFromInt(1)
	if cfg.Billing.DefaultTaxRate.IsNegative() || cfg.Billing.DefaultTaxRate.GreaterThan(one) {
		return nil, fmt.Errorf("BILLING_DEFAULT_TAX_RATE must be between 0 and 1, got %s", cfg.Billing.DefaultTaxRate)
	}

	return &cfg, nil
}
