package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Fleetledger"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Port         int    `envconfig:"DB_PORT" default:"5432"`
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:""`
		Name         string `envconfig:"DB_NAME" default:"fleetledger"`
		SSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		Migrate      bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Import struct {
		FallbackCharset string `envconfig:"IMPORT_FALLBACK_CHARSET" default:"windows-1252"`
	}

	Ledger struct {
		OwnerRate string `envconfig:"LEDGER_OWNER_RATE" default:"0.80"`
		AgentRate string `envconfig:"LEDGER_AGENT_RATE" default:"0.10"`
		TimeZone  string `envconfig:"LEDGER_TIMEZONE" default:"UTC"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// PayoutRates parses the owner and agent shares.
func (c *Config) PayoutRates() (owner, agent decimal.Decimal, err error) {
	owner, err = decimal.NewFromString(c.Ledger.OwnerRate)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("parsing LEDGER_OWNER_RATE: %w", err)
	}

	agent, err = decimal.NewFromString(c.Ledger.AgentRate)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("parsing LEDGER_AGENT_RATE: %w", err)
	}

	return owner, agent, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Ledger.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading LEDGER_TIMEZONE: %w", err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if _, _, err := cfg.PayoutRates(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
