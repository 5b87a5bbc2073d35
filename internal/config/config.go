package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver        string `envconfig:"STORE_DRIVER" default:"memory"`
	DatabaseURL        string `envconfig:"DATABASE_URL" default:""`
	SQLitePath         string `envconfig:"SQLITE_PATH" default:"traduko.db"`
	FirestoreProjectID string `envconfig:"FIRESTORE_PROJECT_ID" default:""`
	DBMaxConns         int32  `envconfig:"DB_MAX_CONNS" default:"8"`

	TranslationProvider string `envconfig:"TRANSLATION_PROVIDER" default:"mymemory"`
	TranslationEndpoint string `envconfig:"TRANSLATION_ENDPOINT" default:""`
	LocalEndpoint       string `envconfig:"LOCAL_TRANSLATION_ENDPOINT" default:""`
	LocalModel          string `envconfig:"LOCAL_TRANSLATION_MODEL" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	driver := strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch driver {
	case "", "memory", "sqlite":
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case "firestore":
		if strings.TrimSpace(c.FirestoreProjectID) == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when STORE_DRIVER=firestore")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER: %q (expected memory, sqlite, postgres or firestore)", c.StoreDriver)
	}

	if driver == "sqlite" && strings.TrimSpace(c.SQLitePath) == "" {
		return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=sqlite")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be >= 1")
	}
	return nil
}
