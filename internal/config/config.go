package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Catalog source selectors.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds the application's configuration values, populated from the
// environment. Tags like `envconfig:"HTTP_SERVER_PORT"` name the variable;
// `default:` supplies a fallback when it is unset.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	HttpServer ServerConfig
	Catalog    CatalogConfig
	Postgres   PostgresConfig
}

// ServerConfig holds HTTP server-specific configuration.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// CatalogConfig selects where the product catalog is loaded from.
type CatalogConfig struct {
	Source   string `envconfig:"CATALOG_SOURCE" default:"file"` // "file" or "postgres"
	FilePath string `envconfig:"CATALOG_FILE" default:"./data/products.json"`
}

// PostgresConfig holds the catalog database connection details. Only
// validated when CATALOG_SOURCE=postgres.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	DBName   string `envconfig:"POSTGRES_DBNAME"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

// Load initializes the configuration from environment variables. It should be
// called once during application startup.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	switch cfg.Catalog.Source {
	case SourceFile:
		if cfg.Catalog.FilePath == "" {
			return nil, fmt.Errorf("CATALOG_FILE must be set when CATALOG_SOURCE=file")
		}
	case SourcePostgres:
		if cfg.Postgres.Host == "" || cfg.Postgres.User == "" || cfg.Postgres.DBName == "" {
			return nil, fmt.Errorf("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DBNAME must be set when CATALOG_SOURCE=postgres")
		}
	default:
		return nil, fmt.Errorf("invalid CATALOG_SOURCE: %s (expected %q or %q)",
			cfg.Catalog.Source, SourceFile, SourcePostgres)
	}

	return &cfg, nil
}
