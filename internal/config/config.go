// Package config loads process configuration from the environment and an
// optional YAML policy file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends for the autosave slot.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config controls the wizard host.
type Config struct {
	Port       string `env:"WIZARD_PORT"        envDefault:"8080"`
	Storage    string `env:"WIZARD_STORAGE"     envDefault:"memory"`
	StorageDir string `env:"WIZARD_STORAGE_DIR" envDefault:"./data/autosave"`
	SQLitePath string `env:"WIZARD_SQLITE_PATH" envDefault:"./data/autosave.db"`
	PolicyFile string `env:"WIZARD_POLICY_FILE"`
	LogLevel   string `env:"WIZARD_LOG_LEVEL"   envDefault:"info"`

	AutoSaveKey       string        `env:"WIZARD_AUTOSAVE_KEY"        envDefault:"election_autosave"`
	AutoSaveDelay     time.Duration `env:"WIZARD_AUTOSAVE_DELAY"      envDefault:"2s"`
	AutoSaveMaxAge    time.Duration `env:"WIZARD_AUTOSAVE_MAX_AGE"    envDefault:"24h"`
	AutoSaveRecentAge time.Duration `env:"WIZARD_AUTOSAVE_RECENT_AGE" envDefault:"1h"`

	OTelEndpoint    string `env:"WIZARD_OTEL_ENDPOINT"`
	OTelServiceName string `env:"WIZARD_OTEL_SERVICE_NAME" envDefault:"ballotwizard"`

	Postgres Postgres
}

// Postgres holds the connection settings shared with the migrations command.
type Postgres struct {
	DB       string `env:"POSTGRES_DB"`
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
}

// ConnString renders a lib/pq connection URL.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

// ParseEnv loads Config from environment variables and validates it.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageMemory, StorageFile, StorageSQLite:
	case StoragePostgres:
		if c.Postgres.DB == "" {
			return fmt.Errorf("POSTGRES_DB is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	if c.AutoSaveDelay <= 0 {
		return fmt.Errorf("autosave delay must be positive")
	}
	if c.AutoSaveRecentAge > c.AutoSaveMaxAge {
		return fmt.Errorf("autosave recent age cannot exceed max age")
	}
	return nil
}
