package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config carries every runtime knob of the service, loaded from the
// environment.
type Config struct {
	DatabaseFile string `env:"DATABASE_FILE, default=accounts.db"` // Path to the SQLite database file

	Env       string `env:"ENV, default=dev"`         // Environment (dev, staging, prod)
	LogLevel  string `env:"LOG_LEVEL, default=info"`  // Log level (debug, info, warn, error)
	LogFormat string `env:"LOG_FORMAT, default=json"` // Log format (json, text)

	Port                 int           `env:"PORT, default=8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD, default=10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL, default=1h"`

	// Root bootstrap credentials. When the password is unset, the seeding
	// step is skipped and a fresh deployment has no admin.
	RootUsername string `env:"ROOT_USERNAME, default=root"`
	RootPassword string `env:"ROOT_PASSWORD"`
	RootEmail    string `env:"ROOT_EMAIL, default=root@localhost"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
