// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// QueueBackend selects the durable store used for the offline action queue.
type QueueBackend string

const (
	QueueBackendFile   QueueBackend = "file"
	QueueBackendSQLite QueueBackend = "sqlite"
)

// Config holds all client settings. Every field has a usable default so the
// CLI works against a local backend with no environment at all.
type Config struct {
	// APIURL is the backend base URL, including the /api/v1 prefix.
	APIURL  string `env:"BB_API_URL" envDefault:"http://localhost:8000/api/v1"`
	DataDir string `env:"BB_DATA_DIR"`

	// Resilient client settings.
	MaxRetries  int           `env:"BB_MAX_RETRIES" envDefault:"3"`
	BaseDelay   time.Duration `env:"BB_BASE_DELAY" envDefault:"1s"`
	HTTPTimeout time.Duration `env:"BB_HTTP_TIMEOUT" envDefault:"60s"`

	// Offline queue settings.
	QueueBackend QueueBackend `env:"BB_QUEUE_BACKEND" envDefault:"file"`
	QueueMax     int          `env:"BB_QUEUE_MAX" envDefault:"500"`

	// Sync settings. MaxReplayAttempts of 0 means a failed action is retried
	// on every subsequent drain pass with no cap.
	HealthInterval    time.Duration `env:"BB_HEALTH_INTERVAL" envDefault:"30s"`
	MaxReplayAttempts int           `env:"BB_MAX_REPLAY_ATTEMPTS" envDefault:"0"`

	LogLevel string `env:"BB_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".buildbidz")
	}

	switch c.QueueBackend {
	case QueueBackendFile, QueueBackendSQLite:
	default:
		return nil, fmt.Errorf("invalid BB_QUEUE_BACKEND %q (want file or sqlite)", c.QueueBackend)
	}

	return &c, nil
}
