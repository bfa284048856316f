package relay

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// DefaultFilename is used when the client does not name the download.
const DefaultFilename = "viralcraft_video.mp4"

// Config holds the configuration for the download relay.
type Config struct {
	// Timeout bounds connecting to the media host and receiving its response
	// headers. The body stream itself is bounded only by the client request.
	Timeout time.Duration

	// DefaultFilename names downloads that arrive without a filename.
	DefaultFilename string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		DefaultFilename: DefaultFilename,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeout, c.Timeout)
	}
	return nil
}

// ConfigFromEnv creates a Config from environment variables.
//
// Environment variables:
//   - RELAY_TIMEOUT_SECONDS: upstream connect/header timeout in seconds (default: 30)
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("RELAY_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		} else {
			slog.Warn("[RELAY] invalid RELAY_TIMEOUT_SECONDS value, using default",
				"value", v,
				"default_seconds", int(cfg.Timeout.Seconds()),
				"error", err,
			)
		}
	}

	return cfg
}
