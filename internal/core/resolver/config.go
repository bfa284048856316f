package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config validation errors
var (
	// ErrInvalidFetchTimeout is returned when FetchTimeout is not positive
	ErrInvalidFetchTimeout = errors.New("FetchTimeout must be positive")
	// ErrInvalidExternalTimeout is returned when ExternalTimeout is not positive
	ErrInvalidExternalTimeout = errors.New("ExternalTimeout must be positive")
	// ErrInvalidExternalEndpoint is returned when the external endpoint is not an absolute URL
	ErrInvalidExternalEndpoint = errors.New("ExternalEndpoint must be an absolute http(s) URL")
	// ErrInvalidMaxPageSize is returned when MaxPageSizeMB is not positive
	ErrInvalidMaxPageSize = errors.New("MaxPageSizeMB must be positive")
)

// DefaultExternalEndpoint is the public universal downloader API.
const DefaultExternalEndpoint = "https://api.cobalt.tools/api/json"

// Config holds the configuration for the resolver.
type Config struct {
	// FetchTimeout bounds the single GET of the source page.
	FetchTimeout time.Duration

	// MaxPageSizeMB caps how much of the page body is read.
	MaxPageSizeMB int

	// ExternalEnabled turns the unblocking service strategy on or off.
	ExternalEnabled bool

	// ExternalEndpoint is the URL the unblocking service request is POSTed to.
	ExternalEndpoint string

	// ExternalTimeout bounds the unblocking service call.
	ExternalTimeout time.Duration

	// ExternalQuality is the desired video quality hint sent to the service.
	ExternalQuality string

	// ExternalFilenameStyle is the naming style hint sent to the service.
	ExternalFilenameStyle string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		FetchTimeout:          10 * time.Second,
		MaxPageSizeMB:         10,
		ExternalEnabled:       true,
		ExternalEndpoint:      DefaultExternalEndpoint,
		ExternalTimeout:       10 * time.Second,
		ExternalQuality:       "1080",
		ExternalFilenameStyle: "pretty",
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidFetchTimeout, c.FetchTimeout)
	}
	if c.MaxPageSizeMB <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxPageSize, c.MaxPageSizeMB)
	}
	if c.ExternalEnabled {
		if c.ExternalTimeout <= 0 {
			return fmt.Errorf("%w: got %v", ErrInvalidExternalTimeout, c.ExternalTimeout)
		}
		parsed, err := url.Parse(c.ExternalEndpoint)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("%w: got %q", ErrInvalidExternalEndpoint, c.ExternalEndpoint)
		}
	}
	return nil
}

// ConfigFromEnv creates a Config from environment variables.
// Uses defaults for any missing or invalid environment variables.
//
// Environment variables:
//   - RESOLVER_FETCH_TIMEOUT_SECONDS: page fetch timeout in seconds (default: 10)
//   - RESOLVER_MAX_PAGE_SIZE_MB: max page body read in MB (default: 10)
//   - RESOLVER_EXTERNAL_ENABLED: "true"/"1" to enable the unblocking service (default: true)
//   - RESOLVER_EXTERNAL_ENDPOINT: unblocking service URL (default: cobalt public API)
//   - RESOLVER_EXTERNAL_TIMEOUT_SECONDS: unblocking service timeout in seconds (default: 10)
//   - RESOLVER_EXTERNAL_QUALITY: quality hint (default: "1080")
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("RESOLVER_FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeout = time.Duration(n) * time.Second
		} else {
			slog.Warn("[RESOLVER] invalid RESOLVER_FETCH_TIMEOUT_SECONDS value, using default",
				"value", v,
				"default_seconds", int(cfg.FetchTimeout.Seconds()),
				"error", err,
			)
		}
	}

	if v := os.Getenv("RESOLVER_MAX_PAGE_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxPageSizeMB = n
		} else {
			slog.Warn("[RESOLVER] invalid RESOLVER_MAX_PAGE_SIZE_MB value, using default",
				"value", v,
				"default", cfg.MaxPageSizeMB,
				"error", err,
			)
		}
	}

	if v := os.Getenv("RESOLVER_EXTERNAL_ENABLED"); v != "" {
		cfg.ExternalEnabled = v == "true" || v == "1"
	}

	if v := os.Getenv("RESOLVER_EXTERNAL_ENDPOINT"); v != "" {
		cfg.ExternalEndpoint = v
	}

	if v := os.Getenv("RESOLVER_EXTERNAL_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ExternalTimeout = time.Duration(n) * time.Second
		} else {
			slog.Warn("[RESOLVER] invalid RESOLVER_EXTERNAL_TIMEOUT_SECONDS value, using default",
				"value", v,
				"default_seconds", int(cfg.ExternalTimeout.Seconds()),
				"error", err,
			)
		}
	}

	if v := os.Getenv("RESOLVER_EXTERNAL_QUALITY"); v != "" {
		cfg.ExternalQuality = v
	}

	return cfg
}
