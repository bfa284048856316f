package relay

import "errors"

var (
	// ErrMissingURL is returned when no media URL was supplied
	ErrMissingURL = errors.New("URL is required")

	// ErrInvalidURL is returned when the media URL is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrUpstreamFailed is returned when the media host cannot be reached or
	// answers with a non-2xx status
	ErrUpstreamFailed = errors.New("failed to fetch video")

	// ErrInvalidTimeout is returned when Timeout is not positive
	ErrInvalidTimeout = errors.New("Timeout must be positive")
)
