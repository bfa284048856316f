package resolver

import "errors"

var (
	// ErrMissingURL is returned when the resolution request carries no URL
	ErrMissingURL = errors.New("URL is required")

	// ErrInvalidURL is returned when the URL is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrFetchFailed is returned when the page could not be fetched for any reason
	ErrFetchFailed = errors.New("failed to fetch page")

	// ErrFetchTimeout is returned when a page fetch exceeds its timeout
	ErrFetchTimeout = errors.New("page fetch timed out")

	// ErrExternalFailed is returned when the external download service call fails
	ErrExternalFailed = errors.New("external download service failed")

	// ErrUpstreamParse is returned when JSON from the external service or an
	// embedded page blob cannot be decoded
	ErrUpstreamParse = errors.New("failed to parse upstream JSON")

	// ErrPanic is reported to the observer when the cascade panicked
	ErrPanic = errors.New("resolution panicked")
)

// IsInputError reports whether err means the request itself was unusable.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingURL) || errors.Is(err, ErrInvalidURL)
}
