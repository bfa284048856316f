package generate

import "errors"

var (
	// ErrProviderNotConfigured is returned when no language model provider has an API key
	ErrProviderNotConfigured = errors.New("no language model provider is configured")

	// ErrProviderAuth is returned when a provider rejects the API key
	ErrProviderAuth = errors.New("language model provider rejected the API key")

	// ErrProviderQuota is returned when a provider reports rate limiting or exhausted quota
	ErrProviderQuota = errors.New("language model provider quota exceeded")

	// ErrModelNotFound is returned when the configured model does not exist at the provider
	ErrModelNotFound = errors.New("language model not found")

	// ErrProviderFailed is returned for any other provider failure
	ErrProviderFailed = errors.New("language model request failed")

	// ErrInvalidModelOutput is returned when the model reply cannot be repaired
	// into JSON matching the expected shape
	ErrInvalidModelOutput = errors.New("model returned invalid JSON")

	// ErrMissingContent is returned when a caption request carries no content
	ErrMissingContent = errors.New("content value is required")
)
