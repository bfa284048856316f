package generate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config validation errors
var (
	// ErrInvalidTimeout is returned when Timeout is not positive
	ErrInvalidTimeout = errors.New("Timeout must be positive")
	// ErrMissingBaseURL is returned when a configured provider has no base URL
	ErrMissingBaseURL = errors.New("BaseURL is required for a configured provider")
	// ErrMissingModel is returned when a configured provider has no model for a task
	ErrMissingModel = errors.New("a model is required for every task")
)

// Provider endpoint defaults. Both speak the OpenAI chat completions protocol.
const (
	DefaultGeminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultGeminiCaptionModel = "gemini-flash-latest"
	DefaultGeminiPromptModel  = "gemini-1.5-pro"

	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
)

// placeholderKeys are template values from sample .env files; they count as unset.
var placeholderKeys = map[string]bool{
	"your_gemini_api_key_here": true,
	"your_groq_api_key_here":   true,
}

// ProviderConfig describes one OpenAI-compatible chat completion endpoint.
type ProviderConfig struct {
	// Name is used in logs and error messages.
	Name string

	// APIKey enables the provider. Empty disables it.
	APIKey string

	// BaseURL is the OpenAI-compatible API root.
	BaseURL string

	// CaptionModel and PromptModel pick the model per task.
	CaptionModel string
	PromptModel  string

	// Temperature is sent when positive.
	Temperature float64

	// MaxTokens is sent when positive.
	MaxTokens int64

	// JSONMode asks the provider for a JSON object response format.
	JSONMode bool
}

// Enabled reports whether the provider has a usable API key.
func (p ProviderConfig) Enabled() bool {
	return p.APIKey != "" && !placeholderKeys[p.APIKey]
}

func (p ProviderConfig) validate() error {
	if !p.Enabled() {
		return nil
	}
	if p.BaseURL == "" {
		return fmt.Errorf("%w: provider %s", ErrMissingBaseURL, p.Name)
	}
	if p.CaptionModel == "" || p.PromptModel == "" {
		return fmt.Errorf("%w: provider %s", ErrMissingModel, p.Name)
	}
	return nil
}

// Config holds the configuration for content generation.
type Config struct {
	// Primary is tried first for every task.
	Primary ProviderConfig

	// Fallback is tried when the primary provider fails.
	Fallback ProviderConfig

	// Timeout bounds a single provider call.
	Timeout time.Duration
}

// DefaultConfig returns a Config with both providers described but no keys set.
func DefaultConfig() Config {
	return Config{
		Primary: ProviderConfig{
			Name:         "gemini",
			BaseURL:      DefaultGeminiBaseURL,
			CaptionModel: DefaultGeminiCaptionModel,
			PromptModel:  DefaultGeminiPromptModel,
		},
		Fallback: ProviderConfig{
			Name:         "groq",
			BaseURL:      DefaultGroqBaseURL,
			CaptionModel: DefaultGroqModel,
			PromptModel:  DefaultGroqModel,
			Temperature:  0.7,
			MaxTokens:    2048,
			JSONMode:     true,
		},
		Timeout: 60 * time.Second,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeout, c.Timeout)
	}
	if err := c.Primary.validate(); err != nil {
		return err
	}
	return c.Fallback.validate()
}

// ConfigFromEnv creates a Config from environment variables.
// Uses defaults for any missing or invalid environment variables.
//
// Environment variables:
//   - GEMINI_API_KEY: enables the primary provider
//   - GEMINI_BASE_URL: primary endpoint (default: Gemini OpenAI-compatible API)
//   - GEMINI_MODEL: caption model (default: gemini-flash-latest)
//   - GEMINI_PROMPT_MODEL: prompt expansion model (default: gemini-1.5-pro)
//   - GROQ_API_KEY: enables the fallback provider
//   - GROQ_BASE_URL: fallback endpoint (default: Groq OpenAI-compatible API)
//   - GROQ_MODEL: model for both tasks (default: llama-3.3-70b-versatile)
//   - GENERATE_TIMEOUT_SECONDS: per-call timeout (default: 60)
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Primary.APIKey = os.Getenv("GEMINI_API_KEY")
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.Primary.BaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Primary.CaptionModel = v
	}
	if v := os.Getenv("GEMINI_PROMPT_MODEL"); v != "" {
		cfg.Primary.PromptModel = v
	}

	cfg.Fallback.APIKey = os.Getenv("GROQ_API_KEY")
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		cfg.Fallback.BaseURL = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.Fallback.CaptionModel = v
		cfg.Fallback.PromptModel = v
	}

	if v := os.Getenv("GENERATE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		} else {
			slog.Warn("[GENERATE] invalid GENERATE_TIMEOUT_SECONDS value, using default",
				"value", v,
				"default_seconds", int(cfg.Timeout.Seconds()),
				"error", err,
			)
		}
	}

	return cfg
}
