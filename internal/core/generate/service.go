// Package generate writes social captions and expands rough video concepts
// into detailed text-to-video prompts using chat completion providers.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service generates content from user input.
type Service interface {
	// GenerateCaptions writes per-network titles, captions and tags.
	GenerateCaptions(ctx context.Context, req CaptionRequest) (*CaptionResult, error)

	// ExpandPrompt turns a concept into a detailed text-to-video prompt.
	ExpandPrompt(ctx context.Context, req PromptRequest) (*PromptResult, error)
}

type service struct {
	providers     []Provider
	prompts       *Prompts
	captionSchema *outputSchema
	promptSchema  *outputSchema
	timeout       time.Duration
}

// NewService creates a generation service that tries providers in order.
// An empty provider list is allowed; every call then fails with
// ErrProviderNotConfigured.
func NewService(providers []Provider, timeout time.Duration) (Service, error) {
	prompts, err := NewPrompts()
	if err != nil {
		return nil, err
	}
	captionSchema, err := loadOutputSchema("caption.json")
	if err != nil {
		return nil, err
	}
	promptSchema, err := loadOutputSchema("prompt.json")
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}

	return &service{
		providers:     providers,
		prompts:       prompts,
		captionSchema: captionSchema,
		promptSchema:  promptSchema,
		timeout:       timeout,
	}, nil
}

// NewServiceFromConfig builds the provider chain from cfg: primary first,
// then fallback, skipping any provider without an API key.
func NewServiceFromConfig(cfg Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generate config: %w", err)
	}

	var providers []Provider
	for _, pc := range []ProviderConfig{cfg.Primary, cfg.Fallback} {
		if pc.Enabled() {
			providers = append(providers, NewChatProvider(pc))
		}
	}
	if len(providers) == 0 {
		slog.Warn("[GENERATE] no language model provider configured, generation endpoints will return 401")
	}

	return NewService(providers, cfg.Timeout)
}

func (s *service) GenerateCaptions(ctx context.Context, req CaptionRequest) (*CaptionResult, error) {
	if strings.TrimSpace(req.Value) == "" {
		return nil, ErrMissingContent
	}
	prompt, err := s.prompts.Caption(req.withDefaults())
	if err != nil {
		return nil, err
	}

	var result CaptionResult
	if err := s.run(ctx, TaskCaption, prompt, s.captionSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ExpandPrompt(ctx context.Context, req PromptRequest) (*PromptResult, error) {
	prompt, err := s.prompts.Scene(req.withDefaults())
	if err != nil {
		return nil, err
	}

	var result PromptResult
	if err := s.run(ctx, TaskPrompt, prompt, s.promptSchema, &result); err != nil {
		return nil, err
	}
	if result.Tips == nil {
		result.Tips = []string{}
	}
	return &result, nil
}

// run asks each provider in turn until one reply decodes against schema.
// A reply that cannot be repaired counts as a provider failure, so the next
// provider still gets a chance. The last provider's error is returned.
func (s *service) run(ctx context.Context, task Task, prompt string, schema *outputSchema, out any) error {
	if len(s.providers) == 0 {
		return ErrProviderNotConfigured
	}

	var lastErr error
	for i, p := range s.providers {
		err := s.attempt(ctx, p, task, prompt, schema, out)
		if err == nil {
			if i > 0 {
				slog.Info("[GENERATE] fallback provider succeeded",
					"provider", p.Name(),
					"task", task,
				)
			}
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if i < len(s.providers)-1 {
			slog.Warn("[GENERATE] provider failed, trying fallback",
				"provider", p.Name(),
				"task", task,
				"error", err,
			)
		}
	}

	slog.Error("[GENERATE] generation failed",
		"task", task,
		"error", lastErr,
	)
	return lastErr
}

func (s *service) attempt(ctx context.Context, p Provider, task Task, prompt string, schema *outputSchema, out any) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := p.Complete(ctx, task, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s: request timed out", ErrProviderFailed, p.Name())
		}
		return err
	}
	if err := schema.decode(raw, out); err != nil {
		return fmt.Errorf("%s: %w", p.Name(), err)
	}
	return nil
}
