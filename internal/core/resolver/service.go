package resolver

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Service resolves a page URL into display metadata and, when possible, a
// direct video URL.
type Service interface {
	// Resolve returns an error only for unusable input (ErrMissingURL,
	// ErrInvalidURL). Every other failure produces degraded metadata.
	Resolve(ctx context.Context, sourceURL string) (*MetadataResult, error)
}

type service struct {
	fetcher  PageFetcher
	external ExternalResolver
	observer Observer
}

// ServiceOption configures the service
type ServiceOption func(*service)

// WithObserver sets the diagnostic observer (default: slog-backed)
func WithObserver(observer Observer) ServiceOption {
	return func(s *service) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// NewService creates a resolver. A nil external resolver disables the
// unblocking service strategy.
func NewService(fetcher PageFetcher, external ExternalResolver, opts ...ServiceOption) Service {
	s := &service{
		fetcher:  fetcher,
		external: external,
		observer: NewSlogObserver(nil),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewServiceFromConfig validates cfg and wires the HTTP collaborators.
func NewServiceFromConfig(cfg Config, opts ...ServiceOption) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resolver config: %w", err)
	}

	var external ExternalResolver
	if cfg.ExternalEnabled {
		external = NewCobaltClient(cfg)
	}

	return NewService(NewBrowserFetcher(cfg.FetchTimeout, cfg.MaxPageSizeMB), external, opts...), nil
}

// Resolve runs classify → fetch → external → meta video → platform patterns → normalize.
func (s *service) Resolve(ctx context.Context, sourceURL string) (result *MetadataResult, err error) {
	if _, err := validateSourceURL(sourceURL); err != nil {
		return nil, err
	}

	traceID := uuid.NewString()
	platform := Classify(sourceURL)

	defer func() {
		if r := recover(); r != nil {
			s.observer.Degraded(traceID, sourceURL, fmt.Errorf("%w: %v", ErrPanic, r))
			result, err = degradedResult(platform), nil
		}
	}()

	s.observer.Classified(traceID, sourceURL, platform)

	page, fetchErr := s.fetcher.FetchPage(ctx, sourceURL)
	if fetchErr != nil {
		s.observer.Degraded(traceID, sourceURL, fetchErr)
		return degradedResult(platform), nil
	}

	tags := ExtractMetaTags(page)

	var attempts []Attempt
	record := func(a Attempt) bool {
		attempts = append(attempts, a)
		s.observer.AttemptFinished(traceID, a)
		return a.Outcome == OutcomeHit
	}

	var candidate string
	if s.external != nil && platform.usesExternalService() {
		if a := s.external.Resolve(ctx, sourceURL); record(a) {
			candidate = a.Value
		}
	}

	if candidate == "" {
		if a := extractVideoMeta(page); record(a) {
			candidate = a.Value
		}
	}

	if candidate == "" {
		for _, a := range TryPlatformExtract(platform, page) {
			if record(a) {
				candidate = a.Value
			}
		}
	}

	result = &MetadataResult{
		Title:           tags.Title,
		Thumbnail:       stringPtr(tags.Thumbnail),
		Description:     DescriptionBlocked,
		Platform:        platform,
		PageDescription: tags.Description,
		Attempts:        attempts,
	}
	if result.Title == "" {
		result.Title = fallbackTitle(platform)
	}

	if candidate != "" {
		if videoURL, ok := absoluteVideoURL(candidate, sourceURL); ok {
			result.VideoURL = &videoURL
			result.Description = DescriptionFound
		}
	}

	s.observer.Resolved(traceID, result)
	return result, nil
}

// absoluteVideoURL normalizes candidate and resolves any remaining relative
// reference (e.g. "clip.mp4") against the page, so the result always has a
// scheme and host.
func absoluteVideoURL(candidate, pageURL string) (string, bool) {
	normalized := Normalize(candidate, pageURL)

	ref, err := url.Parse(normalized)
	if err != nil {
		return "", false
	}
	if ref.IsAbs() && ref.Host != "" {
		return normalized, true
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Host == "" {
		return "", false
	}
	return resolved.String(), true
}

func fallbackTitle(platform Platform) string {
	if platform == PlatformYouTube {
		return FallbackTitleYouTube
	}
	return FallbackTitle
}

func degradedResult(platform Platform) *MetadataResult {
	return &MetadataResult{
		Title:       DegradedTitle,
		Description: DegradedDescription,
		Platform:    platform,
		Degraded:    true,
	}
}
