// Package relay streams a remote media file back to the caller as an
// attachment, so browsers can save videos from hosts that refuse
// cross-origin downloads.
package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"Viralcraft/internal/core/resolver"
)

// defaultContentType is assumed when the media host does not send one.
const defaultContentType = "video/mp4"

// Download is an open upstream media stream. The caller must close Body.
type Download struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	Filename      string
}

// Service opens media streams for relaying.
type Service interface {
	// Open issues a single GET for mediaURL and returns the live body.
	// Returns ErrMissingURL, ErrInvalidURL or a wrapped ErrUpstreamFailed.
	Open(ctx context.Context, mediaURL, filename string) (*Download, error)
}

type service struct {
	client          *http.Client
	defaultFilename string
}

// ServiceOption configures the service
type ServiceOption func(*service)

// WithHTTPClient replaces the upstream HTTP client (used by tests)
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *service) {
		if client != nil {
			s.client = client
		}
	}
}

// NewService creates a relay service from cfg.
func NewService(cfg Config, opts ...ServiceOption) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid relay config: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.Timeout

	s := &service{
		client:          &http.Client{Transport: transport},
		defaultFilename: cfg.DefaultFilename,
	}
	if s.defaultFilename == "" {
		s.defaultFilename = DefaultFilename
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *service) Open(ctx context.Context, mediaURL, filename string) (*Download, error) {
	mediaURL = strings.TrimSpace(mediaURL)
	if mediaURL == "" {
		return nil, ErrMissingURL
	}
	parsed, err := url.Parse(mediaURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUpstreamFailed, err)
	}
	req.Header.Set("User-Agent", resolver.ChromeUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrUpstreamFailed, http.StatusText(resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return &Download{
		Body:          resp.Body,
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		Filename:      SanitizeFilename(filename, s.defaultFilename),
	}, nil
}

// SanitizeFilename makes name safe to embed in a quoted Content-Disposition
// value. Quotes, backslashes, path separators and control characters are
// dropped; an empty result yields fallback.
func SanitizeFilename(name, fallback string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/':
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.Trim(cleaned, ".")

	if cleaned == "" {
		return fallback
	}
	return truncateUTF8(cleaned, maxFilenameBytes)
}

const maxFilenameBytes = 200

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
