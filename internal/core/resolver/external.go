package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ExternalResolver asks a third-party downloader service for a direct media URL.
type ExternalResolver interface {
	// Resolve never returns an error: failures come back as an OutcomeError attempt.
	Resolve(ctx context.Context, sourceURL string) Attempt
}

const externalStrategy = "external:cobalt"

// cobaltRequest is the JSON body sent to the downloader service
type cobaltRequest struct {
	URL           string `json:"url"`
	VQuality      string `json:"vQuality"`
	FilenameStyle string `json:"filenameStyle"`
}

// cobaltResponse covers the two response shapes we understand
type cobaltResponse struct {
	URL    string `json:"url"`
	Picker []struct {
		URL string `json:"url"`
	} `json:"picker"`
}

// CobaltClient implements ExternalResolver against a cobalt-compatible API.
type CobaltClient struct {
	client        *http.Client
	endpoint      string
	quality       string
	filenameStyle string
	timeout       time.Duration
}

// NewCobaltClient creates a CobaltClient from the resolver configuration.
func NewCobaltClient(cfg Config) *CobaltClient {
	return &CobaltClient{
		client:        &http.Client{Timeout: cfg.ExternalTimeout},
		endpoint:      cfg.ExternalEndpoint,
		quality:       cfg.ExternalQuality,
		filenameStyle: cfg.ExternalFilenameStyle,
		timeout:       cfg.ExternalTimeout,
	}
}

// Resolve POSTs the source URL to the service once.
func (c *CobaltClient) Resolve(ctx context.Context, sourceURL string) Attempt {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(cobaltRequest{
		URL:           sourceURL,
		VQuality:      c.quality,
		FilenameStyle: c.filenameStyle,
	})
	if err != nil {
		return failed(externalStrategy, fmt.Errorf("%w: marshal request: %v", ErrExternalFailed, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return failed(externalStrategy, fmt.Errorf("%w: failed to create request: %v", ErrExternalFailed, err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil || isTimeoutError(err) {
			return failed(externalStrategy, fmt.Errorf("%w: request timed out: %v", ErrExternalFailed, err))
		}
		return failed(externalStrategy, fmt.Errorf("%w: %v", ErrExternalFailed, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failed(externalStrategy, fmt.Errorf("%w: service returned status %d", ErrExternalFailed, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return failed(externalStrategy, fmt.Errorf("%w: failed to read response body: %v", ErrExternalFailed, err))
	}

	var decoded cobaltResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return failed(externalStrategy, fmt.Errorf("%w: %v", ErrUpstreamParse, err))
	}

	switch {
	case decoded.URL != "":
		return hit(externalStrategy, decoded.URL)
	case len(decoded.Picker) > 0 && decoded.Picker[0].URL != "":
		return hit(externalStrategy+":picker", decoded.Picker[0].URL)
	default:
		return miss(externalStrategy)
	}
}
