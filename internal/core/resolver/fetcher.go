package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChromeUserAgent is sent on every outbound page request so that hosts which
// reject non-browser clients still answer.
const ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// PageFetcher retrieves the raw text of a page.
type PageFetcher interface {
	// FetchPage performs a single GET and returns the body as text.
	// Returns ErrFetchTimeout or ErrFetchFailed (wrapped) on failure.
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

// BrowserFetcher implements PageFetcher with browser-like navigation headers.
type BrowserFetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxSizeBytes int64
}

// NewBrowserFetcher creates a BrowserFetcher with the given timeout and body cap.
// maxSizeMB <= 0 uses the 10MB default.
func NewBrowserFetcher(timeout time.Duration, maxSizeMB int) *BrowserFetcher {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &BrowserFetcher{
		client:       &http.Client{Timeout: timeout},
		timeout:      timeout,
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// SetBrowserHeaders applies the navigation headers a desktop Chrome would send.
func SetBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", ChromeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// FetchPage issues one GET. The body is returned whatever the status code or
// content type; blocked pages often still carry usable meta tags.
func (f *BrowserFetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrFetchFailed, err)
	}
	SetBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil || isTimeoutError(err) {
			return "", fmt.Errorf("%w: %v", ErrFetchTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSizeBytes))
	if err != nil {
		if ctx.Err() != nil || isTimeoutError(err) {
			return "", fmt.Errorf("%w: reading body: %v", ErrFetchTimeout, err)
		}
		return "", fmt.Errorf("%w: failed to read response body: %v", ErrFetchFailed, err)
	}

	return string(body), nil
}

// isTimeoutError checks if the error is a timeout-related error.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return false
}
