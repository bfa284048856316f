package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"Viralcraft/internal/core/relay"
)

type mockRelay struct {
	openFunc func(ctx context.Context, mediaURL, filename string) (*relay.Download, error)
}

func (m *mockRelay) Open(ctx context.Context, mediaURL, filename string) (*relay.Download, error) {
	return m.openFunc(ctx, mediaURL, filename)
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.HandleDownload(w, req)
	return w
}

func TestHandleDownload_Streams(t *testing.T) {
	mock := &mockRelay{openFunc: func(_ context.Context, mediaURL, filename string) (*relay.Download, error) {
		assert.Equal(t, "https://cdn.example.com/a.mp4", mediaURL)
		assert.Equal(t, "my clip.mp4", filename)
		return &relay.Download{
			Body:          io.NopCloser(strings.NewReader("video-bytes")),
			ContentType:   "video/mp4",
			ContentLength: 11,
			Filename:      "my clip.mp4",
		}, nil
	}}

	w := get(NewHandler(mock), "/api/download?url=https%3A%2F%2Fcdn.example.com%2Fa.mp4&filename=my%20clip.mp4")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video-bytes", w.Body.String())
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="my clip.mp4"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "11", w.Header().Get("Content-Length"))
}

func TestHandleDownload_UnknownLengthOmitsHeader(t *testing.T) {
	mock := &mockRelay{openFunc: func(context.Context, string, string) (*relay.Download, error) {
		return &relay.Download{
			Body:          io.NopCloser(strings.NewReader("x")),
			ContentType:   "video/webm",
			ContentLength: -1,
			Filename:      relay.DefaultFilename,
		}, nil
	}}

	w := get(NewHandler(mock), "/api/download?url=https://a/b")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Length"))
	assert.Equal(t, `attachment; filename="viralcraft_video.mp4"`, w.Header().Get("Content-Disposition"))
}

func TestHandleDownload_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"missing url", relay.ErrMissingURL, http.StatusBadRequest, "URL is required"},
		{"invalid url", relay.ErrInvalidURL, http.StatusBadRequest, "Invalid URL format"},
		{
			"upstream failure",
			fmt.Errorf("%w: %s", relay.ErrUpstreamFailed, "Forbidden"),
			http.StatusInternalServerError,
			"Download failed: failed to fetch video: Forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockRelay{openFunc: func(context.Context, string, string) (*relay.Download, error) {
				return nil, tt.err
			}}

			w := get(NewHandler(mock), "/api/download?url=x")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestHandleDownload_EndToEndWithRelay(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write([]byte("real-bytes"))
	}))
	defer upstream.Close()

	svc, err := relay.NewService(relay.DefaultConfig())
	assert.NoError(t, err)

	w := get(NewHandler(svc), "/api/download?url="+upstream.URL+"/v.mp4&filename=a%22b.mp4")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "real-bytes", w.Body.String())
	assert.Equal(t, `attachment; filename="ab.mp4"`, w.Header().Get("Content-Disposition"))
}
