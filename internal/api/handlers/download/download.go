// Package download serves the media download relay.
// Errors are plain text since the success response is a binary stream.
package download

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"Viralcraft/internal/core/relay"
)

// Handler handles download relay requests
type Handler struct {
	service relay.Service
}

// NewHandler creates a new download handler
func NewHandler(service relay.Service) *Handler {
	return &Handler{service: service}
}

// HandleDownload streams a remote video back as an attachment
// GET /api/download?url=...&filename=...
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mediaURL := query.Get("url")

	dl, err := h.service.Open(r.Context(), mediaURL, query.Get("filename"))
	if err != nil {
		handleServiceError(w, mediaURL, err)
		return
	}
	defer func() { _ = dl.Body.Close() }()

	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+dl.Filename+`"`)
	w.Header().Set("Cache-Control", "no-cache")
	if dl.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(dl.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	written, err := io.Copy(w, dl.Body)
	if err != nil {
		// Headers are already sent; the client sees a truncated body.
		slog.Warn("[RELAY] stream interrupted",
			"url", mediaURL,
			"bytes_written", written,
			"error", err,
		)
		return
	}

	slog.Info("[RELAY] download relayed",
		"filename", dl.Filename,
		"bytes", written,
	)
}

// handleServiceError converts relay errors to plain text responses
func handleServiceError(w http.ResponseWriter, mediaURL string, err error) {
	switch {
	case errors.Is(err, relay.ErrMissingURL):
		writeErrorResponse(w, http.StatusBadRequest, "URL is required")
	case errors.Is(err, relay.ErrInvalidURL):
		writeErrorResponse(w, http.StatusBadRequest, "Invalid URL format")
	default:
		slog.Error("[RELAY] download proxy error",
			"url", mediaURL,
			"error", err,
		)
		writeErrorResponse(w, http.StatusInternalServerError, "Download failed: "+err.Error())
	}
}

// writeErrorResponse writes a plain text error response.
func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(message)); err != nil {
		slog.Warn("[RELAY] failed to write error response",
			"status", status,
			"message", message,
			"error", err,
		)
	}
}
