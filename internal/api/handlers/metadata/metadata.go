// Package metadata serves the video metadata resolution endpoint.
package metadata

import (
	"errors"
	"log/slog"
	"net/http"

	"Viralcraft/internal/api/handlers"
	"Viralcraft/internal/core/resolver"
)

// Request is the JSON body of POST /api/metadata
type Request struct {
	URL string `json:"url"`
}

// Response wraps the resolved metadata
type Response struct {
	Metadata *resolver.MetadataResult `json:"metadata"`
}

// Handler handles metadata resolution requests
type Handler struct {
	service resolver.Service
}

// NewHandler creates a new metadata handler
func NewHandler(service resolver.Service) *Handler {
	return &Handler{service: service}
}

// HandleMetadata resolves a video page URL into display metadata
// POST /api/metadata
//
// Request body: { "url": "https://..." }
// Every accepted URL gets a 200, even when no video link could be found.
func (h *Handler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Resolve(r.Context(), req.URL)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, Response{Metadata: result})
}

// handleServiceError converts resolver errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resolver.ErrMissingURL):
		handlers.WriteError(w, http.StatusBadRequest, "URL is required")
	case errors.Is(err, resolver.ErrInvalidURL):
		handlers.WriteError(w, http.StatusBadRequest, "Invalid URL format")
	default:
		slog.Error("[RESOLVER] unhandled service error",
			"error", err,
		)
		handlers.WriteError(w, http.StatusInternalServerError, "Failed to extract metadata")
	}
}
