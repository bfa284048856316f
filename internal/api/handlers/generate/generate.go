// Package generate serves the caption generation and prompt expansion endpoints.
package generate

import (
	"errors"
	"log/slog"
	"net/http"

	"Viralcraft/internal/api/handlers"
	"Viralcraft/internal/core/generate"
)

// Error messages returned to clients.
const (
	msgNotConfigured = "API Key is missing. Please check your environment variables or .env.local file."
	msgInvalidKey    = "Invalid API Key. Please check your environment variables or .env.local file."
	msgQuota         = "Quota Exceeded or Propagation Delay. If you just created your API key, please wait 2-5 minutes for it to activate. Also check your quota with your provider."
	msgModelNotFound = "Model not found. This might be a regional issue. Please check your API configuration."
	msgCaptionFailed = "Failed to generate content. Please try again later."
	msgPromptFailed  = "Failed to generate Sora prompt."
)

// Handler handles generation requests
type Handler struct {
	service generate.Service
}

// NewHandler creates a new generation handler
func NewHandler(service generate.Service) *Handler {
	return &Handler{service: service}
}

// HandleCaptions writes social captions for a video
// POST /api/generate
//
// Request body: { "type": "...", "value": "...", "mood": "...", "language": "..." }
func (h *Handler) HandleCaptions(w http.ResponseWriter, r *http.Request) {
	var req generate.CaptionRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.GenerateCaptions(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, msgCaptionFailed)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandlePrompt expands a video concept into a detailed text-to-video prompt
// POST /api/sora-generate
func (h *Handler) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	var req generate.PromptRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.ExpandPrompt(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, msgPromptFailed)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// handleServiceError converts generation errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, generate.ErrMissingContent):
		handlers.WriteError(w, http.StatusBadRequest, "Content value is required")
	case errors.Is(err, generate.ErrProviderNotConfigured):
		handlers.WriteError(w, http.StatusUnauthorized, msgNotConfigured)
	case errors.Is(err, generate.ErrProviderAuth):
		handlers.WriteError(w, http.StatusUnauthorized, msgInvalidKey)
	case errors.Is(err, generate.ErrProviderQuota):
		handlers.WriteError(w, http.StatusTooManyRequests, msgQuota)
	case errors.Is(err, generate.ErrModelNotFound):
		handlers.WriteError(w, http.StatusNotFound, msgModelNotFound)
	default:
		slog.Error("[GENERATE] generation error",
			"error", err,
		)
		handlers.WriteError(w, http.StatusInternalServerError, fallbackMessage)
	}
}
