package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	generatehandlers "Viralcraft/internal/api/handlers/generate"
	"Viralcraft/internal/api/middleware"
)

// RegisterGenerateRoutes registers the LLM-backed endpoints with dedicated rate limiting.
// Each request spends provider quota, so these get a stricter limit than the global one.
func RegisterGenerateRoutes(r chi.Router, handler *generatehandlers.Handler) {
	// 20 req/min per IP across both endpoints
	generateLimiter := middleware.NewRateLimiter(20, 1*time.Minute)

	r.With(generateLimiter.Middleware).Post("/api/generate", handler.HandleCaptions)
	r.With(generateLimiter.Middleware).Post("/api/sora-generate", handler.HandlePrompt)
}
