package routes

import (
	"github.com/go-chi/chi/v5"

	downloadhandlers "Viralcraft/internal/api/handlers/download"
)

// RegisterDownloadRoutes registers the download relay on the router.
//
// Route: GET /api/download?url=...&filename=...
//
// Parameters:
//   - url: Absolute http(s) URL of the media file
//   - filename: Suggested attachment name (default "viralcraft_video.mp4")
func RegisterDownloadRoutes(r chi.Router, handler *downloadhandlers.Handler) {
	r.Get("/api/download", handler.HandleDownload)
}
