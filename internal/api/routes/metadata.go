package routes

import (
	"github.com/go-chi/chi/v5"

	metadatahandlers "Viralcraft/internal/api/handlers/metadata"
)

// RegisterMetadataRoutes registers the video metadata endpoint on the router.
//
// Route: POST /api/metadata
//
// Any accepted URL answers 200; when extraction fails the body carries
// placeholder text and a null videoUrl.
func RegisterMetadataRoutes(r chi.Router, handler *metadatahandlers.Handler) {
	r.Post("/api/metadata", handler.HandleMetadata)
}
