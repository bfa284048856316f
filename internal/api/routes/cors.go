package routes

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware creates the CORS middleware for the browser frontend.
// An empty origin list allows any origin without credentials.
func CORSMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowCredentials := len(allowedOrigins) > 0
	if !allowCredentials {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders:   []string{"Content-Disposition", "Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           300, // 5 minutes
	})
}
