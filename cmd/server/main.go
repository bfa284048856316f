package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	downloadhandlers "Viralcraft/internal/api/handlers/download"
	generatehandlers "Viralcraft/internal/api/handlers/generate"
	metadatahandlers "Viralcraft/internal/api/handlers/metadata"
	"Viralcraft/internal/api/middleware"
	"Viralcraft/internal/api/routes"
	"Viralcraft/internal/core/generate"
	"Viralcraft/internal/core/relay"
	"Viralcraft/internal/core/resolver"
)

func main() {
	// Local overrides first; godotenv never overwrites variables that are already set
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err == nil {
			log.Printf("Loaded environment from %s", file)
		}
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(routes.CORSMiddleware(allowedOrigins()))

	// Rate limiting: 100 requests per minute per IP unless overridden
	rateLimiter := middleware.NewRateLimiter(requestsPerMinute(), 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	// Initialize services
	resolverService, err := resolver.NewServiceFromConfig(resolver.ConfigFromEnv())
	if err != nil {
		log.Fatal("Failed to create resolver service:", err)
	}

	relayService, err := relay.NewService(relay.ConfigFromEnv())
	if err != nil {
		log.Fatal("Failed to create relay service:", err)
	}

	generateService, err := generate.NewServiceFromConfig(generate.ConfigFromEnv())
	if err != nil {
		log.Fatal("Failed to create generate service:", err)
	}

	// Mount API routes
	routes.RegisterMetadataRoutes(r, metadatahandlers.NewHandler(resolverService))
	routes.RegisterDownloadRoutes(r, downloadhandlers.NewHandler(relayService))
	routes.RegisterGenerateRoutes(r, generatehandlers.NewHandler(generateService))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// No WriteTimeout: downloads stream for as long as the upstream does
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("[SERVER] graceful shutdown failed", "error", err)
		}
	}()

	fmt.Printf("Viralcraft API starting on port %s\n", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	fmt.Println("Viralcraft API stopped")
}

// allowedOrigins reads CORS_ALLOWED_ORIGINS as a comma-separated list
func allowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func requestsPerMinute() int {
	const defaultLimit = 100

	v := os.Getenv("RATE_LIMIT_PER_MINUTE")
	if v == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("[SERVER] invalid RATE_LIMIT_PER_MINUTE value, using default",
			"value", v,
			"default", defaultLimit,
		)
		return defaultLimit
	}
	return n
}
