package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the number of per-client limiters kept in memory.
// The least recently seen client is evicted first.
const maxTrackedClients = 10000

// RateLimiter implements a per-client token bucket limiter kept in memory
type RateLimiter struct {
	clients *lru.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

// NewRateLimiter creates a new rate limiter
// requests: maximum number of requests allowed per window
// window: time window duration (e.g., 1 minute)
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	clients, err := lru.New[string, *rate.Limiter](maxTrackedClients)
	if err != nil {
		// lru.New only fails for a non-positive size
		panic(err)
	}

	return &RateLimiter{
		clients: clients,
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
	}
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := getClientIP(r)

		if !rl.allow(clientID) {
			slog.Warn("[RATELIMIT] request rejected",
				"client", clientID,
				"path", r.URL.Path,
			)
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow checks if a client is allowed to make a request
func (rl *RateLimiter) allow(clientID string) bool {
	limiter, ok := rl.clients.Get(clientID)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		// Another request may have raced us; keep whichever limiter landed first.
		if existing, found, _ := rl.clients.PeekOrAdd(clientID, limiter); found {
			limiter = existing
		}
	}
	return limiter.Allow()
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (if behind proxy); the first hop is the client
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	// Check X-Real-IP header
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
