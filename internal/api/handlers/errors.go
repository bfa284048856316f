package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MaxRequestBodyBytes caps JSON request bodies accepted by the API.
const MaxRequestBodyBytes = 1 << 20

// WriteError writes the standard JSON error body: {"error": message}
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]string{"error": message})
}

// WriteJSON writes v as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("[API] failed to encode response",
			"status", statusCode,
			"error", err,
		)
	}
}

// DecodeJSON reads a size-limited JSON request body into v
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
