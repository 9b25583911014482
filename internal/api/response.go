// ABOUTME: JSON response helpers shared by all API handlers
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Status is already on the wire; log and move on
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Description string `json:"description"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, description string) {
	writeJSON(w, status, ErrorResponse{Description: description})
}
