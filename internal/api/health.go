// ABOUTME: Liveness probe endpoint
package api

import "net/http"

// handleHealth is a liveness probe; 200 means the process is alive
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
