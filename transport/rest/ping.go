package rest

import "net/http"

const apiVersion = "1.0.0"

// Ping answers GET /api/ with the service banner.
func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Celebration API is running",
		"version": apiVersion,
	})
}

// Liveness is the plain-text health probe on /ping.
func (that *Handlers) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Debug("failed to write pong", "error", err)
	}
}
