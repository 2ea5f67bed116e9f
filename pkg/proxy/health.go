package proxy

import (
	"fmt"
	"net/http"
)

// HealthHandler reports liveness and whether an API secret is configured.
func HealthHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "OK", "secret_configured": %t}`, h.Secret != "")
	}
}
