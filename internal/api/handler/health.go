package handler

import (
	"net/http"

	"github.com/rabbitlabs/niftybot/internal/api/response"
)

// HealthCheck returns a simple health check response. It performs no
// dependency checks; it succeeds whenever the process is alive.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}
