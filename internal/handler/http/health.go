package http

import (
	"net/http"
	"time"

	"github.com/greenhouse-iot/telemetry-api/models"
)

// health is the liveness probe. It bypasses the guard chain and only fails
// when the process itself is unavailable.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, models.HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
