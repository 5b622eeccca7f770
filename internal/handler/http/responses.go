package http

import (
	"encoding/json"
	"net/http"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/models"
)

// writeJSON serialises v into the response with the given status code.
// Serialisation failures are only logged: by the time they surface the
// status line has already been written.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to encode response body")
	}
}

// writeError writes the generic error envelope. The detail string must be
// caller-safe; internal error text never goes through here.
func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, models.ErrorResponse{Detail: detail})
}

// writeValidationError writes the 422 envelope with one entry per invalid
// field.
func writeValidationError(w http.ResponseWriter, r *http.Request, fields []models.FieldError) {
	writeJSON(w, r, http.StatusUnprocessableEntity, models.ValidationErrorResponse{Detail: fields})
}
