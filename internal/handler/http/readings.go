package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/internal/service"
	"github.com/greenhouse-iot/telemetry-api/models"
)

// Defaults for the list operation when the caller omits the parameters.
const (
	defaultListLimit  = 100
	defaultListOffset = 0
)

// createReading handles POST /api/v1/readings. The guard chain has already
// run; this handler decodes, validates via the service, and persists.
func (h *Handler) createReading(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreateReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createReading").Msg("invalid JSON was passed")
		writeValidationError(w, r, []models.FieldError{
			{Loc: []string{"body"}, Msg: "invalid JSON body"},
		})
		return
	}

	saved, err := h.services.ReadingService.Create(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, r, verr.Fields)
			return
		}

		// full detail stays in the server log; the caller gets a generic message
		log.Err(err).Str("func", "*Handler.createReading").Msg("error creating reading")
		writeError(w, r, statusFromError(err), "Failed to create reading")
		return
	}

	writeJSON(w, r, http.StatusOK, saved)
}

// listReadings handles GET /api/v1/readings. Query parameters: device_id
// and sensor (optional equality filters), limit (default 100, range
// [1,2000]) and offset (default 0, ≥ 0).
func (h *Handler) listReadings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter, fieldErrs := parseListQuery(r)
	if len(fieldErrs) > 0 {
		writeValidationError(w, r, fieldErrs)
		return
	}

	page, err := h.services.ReadingService.List(r.Context(), filter)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, r, verr.Fields)
			return
		}

		log.Err(err).Str("func", "*Handler.listReadings").Msg("error listing readings")
		writeError(w, r, statusFromError(err), "Failed to retrieve readings")
		return
	}

	writeJSON(w, r, http.StatusOK, page)
}

// parseListQuery extracts the filter from the request's query string,
// applying defaults for absent parameters. Non-numeric limit or offset
// values are reported as field errors; range validation happens in the
// service layer.
func parseListQuery(r *http.Request) (models.ReadingFilter, []models.FieldError) {
	query := r.URL.Query()

	filter := models.ReadingFilter{
		DeviceID: query.Get("device_id"),
		Sensor:   query.Get("sensor"),
		Limit:    defaultListLimit,
		Offset:   defaultListOffset,
	}

	var fieldErrs []models.FieldError

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, models.FieldError{
				Loc: []string{"query", "limit"},
				Msg: "must be an integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, models.FieldError{
				Loc: []string{"query", "offset"},
				Msg: "must be an integer",
			})
		} else {
			filter.Offset = offset
		}
	}

	return filter, fieldErrs
}
