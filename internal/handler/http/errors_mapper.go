package http

import (
	"errors"
	"net/http"

	"github.com/greenhouse-iot/telemetry-api/internal/service"
	"github.com/greenhouse-iot/telemetry-api/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrMissingBearerToken: http.StatusUnauthorized,
	service.ErrInvalidToken:       http.StatusForbidden,

	store.ErrReadingNotSaved:     http.StatusInternalServerError,
	store.ErrConstraintViolation: http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:    http.StatusInternalServerError,
	store.ErrExecutingQuery:      http.StatusInternalServerError,
	store.ErrExecutingStatement:  http.StatusInternalServerError,
	store.ErrScanningRow:         http.StatusInternalServerError,
	store.ErrScanningRows:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
