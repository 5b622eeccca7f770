package http

import (
	"errors"
	"net/http"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/internal/service"
)

// auth is the last guard of the chain. It hands the raw "Authorization"
// header to [service.AuthService.CheckCredentials] and rejects the request
// when the credential is missing (401) or wrong (403). On success the
// request proceeds unchanged; the credential carries no identity beyond
// "holds the shared secret", so nothing is stored in the context.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		err := h.services.AuthService.CheckCredentials(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingBearerToken):
				log.Err(err).Send()
				writeError(w, r, http.StatusUnauthorized, service.ErrMissingBearerToken.Error())
			case errors.Is(err, service.ErrInvalidToken):
				log.Err(err).Send()
				writeError(w, r, http.StatusForbidden, service.ErrInvalidToken.Error())
			default:
				log.Err(err).Msg("error occurred during credential check")
				writeError(w, r, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}
