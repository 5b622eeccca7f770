package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
)

// sizeLimit is the first guard of the chain. It rejects body-carrying
// requests whose declared Content-Length exceeds the configured maximum,
// before any of the body is read.
//
// The check applies to POST, PUT, and PATCH only; GET-class requests are
// never size-checked. A missing or unparsable Content-Length header is
// logged and the request proceeds: the limit is enforced on the declared
// length, not on the streamed bytes.
func (h *Handler) sizeLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			next.ServeHTTP(w, r)
			return
		}

		contentLength := r.Header.Get("Content-Length")
		declared, err := strconv.ParseInt(contentLength, 10, 64)
		if err != nil {
			logger.FromRequest(r).Warn().
				Str("content_length", contentLength).
				Msg("absent or unparsable Content-Length header, letting request proceed")
			next.ServeHTTP(w, r)
			return
		}

		if declared > h.maxRequestBytes {
			logger.FromRequest(r).Warn().
				Int64("declared", declared).
				Int64("limit", h.maxRequestBytes).
				Msg("declared request body exceeds limit")
			writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body too large: limit is %d bytes", h.maxRequestBytes))
			return
		}

		next.ServeHTTP(w, r)
	})
}
