package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
)

// rateLimit is the second guard of the chain. It asks the configured
// limiter whether the client identified by clientKey may proceed; the
// disabled variant is a no-op limiter that always allows.
//
// Limiter failures fail open: rejecting every request because the limiter
// is broken would turn a bookkeeping problem into an outage.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		res, err := h.limiter.Allow(r.Context(), key)
		if err != nil {
			logger.FromRequest(r).Err(err).Str("client", key).Msg("rate limiter failed, letting request proceed")
			next.ServeHTTP(w, r)
			return
		}

		if !res.Allowed {
			logger.FromRequest(r).Warn().
				Str("client", key).
				Int("limit", res.Limit).
				Msg("client exceeded rate limit")

			if res.RetryAfter > 0 {
				seconds := int(res.RetryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
			}
			writeError(w, r, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller for rate-limit accounting. The first
// X-Forwarded-For entry wins when present (the service is expected to run
// behind a proxy); otherwise the host part of the remote address is used.
func clientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			xff = xff[:i]
		}
		return strings.TrimSpace(xff)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
