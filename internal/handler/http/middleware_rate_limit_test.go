package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/internal/ratelimit"
	"github.com/greenhouse-iot/telemetry-api/models"
)

// brokenLimiter always fails the rate check itself.
type brokenLimiter struct{}

func (brokenLimiter) Allow(ctx context.Context, key string) (*ratelimit.Result, error) {
	return nil, errors.New("limiter backend unavailable")
}

func (brokenLimiter) Reset(ctx context.Context, key string) error { return nil }

func TestRateLimitGuardRejectsOverLimit(t *testing.T) {
	limiter := ratelimit.NewSlidingWindowLimiter(2, time.Minute, logger.Nop())
	router, _ := newTestRouter(testHandlerOptions{limiter: limiter})

	for i := 0; i < 2; i++ {
		req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))
		rr := doRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code, "request %d should be allowed", i+1)
	}

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))
	rr := doRequest(router, req)

	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	var errResp models.ErrorResponse
	require.NoError(t, decodeBody(rr, &errResp))
	assert.Equal(t, "Rate limit exceeded", errResp.Detail)
}

func TestRateLimitGuardKeysClientsIndependently(t *testing.T) {
	limiter := ratelimit.NewSlidingWindowLimiter(1, time.Minute, logger.Nop())
	router, _ := newTestRouter(testHandlerOptions{limiter: limiter})

	first := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	require.Equal(t, http.StatusOK, doRequest(router, first).Code)

	exhausted := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))
	exhausted.Header.Set("X-Forwarded-For", "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, doRequest(router, exhausted).Code)

	other := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))
	other.Header.Set("X-Forwarded-For", "10.0.0.2, 10.0.0.1")
	assert.Equal(t, http.StatusOK, doRequest(router, other).Code)
}

func TestRateLimitGuardFailsOpen(t *testing.T) {
	router, _ := newTestRouter(testHandlerOptions{limiter: brokenLimiter{}})

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))
	rr := doRequest(router, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

// The rate guard runs before authentication, so an exhausted client gets
// 429 even with a missing credential.
func TestRateLimitGuardRunsBeforeAuth(t *testing.T) {
	limiter := ratelimit.NewSlidingWindowLimiter(1, time.Minute, logger.Nop())
	router, _ := newTestRouter(testHandlerOptions{limiter: limiter})

	require.Equal(t, http.StatusOK,
		doRequest(router, authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))).Code)

	unauthenticated := httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, unauthenticated).Code)
}
