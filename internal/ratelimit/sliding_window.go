package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
)

// SlidingWindowLimiter implements per-key rate limiting over a rolling
// window. A request is allowed when fewer than limit requests were accepted
// for the same key within the window ending now.
type SlidingWindowLimiter struct {
	limit  int
	window time.Duration
	logger *logger.Logger

	// now is the clock source; replaced in tests.
	now func() time.Time

	windows sync.Map

	stop     chan struct{}
	stopOnce sync.Once
}

// windowState holds the accepted-request timestamps for one key.
type windowState struct {
	requests []time.Time
	mu       sync.Mutex
}

// NewSlidingWindowLimiter creates a limiter allowing limit requests per key
// within a rolling window of the given duration.
//
// A background goroutine evicts idle keys once per window so the per-key
// state does not grow for the life of the process (keys are client-supplied
// and unbounded). Call Close to stop it.
func NewSlidingWindowLimiter(limit int, window time.Duration, log *logger.Logger) *SlidingWindowLimiter {
	if log == nil {
		log = logger.Nop()
	}

	l := &SlidingWindowLimiter{
		limit:  limit,
		window: window,
		logger: log,
		now:    time.Now,
		stop:   make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

// cleanupLoop evicts idle keys once per window until Close is called.
func (l *SlidingWindowLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Cleanup(l.window)
		case <-l.stop:
			return
		}
	}
}

// Close stops the background cleanup goroutine. Safe to call more than once.
func (l *SlidingWindowLimiter) Close() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// Allow implements Limiter.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	now := l.now()
	ws := l.getOrCreateWindowState(key)

	ws.mu.Lock()
	defer ws.mu.Unlock()

	l.dropExpired(ws, now)

	currentCount := len(ws.requests)
	allowed := currentCount < l.limit
	if allowed {
		ws.requests = append(ws.requests, now)
		currentCount++
	} else {
		l.logger.Debug().
			Str("key", key).
			Int("limit", l.limit).
			Msg("rate limit window full for key")
	}

	remaining := l.limit - currentCount
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:    allowed,
		Limit:      l.limit,
		Remaining:  remaining,
		RetryAfter: l.retryAfter(ws, now, allowed),
	}, nil
}

// Reset implements Limiter.
func (l *SlidingWindowLimiter) Reset(ctx context.Context, key string) error {
	l.windows.Delete(key)
	return nil
}

// Cleanup removes keys whose every recorded request is older than maxAge.
// Intended to be called periodically so idle keys do not accumulate.
func (l *SlidingWindowLimiter) Cleanup(maxAge time.Duration) {
	cutoff := l.now().Add(-maxAge)
	evicted := 0

	l.windows.Range(func(key, value any) bool {
		ws := value.(*windowState)
		ws.mu.Lock()

		allOld := true
		for _, t := range ws.requests {
			if t.After(cutoff) {
				allOld = false
				break
			}
		}

		if allOld {
			l.windows.Delete(key)
			evicted++
		}

		ws.mu.Unlock()
		return true
	})

	if evicted > 0 {
		l.logger.Debug().Int("evicted", evicted).Msg("evicted idle rate limit keys")
	}
}

func (l *SlidingWindowLimiter) getOrCreateWindowState(key string) *windowState {
	value, _ := l.windows.LoadOrStore(key, &windowState{
		requests: make([]time.Time, 0),
	})
	return value.(*windowState)
}

// dropExpired removes requests outside the window ending at now.
func (l *SlidingWindowLimiter) dropExpired(ws *windowState, now time.Time) {
	windowStart := now.Add(-l.window)
	valid := make([]time.Time, 0, len(ws.requests))
	for _, t := range ws.requests {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	ws.requests = valid
}

// retryAfter reports how long the caller must wait until the oldest request
// in the window expires and a slot frees up.
func (l *SlidingWindowLimiter) retryAfter(ws *windowState, now time.Time, allowed bool) time.Duration {
	if allowed || len(ws.requests) == 0 {
		return 0
	}

	oldest := ws.requests[0]
	retryAfter := oldest.Add(l.window).Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return retryAfter
}
