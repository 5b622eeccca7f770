package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/greenhouse-iot/telemetry-api/internal/config"
	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/internal/ratelimit"
	"github.com/greenhouse-iot/telemetry-api/internal/service"
	"github.com/greenhouse-iot/telemetry-api/internal/store"
	"github.com/greenhouse-iot/telemetry-api/models"
)

const testToken = "test-secret-token"

// fakeReadingRepository implements store.ReadingRepository for handler tests.
type fakeReadingRepository struct {
	saved []models.Reading

	saveErr error
	findErr error

	findFilter models.ReadingFilter
	findItems  []models.Reading
	findTotal  int64
}

func (f *fakeReadingRepository) Save(ctx context.Context, reading models.Reading) (models.Reading, error) {
	if f.saveErr != nil {
		return models.Reading{}, f.saveErr
	}
	reading.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, reading)
	return reading, nil
}

func (f *fakeReadingRepository) Find(ctx context.Context, filter models.ReadingFilter) ([]models.Reading, int64, error) {
	f.findFilter = filter
	if f.findErr != nil {
		return nil, 0, f.findErr
	}
	return f.findItems, f.findTotal, nil
}

type testHandlerOptions struct {
	repo            *fakeReadingRepository
	limiter         ratelimit.Limiter
	maxRequestBytes int64
}

// newTestRouter assembles the full middleware-and-routes stack around real
// services and the given fakes, the way cmd/server wires it.
func newTestRouter(opts testHandlerOptions) (*chi.Mux, *fakeReadingRepository) {
	if opts.repo == nil {
		opts.repo = &fakeReadingRepository{}
	}
	if opts.limiter == nil {
		opts.limiter = ratelimit.NewNoopLimiter()
	}
	if opts.maxRequestBytes == 0 {
		opts.maxRequestBytes = 1 << 20
	}

	cfg := config.App{
		APIToken:        testToken,
		MaxRequestBytes: opts.maxRequestBytes,
	}

	log := logger.Nop()
	services := &service.Services{
		AuthService:    service.NewAuthService(cfg, log),
		ReadingService: service.NewReadingService(store.ReadingRepository(opts.repo), log),
	}

	h := NewHandler(services, opts.limiter, cfg, log)
	return h.Init(), opts.repo
}

func doRequest(router *chi.Mux, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func decodeBody(rr *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rr.Body.Bytes(), v)
}
