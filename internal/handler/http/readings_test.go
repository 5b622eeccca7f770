package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhouse-iot/telemetry-api/internal/store"
	"github.com/greenhouse-iot/telemetry-api/models"
)

func TestCreateReading(t *testing.T) {
	router, repo := newTestRouter(testHandlerOptions{})

	body := `{"device_id":"greenhouse-7","sensor":"temperature","value":23.4,"unit":"C"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(body)))
	req.Header.Set("Content-Type", "application/json")

	rr := doRequest(router, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var saved models.Reading
	require.NoError(t, decodeBody(rr, &saved))
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "greenhouse-7", saved.DeviceID)
	assert.Equal(t, "temperature", saved.Sensor)
	assert.Equal(t, 23.4, saved.Value)
	assert.Equal(t, "C", saved.Unit)
	assert.False(t, saved.RecordedAt.IsZero(), "recorded_at should default to the server clock")

	require.Len(t, repo.saved, 1)
}

func TestCreateReadingKeepsCallerTimestamp(t *testing.T) {
	router, repo := newTestRouter(testHandlerOptions{})

	body := `{"device_id":"greenhouse-7","sensor":"humidity","value":55,"recorded_at":"2026-08-29T10:00:00Z"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(body)))

	rr := doRequest(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), repo.saved[0].RecordedAt.UTC())
}

func TestCreateReadingValidation(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedLocs [][]string
	}{
		{
			name:         "malformed JSON",
			body:         `{"device_id": `,
			expectedLocs: [][]string{{"body"}},
		},
		{
			name:         "missing sensor",
			body:         `{"device_id":"gh-1","value":1.0}`,
			expectedLocs: [][]string{{"body", "sensor"}},
		},
		{
			name:         "missing value",
			body:         `{"device_id":"gh-1","sensor":"temperature"}`,
			expectedLocs: [][]string{{"body", "value"}},
		},
		{
			name:         "everything missing",
			body:         `{}`,
			expectedLocs: [][]string{{"body", "device_id"}, {"body", "sensor"}, {"body", "value"}},
		},
		{
			name:         "device_id too long",
			body:         `{"device_id":"` + strings.Repeat("d", 65) + `","sensor":"temperature","value":1.0}`,
			expectedLocs: [][]string{{"body", "device_id"}},
		},
		{
			name:         "unit too long",
			body:         `{"device_id":"gh-1","sensor":"temperature","value":1.0,"unit":"` + strings.Repeat("u", 17) + `"}`,
			expectedLocs: [][]string{{"body", "unit"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newTestRouter(testHandlerOptions{})

			req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(tt.body)))
			rr := doRequest(router, req)

			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

			var resp models.ValidationErrorResponse
			require.NoError(t, decodeBody(rr, &resp))
			require.Len(t, resp.Detail, len(tt.expectedLocs))
			for i, loc := range tt.expectedLocs {
				assert.Equal(t, loc, resp.Detail[i].Loc)
			}

			assert.Empty(t, repo.saved, "invalid payloads must not reach the store")
		})
	}
}

func TestCreateReadingStoreFailure(t *testing.T) {
	repo := &fakeReadingRepository{saveErr: store.ErrExecutingStatement}
	router, _ := newTestRouter(testHandlerOptions{repo: repo})

	body := `{"device_id":"gh-1","sensor":"temperature","value":1.0}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(body)))

	rr := doRequest(router, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var errResp models.ErrorResponse
	require.NoError(t, decodeBody(rr, &errResp))
	assert.Equal(t, "Failed to create reading", errResp.Detail)
	assert.NotContains(t, rr.Body.String(), store.ErrExecutingStatement.Error())
}

func TestListReadings(t *testing.T) {
	repo := &fakeReadingRepository{
		findItems: []models.Reading{
			{ID: 2, DeviceID: "gh-1", Sensor: "temperature", Value: 22.1, Unit: "C"},
			{ID: 1, DeviceID: "gh-1", Sensor: "temperature", Value: 21.9, Unit: "C"},
		},
		findTotal: 7,
	}
	router, _ := newTestRouter(testHandlerOptions{repo: repo})

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings?device_id=gh-1&sensor=temperature&limit=2&offset=4", nil))
	rr := doRequest(router, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var page models.ReadingsPage
	require.NoError(t, decodeBody(rr, &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 4, page.Offset)

	assert.Equal(t, models.ReadingFilter{
		DeviceID: "gh-1",
		Sensor:   "temperature",
		Limit:    2,
		Offset:   4,
	}, repo.findFilter)
}

func TestListReadingsDefaults(t *testing.T) {
	router, repo := newTestRouter(testHandlerOptions{})

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))
	rr := doRequest(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.ReadingFilter{Limit: 100, Offset: 0}, repo.findFilter)

	var page models.ReadingsPage
	require.NoError(t, decodeBody(rr, &page))
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 0, page.Offset)
}

func TestListReadingsQueryValidation(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expectedLoc []string
		expectedMsg string
	}{
		{
			name:        "non-numeric limit",
			query:       "limit=abc",
			expectedLoc: []string{"query", "limit"},
			expectedMsg: "must be an integer",
		},
		{
			name:        "non-numeric offset",
			query:       "offset=1.5",
			expectedLoc: []string{"query", "offset"},
			expectedMsg: "must be an integer",
		},
		{
			name:        "limit below range",
			query:       "limit=0",
			expectedLoc: []string{"query", "limit"},
			expectedMsg: "must be between 1 and 2000",
		},
		{
			name:        "limit above range",
			query:       "limit=2001",
			expectedLoc: []string{"query", "limit"},
			expectedMsg: "must be between 1 and 2000",
		},
		{
			name:        "negative offset",
			query:       "offset=-1",
			expectedLoc: []string{"query", "offset"},
			expectedMsg: "must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(testHandlerOptions{})

			req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings?"+tt.query, nil))
			rr := doRequest(router, req)

			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

			var resp models.ValidationErrorResponse
			require.NoError(t, decodeBody(rr, &resp))
			require.Len(t, resp.Detail, 1)
			assert.Equal(t, tt.expectedLoc, resp.Detail[0].Loc)
			assert.Equal(t, tt.expectedMsg, resp.Detail[0].Msg)
		})
	}
}

func TestListReadingsStoreFailure(t *testing.T) {
	repo := &fakeReadingRepository{findErr: store.ErrExecutingQuery}
	router, _ := newTestRouter(testHandlerOptions{repo: repo})

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil))
	rr := doRequest(router, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var errResp models.ErrorResponse
	require.NoError(t, decodeBody(rr, &errResp))
	assert.Equal(t, "Failed to retrieve readings", errResp.Detail)
}
