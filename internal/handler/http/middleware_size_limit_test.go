package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/models"
)

const testMaxRequestBytes = 1024

func TestSizeLimitGuard(t *testing.T) {
	validBody := `{"device_id":"gh-1","sensor":"temperature","value":21.5}`

	tests := []struct {
		name           string
		method         string
		contentLength  string
		expectedStatus int
	}{
		{
			name:           "POST under the limit proceeds",
			method:         http.MethodPost,
			contentLength:  "512",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST at the limit proceeds",
			method:         http.MethodPost,
			contentLength:  "1024",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST over the limit is rejected",
			method:         http.MethodPost,
			contentLength:  "1025",
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "POST without Content-Length proceeds",
			method:         http.MethodPost,
			contentLength:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST with unparsable Content-Length proceeds",
			method:         http.MethodPost,
			contentLength:  "not-a-number",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "GET is never size-checked",
			method:         http.MethodGet,
			contentLength:  "999999999",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(testHandlerOptions{maxRequestBytes: testMaxRequestBytes})

			var req *http.Request
			if tt.method == http.MethodPost {
				req = httptest.NewRequest(tt.method, "/api/v1/readings", strings.NewReader(validBody))
			} else {
				req = httptest.NewRequest(tt.method, "/api/v1/readings", nil)
			}
			authed(req)
			if tt.contentLength != "" {
				req.Header.Set("Content-Length", tt.contentLength)
			}

			rr := doRequest(router, req)

			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusRequestEntityTooLarge {
				var errResp models.ErrorResponse
				require.NoError(t, decodeBody(rr, &errResp))
				assert.Equal(t,
					fmt.Sprintf("Request body too large: limit is %d bytes", testMaxRequestBytes),
					errResp.Detail)
			}
		})
	}
}

// An absent declared length is not silent: the guard records a warning
// before letting the request through, same as the unparsable case.
func TestSizeLimitGuardLogsAbsentContentLength(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)

	h := &Handler{maxRequestBytes: testMaxRequestBytes, logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader("{}"))
	req = req.WithContext(zl.WithContext(req.Context()))

	rr := httptest.NewRecorder()
	h.sizeLimit(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, buf.String(), "absent or unparsable Content-Length header")
}

// The size guard runs before authentication: an oversized request is
// rejected with 413 even when the credential is missing.
func TestSizeLimitGuardRunsBeforeAuth(t *testing.T) {
	router, _ := newTestRouter(testHandlerOptions{maxRequestBytes: testMaxRequestBytes})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader("{}"))
	req.Header.Set("Content-Length", "1000000")

	rr := doRequest(router, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}
