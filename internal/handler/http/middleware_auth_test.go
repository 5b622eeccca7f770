package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhouse-iot/telemetry-api/models"
)

func TestAuthGuard(t *testing.T) {
	router, _ := newTestRouter(testHandlerOptions{})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "no Authorization header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Missing Bearer token",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Missing Bearer token",
		},
		{
			name:           "bearer scheme without token",
			authHeader:     "Bearer",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Missing Bearer token",
		},
		{
			name:           "wrong token",
			authHeader:     "Bearer not-the-token",
			expectedStatus: http.StatusForbidden,
			expectedDetail: "Invalid token",
		},
		{
			name:           "empty token after scheme",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusForbidden,
			expectedDetail: "Invalid token",
		},
		{
			name:           "valid token",
			authHeader:     "Bearer " + testToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "uppercase scheme is accepted",
			authHeader:     "BEARER " + testToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "mixed-case scheme is accepted",
			authHeader:     "bEaReR " + testToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/readings", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := doRequest(router, req)

			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedDetail != "" {
				var errResp models.ErrorResponse
				require.NoError(t, decodeBody(rr, &errResp))
				assert.Equal(t, tt.expectedDetail, errResp.Detail)
			}
		})
	}
}
