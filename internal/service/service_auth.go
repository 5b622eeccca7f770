package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/greenhouse-iot/telemetry-api/internal/config"
	"github.com/greenhouse-iot/telemetry-api/internal/logger"
)

// bearerPrefix is the expected Authorization scheme. The scheme comparison
// is case-insensitive ("Bearer", "BEARER", "bearer" are all accepted).
const bearerPrefix = "bearer "

// authService is the concrete implementation of AuthService. It compares the
// caller-supplied bearer token against a single shared secret loaded once at
// startup.
type authService struct {
	// token is the configured shared secret. Read-only after construction,
	// so the service is safe for concurrent use.
	token []byte

	logger *logger.Logger
}

// NewAuthService constructs an AuthService using the API token from cfg.
// Config validation guarantees the token is non-empty by the time this
// constructor runs.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		token:  []byte(cfg.APIToken),
		logger: logger,
	}
}

// CheckCredentials authenticates a raw Authorization header value.
//
// The header must start with the case-insensitive scheme "bearer " followed
// by the token; surrounding whitespace around the token is ignored. The token
// itself is compared with [subtle.ConstantTimeCompare] so the comparison
// takes equal time regardless of where the first differing byte occurs.
//
// Returns ErrMissingBearerToken when no Bearer credential is present and
// ErrInvalidToken when the credential does not match.
func (a *authService) CheckCredentials(ctx context.Context, authHeader string) error {
	log := logger.FromContext(ctx)

	if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), bearerPrefix) {
		log.Warn().Msg("request without bearer credential")
		return ErrMissingBearerToken
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if subtle.ConstantTimeCompare([]byte(token), a.token) != 1 {
		log.Warn().Msg("request with wrong token")
		return ErrInvalidToken
	}

	return nil
}
