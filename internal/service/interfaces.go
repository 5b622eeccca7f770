package service

import (
	"context"

	"github.com/greenhouse-iot/telemetry-api/models"
)

// AuthService authenticates callers of the protected endpoints.
type AuthService interface {
	// CheckCredentials inspects a raw Authorization header value and returns
	// nil when the caller is authenticated, ErrMissingBearerToken when no
	// Bearer credential is present, or ErrInvalidToken when the credential
	// does not match the configured secret.
	CheckCredentials(ctx context.Context, authHeader string) error
}

// ReadingService validates and executes the reading operations.
type ReadingService interface {
	// Create validates the candidate reading, fills server-side defaults,
	// and persists it. Returns the stored reading including the assigned id.
	Create(ctx context.Context, req models.CreateReadingRequest) (models.Reading, error)

	// List validates the filter and returns the matching page of readings
	// together with the filter-scoped total count.
	List(ctx context.Context, filter models.ReadingFilter) (models.ReadingsPage, error)
}
