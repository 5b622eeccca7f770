package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrAPITokenIsRequired indicates that no shared API token was supplied
	// by any configuration source. Starting without one would make the auth
	// guard useless, so this is a startup-fatal condition.
	ErrAPITokenIsRequired = errors.New("api token is required")

	// ErrInvalidRateLimitConfigs indicates that the rate guard is enabled
	// but the per-minute request count is not a positive integer.
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")

	// ErrInvalidRequestSizeConfigs indicates a non-positive maximum request
	// body size.
	ErrInvalidRequestSizeConfigs = errors.New("invalid request size configuration")

	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
