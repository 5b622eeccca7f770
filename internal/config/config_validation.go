package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// An empty API token is a hard failure: the credential check is meaningless
// without a configured secret, so the process refuses to start rather than
// accepting every request or rejecting all of them at runtime.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.APIToken == "" {
		return ErrAPITokenIsRequired
	}

	if cfg.App.RateLimitEnabled && cfg.App.RateLimitPerMinute < 1 {
		return ErrInvalidRateLimitConfigs
	}

	if cfg.App.MaxRequestBytes < 1 {
		return ErrInvalidRequestSizeConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
