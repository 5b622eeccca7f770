package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			APIToken:           "secret",
			RateLimitEnabled:   true,
			RateLimitPerMinute: 60,
			MaxRequestBytes:    1 << 20,
		},
		Storage: Storage{DB: DB{DSN: "greenhouse.db"}},
		Server:  Server{HTTPAddress: ":8000"},
	}
}

func TestValidate_TableTest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "empty api token is startup-fatal",
			mutate:  func(cfg *StructuredConfig) { cfg.App.APIToken = "" },
			wantErr: ErrAPITokenIsRequired,
		},
		{
			name:    "rate limit enabled without per-minute count",
			mutate:  func(cfg *StructuredConfig) { cfg.App.RateLimitPerMinute = 0 },
			wantErr: ErrInvalidRateLimitConfigs,
		},
		{
			name: "rate limit disabled ignores per-minute count",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.RateLimitEnabled = false
				cfg.App.RateLimitPerMinute = 0
			},
		},
		{
			name:    "non-positive max request bytes",
			mutate:  func(cfg *StructuredConfig) { cfg.App.MaxRequestBytes = 0 },
			wantErr: ErrInvalidRequestSizeConfigs,
		},
		{
			name:    "empty DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "localhost with port", input: "localhost:8000", want: "localhost:8000"},
		{name: "ip with port", input: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "not-an-ip:8000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
		})
	}
}
