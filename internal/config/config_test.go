package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GLS_TOKEN", "GLS_ALMANAC_URL", "GLS_TIMEOUT_SEC",
		"ALMANAC_ALLOW_SIZE_MISMATCH", "LOG_LEVEL", "METRICS_TEXTFILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Empty(t, cfg.Token)
	assert.Equal(t, DefaultAlmanacURL, cfg.AlmanacURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.AllowSizeMismatch)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GLS_TOKEN", "secret")
	t.Setenv("GLS_ALMANAC_URL", "http://localhost:8080/almanac")
	t.Setenv("GLS_TIMEOUT_SEC", "0")
	t.Setenv("ALMANAC_ALLOW_SIZE_MISMATCH", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("METRICS_TEXTFILE", "/tmp/almanac.prom")

	cfg := Load()

	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "http://localhost:8080/almanac", cfg.AlmanacURL)
	assert.Zero(t, cfg.Timeout)
	assert.True(t, cfg.AllowSizeMismatch)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/almanac.prom", cfg.MetricsTextfile)
	require.NoError(t, cfg.ValidateFetch())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GLS_TIMEOUT_SEC", "soon")
	t.Setenv("ALMANAC_ALLOW_SIZE_MISMATCH", "maybe")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.AllowSizeMismatch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  bool
		fetchErr bool
	}{
		{"ok", Config{Token: "t", AlmanacURL: DefaultAlmanacURL, LogLevel: "info"}, false, false},
		{"missing token", Config{AlmanacURL: DefaultAlmanacURL, LogLevel: "info"}, false, true},
		{"missing url", Config{Token: "t", LogLevel: "warn"}, false, true},
		{"bad level", Config{Token: "t", AlmanacURL: DefaultAlmanacURL, LogLevel: "trace"}, true, true},
		{"negative timeout", Config{Token: "t", AlmanacURL: DefaultAlmanacURL, LogLevel: "error", Timeout: -time.Second}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, tt.cfg.Validate())
			} else {
				assert.NoError(t, tt.cfg.Validate())
			}
			if tt.fetchErr {
				assert.Error(t, tt.cfg.ValidateFetch())
			} else {
				assert.NoError(t, tt.cfg.ValidateFetch())
			}
		})
	}
}
