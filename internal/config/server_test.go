package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "LOG_LEVEL", "LOG_FORMAT", "REDIS_ADDR", "UPLOAD_DIR", "OPENAI_API_KEY", "AUTH_TOKENS", "RATE_LIMIT_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CacheTTL)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Empty(t, cfg.Auth.Tokens)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_WRITE_TIMEOUT", "45s")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://localhost:3000, ,https://finadvisor.app")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_CACHE_TTL", "1h")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("AUTH_TOKENS", "alpha:asha, beta:ravi")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 45*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://finadvisor.app"}, cfg.HTTP.AllowedOrigins())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimit.Rate)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
	assert.Equal(t, map[string]string{"alpha": "asha", "beta": "ravi"}, cfg.Auth.Tokens)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non-numeric port", "SERVER_PORT", "http", "invalid SERVER_PORT"},
		{"port out of range", "SERVER_PORT", "70000", "out of range"},
		{"bad duration", "SERVER_READ_TIMEOUT", "soon", "invalid SERVER_READ_TIMEOUT"},
		{"bad token pair", "AUTH_TOKENS", "lonely", "invalid AUTH_TOKENS entry"},
		{"zero upload limit", "UPLOAD_MAX_BYTES", "0", "UPLOAD_MAX_BYTES must be positive"},
		{"zero burst", "RATE_LIMIT_BURST", "0", "rate limit requires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseAuthTokens(t *testing.T) {
	tokens, err := ParseAuthTokens("")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	_, err = ParseAuthTokens("tok:")
	assert.Error(t, err)
}
