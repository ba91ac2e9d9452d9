package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2*time.Minute, cfg.AnalysisTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4", cfg.OpenAIModel)
	assert.Equal(t, 5, cfg.RetryMax)
	assert.Equal(t, time.Second, cfg.RetryInitialDelay)
	assert.Equal(t, 2.0, cfg.RetryMultiplier)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("RETRY_MAX", "0")
	t.Setenv("RETRY_INITIAL_DELAY", "250ms")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "sk-test", cfg.OpenAIKey)
	assert.Zero(t, cfg.RetryMax)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryInitialDelay)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"PORT":                 "http",
		"LOG_LEVEL":            "loud",
		"HTTP_TIMEOUT_SECONDS": "0",
		"RETRY_MAX":            "11",
		"RETRY_MULTIPLIER":     "0.5",
		"OPENAI_BASE_URL":      "not a url",
		"RATE_LIMIT_RPS":       "abc",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
