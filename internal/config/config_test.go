package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.HTTPMaxRetries)
	assert.Equal(t, time.Second, cfg.HTTPRetryWaitMin)
	assert.Equal(t, 5*time.Second, cfg.HTTPRetryWaitMax)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SYMPTOMFY_API_URL", "https://api.symptomfy.example")
	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("HTTP_MAX_RETRIES", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.symptomfy.example", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1, cfg.HTTPMaxRetries)
}

func TestLoad_InvalidAPIURL(t *testing.T) {
	t.Setenv("SYMPTOMFY_API_URL", "not a url")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid API URL")
}

func TestLoad_URLWithoutScheme(t *testing.T) {
	t.Setenv("SYMPTOMFY_API_URL", "localhost:8080")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NegativeRetries(t *testing.T) {
	t.Setenv("HTTP_MAX_RETRIES", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries")
}
