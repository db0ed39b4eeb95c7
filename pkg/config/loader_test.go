package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	APIURL   string        `env:"TEST_API_URL" envDefault:"http://localhost:8080"`
	LogLevel string        `env:"TEST_LOG_LEVEL" envDefault:"info"`
	Timeout  time.Duration `env:"TEST_TIMEOUT" envDefault:"30s"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_API_URL", "https://api.symptomfy.dev")
	t.Setenv("TEST_TIMEOUT", "5s")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "https://api.symptomfy.dev", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "not-a-duration")

	var cfg testConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
