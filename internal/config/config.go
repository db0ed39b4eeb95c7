package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/3ricLu/Symptomfy-sub001/pkg/config"
)

// Config holds all configuration for the Symptomfy client.
type Config struct {
	// APIURL selects the backend host.
	APIURL   string `env:"SYMPTOMFY_API_URL" envDefault:"http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP client
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	HTTPMaxRetries  int           `env:"HTTP_MAX_RETRIES" envDefault:"3"`
	HTTPRetryWaitMin time.Duration `env:"HTTP_RETRY_WAIT_MIN" envDefault:"1s"`
	HTTPRetryWaitMax time.Duration `env:"HTTP_RETRY_WAIT_MAX" envDefault:"5s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL: %q", cfg.APIURL)
	}

	if cfg.HTTPMaxRetries < 0 {
		return nil, fmt.Errorf("invalid HTTP max retries: %d", cfg.HTTPMaxRetries)
	}

	return cfg, nil
}
