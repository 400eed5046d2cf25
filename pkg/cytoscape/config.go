package cytoscape

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Config configures a Client. The zero value targets a locally running
// Cytoscape with default timeouts.
type Config struct {
	// BaseURL is the CyREST endpoint, including the API version segment.
	// Empty means http://127.0.0.1:1234/v1.
	BaseURL string `validate:"omitempty,url"`

	// Timeout bounds each individual request. Zero means 60s.
	Timeout time.Duration `validate:"min=0"`

	// Logger receives request/response debug logging. Nil means no-op.
	Logger *zap.Logger
}

var validate = validator.New()

// Validate checks the configuration without connecting anywhere.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("cytoscape: invalid config: %w", err)
	}
	return nil
}

// ConfigFromEnv builds a Config from CYREST_URL and CYREST_TIMEOUT,
// falling back to defaults for anything unset.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{BaseURL: os.Getenv("CYREST_URL")}
	if v := os.Getenv("CYREST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("cytoscape: bad CYREST_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
