package summarizer

import (
	"fmt"
	"log/slog"
	"time"

	"newswire/internal/pkg/config"
)

// Config holds configuration parameters for the proxy summarizer.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// BaseURL is the summarization proxy base URL, e.g. "http://10.63.0.110:8000".
	BaseURL string

	// Model is the model identifier passed to the completion endpoint.
	Model string

	// TokenTimeout bounds the POST /oauth/ credential call.
	TokenTimeout time.Duration

	// CompletionTimeout bounds the POST /chat/completions call. Generation
	// is slow, so this is much longer than the token timeout.
	CompletionTimeout time.Duration
}

// LoadConfig loads proxy summarizer configuration from environment variables.
//
// Environment variables:
//   - SUMMARIZER_PROXY_URL: proxy base URL (required)
//   - SUMMARIZER_MODEL: model identifier (default: "GigaChat")
//   - SUMMARIZER_TOKEN_TIMEOUT: credential call timeout (default: 5s)
//   - SUMMARIZER_COMPLETION_TIMEOUT: completion call timeout (default: 90s)
func LoadConfig() (*Config, error) {
	tokenTimeout, fb := config.EnvDuration("SUMMARIZER_TOKEN_TIMEOUT", 5*time.Second, nil)
	if fb != nil {
		slog.Warn("Configuration fallback applied", slog.String("warning", fb.Warning()))
	}
	completionTimeout, fb := config.EnvDuration("SUMMARIZER_COMPLETION_TIMEOUT", 90*time.Second, nil)
	if fb != nil {
		slog.Warn("Configuration fallback applied", slog.String("warning", fb.Warning()))
	}

	cfg := &Config{
		BaseURL:           config.EnvString("SUMMARIZER_PROXY_URL", ""),
		Model:             config.EnvString("SUMMARIZER_MODEL", "GigaChat"),
		TokenTimeout:      tokenTimeout,
		CompletionTimeout: completionTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("proxy base URL cannot be empty")
	}

	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}

	if c.TokenTimeout <= 0 {
		return fmt.Errorf("token timeout must be positive, got %v", c.TokenTimeout)
	}

	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("completion timeout must be positive, got %v", c.CompletionTimeout)
	}

	return nil
}
