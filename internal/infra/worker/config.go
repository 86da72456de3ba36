package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newswire/internal/pkg/config"
)

// WorkerConfig controls the harvest schedule, cycle timeout, and the
// health check port. Loading is fail-open: invalid environment values
// fall back to defaults rather than aborting startup.
type WorkerConfig struct {
	// SchedulePeriod is the fixed interval between pipeline cycles.
	// The next cycle starts SchedulePeriod after the previous one was
	// scheduled, regardless of how the previous one ended.
	SchedulePeriod time.Duration

	// Timezone is the IANA timezone name for the scheduler.
	Timezone string

	// CycleTimeout bounds a single pipeline cycle. Items not delivered
	// before it fires stay in the backlog for the next cycle.
	CycleTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	HealthPort int
}

// DefaultConfig returns the worker defaults. The 3-hour period matches
// the cadence most news feeds update at, and the 30-minute timeout
// bounds a cycle that retries every backlog item.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		SchedulePeriod: 3 * time.Hour,
		Timezone:       "UTC",
		CycleTimeout:   30 * time.Minute,
		HealthPort:     9091,
	}
}

// CronSpec returns the robfig/cron schedule expression for the
// configured period, e.g. "@every 3h0m0s".
func (c *WorkerConfig) CronSpec() string {
	return fmt.Sprintf("@every %s", c.SchedulePeriod)
}

// Validate checks all fields and collects every violation into the
// returned error.
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateDuration(c.SchedulePeriod, 1*time.Minute, 24*time.Hour); err != nil {
		errors = append(errors, fmt.Errorf("schedule period: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidateDuration(c.CycleTimeout, 1*time.Minute, 4*time.Hour); err != nil {
		errors = append(errors, fmt.Errorf("cycle timeout: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from SCHEDULE_PERIOD,
// WORKER_TIMEZONE, CYCLE_TIMEOUT, and WORKER_HEALTH_PORT. Each value
// that fails to parse or validate falls back to its default with a
// warning log and a metrics increment; the returned config is always
// valid and the error is always nil.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	note := func(field string, fb *config.Fallback) {
		if fb == nil {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", fb.Warning()))
	}

	var fb *config.Fallback

	cfg.SchedulePeriod, fb = config.EnvDuration("SCHEDULE_PERIOD", cfg.SchedulePeriod, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 24*time.Hour)
	})
	note("schedule_period", fb)

	cfg.Timezone, fb = config.EnvValidated("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	note("timezone", fb)

	cfg.CycleTimeout, fb = config.EnvDuration("CYCLE_TIMEOUT", cfg.CycleTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	note("cycle_timeout", fb)

	cfg.HealthPort, fb = config.EnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	note("health_port", fb)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
