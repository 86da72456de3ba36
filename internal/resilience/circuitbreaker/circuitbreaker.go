// Package circuitbreaker guards the two external APIs the pipeline
// talks to, the summarization proxy and the Telegram Bot API, using
// github.com/sony/gobreaker. An open circuit fails calls immediately
// instead of letting a dead upstream stall every cycle.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config tunes one circuit.
type Config struct {
	// Name identifies the circuit in logs.
	Name string

	// MaxRequests is how many probe requests the half-open state lets
	// through.
	MaxRequests uint32

	// Interval is the closed-state window after which success/failure
	// counts reset.
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing again.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit,
	// e.g. 0.6 for 60%.
	FailureThreshold float64

	// MinRequests is the sample size below which the ratio is ignored.
	MinRequests uint32
}

func (c Config) readyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < c.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= c.FailureThreshold
}

// DefaultConfig returns a general-purpose circuit configuration.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ProxyAPIConfig returns the circuit configuration for the
// summarization proxy. Generation calls are slow and expensive, so the
// circuit trips early and stays open for a while.
func ProxyAPIConfig() Config {
	return Config{
		Name:             "summarizer-proxy",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// TelegramAPIConfig returns the circuit configuration for the Telegram
// Bot API. Telegram outages are usually short, so the thresholds are
// looser than the proxy's.
func TelegramAPIConfig() Config {
	return Config{
		Name:             "telegram-api",
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          120 * time.Second,
		FailureThreshold: 0.7,
		MinRequests:      10,
	}
}

// CircuitBreaker wraps a gobreaker instance with its configured name.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker from cfg. State transitions are logged
// at warn level.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: cfg.readyToTrip,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the circuit. When the circuit is open it
// returns gobreaker.ErrOpenState without calling fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State returns the circuit's current state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the configured circuit name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether the circuit is open.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
