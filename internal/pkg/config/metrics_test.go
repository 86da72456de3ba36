package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// Shared instance: promauto registers globally, so creating a second
// ConfigMetrics with the same component would panic.
var testMetrics = NewConfigMetrics("configtest")

func TestConfigMetrics_RecordFallback(t *testing.T) {
	testMetrics.RecordFallback("schedule_period")
	testMetrics.RecordFallback("schedule_period")
	testMetrics.RecordFallback("timezone")

	assert.Equal(t, 2.0, testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("schedule_period")))
	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("timezone")))
}

func TestConfigMetrics_RecordValidationError(t *testing.T) {
	testMetrics.RecordValidationError("health_port")

	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.ValidationErrorsTotal.WithLabelValues("health_port")))
}

func TestConfigMetrics_SetFallbackActive(t *testing.T) {
	testMetrics.SetFallbackActive(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.FallbackActive))

	testMetrics.SetFallbackActive(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(testMetrics.FallbackActive))
}

func TestConfigMetrics_RecordLoadTimestamp(t *testing.T) {
	testMetrics.RecordLoadTimestamp()

	assert.Greater(t, testutil.ToFloat64(testMetrics.LoadTimestamp), 0.0)
}
