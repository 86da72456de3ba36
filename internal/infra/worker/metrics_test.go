package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWorkerMetrics(t *testing.T) {
	// Use the shared instance to avoid duplicate Prometheus registration.
	metrics := globalTestMetrics

	if metrics == nil {
		t.Fatal("NewWorkerMetrics returned nil")
	}
	if metrics.ConfigMetrics == nil {
		t.Error("ConfigMetrics is nil")
	}
	if metrics.CycleRunsTotal == nil {
		t.Error("CycleRunsTotal is nil")
	}
	if metrics.CycleDurationSeconds == nil {
		t.Error("CycleDurationSeconds is nil")
	}
	if metrics.CycleItemsDeliveredTotal == nil {
		t.Error("CycleItemsDeliveredTotal is nil")
	}
	if metrics.CycleLastSuccessTimestamp == nil {
		t.Error("CycleLastSuccessTimestamp is nil")
	}

	// MustRegister is a no-op and must not panic.
	metrics.MustRegister()
}

func TestWorkerMetrics_RecordCycleRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_worker_cycle_runs_total",
		Help: "Test counter",
	}, []string{"status"})
	reg.MustRegister(counter)

	metrics := &WorkerMetrics{CycleRunsTotal: counter}

	metrics.RecordCycleRun("success")
	metrics.RecordCycleRun("success")
	metrics.RecordCycleRun("failure")

	if got := testutil.ToFloat64(counter.WithLabelValues("success")); got != 2 {
		t.Errorf("success count = %f, want 2", got)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("failure")); got != 1 {
		t.Errorf("failure count = %f, want 1", got)
	}
}

func TestWorkerMetrics_RecordCycleDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	hist := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_worker_cycle_duration_seconds",
		Help:    "Test histogram",
		Buckets: []float64{1, 5, 30},
	})
	reg.MustRegister(hist)

	metrics := &WorkerMetrics{CycleDurationSeconds: hist}

	metrics.RecordCycleDuration(2.5)
	metrics.RecordCycleDuration(12.0)

	count := testutil.CollectAndCount(hist)
	if count != 1 {
		t.Errorf("expected 1 histogram metric, got %d", count)
	}
}

func TestWorkerMetrics_RecordItemsDelivered(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_worker_cycle_items_delivered_total",
		Help: "Test counter",
	})
	reg.MustRegister(counter)

	metrics := &WorkerMetrics{CycleItemsDeliveredTotal: counter}

	metrics.RecordItemsDelivered(3)
	metrics.RecordItemsDelivered(2)

	if got := testutil.ToFloat64(counter); got != 5 {
		t.Errorf("items delivered = %f, want 5", got)
	}
}

func TestWorkerMetrics_RecordLastSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_worker_cycle_last_success_timestamp",
		Help: "Test gauge",
	})
	reg.MustRegister(gauge)

	metrics := &WorkerMetrics{CycleLastSuccessTimestamp: gauge}

	metrics.RecordLastSuccess()

	if got := testutil.ToFloat64(gauge); got <= 0 {
		t.Errorf("last success timestamp = %f, want > 0", got)
	}
}
