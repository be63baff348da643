package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

const retentionMeterName = "medstock/retention"

// RetentionMetrics records cleanup run outcomes.
type RetentionMetrics struct {
	runs       *Counter
	purged     *Counter
	failed     *Counter
	runSeconds *Histogram
}

// NewRetentionMetrics registers the cleanup instruments on the meter.
func NewRetentionMetrics(meter metric.Meter) (*RetentionMetrics, error) {
	runs, err := NewCounter(meter, "retention_runs_total", "Cleanup runs by trigger and outcome", "{run}")
	if err != nil {
		return nil, err
	}
	purged, err := NewCounter(meter, "retention_rows_purged_total", "Rows permanently removed by cleanup", "{row}")
	if err != nil {
		return nil, err
	}
	failed, err := NewCounter(meter, "retention_rows_failed_total", "Rows that failed to purge", "{row}")
	if err != nil {
		return nil, err
	}
	runSeconds, err := NewHistogram(meter, "retention_run_duration_seconds", "Cleanup run duration", "s", RunDurationBuckets...)
	if err != nil {
		return nil, err
	}
	return &RetentionMetrics{runs: runs, purged: purged, failed: failed, runSeconds: runSeconds}, nil
}

// RecordRun records a finished run.
func (m *RetentionMetrics) RecordRun(ctx context.Context, trigger string, dryRun bool, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.Inc(ctx, AttrTrigger.String(trigger), AttrDryRun.Bool(dryRun), AttrOutcome.String(outcome))
	m.runSeconds.RecordDuration(ctx, elapsed, AttrTrigger.String(trigger))
}

// RecordTable records per-table row counts.
func (m *RetentionMetrics) RecordTable(ctx context.Context, table string, purged, failed int) {
	if m == nil {
		return
	}
	if purged > 0 {
		m.purged.Add(ctx, int64(purged), AttrTable.String(table))
	}
	if failed > 0 {
		m.failed.Add(ctx, int64(failed), AttrTable.String(table))
	}
}

// RetentionMeter returns the meter used for cleanup instruments.
func RetentionMeter(mp *MeterProvider) metric.Meter {
	return mp.Meter(retentionMeterName)
}
