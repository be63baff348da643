// Package retention runs the cleanup job that purges expired soft-deleted rows.
package retention

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/retention"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrRunInProgress is returned when another cleanup run holds the lock
var ErrRunInProgress = shared.NewConflictError("a cleanup run is already in progress")

// Metrics receives run and per-table counters
type Metrics interface {
	RecordRun(ctx context.Context, trigger string, dryRun bool, outcome string, elapsed time.Duration)
	RecordTable(ctx context.Context, table string, purged, failed int)
}

// Schedule reports the next activation after a given time. cron.Schedule
// satisfies it.
type Schedule interface {
	Next(time.Time) time.Time
}

// RunOptions selects how a run behaves
type RunOptions struct {
	DryRun  bool
	Trigger retention.Trigger
}

// Status describes the job for the status endpoint
type Status struct {
	Running         bool                `json:"running"`
	Policies        []retention.Policy  `json:"policies"`
	LastRun         *retention.Manifest `json:"last_run,omitempty"`
	NextScheduledAt *time.Time          `json:"next_scheduled_at,omitempty"`
}

// CleanupService sweeps every configured table in order and purges the rows
// whose retention period has elapsed
type CleanupService struct {
	store      retention.Store
	policies   []retention.Policy
	recorder   appaudit.Recorder
	lock       retention.RunLock
	metrics    Metrics
	schedule   Schedule
	runTimeout time.Duration
	logger     *zap.Logger
	now        func() time.Time

	runMu   sync.Mutex
	running atomic.Bool

	stateMu sync.RWMutex
	last    *retention.Manifest
}

// Option configures a CleanupService
type Option func(*CleanupService)

// WithRunLock adds a cross-process lock taken after the in-process one
func WithRunLock(lock retention.RunLock) Option {
	return func(s *CleanupService) { s.lock = lock }
}

// WithMetrics sets the metrics sink
func WithMetrics(m Metrics) Option {
	return func(s *CleanupService) { s.metrics = m }
}

// WithSchedule sets the schedule used to report the next run
func WithSchedule(schedule Schedule) Option {
	return func(s *CleanupService) { s.schedule = schedule }
}

// WithRunTimeout bounds each run. Zero leaves runs unbounded.
func WithRunTimeout(d time.Duration) Option {
	return func(s *CleanupService) { s.runTimeout = d }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *CleanupService) { s.logger = logger }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *CleanupService) { s.now = now }
}

// NewCleanupService creates a new CleanupService. An empty policy list falls
// back to the default policies.
func NewCleanupService(store retention.Store, policies []retention.Policy, recorder appaudit.Recorder, opts ...Option) (*CleanupService, error) {
	if len(policies) == 0 {
		policies = retention.DefaultPolicies()
	}
	if err := retention.ValidatePolicies(policies); err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = appaudit.NopRecorder{}
	}
	s := &CleanupService{
		store:    store,
		policies: append([]retention.Policy(nil), policies...),
		recorder: recorder,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run executes one cleanup pass. When the context is cancelled the run stops
// between rows and the manifest so far is returned with the error.
func (s *CleanupService) Run(ctx context.Context, opts RunOptions) (manifest *retention.Manifest, runErr error) {
	if opts.Trigger == "" {
		opts.Trigger = retention.TriggerManual
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "retention", "run",
		attribute.String("retention.trigger", string(opts.Trigger)),
		attribute.Bool("retention.dry_run", opts.DryRun),
	)
	defer func() {
		telemetry.RecordError(span, runErr)
		span.End()
	}()

	if !s.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.runMu.Unlock()

	if s.lock != nil {
		release, ok, err := s.lock.TryAcquire(ctx)
		if err != nil {
			return nil, shared.NewInternalError("failed to acquire cleanup lock", err)
		}
		if !ok {
			return nil, ErrRunInProgress
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("Failed to release cleanup lock", zap.Error(err))
			}
		}()
	}

	s.running.Store(true)
	defer s.running.Store(false)

	runCtx, cancel := s.bound(ctx)
	defer cancel()

	started := s.now()
	manifest = retention.NewManifest(opts.Trigger, opts.DryRun, started)
	manifest.TraceID = telemetry.TraceID(ctx)
	span.SetAttributes(attribute.String("retention.run_id", manifest.RunID.String()))
	log := s.logger.With(
		zap.String("run_id", manifest.RunID.String()),
		zap.String("trigger", string(opts.Trigger)),
		zap.Bool("dry_run", opts.DryRun),
	)
	if manifest.TraceID != "" {
		log = log.With(zap.String("trace_id", manifest.TraceID))
	}
	log.Info("Cleanup run started", zap.Int("policies", len(s.policies)))

	for _, p := range s.policies {
		if err := runCtx.Err(); err != nil {
			runErr = err
			break
		}
		result, err := s.sweep(runCtx, log, p, started, opts.DryRun)
		manifest.Add(result)
		if s.metrics != nil {
			s.metrics.RecordTable(ctx, p.Table, result.Purged, result.Failed)
		}
		if err != nil {
			runErr = err
			break
		}
	}
	manifest.Finish(s.now())

	outcome := "success"
	switch {
	case runErr != nil:
		outcome = "interrupted"
		runErr = fmt.Errorf("cleanup run interrupted: %w", runErr)
	case manifest.PartiallyFailed():
		outcome = "partial"
	}
	span.SetAttributes(
		attribute.String("retention.outcome", outcome),
		attribute.Int("retention.purged", manifest.Totals.Purged),
		attribute.Int("retention.failed", manifest.Totals.Failed),
	)

	log.Info("Cleanup run finished",
		zap.String("outcome", outcome),
		zap.Int("candidates", manifest.Totals.Candidates),
		zap.Int("purged", manifest.Totals.Purged),
		zap.Int("skipped", manifest.Totals.Skipped),
		zap.Int("failed", manifest.Totals.Failed),
		zap.Int("table_failures", manifest.Totals.TableFails),
		zap.Duration("elapsed", manifest.FinishedAt.Sub(manifest.StartedAt)))

	if s.metrics != nil {
		s.metrics.RecordRun(ctx, string(opts.Trigger), opts.DryRun, outcome, manifest.FinishedAt.Sub(manifest.StartedAt))
	}
	if !opts.DryRun {
		s.recorder.Record(context.WithoutCancel(ctx), audit.ActionCleanup, "deletion_logs", manifest.RunID.String(), summary(manifest))
	}

	s.stateMu.Lock()
	s.last = manifest
	s.stateMu.Unlock()

	return manifest, runErr
}

// sweep processes one policy. Only context errors are returned; store
// failures are recorded in the result.
func (s *CleanupService) sweep(ctx context.Context, log *zap.Logger, p retention.Policy, now time.Time, dryRun bool) (retention.TableResult, error) {
	cutoff := p.Cutoff(now)
	result := retention.TableResult{
		Table:           p.Table,
		KeyColumn:       p.KeyColumn,
		RetentionMonths: p.RetentionMonths,
		Cutoff:          cutoff,
	}
	log = log.With(zap.String("table", p.Table), zap.Time("cutoff", cutoff))

	keys, err := s.store.FindCandidates(ctx, p, cutoff)
	if err != nil {
		result.Error = err.Error()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		log.Error("Failed to select cleanup candidates", zap.Error(err))
		return result, nil
	}
	result.Candidates = len(keys)
	if len(keys) == 0 {
		log.Info("No rows to clean up")
		return result, nil
	}

	if dryRun {
		result.CandidateIDs = keys
		for _, key := range keys {
			log.Info("Cleanup candidate", zap.String("key", key))
		}
		return result, nil
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		outcome, err := s.store.Purge(ctx, p, key, cutoff, now)
		if err != nil {
			result.Failed++
			log.Warn("Failed to purge row", zap.String("key", key), zap.Error(err))
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return result, ctxErr
			}
			continue
		}
		switch outcome {
		case retention.Purged:
			result.Purged++
		case retention.Vanished:
			result.Skipped++
			log.Info("Row no longer eligible, skipped", zap.String("key", key))
		}
	}
	return result, nil
}

func (s *CleanupService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.runTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.runTimeout)
}

// Status returns whether a run is active, the last manifest and the next
// scheduled activation
func (s *CleanupService) Status() Status {
	st := Status{
		Running:  s.running.Load(),
		Policies: append([]retention.Policy(nil), s.policies...),
	}
	s.stateMu.RLock()
	st.LastRun = s.last
	s.stateMu.RUnlock()
	if s.schedule != nil {
		next := s.schedule.Next(s.now())
		if !next.IsZero() {
			st.NextScheduledAt = &next
		}
	}
	return st
}

func summary(m *retention.Manifest) string {
	return fmt.Sprintf("%s cleanup purged %d of %d candidate rows (%d skipped, %d failed, %d table failures)",
		m.Trigger, m.Totals.Purged, m.Totals.Candidates, m.Totals.Skipped, m.Totals.Failed, m.Totals.TableFails)
}
