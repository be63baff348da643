package retention

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Trigger identifies what started a cleanup run
type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
)

// TableResult is the outcome of one policy within a run
type TableResult struct {
	Table           string    `json:"table"`
	KeyColumn       string    `json:"key_column"`
	RetentionMonths int       `json:"retention_months"`
	Cutoff          time.Time `json:"cutoff"`
	Candidates      int       `json:"candidates"`
	Purged          int       `json:"purged"`
	Skipped         int       `json:"skipped"`
	Failed          int       `json:"failed"`
	CandidateIDs    []string  `json:"candidate_ids,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// Totals sums the per-table counters of a run
type Totals struct {
	Candidates int `json:"candidates"`
	Purged     int `json:"purged"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	TableFails int `json:"table_failures"`
}

// Manifest reports what a cleanup run found and did
type Manifest struct {
	RunID      uuid.UUID     `json:"run_id"`
	Trigger    Trigger       `json:"trigger"`
	DryRun     bool          `json:"dry_run"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Tables     []TableResult `json:"tables"`
	Totals     Totals        `json:"totals"`
	// TraceID links the manifest to the run's trace when tracing is enabled
	TraceID string `json:"trace_id,omitempty"`
}

// NewManifest starts a manifest for a run
func NewManifest(trigger Trigger, dryRun bool, startedAt time.Time) *Manifest {
	return &Manifest{
		RunID:     uuid.New(),
		Trigger:   trigger,
		DryRun:    dryRun,
		StartedAt: startedAt,
		Tables:    []TableResult{},
	}
}

// Add appends a table result and folds it into the totals
func (m *Manifest) Add(r TableResult) {
	m.Tables = append(m.Tables, r)
	m.Totals.Candidates += r.Candidates
	m.Totals.Purged += r.Purged
	m.Totals.Skipped += r.Skipped
	m.Totals.Failed += r.Failed
	if r.Error != "" {
		m.Totals.TableFails++
	}
}

// Finish stamps the end of the run
func (m *Manifest) Finish(at time.Time) {
	m.FinishedAt = at
}

// PartiallyFailed reports whether any row or table failed
func (m *Manifest) PartiallyFailed() bool {
	return m.Totals.Failed > 0 || m.Totals.TableFails > 0
}

// PurgeOutcome is the result of purging a single row
type PurgeOutcome int

const (
	// Purged means the deletion log row was written and the row deleted
	Purged PurgeOutcome = iota
	// Vanished means the row no longer matched the eligibility guard (restored
	// or already purged); nothing was written
	Vanished
)

// Store is the persistence port of the cleanup job
type Store interface {
	// FindCandidates returns keys of rows with is_deleted = true and
	// updated_at strictly before cutoff, in ascending key order
	FindCandidates(ctx context.Context, p Policy, cutoff time.Time) ([]string, error)
	// Purge writes a deletion log row and deletes the row in one transaction
	Purge(ctx context.Context, p Policy, key string, cutoff, now time.Time) (PurgeOutcome, error)
}

// RunLock serializes cleanup runs across processes
type RunLock interface {
	// TryAcquire returns a release function, or ok=false when another run holds the lock
	TryAcquire(ctx context.Context) (release func(context.Context) error, ok bool, err error)
}
