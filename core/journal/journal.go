package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	runColumns     = []string{"id", "kind", "status", "total", "unchanged", "created", "updated", "recreated", "deleted", "skipped", "failed", "started_at", "finished_at"}
	failureColumns = []string{"id", "run_id", "kind", "key", "error", "created_at"}
)

// Journal persists run summaries and per-item failures.
type Journal struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// New creates a journal over db.
func New(db *gorm.DB, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{db: db, logger: logger, now: time.Now}
}

// Migrate creates or updates the journal tables.
func (j *Journal) Migrate() error {
	if err := j.db.AutoMigrate(&Run{}, &Failure{}); err != nil {
		return fmt.Errorf("failed to migrate journal: %w", err)
	}
	return nil
}

// Verify checks that both tables carry every column the journal writes.
func (j *Journal) Verify() error {
	for table, want := range map[string][]string{
		Run{}.TableName():     runColumns,
		Failure{}.TableName(): failureColumns,
	} {
		missing, err := database.MissingColumns(j.db, table, want)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Start records a new running pass.
func (j *Journal) Start(ctx context.Context, kind string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Status:    StatusRunning,
		StartedAt: j.now(),
	}
	if err := j.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}
	return run, nil
}

// Finish stores the final counts of a run.
func (j *Journal) Finish(ctx context.Context, run *Run, summary reconcile.Summary) error {
	finished := j.now()
	run.Status = StatusFinished
	run.Total = summary.Total
	run.Unchanged = summary.Unchanged
	run.Created = summary.Created
	run.Updated = summary.Updated
	run.Recreated = summary.Recreated
	run.Deleted = summary.Deleted
	run.Skipped = summary.Skipped
	run.Failed = summary.Failed
	run.FinishedAt = &finished

	if err := j.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("failed to finish run %s: %w", run.ID, err)
	}
	return nil
}

// Reporter returns a reconcile.Reporter that writes a Failure row for every
// failed item of run. Write errors are logged, never returned to the pass.
func (j *Journal) Reporter(run *Run) reconcile.Reporter {
	return reconcile.ReporterFunc(func(ctx context.Context, r reconcile.Result) {
		if r.Outcome != reconcile.Failed {
			return
		}
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		failure := &Failure{RunID: run.ID, Kind: r.Kind, Key: r.Key, Error: msg, CreatedAt: j.now()}
		if err := j.db.WithContext(ctx).Create(failure).Error; err != nil {
			j.logger.Warn("Failed to journal failure",
				zap.String("run_id", run.ID),
				zap.String("key", r.Key),
				zap.Error(err))
		}
	})
}

// Runs lists the most recent runs first.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []Run
	if err := j.db.WithContext(ctx).Order("started_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Failures lists the failed items of a run in insertion order.
func (j *Journal) Failures(ctx context.Context, runID string) ([]Failure, error) {
	var failures []Failure
	if err := j.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&failures).Error; err != nil {
		return nil, fmt.Errorf("failed to list failures of run %s: %w", runID, err)
	}
	return failures, nil
}
