package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ItemFunc reconciles one item and says what happened to it.
type ItemFunc[T any] func(ctx context.Context, item T) (Outcome, error)

// Runner drives a pass over a list of items, isolating per-item failures.
type Runner struct {
	logger   *zap.Logger
	reporter Reporter
	now      func() time.Time
}

// NewRunner creates a Runner. A nil reporter logs through logger.
func NewRunner(logger *zap.Logger, reporter Reporter) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NewLogReporter(logger)
	}
	return &Runner{logger: logger, reporter: reporter, now: time.Now}
}

// Each processes items in order. A failing item is reported and the pass
// moves on; only context cancellation stops it early.
func Each[T any](ctx context.Context, r *Runner, kind string, items []T, keyOf func(T) string, fn ItemFunc[T]) Summary {
	summary := Summary{Kind: kind, StartedAt: r.now()}
	total := len(items)

	var spent time.Duration
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Pass interrupted",
				zap.String("kind", kind),
				zap.Int("completed", i),
				zap.Int("total", total),
				zap.Error(err))
			break
		}

		key := keyOf(item)
		start := r.now()
		outcome, err := runItem(ctx, item, fn)
		elapsed := r.now().Sub(start)
		if err != nil {
			outcome = Failed
		}

		result := Result{Kind: kind, Key: key, Outcome: outcome, Err: err, Elapsed: elapsed}
		summary.Record(result)
		r.reporter.Report(ctx, result)

		spent += elapsed
		done := i + 1
		avg := spent / time.Duration(done)
		r.logger.Debug("Progress",
			zap.String("kind", kind),
			zap.Int("completed", done),
			zap.Int("total", total),
			zap.Duration("eta", avg*time.Duration(total-done)))
	}

	summary.FinishedAt = r.now()
	return summary
}

// Report sends a single result outside of Each, e.g. for nested items.
func (r *Runner) Report(ctx context.Context, result Result) {
	r.reporter.Report(ctx, result)
}

func runItem[T any](ctx context.Context, item T, fn ItemFunc[T]) (outcome Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			outcome, err = Failed, fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx, item)
}
