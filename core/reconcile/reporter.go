package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// Reporter receives every per-item result of a pass.
type Reporter interface {
	Report(ctx context.Context, r Result)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, r Result)

func (f ReporterFunc) Report(ctx context.Context, r Result) { f(ctx, r) }

// LogReporter logs changes at info and failures at error.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter creates a reporter writing to logger.
func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (l *LogReporter) Report(_ context.Context, r Result) {
	fields := []zap.Field{
		zap.String("kind", r.Kind),
		zap.String("key", r.Key),
		zap.String("outcome", string(r.Outcome)),
		zap.Duration("elapsed", r.Elapsed),
	}
	switch r.Outcome {
	case Failed:
		l.logger.Error("Item failed", append(fields, zap.Error(r.Err))...)
	case Unchanged, Skipped:
		l.logger.Debug("Item processed", fields...)
	default:
		l.logger.Info("Item processed", fields...)
	}
}

// MultiReporter fans a result out to several reporters. Nil entries are ignored.
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, r Result) {
	for _, rep := range m {
		if rep != nil {
			rep.Report(ctx, r)
		}
	}
}
