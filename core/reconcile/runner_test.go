package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEach_IsolatesFailures(t *testing.T) {
	var reported []Result
	runner := NewRunner(zap.NewNop(), ReporterFunc(func(_ context.Context, r Result) {
		reported = append(reported, r)
	}))

	var processed []int
	summary := Each(context.Background(), runner, "number", []int{1, 2, 3, 4, 5},
		func(n int) string { return string(rune('0' + n)) },
		func(ctx context.Context, n int) (Outcome, error) {
			processed = append(processed, n)
			switch n {
			case 3:
				return Unchanged, errors.New("item 3 broke")
			case 4:
				panic("item 4 exploded")
			case 5:
				return Created, nil
			}
			return Unchanged, nil
		})

	assert.Equal(t, []int{1, 2, 3, 4, 5}, processed)
	assert.Len(t, reported, 5)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Unchanged)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, "number", summary.Kind)

	assert.Equal(t, Failed, reported[2].Outcome)
	assert.EqualError(t, reported[2].Err, "item 3 broke")
	assert.Equal(t, "4", summary.Failures[1].Key)
	assert.Contains(t, summary.Failures[1].Error, "item 4 exploded")
}

func TestEach_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := NewRunner(nil, ReporterFunc(func(context.Context, Result) {}))

	summary := Each(ctx, runner, "number", []int{1, 2, 3}, func(int) string { return "k" },
		func(ctx context.Context, n int) (Outcome, error) {
			if n == 2 {
				cancel()
			}
			return Updated, nil
		})

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Updated)
}

func TestEach_LogsProgress(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	runner := NewRunner(zap.New(core), nil)

	Each(context.Background(), runner, "page", []string{"about", "faq"}, func(s string) string { return s },
		func(ctx context.Context, s string) (Outcome, error) { return Created, nil })

	progress := logs.FilterMessage("Progress").All()
	assert.Len(t, progress, 2)
	assert.Equal(t, int64(2), progress[1].ContextMap()["completed"])

	processed := logs.FilterMessage("Item processed").FilterLevelExact(zapcore.InfoLevel).All()
	assert.Len(t, processed, 2)
}

func TestSummary_Merge(t *testing.T) {
	var all Summary
	all.Merge(Summary{Total: 2, Created: 1, Unchanged: 1})
	all.Merge(Summary{Total: 1, Failed: 1, Failures: []Failure{{Kind: "page", Key: "x", Error: "boom"}}})

	assert.Equal(t, 3, all.Total)
	assert.Equal(t, 1, all.Changed())
	assert.Len(t, all.Failures, 1)
}
