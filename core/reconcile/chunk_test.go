package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{"Empty", nil, 3, nil},
		{"Exact", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"Remainder", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"Smaller than size", []int{1}, 250, [][]int{{1}}},
		{"Non-positive size", []int{1, 2}, 0, [][]int{{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.items, tt.size))
		})
	}
}

func TestApplyChunked(t *testing.T) {
	ctx := context.Background()
	items := make([]int, 520)
	for i := range items {
		items[i] = i
	}

	t.Run("Concatenates results", func(t *testing.T) {
		var sizes []int
		out, err := ApplyChunked(ctx, items, 250, func(ctx context.Context, chunk []int) ([]int, error) {
			sizes = append(sizes, len(chunk))
			return chunk, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{250, 250, 20}, sizes)
		assert.Equal(t, items, out)
	})

	t.Run("Stops at first failing chunk", func(t *testing.T) {
		calls := 0
		out, err := ApplyChunked(ctx, items, 250, func(ctx context.Context, chunk []int) ([]int, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("rejected")
			}
			return chunk, nil
		})
		assert.EqualError(t, err, "chunk 2: rejected")
		assert.Len(t, out, 250)
		assert.Equal(t, 2, calls)
	})
}

func TestEachChunk(t *testing.T) {
	var reported []Result
	runner := NewRunner(zap.NewNop(), ReporterFunc(func(_ context.Context, r Result) {
		reported = append(reported, r)
	}))

	var calls int
	summary := EachChunk(context.Background(), runner, "file", []string{"a", "b", "c", "d", "e"}, 2,
		func(s string) string { return s },
		Created,
		func(ctx context.Context, chunk []string) error {
			calls++
			if chunk[0] == "c" {
				return errors.New("rejected")
			}
			return nil
		})

	assert.Equal(t, 3, calls)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3, summary.Created)
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, reported, 5)
	assert.Equal(t, Failed, reported[2].Outcome)
	assert.ErrorContains(t, reported[3].Err, "chunk 1: rejected")
	assert.Equal(t, Created, reported[4].Outcome)
}
