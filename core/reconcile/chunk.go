package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// ApplyChunked calls fn once per chunk and concatenates the results.
// It stops at the first failing chunk, returning what earlier chunks produced.
func ApplyChunked[T, R any](ctx context.Context, items []T, size int, fn func(ctx context.Context, chunk []T) ([]R, error)) ([]R, error) {
	var out []R
	for n, chunk := range Chunk(items, size) {
		res, err := fn(ctx, chunk)
		if err != nil {
			return out, fmt.Errorf("chunk %d: %w", n+1, err)
		}
		out = append(out, res...)
	}
	return out, nil
}

// EachChunk writes items in chunks of size. Every item of a successful chunk
// is reported with outcome; every item of a failed chunk is reported Failed
// with the chunk error, and later chunks still run.
func EachChunk[T any](ctx context.Context, r *Runner, kind string, items []T, size int, keyOf func(T) string, outcome Outcome, fn func(ctx context.Context, chunk []T) error) Summary {
	summary := Summary{Kind: kind, StartedAt: r.now()}
	for n, chunk := range Chunk(items, size) {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Pass interrupted", zap.String("kind", kind), zap.Int("chunk", n), zap.Error(err))
			break
		}

		start := r.now()
		err := fn(ctx, chunk)
		elapsed := r.now().Sub(start)
		for _, item := range chunk {
			result := Result{Kind: kind, Key: keyOf(item), Outcome: outcome, Elapsed: elapsed}
			if err != nil {
				result.Outcome, result.Err = Failed, fmt.Errorf("chunk %d: %w", n, err)
			}
			summary.Record(result)
			r.reporter.Report(ctx, result)
		}
	}
	summary.FinishedAt = r.now()
	return summary
}
