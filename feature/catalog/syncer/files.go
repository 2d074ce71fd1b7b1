package syncer

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

func fileName(f models.File) string { return f.Name() }

// SyncFiles creates the source files missing at target, matching by derived
// name. Existing files are never updated. Creates are sent in chunks and a
// failed chunk fails each of its files.
func (s *Syncer) SyncFiles(ctx context.Context) (reconcile.Summary, error) {
	empty := reconcile.Summary{Kind: KindFile}
	source, err := s.source.ListFiles(ctx)
	if err != nil {
		return empty, fmt.Errorf("failed to list source files: %w", err)
	}
	target, err := s.target.ListFiles(ctx)
	if err != nil {
		return empty, fmt.Errorf("failed to list target files: %w", err)
	}

	targets := reconcile.NewIndex(KindFile, reconcile.SideTarget, fileName, target)
	var existing, missing []models.File
	seen := make(map[string]struct{}, len(source))
	for _, f := range source {
		name := f.Name()
		if name == "" {
			s.logger.Warn("File has no name", zap.String("id", f.ID), zap.String("url", f.URL))
			continue
		}
		// duplicates at source share one target file
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if _, ok := targets.Get(name); ok {
			existing = append(existing, f)
		} else {
			missing = append(missing, f)
		}
	}

	summary := reconcile.Each(ctx, s.runner, KindFile, existing, fileName,
		func(context.Context, models.File) (reconcile.Outcome, error) {
			return reconcile.Unchanged, nil
		})
	summary.Merge(reconcile.EachChunk(ctx, s.runner, KindFile, missing, fileChunkSize, fileName, reconcile.Created,
		func(ctx context.Context, chunk []models.File) error {
			in := make([]models.FileCreate, 0, len(chunk))
			for _, f := range chunk {
				in = append(in, models.FileCreate{
					Filename:                f.Name(),
					OriginalSource:          f.URL,
					Alt:                     f.Alt,
					DuplicateResolutionMode: models.DuplicateAppendUUID,
				})
			}
			created, err := s.target.CreateFiles(ctx, in)
			if err != nil {
				return err
			}
			for _, f := range created {
				targets.Add(f)
			}
			return nil
		}))
	return summary, nil
}
