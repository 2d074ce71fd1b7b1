package syncer

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
)

func collectionHandle(c models.Collection) string { return c.Handle }

func (s *Syncer) listCollections(ctx context.Context) (source, target []models.Collection, err error) {
	if source, err = s.source.ListCollections(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to list source collections: %w", err)
	}
	if target, err = s.target.ListCollections(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to list target collections: %w", err)
	}
	return source, target, nil
}

// SyncCollections creates the collections missing at target. Existing
// collections are left as they are.
func (s *Syncer) SyncCollections(ctx context.Context) (reconcile.Summary, error) {
	source, target, err := s.listCollections(ctx)
	if err != nil {
		return reconcile.Summary{Kind: KindCollection}, err
	}

	targets := reconcile.NewIndex(KindCollection, reconcile.SideTarget, collectionHandle, target)
	return reconcile.Each(ctx, s.runner, KindCollection, source, collectionHandle,
		func(ctx context.Context, src models.Collection) (reconcile.Outcome, error) {
			if _, ok := targets.Get(src.Handle); ok {
				return reconcile.Unchanged, nil
			}
			created, err := s.target.CreateCollection(ctx, models.CollectionCreate{
				Handle:          src.Handle,
				Title:           src.Title,
				DescriptionHTML: src.DescriptionHTML,
				TemplateSuffix:  src.TemplateSuffix,
			})
			if err != nil {
				return reconcile.Failed, err
			}
			targets.Add(*created)
			return reconcile.Created, nil
		}), nil
}
