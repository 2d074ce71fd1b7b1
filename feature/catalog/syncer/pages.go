package syncer

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
)

func pageHandle(p models.Page) string { return p.Handle }

// SyncPages creates the pages missing at target and then syncs the
// attributes of every page.
func (s *Syncer) SyncPages(ctx context.Context) (reconcile.Summary, error) {
	empty := reconcile.Summary{Kind: KindPage}
	source, err := s.source.ListPages(ctx)
	if err != nil {
		return empty, fmt.Errorf("failed to list source pages: %w", err)
	}
	target, err := s.target.ListPages(ctx)
	if err != nil {
		return empty, fmt.Errorf("failed to list target pages: %w", err)
	}

	targets := reconcile.NewIndex(KindPage, reconcile.SideTarget, pageHandle, target)
	return reconcile.Each(ctx, s.runner, KindPage, source, pageHandle,
		func(ctx context.Context, src models.Page) (reconcile.Outcome, error) {
			outcome := reconcile.Unchanged
			tgt, ok := targets.Get(src.Handle)
			if !ok {
				created, err := s.target.CreatePage(ctx, models.PageCreate{
					Handle:         src.Handle,
					Title:          src.Title,
					Body:           src.Body,
					IsPublished:    src.IsPublished,
					TemplateSuffix: src.TemplateSuffix,
				})
				if err != nil {
					return reconcile.Failed, err
				}
				targets.Add(*created)
				tgt, outcome = *created, reconcile.Created
			}

			var changes attributeChanges
			if err := s.diffAttributes(ctx, tgt.ID, src.Attributes, tgt.Attributes, &changes); err != nil {
				return reconcile.Failed, err
			}
			if changes.empty() {
				return outcome, nil
			}
			if err := s.applyAttributes(ctx, changes); err != nil {
				return reconcile.Failed, err
			}
			if outcome == reconcile.Unchanged {
				outcome = reconcile.Updated
			}
			return outcome, nil
		}), nil
}
