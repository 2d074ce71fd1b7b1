package syncer

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// collect deletes each orphan through del, or only reports it on a dry run.
func collect[T any](ctx context.Context, s *Syncer, kind string, orphans []T, keyOf func(T) string, del func(ctx context.Context, item T) error) reconcile.Summary {
	return reconcile.Each(ctx, s.runner, kind, orphans, keyOf,
		func(ctx context.Context, item T) (reconcile.Outcome, error) {
			if s.dryRun {
				s.logger.Info("Would delete", zap.String("kind", kind), zap.String("key", keyOf(item)))
				return reconcile.Skipped, nil
			}
			if err := del(ctx, item); err != nil {
				return reconcile.Failed, err
			}
			return reconcile.Deleted, nil
		})
}

// GarbageCollectDefinitions deletes the target definitions whose type has no
// source counterpart. Their instances are removed by a bulk job that is
// started but not awaited.
func (s *Syncer) GarbageCollectDefinitions(ctx context.Context) (reconcile.Summary, error) {
	if err := s.loadDefinitions(ctx); err != nil {
		return reconcile.Summary{Kind: KindDefinition}, err
	}

	var orphans []models.Definition
	for _, d := range reconcile.Orphans(s.sourceDefsByID.Items(), definitionType, s.targetDefs.Items(), definitionType) {
		if !isPlatformType(d.Type) {
			orphans = append(orphans, d)
		}
	}

	return collect(ctx, s, KindDefinition, orphans, definitionType,
		func(ctx context.Context, d models.Definition) error {
			job, err := s.target.BulkDeleteInstances(ctx, d.Type)
			if err != nil {
				return fmt.Errorf("failed to start instance deletion: %w", err)
			}
			s.logger.Info("Instance deletion started", zap.String("type", d.Type), zap.String("job", job))
			if _, err := s.target.DeleteDefinition(ctx, d.ID); err != nil {
				return err
			}
			s.targetDefs.Remove(d.Type)
			return nil
		}), nil
}

// GarbageCollectInstances deletes the target instances of typ whose handle
// has no source counterpart.
func (s *Syncer) GarbageCollectInstances(ctx context.Context, typ string) (reconcile.Summary, error) {
	var source, target []models.Instance
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { source, err = s.source.ListInstances(gctx, typ); return })
	g.Go(func() (err error) { target, err = s.target.ListInstances(gctx, typ); return })
	if err := g.Wait(); err != nil {
		return reconcile.Summary{Kind: KindInstance}, fmt.Errorf("failed to list %s instances: %w", typ, err)
	}

	orphans := reconcile.Orphans(source, models.Instance.Key, target, models.Instance.Key)
	return collect(ctx, s, KindInstance, orphans, models.Instance.Key,
		func(ctx context.Context, inst models.Instance) error {
			_, err := s.target.DeleteInstance(ctx, inst.ID)
			return err
		}), nil
}

// GarbageCollectAttributeDefinitions deletes the target attribute
// definitions of the configured owner types that have no source counterpart.
func (s *Syncer) GarbageCollectAttributeDefinitions(ctx context.Context) (reconcile.Summary, error) {
	var source, target []models.AttributeDefinition
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { source, err = s.loadAttributeDefinitions(gctx, reconcile.SideSource); return })
	g.Go(func() (err error) { target, err = s.loadAttributeDefinitions(gctx, reconcile.SideTarget); return })
	if err := g.Wait(); err != nil {
		return reconcile.Summary{Kind: KindAttributeDefinition}, err
	}

	orphans := reconcile.Orphans(source, attributeDefinitionKey, target, attributeDefinitionKey)
	return collect(ctx, s, KindAttributeDefinition, orphans, attributeDefinitionKey,
		func(ctx context.Context, d models.AttributeDefinition) error {
			_, err := s.target.DeleteAttributeDefinition(ctx, d.ID)
			return err
		}), nil
}

// GarbageCollectCollections deletes the target collections whose handle has
// no source counterpart.
func (s *Syncer) GarbageCollectCollections(ctx context.Context) (reconcile.Summary, error) {
	source, target, err := s.listCollections(ctx)
	if err != nil {
		return reconcile.Summary{Kind: KindCollection}, err
	}

	orphans := reconcile.Orphans(source, collectionHandle, target, collectionHandle)
	return collect(ctx, s, KindCollection, orphans, collectionHandle,
		func(ctx context.Context, c models.Collection) error {
			_, err := s.target.DeleteCollection(ctx, c.ID)
			return err
		}), nil
}
