package syncer

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// SyncInstancesOf syncs every source instance of a definition type.
func (s *Syncer) SyncInstancesOf(ctx context.Context, typ string) (reconcile.Summary, error) {
	instances, err := s.source.ListInstances(ctx, typ)
	if err != nil {
		return reconcile.Summary{Kind: KindInstance}, fmt.Errorf("failed to list %s instances: %w", typ, err)
	}

	return reconcile.Each(ctx, s.runner, KindInstance, instances, models.Instance.Key,
		func(ctx context.Context, inst models.Instance) (reconcile.Outcome, error) {
			_, outcome, err := s.SyncInstance(ctx, inst.ID)
			return outcome, err
		}), nil
}

// SyncInstance makes the target copy of a source instance match it and
// returns the target instance. Referenced instances are synced first.
//
// An instance reached again through its own references returns whatever the
// target holds at that moment, possibly nil.
func (s *Syncer) SyncInstance(ctx context.Context, sourceID string) (*models.Instance, reconcile.Outcome, error) {
	return s.syncInstance(ctx, sourceID, false)
}

// syncInstance reports its own outcome when nested, i.e. reached through a
// reference rather than driven by a pass.
func (s *Syncer) syncInstance(ctx context.Context, sourceID string, nested bool) (*models.Instance, reconcile.Outcome, error) {
	src, err := s.sourceInstance(ctx, sourceID)
	if err != nil {
		return nil, reconcile.Failed, err
	}

	key := src.Key()
	if !s.instancesActive.enter(key) {
		s.logger.Debug("Instance cycle, using current target", zap.String("key", key))
		current, err := s.target.GetInstanceByHandle(ctx, src.Type, src.Handle)
		return current, reconcile.Unchanged, err
	}
	defer s.instancesActive.leave(key)

	tgt, err := s.target.GetInstanceByHandle(ctx, src.Type, src.Handle)
	if err != nil {
		return nil, reconcile.Failed, err
	}

	outcome := reconcile.Created
	if tgt != nil {
		if tgt.Type == src.Type {
			updated, outcome, err := s.updateInstance(ctx, *src, *tgt)
			if err == nil && nested {
				s.reportNested(ctx, KindInstance, key, outcome)
			}
			return updated, outcome, err
		}
		s.logger.Info("Definition changed, recreating instance",
			zap.String("key", key), zap.String("target_type", tgt.Type))
		if _, err := s.target.DeleteInstance(ctx, tgt.ID); err != nil {
			return nil, reconcile.Failed, err
		}
		outcome = reconcile.Recreated
	}

	created, err := s.createInstance(ctx, *src)
	if err != nil {
		return nil, reconcile.Failed, err
	}
	if nested {
		s.reportNested(ctx, KindInstance, key, outcome)
	}
	return created, outcome, nil
}

func (s *Syncer) updateInstance(ctx context.Context, src, tgt models.Instance) (*models.Instance, reconcile.Outcome, error) {
	patch, err := s.diffInstance(ctx, src, tgt)
	if err != nil {
		return nil, reconcile.Failed, err
	}
	if patch == nil {
		return &tgt, reconcile.Unchanged, nil
	}

	updated, err := s.target.UpdateInstance(ctx, tgt.ID, *patch)
	if err != nil {
		return nil, reconcile.Failed, err
	}
	return updated, reconcile.Updated, nil
}

// diffInstance returns the fields whose materialized source value differs
// from the target value, or nil when there are none. Values are compared as
// final encodings, an absent value equals an empty one.
func (s *Syncer) diffInstance(ctx context.Context, src, tgt models.Instance) (*models.InstanceUpdate, error) {
	var fields []models.FieldInput
	for _, sf := range src.Fields {
		value, err := s.targetValue(ctx, KindOf(sf.Type), sf.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Key, err)
		}
		if tf, ok := tgt.Field(sf.Key); ok && utils.Deref(tf.Value) == utils.Deref(value) {
			continue
		}
		fields = append(fields, models.FieldInput{Key: sf.Key, Value: value})
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &models.InstanceUpdate{Handle: tgt.Handle, Fields: fields}, nil
}

func (s *Syncer) createInstance(ctx context.Context, src models.Instance) (*models.Instance, error) {
	in := models.InstanceCreate{Type: src.Type, Handle: src.Handle}
	for _, sf := range src.Fields {
		value, err := s.targetValue(ctx, KindOf(sf.Type), sf.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Key, err)
		}
		in.Fields = append(in.Fields, models.FieldInput{Key: sf.Key, Value: utils.Ptr(utils.Deref(value))})
	}
	return s.target.CreateInstance(ctx, in)
}
