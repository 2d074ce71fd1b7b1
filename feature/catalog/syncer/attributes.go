package syncer

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// skippedAttributes are never written; the target rejects them on variants.
var skippedAttributes = map[string]struct{}{
	"global:harmonized_system_code": {},
}

func skipAttribute(a models.Attribute) bool {
	if _, ok := skippedAttributes[a.QualifiedKey()]; ok {
		return true
	}
	return isPlatformNamespace(a.Namespace)
}

// attributeChanges is the pending write set for one or more owners.
type attributeChanges struct {
	set    []models.AttributeInput
	delete []models.AttributeIdentifier
}

func (c *attributeChanges) empty() bool {
	return len(c.set) == 0 && len(c.delete) == 0
}

// diffAttributes compares the attributes of one owner. Source values are
// materialized first; a value that materializes to nil is left alone.
// Target attributes without a source counterpart are scheduled for deletion.
func (s *Syncer) diffAttributes(ctx context.Context, ownerID string, source, target []models.Attribute, changes *attributeChanges) error {
	keys := make(map[string]struct{}, len(source))
	for _, src := range source {
		keys[src.QualifiedKey()] = struct{}{}
		if skipAttribute(src) {
			continue
		}

		value, err := s.targetValue(ctx, KindOf(src.Type), src.Value)
		if err != nil {
			return fmt.Errorf("attribute %s: %w", src.QualifiedKey(), err)
		}
		if value == nil {
			s.logger.Debug("Attribute has no target value", zap.String("owner", ownerID), zap.String("key", src.QualifiedKey()))
			continue
		}

		tgt, ok := models.FindAttribute(target, src.Namespace, src.Key)
		if ok && utils.Deref(tgt.Value) == *value && tgt.Type == src.Type {
			continue
		}
		changes.set = append(changes.set, models.AttributeInput{
			OwnerID:   ownerID,
			Namespace: src.Namespace,
			Key:       src.Key,
			Type:      src.Type,
			Value:     *value,
		})
	}

	for _, tgt := range target {
		if _, ok := keys[tgt.QualifiedKey()]; ok || skipAttribute(tgt) {
			continue
		}
		changes.delete = append(changes.delete, models.AttributeIdentifier{
			OwnerID:   ownerID,
			Namespace: tgt.Namespace,
			Key:       tgt.Key,
		})
	}
	return nil
}

// applyAttributes writes and deletes in chunks.
func (s *Syncer) applyAttributes(ctx context.Context, changes attributeChanges) error {
	if _, err := reconcile.ApplyChunked(ctx, changes.set, attributeChunkSize,
		func(ctx context.Context, chunk []models.AttributeInput) ([]models.Attribute, error) {
			return s.target.SetAttributes(ctx, chunk)
		}); err != nil {
		return fmt.Errorf("failed to set attributes: %w", err)
	}
	if _, err := reconcile.ApplyChunked(ctx, changes.delete, attributeChunkSize,
		func(ctx context.Context, chunk []models.AttributeIdentifier) ([]struct{}, error) {
			return nil, s.target.DeleteAttributes(ctx, chunk)
		}); err != nil {
		return fmt.Errorf("failed to delete attributes: %w", err)
	}
	return nil
}

// SyncCatalogItemAttributes syncs the attributes of the product with the
// given handle and of its variants, pairing variants by title. Both products
// must already exist.
func (s *Syncer) SyncCatalogItemAttributes(ctx context.Context, handle string) (reconcile.Outcome, error) {
	src, err := s.sourceProductByHandle(ctx, handle)
	if err != nil {
		return reconcile.Failed, err
	}
	tgt, err := s.target.GetProductByHandle(ctx, handle)
	if err != nil {
		return reconcile.Failed, err
	}
	if tgt == nil {
		return reconcile.Failed, notFound(KindProduct, handle, reconcile.SideTarget)
	}

	var changes attributeChanges
	if err := s.diffAttributes(ctx, tgt.ID, src.Attributes, tgt.Attributes, &changes); err != nil {
		return reconcile.Failed, err
	}
	for _, sv := range src.Variants {
		tv, ok := tgt.Variant(sv.Title)
		if !ok {
			s.logger.Warn("Variant missing at target",
				zap.String("product", handle),
				zap.String("variant", sv.Title))
			continue
		}
		if err := s.diffAttributes(ctx, tv.ID, sv.Attributes, tv.Attributes, &changes); err != nil {
			return reconcile.Failed, fmt.Errorf("variant %q: %w", sv.Title, err)
		}
	}

	if changes.empty() {
		return reconcile.Unchanged, nil
	}
	if err := s.applyAttributes(ctx, changes); err != nil {
		return reconcile.Failed, err
	}
	s.logger.Info("Attributes synced",
		zap.String("product", handle),
		zap.Int("set", len(changes.set)),
		zap.Int("deleted", len(changes.delete)))
	return reconcile.Updated, nil
}

// SyncAttributes runs SyncCatalogItemAttributes for every handle.
func (s *Syncer) SyncAttributes(ctx context.Context, handles []string) reconcile.Summary {
	return reconcile.Each(ctx, s.runner, KindAttribute, handles, func(h string) string { return h },
		func(ctx context.Context, handle string) (reconcile.Outcome, error) {
			return s.SyncCatalogItemAttributes(ctx, handle)
		})
}
