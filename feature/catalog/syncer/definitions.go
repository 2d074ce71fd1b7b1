package syncer

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// SyncDefinitions syncs every source definition, then every instance of each.
// Platform-owned types are skipped.
func (s *Syncer) SyncDefinitions(ctx context.Context) (reconcile.Summary, error) {
	if err := s.loadDefinitions(ctx); err != nil {
		return reconcile.Summary{Kind: KindDefinition}, err
	}

	var defs []models.Definition
	for _, d := range s.sourceDefsByID.Items() {
		if isPlatformType(d.Type) {
			s.logger.Debug("Skipping platform definition", zap.String("type", d.Type))
			continue
		}
		defs = append(defs, d)
	}

	summary := reconcile.Each(ctx, s.runner, KindDefinition, defs, definitionType,
		func(ctx context.Context, d models.Definition) (reconcile.Outcome, error) {
			_, outcome, err := s.syncDefinition(ctx, d)
			return outcome, err
		})
	summary.Merge(s.settleDefinitions(ctx))

	for _, d := range defs {
		if _, ok := s.targetDefs.Get(d.Type); !ok {
			continue
		}
		instances, err := s.SyncInstancesOf(ctx, d.Type)
		if err != nil {
			s.logger.Error("Instance pass failed", zap.String("type", d.Type), zap.Error(err))
			summary.Record(reconcile.Result{Kind: KindInstance, Key: d.Type, Outcome: reconcile.Failed, Err: err})
			continue
		}
		summary.Merge(instances)
	}
	summary.Kind = KindDefinition
	return summary, nil
}

// SyncDefinition syncs the source definition of one type.
func (s *Syncer) SyncDefinition(ctx context.Context, typ string) (*models.Definition, reconcile.Outcome, error) {
	if err := s.loadDefinitions(ctx); err != nil {
		return nil, reconcile.Failed, err
	}
	var src *models.Definition
	for _, d := range s.sourceDefsByID.Items() {
		if d.Type == typ {
			src = &d
			break
		}
	}
	if src == nil {
		return nil, reconcile.Failed, notFound(KindDefinition, typ, reconcile.SideSource)
	}

	tgt, outcome, err := s.syncDefinition(ctx, *src)
	if err != nil {
		return nil, outcome, err
	}
	// A definition left without its deferred validations fails the call.
	if results := s.settleDefinitions(ctx); results.Failed > 0 {
		f := results.Failures[0]
		return tgt, reconcile.Failed, fmt.Errorf("failed to apply deferred validations of %s: %s", f.Key, f.Error)
	}
	if settled, ok := s.targetDefs.Get(typ); ok {
		tgt = &settled
	}
	return tgt, outcome, nil
}

func (s *Syncer) syncDefinition(ctx context.Context, src models.Definition) (*models.Definition, reconcile.Outcome, error) {
	if !s.defsActive.enter(src.Type) {
		s.logger.Debug("Definition cycle, using current target", zap.String("type", src.Type))
		if tgt, ok := s.targetDefs.Get(src.Type); ok {
			return &tgt, reconcile.Unchanged, nil
		}
		return nil, reconcile.Unchanged, nil
	}
	defer s.defsActive.leave(src.Type)

	if tgt, ok := s.targetDefs.Get(src.Type); ok {
		updated, err := s.applyDefinitionDiff(ctx, src, tgt)
		if err != nil {
			return nil, reconcile.Failed, err
		}
		if updated == nil {
			return &tgt, reconcile.Unchanged, nil
		}
		return updated, reconcile.Updated, nil
	}

	in, err := s.definitionCreate(ctx, src)
	if err != nil {
		return nil, reconcile.Failed, err
	}
	created, err := s.target.CreateDefinition(ctx, in)
	if err != nil {
		return nil, reconcile.Failed, err
	}
	s.targetDefs.Add(*created)
	s.logger.Info("Definition created", zap.String("type", created.Type), zap.String("id", created.ID))

	// Self references can only be written once the definition exists.
	if updated, err := s.applyDefinitionDiff(ctx, src, *created); err != nil {
		return nil, reconcile.Failed, err
	} else if updated != nil {
		created = updated
	}
	return created, reconcile.Created, nil
}

// applyDefinitionDiff writes the diff of src against tgt, if any, and
// returns the updated definition or nil when nothing changed.
func (s *Syncer) applyDefinitionDiff(ctx context.Context, src, tgt models.Definition) (*models.Definition, error) {
	upd, err := s.diffDefinition(ctx, src, tgt)
	if err != nil || upd == nil {
		return nil, err
	}
	updated, err := s.target.UpdateDefinition(ctx, tgt.ID, *upd)
	if err != nil {
		return nil, err
	}
	s.targetDefs.Add(*updated)
	return updated, nil
}

// settleDefinitions re-diffs definitions that had validations deferred
// because the referenced definition did not exist yet, and returns the
// results so they count towards the pass.
func (s *Syncer) settleDefinitions(ctx context.Context) reconcile.Summary {
	summary := reconcile.Summary{Kind: KindDefinition}
	for typ := range s.defsDeferred {
		s.defsDeferred.leave(typ)

		var src *models.Definition
		for _, d := range s.sourceDefsByID.Items() {
			if d.Type == typ {
				src = &d
				break
			}
		}
		tgt, ok := s.targetDefs.Get(typ)
		if src == nil || !ok {
			continue
		}
		updated, err := s.applyDefinitionDiff(ctx, *src, tgt)
		if err != nil {
			r := reconcile.Result{Kind: KindDefinition, Key: typ, Outcome: reconcile.Failed, Err: err}
			s.runner.Report(ctx, r)
			summary.Record(r)
			continue
		}
		if updated != nil {
			s.logger.Info("Deferred validations applied", zap.String("type", typ))
			r := reconcile.Result{Kind: KindDefinition, Key: typ, Outcome: reconcile.Updated}
			s.runner.Report(ctx, r)
			summary.Record(r)
		}
	}
	return summary
}

// resolveDefinitionRef maps a source definition id to the target id. A
// referenced definition missing at target is synced first. A reference to a
// definition that is still being created yields nil and marks owner as
// deferred.
func (s *Syncer) resolveDefinitionRef(ctx context.Context, owner, sourceID string) (*string, error) {
	ref, err := s.sourceDefsByID.Resolve(sourceID)
	if err != nil {
		return nil, err
	}
	if tgt, ok := s.targetDefs.Get(ref.Type); ok {
		return &tgt.ID, nil
	}
	if s.defsActive.has(ref.Type) {
		s.logger.Debug("Deferring validation on definition being created",
			zap.String("owner", owner), zap.String("referenced", ref.Type))
		s.defsDeferred.enter(owner)
		return nil, nil
	}

	tgt, outcome, err := s.syncDefinition(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("referenced definition %s: %w", ref.Type, err)
	}
	s.reportNested(ctx, KindDefinition, ref.Type, outcome)
	if tgt == nil {
		s.defsDeferred.enter(owner)
		return nil, nil
	}
	return &tgt.ID, nil
}

// targetValidations maps source validations to target values. Deferred
// definition references are left out.
func (s *Syncer) targetValidations(ctx context.Context, owner string, validations []models.Validation) ([]models.ValidationInput, error) {
	out := make([]models.ValidationInput, 0, len(validations))
	for _, v := range validations {
		if v.Name != models.ValidationDefinitionRef || v.Value == nil {
			out = append(out, models.ValidationInput{Name: v.Name, Value: v.Value})
			continue
		}
		id, err := s.resolveDefinitionRef(ctx, owner, *v.Value)
		if err != nil {
			return nil, err
		}
		if id != nil {
			out = append(out, models.ValidationInput{Name: v.Name, Value: id})
		}
	}
	return out, nil
}

func validationsEqual(want []models.ValidationInput, have []models.Validation) bool {
	if len(want) != len(have) {
		return false
	}
	for _, w := range want {
		h, ok := models.FindValidation(have, w.Name)
		if !ok || utils.Deref(h.Value) != utils.Deref(w.Value) {
			return false
		}
	}
	return true
}

func (s *Syncer) definitionCreate(ctx context.Context, src models.Definition) (models.DefinitionCreate, error) {
	in := models.DefinitionCreate{
		Type:           src.Type,
		Name:           src.Name,
		DisplayNameKey: src.DisplayNameKey,
	}
	if src.Access.Storefront != "" {
		in.Access = &models.AccessInput{Storefront: utils.Ptr(src.Access.Storefront)}
	}
	for _, f := range src.FieldDefinitions {
		field, err := s.fieldCreate(ctx, src.Type, f)
		if err != nil {
			return in, err
		}
		in.FieldDefinitions = append(in.FieldDefinitions, field)
	}
	return in, nil
}

func (s *Syncer) fieldCreate(ctx context.Context, owner string, f models.FieldDefinition) (models.FieldDefinitionInput, error) {
	validations, err := s.targetValidations(ctx, owner, f.Validations)
	if err != nil {
		return models.FieldDefinitionInput{}, fmt.Errorf("field %s: %w", f.Key, err)
	}
	return models.FieldDefinitionInput{
		Key:         f.Key,
		Name:        f.Name,
		Description: f.Description,
		Required:    f.Required,
		Type:        f.Type.Name,
		Validations: validations,
	}, nil
}

// diffDefinition returns the partial update bringing tgt in line with src, or
// nil when they agree. Fields present only at target are kept.
func (s *Syncer) diffDefinition(ctx context.Context, src, tgt models.Definition) (*models.DefinitionUpdate, error) {
	var upd models.DefinitionUpdate

	if src.Name != tgt.Name {
		upd.Name = utils.Ptr(src.Name)
	}
	// An empty key clears the target's.
	if utils.Deref(src.DisplayNameKey) != utils.Deref(tgt.DisplayNameKey) {
		upd.DisplayNameKey = utils.Ptr(utils.Deref(src.DisplayNameKey))
	}
	var access models.AccessInput
	if src.Access.Storefront != tgt.Access.Storefront {
		access.Storefront = utils.Ptr(src.Access.Storefront)
	}
	if src.Access.CustomerAccount != tgt.Access.CustomerAccount {
		access.CustomerAccount = utils.Ptr(src.Access.CustomerAccount)
	}
	if access.Storefront != nil || access.CustomerAccount != nil {
		upd.Access = &access
	}

	for _, sf := range src.FieldDefinitions {
		tf, ok := tgt.Field(sf.Key)
		if !ok {
			field, err := s.fieldCreate(ctx, src.Type, sf)
			if err != nil {
				return nil, err
			}
			upd.FieldDefinitions = append(upd.FieldDefinitions, models.FieldDefinitionOperation{Create: &field})
			continue
		}

		if sf.Type != tf.Type {
			s.logger.Warn("Field type differs and cannot be changed",
				zap.String("type", src.Type), zap.String("field", sf.Key),
				zap.String("source", sf.Type.Name), zap.String("target", tf.Type.Name))
		}

		fu, err := s.diffField(ctx, src.Type, sf, tf)
		if err != nil {
			return nil, err
		}
		if fu != nil {
			upd.FieldDefinitions = append(upd.FieldDefinitions, models.FieldDefinitionOperation{Update: fu})
		}
	}

	if upd.IsEmpty() {
		return nil, nil
	}
	return &upd, nil
}

func (s *Syncer) diffField(ctx context.Context, owner string, sf, tf models.FieldDefinition) (*models.FieldDefinitionUpdate, error) {
	fu := models.FieldDefinitionUpdate{Key: sf.Key}
	changed := false

	if sf.Name != tf.Name {
		fu.Name, changed = utils.Ptr(sf.Name), true
	}
	if utils.Deref(sf.Description) != utils.Deref(tf.Description) {
		fu.Description, changed = utils.Ptr(utils.Deref(sf.Description)), true
	}
	if sf.Required != tf.Required {
		fu.Required, changed = utils.Ptr(sf.Required), true
	}

	validations, err := s.targetValidations(ctx, owner, sf.Validations)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", sf.Key, err)
	}
	if !validationsEqual(validations, tf.Validations) {
		fu.Validations, changed = validations, true
	}

	if !changed {
		return nil, nil
	}
	return &fu, nil
}
