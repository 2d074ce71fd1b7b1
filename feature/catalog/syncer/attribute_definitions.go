package syncer

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"golang.org/x/sync/errgroup"
)

// attributeDefinitionKey is ownerType/namespace:key; the same namespace and
// key may be defined once per owner type.
func attributeDefinitionKey(d models.AttributeDefinition) string {
	return d.OwnerType + "/" + d.QualifiedKey()
}

// loadAttributeDefinitions reads the definitions of every owner type from
// one side, concurrently, and returns them in owner type order. Platform
// namespaces are dropped.
func (s *Syncer) loadAttributeDefinitions(ctx context.Context, side reconcile.Side) ([]models.AttributeDefinition, error) {
	st := s.source
	if side == reconcile.SideTarget {
		st = s.target
	}

	perOwner := make([][]models.AttributeDefinition, len(s.ownerTypes))
	g, gctx := errgroup.WithContext(ctx)
	for i, ownerType := range s.ownerTypes {
		g.Go(func() error {
			defs, err := st.ListAttributeDefinitions(gctx, ownerType)
			if err != nil {
				return fmt.Errorf("failed to list %s attribute definitions at %s: %w", ownerType, side, err)
			}
			perOwner[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.AttributeDefinition
	for _, defs := range perOwner {
		for _, d := range defs {
			if !isPlatformNamespace(d.Namespace) {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

// SyncAttributeDefinitions creates or updates every source attribute
// definition of the configured owner types.
func (s *Syncer) SyncAttributeDefinitions(ctx context.Context) (reconcile.Summary, error) {
	empty := reconcile.Summary{Kind: KindAttributeDefinition}
	if err := s.loadDefinitions(ctx); err != nil {
		return empty, err
	}

	var source, target []models.AttributeDefinition
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, err = s.loadAttributeDefinitions(gctx, reconcile.SideSource)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = s.loadAttributeDefinitions(gctx, reconcile.SideTarget)
		return err
	})
	if err := g.Wait(); err != nil {
		return empty, err
	}

	targets := reconcile.NewIndex(KindAttributeDefinition, reconcile.SideTarget, attributeDefinitionKey, target)
	return reconcile.Each(ctx, s.runner, KindAttributeDefinition, source, attributeDefinitionKey,
		func(ctx context.Context, src models.AttributeDefinition) (reconcile.Outcome, error) {
			tgt, ok := targets.Get(attributeDefinitionKey(src))
			if !ok {
				in, err := s.attributeDefinitionCreate(src)
				if err != nil {
					return reconcile.Failed, err
				}
				created, err := s.target.CreateAttributeDefinition(ctx, in)
				if err != nil {
					return reconcile.Failed, err
				}
				targets.Add(*created)
				return reconcile.Created, nil
			}

			upd, err := s.diffAttributeDefinition(src, tgt)
			if err != nil {
				return reconcile.Failed, err
			}
			if upd == nil {
				return reconcile.Unchanged, nil
			}
			updated, err := s.target.UpdateAttributeDefinition(ctx, *upd)
			if err != nil {
				return reconcile.Failed, err
			}
			targets.Add(*updated)
			return reconcile.Updated, nil
		}), nil
}

// attributeValidations maps definition references through the definition
// indexes. Unlike definitions, a referenced definition must already exist at
// target.
func (s *Syncer) attributeValidations(validations []models.Validation) ([]models.ValidationInput, error) {
	out := make([]models.ValidationInput, 0, len(validations))
	for _, v := range validations {
		if v.Name != models.ValidationDefinitionRef || v.Value == nil {
			out = append(out, models.ValidationInput{Name: v.Name, Value: v.Value})
			continue
		}
		ref, err := s.sourceDefsByID.Resolve(*v.Value)
		if err != nil {
			return nil, err
		}
		tgt, err := s.targetDefs.Resolve(ref.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, models.ValidationInput{Name: v.Name, Value: utils.Ptr(tgt.ID)})
	}
	return out, nil
}

func (s *Syncer) attributeDefinitionCreate(src models.AttributeDefinition) (models.AttributeDefinitionCreate, error) {
	validations, err := s.attributeValidations(src.Validations)
	if err != nil {
		return models.AttributeDefinitionCreate{}, err
	}
	in := models.AttributeDefinitionCreate{
		Name:        src.Name,
		Namespace:   src.Namespace,
		Key:         src.Key,
		OwnerType:   src.OwnerType,
		Type:        src.Type.Name,
		Pin:         src.PinnedPosition != nil,
		Validations: validations,
	}
	if src.Access.Storefront != "" || src.Access.CustomerAccount != "" {
		in.Access = &models.AccessInput{}
		if src.Access.Storefront != "" {
			in.Access.Storefront = utils.Ptr(src.Access.Storefront)
		}
		if src.Access.CustomerAccount != "" {
			in.Access.CustomerAccount = utils.Ptr(src.Access.CustomerAccount)
		}
	}
	return in, nil
}

func (s *Syncer) diffAttributeDefinition(src, tgt models.AttributeDefinition) (*models.AttributeDefinitionUpdate, error) {
	upd := models.AttributeDefinitionUpdate{Namespace: src.Namespace, Key: src.Key, OwnerType: tgt.OwnerType}

	if src.Name != tgt.Name {
		upd.Name = utils.Ptr(src.Name)
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

	validations, err := s.attributeValidations(src.Validations)
	if err != nil {
		return nil, err
	}
	if !validationsEqual(validations, tgt.Validations) {
		upd.Validations = validations
	}

	if upd.IsEmpty() {
		return nil, nil
	}
	return &upd, nil
}
