package syncer

import (
	"context"
	"strings"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

// matcher compares source values with target values through references.
// Pairs already under comparison are assumed equal, which is what ends the
// walk on cyclic reference graphs.
type matcher struct {
	s       *Syncer
	visited map[string]struct{}
}

func (s *Syncer) newMatcher() *matcher {
	return &matcher{s: s, visited: make(map[string]struct{})}
}

// InstancesMatch reports whether target holds the same content as source,
// following references into the entities they point at. List members are
// matched one way, so a target list may hold extras. Instance sync does not
// rely on it and diffs final encodings instead.
func (s *Syncer) InstancesMatch(ctx context.Context, source, target models.Instance) (bool, error) {
	return s.newMatcher().instances(ctx, source, target)
}

// FieldsEqual compares one source value with one target value of the given type.
func (s *Syncer) FieldsEqual(ctx context.Context, typeName string, source, target *string) (bool, error) {
	return s.newMatcher().fields(ctx, KindOf(typeName), source, target)
}

func (m *matcher) instances(ctx context.Context, source, target models.Instance) (bool, error) {
	pair := source.ID + "|" + target.ID
	if _, seen := m.visited[pair]; seen {
		return true, nil
	}
	m.visited[pair] = struct{}{}

	for _, sf := range source.Fields {
		tf, ok := target.Field(sf.Key)
		if !ok {
			return false, nil
		}
		if sf.Value == nil && tf.Value == nil {
			continue
		}
		equal, err := m.fields(ctx, KindOf(sf.Type), sf.Value, tf.Value)
		if err != nil || !equal {
			return false, err
		}
	}
	return true, nil
}

func (m *matcher) fields(ctx context.Context, kind FieldKind, source, target *string) (bool, error) {
	if source == nil || target == nil {
		return source == nil && target == nil, nil
	}

	switch kind {
	case SingleReference:
		return m.reference(ctx, *source, *target)
	case ListReference:
		return m.referenceList(ctx, *source, *target)
	case FileRef:
		return m.file(ctx, *source, *target)
	case ProductRef:
		return m.product(ctx, *source, *target)
	case CollectionRef:
		return m.collection(ctx, *source, *target)
	case ListFileRef, ListProductRef, ListCollectionRef:
		return m.list(ctx, kind.Single(), *source, *target)
	}
	return *source == *target, nil
}

func (m *matcher) reference(ctx context.Context, sourceID, targetID string) (bool, error) {
	src, err := m.s.sourceInstance(ctx, sourceID)
	if err != nil {
		return false, err
	}
	tgt, err := m.s.target.GetInstance(ctx, targetID)
	if err != nil {
		return false, err
	}
	if tgt == nil || tgt.Type != src.Type || tgt.Handle != src.Handle {
		return false, nil
	}
	return m.instances(ctx, *src, *tgt)
}

// referenceList matches every source member to a target member of the same
// type whose handle contains the source handle. Order is ignored.
func (m *matcher) referenceList(ctx context.Context, source, target string) (bool, error) {
	sourceIDs, err := utils.ParseIDList(source)
	if err != nil {
		return false, err
	}
	targetIDs, err := utils.ParseIDList(target)
	if err != nil {
		return false, nil
	}

	sources := make([]models.Instance, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		inst, err := m.s.sourceInstance(ctx, id)
		if err != nil {
			return false, err
		}
		sources = append(sources, *inst)
	}

	targets := make([]models.Instance, 0, len(targetIDs))
	for _, id := range targetIDs {
		inst, err := m.s.target.GetInstance(ctx, id)
		if err != nil {
			return false, err
		}
		if inst != nil {
			targets = append(targets, *inst)
		}
	}

	for _, src := range sources {
		var candidate *models.Instance
		for i := range targets {
			if targets[i].Type == src.Type && strings.Contains(targets[i].Handle, src.Handle) {
				candidate = &targets[i]
				break
			}
		}
		if candidate == nil {
			return false, nil
		}
		equal, err := m.instances(ctx, src, *candidate)
		if err != nil || !equal {
			return false, err
		}
	}
	return true, nil
}

func (m *matcher) file(ctx context.Context, sourceID, targetID string) (bool, error) {
	src, err := m.s.sourceFile(ctx, sourceID)
	if err != nil {
		return false, err
	}
	tgt, err := m.s.target.GetFile(ctx, targetID)
	if err != nil || tgt == nil {
		return false, err
	}
	return src.Name() == tgt.Name(), nil
}

func (m *matcher) product(ctx context.Context, sourceID, targetID string) (bool, error) {
	src, err := m.s.sourceProduct(ctx, sourceID)
	if err != nil {
		return false, err
	}
	tgt, err := m.s.target.GetProduct(ctx, targetID)
	if err != nil || tgt == nil {
		return false, err
	}
	return src.Handle == tgt.Handle, nil
}

func (m *matcher) collection(ctx context.Context, sourceID, targetID string) (bool, error) {
	src, err := m.s.sourceCollection(ctx, sourceID)
	if err != nil {
		return false, err
	}
	tgt, err := m.s.target.GetCollection(ctx, targetID)
	if err != nil || tgt == nil {
		return false, err
	}
	return src.Handle == tgt.Handle, nil
}

// list matches every source member to some target member, ignoring order.
func (m *matcher) list(ctx context.Context, kind FieldKind, source, target string) (bool, error) {
	sourceIDs, err := utils.ParseIDList(source)
	if err != nil {
		return false, err
	}
	targetIDs, err := utils.ParseIDList(target)
	if err != nil {
		return false, nil
	}

	for _, sid := range sourceIDs {
		found := false
		for _, tid := range targetIDs {
			equal, err := m.fields(ctx, kind, &sid, &tid)
			if err != nil {
				return false, err
			}
			if equal {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}
