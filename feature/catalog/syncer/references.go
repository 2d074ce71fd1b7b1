package syncer

import (
	"context"

	"catalog-sync/core/utils"

	"go.uber.org/zap"
)

// targetValue turns a source field value into the value to write at target.
// Instance references are synced first, so the returned ids exist. Files,
// products and collections are only looked up; a miss is logged and yields
// nil. Empty values and lists whose members all resolve to nil become nil.
func (s *Syncer) targetValue(ctx context.Context, kind FieldKind, value *string) (*string, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	if kind.IsList() {
		ids, err := utils.ParseIDList(*value)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, id := range ids {
			resolved, err := s.targetID(ctx, kind.Single(), id)
			if err != nil {
				return nil, err
			}
			if resolved != nil {
				out = append(out, *resolved)
			}
		}
		if len(out) == 0 {
			return nil, nil
		}
		return utils.Ptr(utils.EncodeIDList(out)), nil
	}

	if kind == Scalar {
		return value, nil
	}
	return s.targetID(ctx, kind, *value)
}

// targetID maps one source id of a reference kind to its target id.
func (s *Syncer) targetID(ctx context.Context, kind FieldKind, sourceID string) (*string, error) {
	switch kind {
	case SingleReference:
		inst, _, err := s.syncInstance(ctx, sourceID, true)
		if err != nil || inst == nil {
			return nil, err
		}
		return &inst.ID, nil

	case FileRef:
		src, err := s.sourceFile(ctx, sourceID)
		if err != nil {
			return nil, err
		}
		tgt, err := s.target.GetFileByName(ctx, src.Name())
		if err != nil {
			return nil, err
		}
		if tgt == nil {
			s.logger.Warn("File missing at target", zap.String("name", src.Name()), zap.String("source_id", sourceID))
			return nil, nil
		}
		return &tgt.ID, nil

	case ProductRef:
		src, err := s.sourceProduct(ctx, sourceID)
		if err != nil {
			return nil, err
		}
		tgt, err := s.target.GetProductByHandle(ctx, src.Handle)
		if err != nil {
			return nil, err
		}
		if tgt == nil {
			s.logger.Warn("Product missing at target", zap.String("handle", src.Handle))
			return nil, nil
		}
		return &tgt.ID, nil

	case CollectionRef:
		src, err := s.sourceCollection(ctx, sourceID)
		if err != nil {
			return nil, err
		}
		tgt, err := s.target.GetCollectionByHandle(ctx, src.Handle)
		if err != nil {
			return nil, err
		}
		if tgt == nil {
			s.logger.Warn("Collection missing at target", zap.String("handle", src.Handle))
			return nil, nil
		}
		return &tgt.ID, nil
	}
	return &sourceID, nil
}
