package graphql

import (
	"context"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

type fieldWire struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// wireFields sends cleared values as empty strings, the API has no null value.
func wireFields(in []models.FieldInput) []fieldWire {
	out := make([]fieldWire, 0, len(in))
	for _, f := range in {
		out = append(out, fieldWire{Key: f.Key, Value: utils.Deref(f.Value)})
	}
	return out
}

func (s *Store) ListInstances(ctx context.Context, typ string) ([]models.Instance, error) {
	return list[models.Instance](ctx, s, "metaobjects", listInstancesQuery, map[string]any{"type": typ})
}

func (s *Store) GetInstance(ctx context.Context, id string) (*models.Instance, error) {
	return get[models.Instance](ctx, s, "metaobject", getInstanceQuery, map[string]any{"id": id})
}

func (s *Store) GetInstanceByHandle(ctx context.Context, typ, handle string) (*models.Instance, error) {
	return get[models.Instance](ctx, s, "metaobjectByHandle", getInstanceByHandleQuery,
		map[string]any{"handle": map[string]string{"type": typ, "handle": handle}})
}

func (s *Store) CreateInstance(ctx context.Context, in models.InstanceCreate) (*models.Instance, error) {
	var out struct {
		Metaobject *models.Instance `json:"metaobject"`
	}
	input := map[string]any{"type": in.Type, "handle": in.Handle, "fields": wireFields(in.Fields)}
	err := s.mutate(ctx, "metaobjectCreate", createInstanceMutation, map[string]any{"metaobject": input}, in, &out)
	return out.Metaobject, err
}

func (s *Store) UpdateInstance(ctx context.Context, id string, in models.InstanceUpdate) (*models.Instance, error) {
	var out struct {
		Metaobject *models.Instance `json:"metaobject"`
	}
	input := map[string]any{"handle": in.Handle, "fields": wireFields(in.Fields)}
	err := s.mutate(ctx, "metaobjectUpdate", updateInstanceMutation,
		map[string]any{"id": id, "metaobject": input}, in, &out)
	return out.Metaobject, err
}

func (s *Store) DeleteInstance(ctx context.Context, id string) (string, error) {
	var out struct {
		DeletedID *string `json:"deletedId"`
	}
	err := s.mutate(ctx, "metaobjectDelete", deleteInstanceMutation, map[string]any{"id": id}, id, &out)
	return utils.Deref(out.DeletedID), err
}

func (s *Store) BulkDeleteInstances(ctx context.Context, typ string) (string, error) {
	var out struct {
		Job *struct {
			ID string `json:"id"`
		} `json:"job"`
	}
	err := s.mutate(ctx, "metaobjectBulkDelete", bulkDeleteInstancesMutation,
		map[string]any{"where": map[string]string{"type": typ}}, typ, &out)
	if err != nil || out.Job == nil {
		return "", err
	}
	return out.Job.ID, nil
}
