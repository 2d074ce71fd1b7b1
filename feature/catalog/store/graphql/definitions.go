package graphql

import (
	"context"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

func (s *Store) ListDefinitions(ctx context.Context) ([]models.Definition, error) {
	return list[models.Definition](ctx, s, "metaobjectDefinitions", listDefinitionsQuery, nil)
}

func (s *Store) GetDefinition(ctx context.Context, id string) (*models.Definition, error) {
	return get[models.Definition](ctx, s, "metaobjectDefinition", getDefinitionQuery, map[string]any{"id": id})
}

func (s *Store) CreateDefinition(ctx context.Context, in models.DefinitionCreate) (*models.Definition, error) {
	var out struct {
		MetaobjectDefinition *models.Definition `json:"metaobjectDefinition"`
	}
	err := s.mutate(ctx, "metaobjectDefinitionCreate", createDefinitionMutation,
		map[string]any{"definition": in}, in, &out)
	return out.MetaobjectDefinition, err
}

func (s *Store) UpdateDefinition(ctx context.Context, id string, in models.DefinitionUpdate) (*models.Definition, error) {
	var out struct {
		MetaobjectDefinition *models.Definition `json:"metaobjectDefinition"`
	}
	err := s.mutate(ctx, "metaobjectDefinitionUpdate", updateDefinitionMutation,
		map[string]any{"id": id, "definition": in}, in, &out)
	return out.MetaobjectDefinition, err
}

func (s *Store) DeleteDefinition(ctx context.Context, id string) (string, error) {
	var out struct {
		DeletedID *string `json:"deletedId"`
	}
	err := s.mutate(ctx, "metaobjectDefinitionDelete", deleteDefinitionMutation, map[string]any{"id": id}, id, &out)
	return utils.Deref(out.DeletedID), err
}
