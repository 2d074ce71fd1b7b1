package graphql

import (
	"context"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

func (s *Store) ListAttributeDefinitions(ctx context.Context, ownerType string) ([]models.AttributeDefinition, error) {
	return list[models.AttributeDefinition](ctx, s, "metafieldDefinitions", listAttributeDefinitionsQuery,
		map[string]any{"ownerType": ownerType})
}

func (s *Store) CreateAttributeDefinition(ctx context.Context, in models.AttributeDefinitionCreate) (*models.AttributeDefinition, error) {
	var out struct {
		CreatedDefinition *models.AttributeDefinition `json:"createdDefinition"`
	}
	err := s.mutate(ctx, "metafieldDefinitionCreate", createAttributeDefinitionMutation,
		map[string]any{"definition": in}, in, &out)
	return out.CreatedDefinition, err
}

func (s *Store) UpdateAttributeDefinition(ctx context.Context, in models.AttributeDefinitionUpdate) (*models.AttributeDefinition, error) {
	var out struct {
		UpdatedDefinition *models.AttributeDefinition `json:"updatedDefinition"`
	}
	err := s.mutate(ctx, "metafieldDefinitionUpdate", updateAttributeDefinitionMutation,
		map[string]any{"definition": in}, in, &out)
	return out.UpdatedDefinition, err
}

func (s *Store) DeleteAttributeDefinition(ctx context.Context, id string) (string, error) {
	var out struct {
		DeletedDefinitionID *string `json:"deletedDefinitionId"`
	}
	err := s.mutate(ctx, "metafieldDefinitionDelete", deleteAttributeDefinitionMutation,
		map[string]any{"id": id}, id, &out)
	return utils.Deref(out.DeletedDefinitionID), err
}

func (s *Store) SetAttributes(ctx context.Context, in []models.AttributeInput) ([]models.Attribute, error) {
	var out struct {
		Metafields []models.Attribute `json:"metafields"`
	}
	err := s.mutate(ctx, "metafieldsSet", setAttributesMutation, map[string]any{"metafields": in}, in, &out)
	return out.Metafields, err
}

func (s *Store) DeleteAttributes(ctx context.Context, in []models.AttributeIdentifier) error {
	return s.mutate(ctx, "metafieldsDelete", deleteAttributesMutation, map[string]any{"metafields": in}, in, nil)
}
