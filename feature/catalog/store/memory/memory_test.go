package memory

import (
	"context"
	"testing"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstancesFollowDefinition(t *testing.T) {
	ctx := context.Background()
	s := New("shop")

	def, err := s.CreateDefinition(ctx, models.DefinitionCreate{
		Type: "author",
		Name: "Author",
		FieldDefinitions: []models.FieldDefinitionInput{
			{Key: "name", Name: "Name", Type: "single_line_text_field"},
			{Key: "bio", Name: "Bio", Type: "multi_line_text_field"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "MetaobjectDefinition", utils.GIDResource(def.ID))

	inst, err := s.CreateInstance(ctx, models.InstanceCreate{
		Type:   "author",
		Handle: "jane",
		Fields: []models.FieldInput{{Key: "name", Value: utils.Ptr("Jane")}, {Key: "bio", Value: utils.Ptr("")}},
	})
	require.NoError(t, err)
	require.Len(t, inst.Fields, 2)
	assert.Equal(t, "Jane", *inst.Fields[0].Value)
	assert.Nil(t, inst.Fields[1].Value)

	_, err = s.CreateInstance(ctx, models.InstanceCreate{Type: "author", Handle: "jane"})
	assert.True(t, store.IsValidationConflict(err))

	_, err = s.CreateInstance(ctx, models.InstanceCreate{Type: "author", Handle: "x", Fields: []models.FieldInput{{Key: "nope"}}})
	assert.ErrorContains(t, err, "field nope is not defined on author")

	got, err := s.GetInstanceByHandle(ctx, "author", "jane")
	require.NoError(t, err)
	assert.Equal(t, inst.ID, got.ID)

	missing, err := s.GetInstance(ctx, "gid://shopify/Metaobject/999")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, []string{"CreateDefinition author", "CreateInstance author/jane"}, s.Ops())
}

func TestDefinitionReferencesMustExist(t *testing.T) {
	ctx := context.Background()
	s := New("shop")

	_, err := s.CreateDefinition(ctx, models.DefinitionCreate{
		Type: "book",
		FieldDefinitions: []models.FieldDefinitionInput{{
			Key:         "author",
			Type:        "metaobject_reference",
			Validations: []models.ValidationInput{{Name: models.ValidationDefinitionRef, Value: utils.Ptr("gid://shopify/MetaobjectDefinition/42")}},
		}},
	})

	var conflict *store.ValidationConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "metaobjectDefinitionCreate", conflict.Operation)
}

func TestCreateFilesAppendsUUIDOnDuplicate(t *testing.T) {
	ctx := context.Background()
	s := New("target")

	in := []models.FileCreate{{Filename: "hero.jpg", OriginalSource: "https://src/hero.jpg", DuplicateResolutionMode: models.DuplicateAppendUUID}}
	first, err := s.CreateFiles(ctx, in)
	require.NoError(t, err)
	second, err := s.CreateFiles(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, first[0].URL, second[0].URL)
	assert.Equal(t, "hero.jpg", second[0].Name())

	byName, err := s.GetFileByName(ctx, "hero.jpg")
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, byName.ID)
}

func TestDefaultMenuCannotBeDeleted(t *testing.T) {
	ctx := context.Background()
	s := New("shop")
	m := s.AddDefaultMenu("main-menu", "Main menu")

	_, err := s.DeleteMenu(ctx, m.ID)
	assert.True(t, store.IsValidationConflict(err))

	updated, err := s.UpdateMenu(ctx, m.ID, models.MenuInput{Handle: "main-menu", Title: "Main", Items: []models.MenuItemInput{{Title: "Home", Type: "FRONTPAGE"}}})
	require.NoError(t, err)
	assert.Len(t, updated.Items, 1)
}

func TestProductVariantsAndAttributes(t *testing.T) {
	ctx := context.Background()
	s := New("shop")

	p, err := s.CreateProduct(ctx, models.ProductCreate{Handle: "tee", Title: "Tee"}, nil)
	require.NoError(t, err)

	variants, err := s.CreateVariants(ctx, p.ID, []models.VariantInput{{
		Price:        utils.Ptr("10.00"),
		OptionValues: []models.VariantOptionValueInput{{OptionName: "Size", Name: "S"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "S", variants[0].Title)

	_, err = s.SetAttributes(ctx, []models.AttributeInput{
		{OwnerID: p.ID, Namespace: "custom", Key: "fabric", Type: "single_line_text_field", Value: "cotton"},
		{OwnerID: variants[0].ID, Namespace: "custom", Key: "fit", Type: "single_line_text_field", Value: "slim"},
	})
	require.NoError(t, err)

	got, err := s.GetProductByHandle(ctx, "tee")
	require.NoError(t, err)
	require.Len(t, got.Attributes, 1)
	require.Len(t, got.Variants, 1)
	require.Len(t, got.Variants[0].Attributes, 1)
	assert.Equal(t, "slim", *got.Variants[0].Attributes[0].Value)

	_, err = s.SetAttributes(ctx, []models.AttributeInput{{OwnerID: "gid://shopify/Product/404", Namespace: "a", Key: "b"}})
	assert.True(t, store.IsValidationConflict(err))

	require.NoError(t, s.DeleteAttributes(ctx, []models.AttributeIdentifier{{OwnerID: p.ID, Namespace: "custom", Key: "fabric"}}))
	got, err = s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Attributes)
}
