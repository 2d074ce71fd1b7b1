package store_test

import (
	"context"
	"testing"
	"time"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"
	"catalog-sync/feature/catalog/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	*memory.Store
	instanceReads int
}

func (c *countingStore) GetInstance(ctx context.Context, id string) (*models.Instance, error) {
	c.instanceReads++
	return c.Store.GetInstance(ctx, id)
}

func TestCached_ReadsThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: memory.New("source")}
	_, err := inner.CreateDefinition(ctx, models.DefinitionCreate{Type: "author", FieldDefinitions: []models.FieldDefinitionInput{{Key: "name", Type: "single_line_text_field"}}})
	require.NoError(t, err)
	inst, err := inner.CreateInstance(ctx, models.InstanceCreate{Type: "author", Handle: "jane", Fields: []models.FieldInput{{Key: "name", Value: utils.Ptr("Jane")}}})
	require.NoError(t, err)

	cached := store.NewCached(inner, time.Minute)
	for i := 0; i < 3; i++ {
		got, err := cached.GetInstance(ctx, inst.ID)
		require.NoError(t, err)
		assert.Equal(t, "jane", got.Handle)
	}
	assert.Equal(t, 1, inner.instanceReads)

	cached.Purge()
	_, err = cached.GetInstance(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.instanceReads)
}

func TestCached_ZeroTTLDisablesStorage(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: memory.New("source")}
	cached := store.NewCached(inner, 0)

	_, _ = cached.GetInstance(ctx, "gid://shopify/Metaobject/1")
	_, _ = cached.GetInstance(ctx, "gid://shopify/Metaobject/1")
	assert.Equal(t, 2, inner.instanceReads)
}

func TestValidationConflictError(t *testing.T) {
	err := store.CheckUserErrors("metaobjectCreate", map[string]string{"handle": "x"}, []store.UserError{
		{Field: []string{"metaobject", "handle"}, Message: "is taken"},
		{Message: "generic"},
	})
	assert.True(t, store.IsValidationConflict(err))
	assert.EqualError(t, err, "metaobjectCreate rejected: metaobject.handle: is taken; generic")
	assert.NoError(t, store.CheckUserErrors("x", nil, nil))
}
