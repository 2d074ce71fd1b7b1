package syncer

import (
	"context"
	"testing"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGarbageCollectCollections(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for _, h := range []string{"a", "b"} {
		createCollection(t, f.source, h)
	}
	for _, h := range []string{"a", "b", "c"} {
		createCollection(t, f.target, h)
	}
	f.target.ResetOps()

	t.Run("DryRun", func(t *testing.T) {
		s, _ := f.syncer(WithDryRun(true))
		summary, err := s.GarbageCollectCollections(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Skipped)
		assert.Empty(t, f.target.Ops())
	})

	s, rec := f.syncer()
	summary, err := s.GarbageCollectCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, []string{"DeleteCollection c"}, f.target.Ops())
	assert.Equal(t, map[string]reconcile.Outcome{"collection c": reconcile.Deleted}, rec.outcomes())
}

func TestGarbageCollectDefinitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for _, typ := range []string{"a", "b"} {
		createDefinition(t, f.source, typ, text("name"))
	}
	for _, typ := range []string{"a", "b", "c", "shopify--faq"} {
		createDefinition(t, f.target, typ, text("name"))
	}
	createInstance(t, f.target, "c", "one", map[string]string{"name": "one"})
	f.target.ResetOps()

	s, _ := f.syncer()
	summary, err := s.GarbageCollectDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, []string{"BulkDeleteInstances c", "DeleteDefinition c"}, f.target.Ops())

	_, ok := s.targetDefs.Get("c")
	assert.False(t, ok)
}

func TestGarbageCollectInstances(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	createDefinition(t, f.source, "author", text("name"))
	createDefinition(t, f.target, "author", text("name"))
	for _, h := range []string{"a", "b"} {
		createInstance(t, f.source, "author", h, map[string]string{"name": h})
	}
	for _, h := range []string{"a", "b", "c"} {
		createInstance(t, f.target, "author", h, map[string]string{"name": h})
	}
	f.target.ResetOps()

	s, _ := f.syncer()
	summary, err := s.GarbageCollectInstances(ctx, "author")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, []string{"DeleteInstance author/c"}, f.target.Ops())
}

func TestGarbageCollectAttributeDefinitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	def := func(ns, key, owner string) models.AttributeDefinitionCreate {
		return models.AttributeDefinitionCreate{Name: key, Namespace: ns, Key: key, OwnerType: owner, Type: "single_line_text_field"}
	}
	for _, in := range []models.AttributeDefinitionCreate{def("custom", "a", "PRODUCT"), def("custom", "b", "PAGE")} {
		_, err := f.source.CreateAttributeDefinition(ctx, in)
		require.NoError(t, err)
	}
	for _, in := range []models.AttributeDefinitionCreate{
		def("custom", "a", "PRODUCT"),
		def("custom", "b", "PAGE"),
		def("custom", "b", "PRODUCT"),
		def("shopify", "color", "PRODUCT"),
		def("custom", "c", "COLLECTION"),
	} {
		_, err := f.target.CreateAttributeDefinition(ctx, in)
		require.NoError(t, err)
	}
	f.target.ResetOps()

	s, _ := f.syncer()
	summary, err := s.GarbageCollectAttributeDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, []string{"DeleteAttributeDefinition custom:b"}, f.target.Ops())
}
