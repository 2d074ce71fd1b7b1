package syncer

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// librarySynced seeds the library at source and its definitions at target.
func librarySynced(t *testing.T) (*fixture, *Syncer) {
	t.Helper()
	f := newFixture()
	library(t, f.source)
	s, _ := f.syncer()
	for _, typ := range []string{"author", "book"} {
		_, _, err := s.SyncDefinition(context.Background(), typ)
		require.NoError(t, err)
	}
	f.target.ResetOps()
	return f, s
}

func sourceInstance(t *testing.T, f *fixture, typ, handle string) models.Instance {
	t.Helper()
	inst, err := f.source.GetInstanceByHandle(context.Background(), typ, handle)
	require.NoError(t, err)
	require.NotNil(t, inst)
	return *inst
}

func TestInstancesMatchFollowsReferences(t *testing.T) {
	ctx := context.Background()
	f, s := librarySynced(t)

	janet := createInstance(t, f.target, "author", "jane", map[string]string{"name": "Janet"})
	john := createInstance(t, f.target, "author", "john", map[string]string{"name": "John"})
	dune := createInstance(t, f.target, "book", "dune", map[string]string{
		"title":      "Dune",
		"author":     janet.ID,
		"co_authors": utils.EncodeIDList([]string{john.ID}),
	})
	src := sourceInstance(t, f, "book", "dune")

	match, err := s.InstancesMatch(ctx, src, dune)
	require.NoError(t, err)
	assert.False(t, match, "stale referenced author must be detected")

	equal, err := s.FieldsEqual(ctx, "metaobject_reference", utils.Ptr(value(&src, "author")), utils.Ptr(janet.ID))
	require.NoError(t, err)
	assert.False(t, equal)

	_, outcome, err := s.SyncInstance(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, reconcile.Updated, outcome)

	jane, err := f.target.GetInstance(ctx, janet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", value(jane, "name"))
	assert.Contains(t, f.target.Ops(), "UpdateInstance author/jane")
	assert.Contains(t, f.target.Ops(), "UpdateInstance book/dune")
}

func TestSyncInstanceTrimsExtraListMembers(t *testing.T) {
	ctx := context.Background()
	f, s := librarySynced(t)

	jane := createInstance(t, f.target, "author", "jane", map[string]string{"name": "Jane"})
	john := createInstance(t, f.target, "author", "john", map[string]string{"name": "John"})
	zed := createInstance(t, f.target, "author", "zed", map[string]string{"name": "Zed"})
	createInstance(t, f.target, "book", "dune", map[string]string{
		"title":      "Dune",
		"author":     jane.ID,
		"co_authors": utils.EncodeIDList([]string{jane.ID, john.ID, zed.ID}),
	})
	f.target.ResetOps()
	src := sourceInstance(t, f, "book", "dune")

	_, outcome, err := s.SyncInstance(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, reconcile.Updated, outcome)
	assert.Equal(t, []string{"UpdateInstance book/dune"}, f.target.Ops())

	dune, err := f.target.GetInstanceByHandle(ctx, "book", "dune")
	require.NoError(t, err)
	assert.Equal(t, utils.EncodeIDList([]string{jane.ID, john.ID}), value(dune, "co_authors"))

	t.Run("Idempotent", func(t *testing.T) {
		f.target.ResetOps()
		_, outcome, err := s.SyncInstance(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, reconcile.Unchanged, outcome)
		assert.Empty(t, f.target.Ops())
	})
}

func TestListReferenceOrderInsensitive(t *testing.T) {
	ctx := context.Background()
	f, s := librarySynced(t)

	jane := createInstance(t, f.target, "author", "jane", map[string]string{"name": "Jane"})
	john := createInstance(t, f.target, "author", "john", map[string]string{"name": "John"})
	src := sourceInstance(t, f, "book", "dune")

	reversed := utils.EncodeIDList([]string{john.ID, jane.ID})
	equal, err := s.FieldsEqual(ctx, "list.metaobject_reference", utils.Ptr(value(&src, "co_authors")), &reversed)
	require.NoError(t, err)
	assert.True(t, equal)

	missing := utils.EncodeIDList([]string{john.ID})
	equal, err = s.FieldsEqual(ctx, "list.metaobject_reference", utils.Ptr(value(&src, "co_authors")), &missing)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestFieldsEqualScalarsAndNulls(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s, _ := f.syncer()

	tests := []struct {
		name   string
		source *string
		target *string
		want   bool
	}{
		{"BothNull", nil, nil, true},
		{"SourceNull", nil, utils.Ptr("a"), false},
		{"TargetNull", utils.Ptr("a"), nil, false},
		{"Same", utils.Ptr("a"), utils.Ptr("a"), true},
		{"Different", utils.Ptr("a"), utils.Ptr("b"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FieldsEqual(ctx, "single_line_text_field", tt.source, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileReferencesMatchByName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s, _ := f.syncer()

	src, err := f.source.CreateFiles(ctx, []models.FileCreate{{Filename: "photo.jpg", OriginalSource: "https://example.test/photo.jpg"}})
	require.NoError(t, err)
	in := []models.FileCreate{{Filename: "photo.jpg", OriginalSource: "https://example.test/photo.jpg", DuplicateResolutionMode: models.DuplicateAppendUUID}}
	_, err = f.target.CreateFiles(ctx, in)
	require.NoError(t, err)
	renamed, err := f.target.CreateFiles(ctx, in)
	require.NoError(t, err)
	other, err := f.target.CreateFiles(ctx, []models.FileCreate{{Filename: "banner.png", OriginalSource: "https://example.test/banner.png"}})
	require.NoError(t, err)

	require.NotEqual(t, src[0].URL, renamed[0].URL)
	assert.Contains(t, renamed[0].URL, "photo_")

	equal, err := s.FieldsEqual(ctx, "file_reference", &src[0].ID, &renamed[0].ID)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = s.FieldsEqual(ctx, "file_reference", &src[0].ID, &other[0].ID)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestSyncInstanceCycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	person := createDefinition(t, f.source, "person", text("name"))
	person = addField(t, f.source, person, reference("friend", "metaobject_reference", person.ID))
	alice := createInstance(t, f.source, "person", "alice", map[string]string{"name": "Alice"})
	bob := createInstance(t, f.source, "person", "bob", map[string]string{"name": "Bob", "friend": alice.ID})
	_, err := f.source.UpdateInstance(ctx, alice.ID, models.InstanceUpdate{
		Fields: []models.FieldInput{{Key: "friend", Value: utils.Ptr(bob.ID)}},
	})
	require.NoError(t, err)

	first, _ := f.syncer()
	summary, err := first.SyncDefinitions(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.Failed, summary.Failures)

	second, _ := f.syncer()
	_, err = second.SyncInstancesOf(ctx, "person")
	require.NoError(t, err)

	ta, err := f.target.GetInstanceByHandle(ctx, "person", "alice")
	require.NoError(t, err)
	tb, err := f.target.GetInstanceByHandle(ctx, "person", "bob")
	require.NoError(t, err)
	assert.Equal(t, tb.ID, value(ta, "friend"))
	assert.Equal(t, ta.ID, value(tb, "friend"))

	f.target.ResetOps()
	third, _ := f.syncer()
	summary, err = third.SyncInstancesOf(ctx, "person")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Unchanged)
	assert.Empty(t, f.target.Ops())
}

// retypedTarget reports stale as the target copy of its handle once.
type retypedTarget struct {
	*memory.Store
	stale *models.Instance
}

func (r *retypedTarget) GetInstanceByHandle(ctx context.Context, typ, handle string) (*models.Instance, error) {
	if r.stale != nil && r.stale.Handle == handle {
		stale := r.stale
		r.stale = nil
		return stale, nil
	}
	return r.Store.GetInstanceByHandle(ctx, typ, handle)
}

func TestSyncInstanceRecreatesOnTypeChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	createDefinition(t, f.source, "author", text("name"))
	jane := createInstance(t, f.source, "author", "jane", map[string]string{"name": "Jane"})
	createDefinition(t, f.target, "author", text("name"))
	createDefinition(t, f.target, "writer", text("name"))
	stale := createInstance(t, f.target, "writer", "jane", map[string]string{"name": "Jane"})
	f.target.ResetOps()

	target := &retypedTarget{Store: f.target, stale: &stale}
	s := New(f.source, target, zap.NewNop())
	got, outcome, err := s.SyncInstance(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, reconcile.Recreated, outcome)
	assert.Equal(t, "author", got.Type)
	assert.Equal(t, []string{"DeleteInstance writer/jane", "CreateInstance author/jane"}, f.target.Ops())
}

// failingTarget rejects creating one handle.
type failingTarget struct {
	*memory.Store
	handle string
}

func (f *failingTarget) CreateInstance(ctx context.Context, in models.InstanceCreate) (*models.Instance, error) {
	if in.Handle == f.handle {
		return nil, errors.New("boom")
	}
	return f.Store.CreateInstance(ctx, in)
}

func TestSyncInstancesOfIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	createDefinition(t, f.source, "author", text("name"))
	createDefinition(t, f.target, "author", text("name"))
	handles := []string{"a1", "a2", "a3", "a4", "a5"}
	for _, h := range handles {
		createInstance(t, f.source, "author", h, map[string]string{"name": h})
	}

	rec := &recorder{}
	s := New(f.source, &failingTarget{Store: f.target, handle: "a3"}, zap.NewNop(), WithReporter(rec))
	summary, err := s.SyncInstancesOf(ctx, "author")
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 4, summary.Created)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "author/a3", summary.Failures[0].Key)
	assert.Contains(t, summary.Failures[0].Error, "boom")

	require.Len(t, rec.results, 5)
	for i, h := range handles {
		assert.Equal(t, "author/"+h, rec.results[i].Key)
	}
	assert.Equal(t, reconcile.Failed, rec.results[2].Outcome)
	assert.Equal(t, reconcile.Created, rec.results[3].Outcome)
}

func TestSyncInstanceMissingSourceReference(t *testing.T) {
	ctx := context.Background()
	f, s := librarySynced(t)
	src := sourceInstance(t, f, "book", "dune")
	_, err := f.source.UpdateInstance(ctx, src.ID, models.InstanceUpdate{
		Fields: []models.FieldInput{{Key: "author", Value: utils.Ptr("gid://shopify/Metaobject/999")}},
	})
	require.NoError(t, err)

	_, outcome, err := s.SyncInstance(ctx, src.ID)
	assert.Equal(t, reconcile.Failed, outcome)
	assert.True(t, reconcile.IsNotFound(err))
}
