package syncer

import (
	"context"
	"sync"
	"testing"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recorder collects every reported result.
type recorder struct {
	mu      sync.Mutex
	results []reconcile.Result
}

func (r *recorder) Report(_ context.Context, res reconcile.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recorder) outcomes() map[string]reconcile.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]reconcile.Outcome, len(r.results))
	for _, res := range r.results {
		out[res.Kind+" "+res.Key] = res.Outcome
	}
	return out
}

type fixture struct {
	source *memory.Store
	target *memory.Store
}

func newFixture() *fixture {
	return &fixture{source: memory.New("source"), target: memory.New("target")}
}

// syncer returns a fresh run against the fixture stores.
func (f *fixture) syncer(opts ...Option) (*Syncer, *recorder) {
	rec := &recorder{}
	opts = append([]Option{WithReporter(rec)}, opts...)
	return New(f.source, f.target, zap.NewNop(), opts...), rec
}

func text(key string) models.FieldDefinitionInput {
	return models.FieldDefinitionInput{Key: key, Name: key, Type: "single_line_text_field"}
}

func reference(key, typ, definitionID string) models.FieldDefinitionInput {
	return models.FieldDefinitionInput{
		Key:         key,
		Name:        key,
		Type:        typ,
		Validations: []models.ValidationInput{{Name: models.ValidationDefinitionRef, Value: utils.Ptr(definitionID)}},
	}
}

func createDefinition(t *testing.T, st *memory.Store, typ string, fields ...models.FieldDefinitionInput) models.Definition {
	t.Helper()
	def, err := st.CreateDefinition(context.Background(), models.DefinitionCreate{Type: typ, Name: typ, FieldDefinitions: fields})
	require.NoError(t, err)
	return *def
}

func addField(t *testing.T, st *memory.Store, def models.Definition, field models.FieldDefinitionInput) models.Definition {
	t.Helper()
	updated, err := st.UpdateDefinition(context.Background(), def.ID, models.DefinitionUpdate{
		FieldDefinitions: []models.FieldDefinitionOperation{{Create: &field}},
	})
	require.NoError(t, err)
	return *updated
}

func createInstance(t *testing.T, st *memory.Store, typ, handle string, values map[string]string) models.Instance {
	t.Helper()
	in := models.InstanceCreate{Type: typ, Handle: handle}
	for k, v := range values {
		in.Fields = append(in.Fields, models.FieldInput{Key: k, Value: utils.Ptr(v)})
	}
	inst, err := st.CreateInstance(context.Background(), in)
	require.NoError(t, err)
	return *inst
}

func value(inst *models.Instance, key string) string {
	f, _ := inst.Field(key)
	return utils.Deref(f.Value)
}

// library seeds author and book definitions with instances on st.
//
//	book dune -> author jane, co_authors [jane, john]
func library(t *testing.T, st *memory.Store) (author, book models.Definition) {
	t.Helper()
	author = createDefinition(t, st, "author", text("name"))
	book = createDefinition(t, st, "book",
		text("title"),
		reference("author", "metaobject_reference", author.ID),
		reference("co_authors", "list.metaobject_reference", author.ID),
	)
	jane := createInstance(t, st, "author", "jane", map[string]string{"name": "Jane"})
	john := createInstance(t, st, "author", "john", map[string]string{"name": "John"})
	createInstance(t, st, "book", "dune", map[string]string{
		"title":      "Dune",
		"author":     jane.ID,
		"co_authors": utils.EncodeIDList([]string{jane.ID, john.ID}),
	})
	return author, book
}
