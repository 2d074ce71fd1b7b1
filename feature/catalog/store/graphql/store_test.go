package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog-sync/core/shopify"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func newTestStore(t *testing.T, handler func(req gqlRequest) string) *Store {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_, _ = w.Write([]byte(handler(req)))
	}))
	t.Cleanup(srv.Close)

	client, err := shopify.NewClient(shopify.Config{StoreName: "acme", AccessToken: "tok"}, nil,
		shopify.WithEndpoint(srv.URL), shopify.WithBackoff(time.Millisecond))
	require.NoError(t, err)
	return New(client, nil)
}

func TestListInstancesFollowsCursors(t *testing.T) {
	var calls int
	s := newTestStore(t, func(req gqlRequest) string {
		calls++
		assert.Equal(t, "author", req.Variables["type"])
		if req.Variables["after"] == nil {
			return `{"data":{"metaobjects":{"nodes":[{"id":"gid://shopify/Metaobject/1","handle":"a","type":"author","fields":[]}],
				"pageInfo":{"hasNextPage":true,"endCursor":"c1"}}}}`
		}
		assert.Equal(t, "c1", req.Variables["after"])
		return `{"data":{"metaobjects":{"nodes":[{"id":"gid://shopify/Metaobject/2","handle":"b","type":"author",
			"fields":[{"key":"name","type":"single_line_text_field","value":null}]}],
			"pageInfo":{"hasNextPage":false,"endCursor":"c2"}}}}`
	})

	instances, err := s.ListInstances(context.Background(), "author")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, instances, 2)
	assert.Equal(t, "b", instances[1].Handle)
	assert.Nil(t, instances[1].Fields[0].Value)
}

func TestPointReadNullIsNil(t *testing.T) {
	s := newTestStore(t, func(req gqlRequest) string {
		assert.Contains(t, req.Query, "metaobjectByHandle(handle: $handle)")
		return `{"data":{"metaobjectByHandle":null}}`
	})

	inst, err := s.GetInstanceByHandle(context.Background(), "author", "ghost")
	assert.NoError(t, err)
	assert.Nil(t, inst)
}

func TestCreateInstanceSendsEmptyStringsAndMapsUserErrors(t *testing.T) {
	s := newTestStore(t, func(req gqlRequest) string {
		input := req.Variables["metaobject"].(map[string]any)
		fields := input["fields"].([]any)
		assert.Equal(t, "", fields[0].(map[string]any)["value"])
		return `{"data":{"metaobjectCreate":{"metaobject":null,
			"userErrors":[{"field":["metaobject","handle"],"message":"Handle has already been taken","code":"TAKEN"}]}}}`
	})

	in := models.InstanceCreate{Type: "author", Handle: "jane", Fields: []models.FieldInput{{Key: "bio"}}}
	_, err := s.CreateInstance(context.Background(), in)

	var conflict *store.ValidationConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "metaobjectCreate", conflict.Operation)
	assert.Equal(t, in, conflict.Payload)
	assert.Equal(t, "TAKEN", conflict.UserErrors[0].Code)
}

func TestGetProductByHandleFlattensConnections(t *testing.T) {
	s := newTestStore(t, func(req gqlRequest) string {
		assert.Equal(t, map[string]any{"handle": "tee"}, req.Variables["identifier"])
		return `{"data":{"productByIdentifier":{
			"id":"gid://shopify/Product/1","handle":"tee","title":"Tee","status":"ACTIVE","tags":["a"],
			"category":null,
			"collections":{"nodes":[{"id":"gid://shopify/Collection/9","handle":"summer"}]},
			"media":{"nodes":[{"id":"gid://shopify/MediaImage/3","alt":"front","mediaContentType":"IMAGE",
				"preview":{"image":{"url":"https://cdn/files/front.jpg?v=2"}}}]},
			"metafields":{"nodes":[{"id":"gid://shopify/Metafield/4","namespace":"custom","key":"fabric","type":"single_line_text_field","value":"cotton"}]},
			"variants":{"nodes":[{"id":"gid://shopify/ProductVariant/5","title":"S","price":"10.00",
				"image":{"url":"https://cdn/files/front.jpg"},
				"inventoryItem":{"sku":"TEE-S","tracked":true,"unitCost":{"amount":"4.20"}},
				"metafields":{"nodes":[]}}]}
		}}}`
	})

	p, err := s.GetProductByHandle(context.Background(), "tee")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.Category)
	assert.Equal(t, "summer", p.Collections[0].Handle)
	assert.Equal(t, "front.jpg", p.Media[0].Name())
	assert.Equal(t, "cotton", *p.Attributes[0].Value)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "4.20", utils.Deref(p.Variants[0].InventoryItem.UnitCost))
	assert.Equal(t, "TEE-S", utils.Deref(p.Variants[0].InventoryItem.SKU))
	assert.Equal(t, "https://cdn/files/front.jpg", utils.Deref(p.Variants[0].ImageURL))
}

func TestGetFileByNameRequiresExactName(t *testing.T) {
	s := newTestStore(t, func(req gqlRequest) string {
		assert.Equal(t, `filename:"hero.jpg"`, req.Variables["query"])
		return `{"data":{"files":{"nodes":[
			{"id":"gid://shopify/MediaImage/1","preview":{"image":{"url":"https://cdn/files/hero.jpg.bak"}}},
			{"id":"gid://shopify/MediaImage/2","preview":{"image":{"url":"https://cdn/files/hero_0a1b2c3d-1234-5678-9abc-def012345678.jpg"}}}
		],"pageInfo":{"hasNextPage":false}}}}`
	})

	f, err := s.GetFileByName(context.Background(), "hero.jpg")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "gid://shopify/MediaImage/2", f.ID)
}

func TestTopLevelErrorsPropagate(t *testing.T) {
	s := newTestStore(t, func(req gqlRequest) string {
		return `{"errors":[{"message":"Field 'bogus' doesn't exist"}]}`
	})

	_, err := s.ListCollections(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bogus"))
	assert.False(t, store.IsValidationConflict(err))
}
