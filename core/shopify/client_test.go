package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{StoreName: "acme", AccessToken: "tok", MaxRetries: 2}, nil,
		WithEndpoint(srv.URL), WithBackoff(time.Millisecond))
	require.NoError(t, err)
	return c
}

func TestConfig(t *testing.T) {
	t.Run("Missing credentials", func(t *testing.T) {
		err := Config{}.Validate()
		assert.ErrorContains(t, err, "store_name, access_token")
	})

	t.Run("Endpoint", func(t *testing.T) {
		cfg := Config{StoreName: "acme", AccessToken: "x"}
		assert.Equal(t, "https://acme.myshopify.com/admin/api/2025-01/graphql.json", cfg.Endpoint())
		cfg.APIVersion = "2024-10"
		assert.Equal(t, "https://acme.myshopify.com/admin/api/2024-10/graphql.json", cfg.Endpoint())
	})

	t.Run("NewClient rejects invalid config", func(t *testing.T) {
		_, err := NewClient(Config{StoreName: "acme"}, nil)
		assert.Error(t, err)
	})
}

func TestClient_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes data", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "tok", r.Header.Get("X-Shopify-Access-Token"))

			var req request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "shop-handle", req.Variables["handle"])

			_, _ = w.Write([]byte(`{"data":{"shop":{"name":"Acme"}}}`))
		})

		var out struct {
			Shop struct {
				Name string `json:"name"`
			} `json:"shop"`
		}
		err := c.Do(ctx, "shop", "query { shop { name } }", map[string]any{"handle": "shop-handle"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "Acme", out.Shop.Name)
	})

	t.Run("GraphQL errors", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"errors":[{"message":"Field 'x' doesn't exist"}]}`))
		})

		err := c.Do(ctx, "broken", "query { x }", nil, nil)
		var re *RequestError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, "broken", re.Operation)
		assert.Contains(t, err.Error(), "Field 'x' doesn't exist")
	})

	t.Run("Status errors", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`invalid token`))
		})

		err := c.Do(ctx, "shop", "query { shop { name } }", nil, nil)
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
		assert.False(t, IsThrottled(err))
	})

	t.Run("Retries throttled requests", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				_, _ = w.Write([]byte(`{"errors":[{"message":"Throttled","extensions":{"code":"THROTTLED"}}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":{}}`))
		})

		err := c.Do(ctx, "shop", "query { shop { name } }", nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("Gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		})

		err := c.Do(ctx, "shop", "query { shop { name } }", nil, nil)
		assert.True(t, IsThrottled(err))
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestPaginate(t *testing.T) {
	pages := map[string]Connection[int]{
		"":   {Nodes: []int{1, 2}, PageInfo: PageInfo{HasNextPage: true, EndCursor: "c1"}},
		"c1": {Nodes: []int{3}, PageInfo: PageInfo{HasNextPage: true, EndCursor: "c2"}},
		"c2": {Nodes: []int{4}, PageInfo: PageInfo{HasNextPage: false}},
	}

	var seen []string
	all, err := Paginate(context.Background(), func(ctx context.Context, after *string) (Connection[int], error) {
		cursor := ""
		if after != nil {
			cursor = *after
		}
		seen = append(seen, cursor)
		return pages[cursor], nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, all)
	assert.Equal(t, []string{"", "c1", "c2"}, seen)

	_, err = Paginate(context.Background(), func(ctx context.Context, after *string) (Connection[int], error) {
		return Connection[int]{}, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
}
