// Package shopify is the GraphQL transport for the Shopify Admin API.
//
// A Client posts operations to
// https://{store}.myshopify.com/admin/api/{version}/graphql.json with the
// X-Shopify-Access-Token header. Every operation runs inside an OpenTelemetry
// span and goes through an otelhttp transport.
//
// Transport failures surface as *StatusError (non-2xx) or *RequestError
// (top-level GraphQL errors). Throttled requests are retried with a linear
// backoff; nothing else is retried.
//
// Paginate walks cursor-based connections:
//
//	products, err := shopify.Paginate(ctx, func(ctx context.Context, after *string) (shopify.Connection[Product], error) {
//	    var out struct{ Products shopify.Connection[Product] `json:"products"` }
//	    err := client.Do(ctx, "products", query, map[string]any{"after": after}, &out)
//	    return out.Products, err
//	})
package shopify
