// Package graphql implements store.Store against the Shopify Admin GraphQL
// API through a shopify.Doer.
//
// Queries are plain string constants. Connections are followed with
// shopify.Paginate and decoded straight into the catalog models where the
// shapes line up; nested connections (metafields, media, variants) go through
// small wire types first. The root field of every operation doubles as the
// operation name, which is what the client traces and logs.
package graphql
