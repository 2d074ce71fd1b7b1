// Package store declares the interface the sync engine uses to talk to a
// source or target store.
//
// Implementations live in subpackages: graphql speaks the Shopify Admin API
// and memory keeps everything in maps for tests. Cached wraps either with a
// read-through cache for the read-only source side.
//
// Writes rejected with field-level user errors surface as
// *ValidationConflictError carrying the operation and the offending payload.
package store
