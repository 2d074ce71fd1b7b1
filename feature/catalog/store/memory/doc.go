// Package memory is an in-process store.Store.
//
// It assigns "gid://shopify/<Resource>/<n>" ids from a single sequence and
// rejects writes that reference ids it does not hold, duplicate a handle or
// exceed the per-call limits of the real API. Every mutation is recorded and
// can be inspected with Ops, which is how tests assert idempotence.
package memory
