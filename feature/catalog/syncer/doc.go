// Package syncer reconciles a target catalog store against a source store.
//
// Each Sync method runs one pass over one entity kind: it loads both sides,
// pairs entities by their cross-store key (definition type, instance handle,
// file name, product handle, ...) and creates, updates or leaves alone the
// target entity. Failures are isolated per item and reported through the
// configured reconcile.Reporter; a pass only stops early on cancellation.
//
// References between entities are followed: syncing an instance syncs the
// instances it references first, and syncing a definition syncs the
// definitions its validations point at. Run-scoped guards end the recursion
// on cyclic schemas.
package syncer
