// Package reconcile provides the generic building blocks for reconciling two
// independently keyed stores.
//
// Entities are never paired by their store-assigned ids, only by a
// cross-system key (a handle, a type, "namespace:key", ...). The package knows
// nothing about the entities themselves; callers supply key functions.
//
// # Components
//
//   - Index: key -> entity map for one side, grown as entities are created so
//     later lookups in the same run see them. Resolve fails with *NotFoundError.
//   - Runner / Each: drives a pass item by item, converting per-item errors
//     (and panics) into Failed results so the pass always completes. Progress
//     and ETA are logged at debug level.
//   - Reporter: receives every Result. LogReporter and MultiReporter are
//     provided; the journal package persists failures.
//   - Orphans: target entities whose key is absent at source (garbage).
//   - Chunk / ApplyChunked: split bulk mutations to the store's per-call limit.
//   - Cache: TTL cache with singleflight stampede protection.
//
// # Usage Example
//
//	runner := reconcile.NewRunner(logger, nil)
//	targets := reconcile.NewIndex("collection", reconcile.SideTarget, keyOf, targetItems)
//
//	summary := reconcile.Each(ctx, runner, "collection", sourceItems, keyOf,
//	    func(ctx context.Context, c Collection) (reconcile.Outcome, error) {
//	        if _, ok := targets.Get(c.Handle); ok {
//	            return reconcile.Unchanged, nil
//	        }
//	        created, err := store.CreateCollection(ctx, c)
//	        if err != nil {
//	            return reconcile.Failed, err
//	        }
//	        targets.Add(created)
//	        return reconcile.Created, nil
//	    })
package reconcile
