package reconcile

import "sync"

// Index maps cross-system keys to the entities of one side.
// It is built once per pass and grows as entities are created, so later
// lookups in the same run see them without a re-fetch.
type Index[T any] struct {
	mu    sync.RWMutex
	kind  string
	side  Side
	keyOf func(T) string
	items map[string]T
	order []string
}

// NewIndex indexes items by keyOf. Later duplicates replace earlier ones.
func NewIndex[T any](kind string, side Side, keyOf func(T) string, items []T) *Index[T] {
	idx := &Index[T]{
		kind:  kind,
		side:  side,
		keyOf: keyOf,
		items: make(map[string]T, len(items)),
	}
	for _, item := range items {
		idx.Add(item)
	}
	return idx
}

// Get returns the entity for key, if any.
func (i *Index[T]) Get(key string) (T, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	item, ok := i.items[key]
	return item, ok
}

// Resolve is Get that fails with a *NotFoundError.
func (i *Index[T]) Resolve(key string) (T, error) {
	item, ok := i.Get(key)
	if !ok {
		return item, &NotFoundError{Kind: i.kind, Key: key, Side: i.side}
	}
	return item, nil
}

// Add inserts or replaces the entity under its key.
func (i *Index[T]) Add(item T) {
	key := i.keyOf(item)
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, exists := i.items[key]; !exists {
		i.order = append(i.order, key)
	}
	i.items[key] = item
}

// Remove drops key from the index.
func (i *Index[T]) Remove(key string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, exists := i.items[key]; !exists {
		return
	}
	delete(i.items, key)
	for n, k := range i.order {
		if k == key {
			i.order = append(i.order[:n], i.order[n+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (i *Index[T]) Keys() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]string(nil), i.order...)
}

// Items returns the entities in insertion order.
func (i *Index[T]) Items() []T {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]T, 0, len(i.order))
	for _, key := range i.order {
		out = append(out, i.items[key])
	}
	return out
}

// Len returns the number of indexed entities.
func (i *Index[T]) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.items)
}
