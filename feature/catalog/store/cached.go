package store

import (
	"context"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
)

// Cached is a read-through decorator for a store that is only read during a
// run, i.e. the source. Point reads are cached for the TTL; writes pass
// through untouched and do not invalidate anything. Returned values are
// shared and must not be mutated.
type Cached struct {
	Store

	definitions *reconcile.Cache[*models.Definition]
	instances   *reconcile.Cache[*models.Instance]
	files       *reconcile.Cache[*models.File]
	collections *reconcile.Cache[*models.Collection]
	products    *reconcile.Cache[*models.Product]
}

// NewCached wraps inner with a read-through cache.
func NewCached(inner Store, ttl time.Duration) *Cached {
	return &Cached{
		Store:       inner,
		definitions: reconcile.NewCache[*models.Definition](ttl),
		instances:   reconcile.NewCache[*models.Instance](ttl),
		files:       reconcile.NewCache[*models.File](ttl),
		collections: reconcile.NewCache[*models.Collection](ttl),
		products:    reconcile.NewCache[*models.Product](ttl),
	}
}

func (c *Cached) GetDefinition(ctx context.Context, id string) (*models.Definition, error) {
	return c.definitions.GetOrLoad(id, func() (*models.Definition, error) {
		return c.Store.GetDefinition(ctx, id)
	})
}

func (c *Cached) GetInstance(ctx context.Context, id string) (*models.Instance, error) {
	return c.instances.GetOrLoad(id, func() (*models.Instance, error) {
		return c.Store.GetInstance(ctx, id)
	})
}

func (c *Cached) GetInstanceByHandle(ctx context.Context, typ, handle string) (*models.Instance, error) {
	return c.instances.GetOrLoad(models.InstanceKey(typ, handle), func() (*models.Instance, error) {
		return c.Store.GetInstanceByHandle(ctx, typ, handle)
	})
}

func (c *Cached) GetFile(ctx context.Context, id string) (*models.File, error) {
	return c.files.GetOrLoad(id, func() (*models.File, error) {
		return c.Store.GetFile(ctx, id)
	})
}

func (c *Cached) GetFileByName(ctx context.Context, name string) (*models.File, error) {
	return c.files.GetOrLoad("name:"+name, func() (*models.File, error) {
		return c.Store.GetFileByName(ctx, name)
	})
}

func (c *Cached) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	return c.collections.GetOrLoad(id, func() (*models.Collection, error) {
		return c.Store.GetCollection(ctx, id)
	})
}

func (c *Cached) GetCollectionByHandle(ctx context.Context, handle string) (*models.Collection, error) {
	return c.collections.GetOrLoad("handle:"+handle, func() (*models.Collection, error) {
		return c.Store.GetCollectionByHandle(ctx, handle)
	})
}

func (c *Cached) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return c.products.GetOrLoad(id, func() (*models.Product, error) {
		return c.Store.GetProduct(ctx, id)
	})
}

func (c *Cached) GetProductByHandle(ctx context.Context, handle string) (*models.Product, error) {
	return c.products.GetOrLoad("handle:"+handle, func() (*models.Product, error) {
		return c.Store.GetProductByHandle(ctx, handle)
	})
}

// Purge drops every cached entry.
func (c *Cached) Purge() {
	c.definitions.Purge()
	c.instances.Purge()
	c.files.Purge()
	c.collections.Purge()
	c.products.Purge()
}
