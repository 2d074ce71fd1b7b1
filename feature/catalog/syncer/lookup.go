package syncer

import (
	"context"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
)

func notFound(kind, key string, side reconcile.Side) error {
	return &reconcile.NotFoundError{Kind: kind, Key: key, Side: side}
}

func (s *Syncer) sourceInstance(ctx context.Context, id string) (*models.Instance, error) {
	inst, err := s.source.GetInstance(ctx, id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, notFound(KindInstance, id, reconcile.SideSource)
	}
	return inst, nil
}

func (s *Syncer) sourceFile(ctx context.Context, id string) (*models.File, error) {
	f, err := s.source.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, notFound(KindFile, id, reconcile.SideSource)
	}
	return f, nil
}

func (s *Syncer) sourceProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.source.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(KindProduct, id, reconcile.SideSource)
	}
	return p, nil
}

func (s *Syncer) sourceCollection(ctx context.Context, id string) (*models.Collection, error) {
	c, err := s.source.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound(KindCollection, id, reconcile.SideSource)
	}
	return c, nil
}

// sourceProductByHandle drives the handle-list passes.
func (s *Syncer) sourceProductByHandle(ctx context.Context, handle string) (*models.Product, error) {
	p, err := s.source.GetProductByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(KindProduct, handle, reconcile.SideSource)
	}
	return p, nil
}
