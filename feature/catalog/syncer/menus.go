package syncer

import (
	"context"
	"fmt"
	"slices"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func menuHandle(m models.Menu) string { return m.Handle }

// menuResources maps menu item resources between the stores by handle.
// Resolutions are memoized for the pass.
type menuResources struct {
	s *Syncer

	sourceHandles map[string]string
	targetIDs     map[string]string
	resolved      map[string]*string
}

func handleMaps[T any](items []T, id, handle func(T) string, byID, byHandle map[string]string, resource string) {
	for _, it := range items {
		if byID != nil {
			byID[id(it)] = handle(it)
		}
		if byHandle != nil {
			byHandle[resource+"/"+handle(it)] = id(it)
		}
	}
}

func (s *Syncer) loadMenuResources(ctx context.Context) (*menuResources, error) {
	r := &menuResources{
		s:             s,
		sourceHandles: make(map[string]string),
		targetIDs:     make(map[string]string),
		resolved:      make(map[string]*string),
	}

	var (
		srcPages, tgtPages             []models.Page
		srcAccount, tgtAccount         []models.CustomerAccountPage
		srcCollections, tgtCollections []models.Collection
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { srcPages, err = s.source.ListPages(gctx); return })
	g.Go(func() (err error) { tgtPages, err = s.target.ListPages(gctx); return })
	g.Go(func() (err error) { srcAccount, err = s.source.ListCustomerAccountPages(gctx); return })
	g.Go(func() (err error) { tgtAccount, err = s.target.ListCustomerAccountPages(gctx); return })
	g.Go(func() (err error) { srcCollections, err = s.source.ListCollections(gctx); return })
	g.Go(func() (err error) { tgtCollections, err = s.target.ListCollections(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load menu resources: %w", err)
	}

	pageID := func(p models.Page) string { return p.ID }
	accountID := func(p models.CustomerAccountPage) string { return p.ID }
	accountHandle := func(p models.CustomerAccountPage) string { return p.Handle }
	collectionID := func(c models.Collection) string { return c.ID }

	handleMaps(srcPages, pageID, pageHandle, r.sourceHandles, nil, "")
	handleMaps(tgtPages, pageID, pageHandle, nil, r.targetIDs, "Page")
	handleMaps(srcAccount, accountID, accountHandle, r.sourceHandles, nil, "")
	handleMaps(tgtAccount, accountID, accountHandle, nil, r.targetIDs, "CustomerAccountPage")
	handleMaps(srcCollections, collectionID, collectionHandle, r.sourceHandles, nil, "")
	handleMaps(tgtCollections, collectionID, collectionHandle, nil, r.targetIDs, "Collection")
	return r, nil
}

// targetID maps a source resource id to the target resource with the same
// handle. A resource missing at target yields nil.
func (r *menuResources) targetID(ctx context.Context, sourceID string) (*string, error) {
	if id, ok := r.resolved[sourceID]; ok {
		return id, nil
	}

	resource := utils.GIDResource(sourceID)
	var handle string
	switch resource {
	case "Page", "CustomerAccountPage", "Collection":
		h, ok := r.sourceHandles[sourceID]
		if !ok {
			return nil, notFound(resource, sourceID, reconcile.SideSource)
		}
		handle = h
	case "Product":
		p, err := r.s.sourceProduct(ctx, sourceID)
		if err != nil {
			return nil, err
		}
		handle = p.Handle
	default:
		return nil, fmt.Errorf("unsupported menu resource type %q", resource)
	}

	var out *string
	if resource == "Product" {
		p, err := r.s.target.GetProductByHandle(ctx, handle)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = &p.ID
		}
	} else if id, ok := r.targetIDs[resource+"/"+handle]; ok {
		out = &id
	}
	if out == nil {
		r.s.logger.Warn("Menu resource missing at target",
			zap.String("resource", resource),
			zap.String("handle", handle))
	}
	r.resolved[sourceID] = out
	return out, nil
}

func (r *menuResources) items(ctx context.Context, source []models.MenuItem) ([]models.MenuItemInput, error) {
	out := make([]models.MenuItemInput, 0, len(source))
	for _, it := range source {
		in := models.MenuItemInput{Title: it.Title, Type: it.Type, Tags: it.Tags}
		if it.ResourceID != nil {
			id, err := r.targetID(ctx, *it.ResourceID)
			if err != nil {
				return nil, fmt.Errorf("menu item %q: %w", it.Title, err)
			}
			in.ResourceID = id
		} else {
			in.URL = it.URL
		}
		children, err := r.items(ctx, it.Items)
		if err != nil {
			return nil, err
		}
		in.Items = children
		out = append(out, in)
	}
	return out, nil
}

// itemsMatch compares a built menu with the current target items, in order.
func itemsMatch(want []models.MenuItemInput, have []models.MenuItem) bool {
	if len(want) != len(have) {
		return false
	}
	for i, w := range want {
		h := have[i]
		if w.Title != h.Title || w.Type != h.Type {
			return false
		}
		if !utils.EqualPtr(w.ResourceID, h.ResourceID) {
			return false
		}
		if w.ResourceID == nil && !utils.EqualPtr(w.URL, h.URL) {
			return false
		}
		if !slices.Equal(w.Tags, h.Tags) {
			return false
		}
		if !itemsMatch(w.Items, h.Items) {
			return false
		}
	}
	return true
}

// SyncMenus creates missing menus and replaces the ones whose structure
// differs. Platform default menus cannot be deleted and are updated in place.
func (s *Syncer) SyncMenus(ctx context.Context) (reconcile.Summary, error) {
	empty := reconcile.Summary{Kind: KindMenu}
	source, err := s.source.ListMenus(ctx)
	if err != nil {
		return empty, fmt.Errorf("failed to list source menus: %w", err)
	}
	target, err := s.target.ListMenus(ctx)
	if err != nil {
		return empty, fmt.Errorf("failed to list target menus: %w", err)
	}
	resources, err := s.loadMenuResources(ctx)
	if err != nil {
		return empty, err
	}

	targets := reconcile.NewIndex(KindMenu, reconcile.SideTarget, menuHandle, target)
	return reconcile.Each(ctx, s.runner, KindMenu, source, menuHandle,
		func(ctx context.Context, src models.Menu) (reconcile.Outcome, error) {
			items, err := resources.items(ctx, src.Items)
			if err != nil {
				return reconcile.Failed, err
			}
			in := models.MenuInput{Handle: src.Handle, Title: src.Title, Items: items}

			tgt, ok := targets.Get(src.Handle)
			if !ok {
				created, err := s.target.CreateMenu(ctx, in)
				if err != nil {
					return reconcile.Failed, err
				}
				targets.Add(*created)
				return reconcile.Created, nil
			}

			if tgt.Title == src.Title && itemsMatch(items, tgt.Items) {
				return reconcile.Unchanged, nil
			}

			if tgt.IsDefault {
				updated, err := s.target.UpdateMenu(ctx, tgt.ID, in)
				if err != nil {
					return reconcile.Failed, err
				}
				targets.Add(*updated)
				return reconcile.Updated, nil
			}

			if _, err := s.target.DeleteMenu(ctx, tgt.ID); err != nil {
				return reconcile.Failed, err
			}
			targets.Remove(tgt.Handle)
			created, err := s.target.CreateMenu(ctx, in)
			if err != nil {
				return reconcile.Failed, err
			}
			targets.Add(*created)
			return reconcile.Recreated, nil
		}), nil
}
