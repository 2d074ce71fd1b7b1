package graphql

import (
	"context"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

func (s *Store) ListCollections(ctx context.Context) ([]models.Collection, error) {
	return list[models.Collection](ctx, s, "collections", listCollectionsQuery, nil)
}

func (s *Store) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	return get[models.Collection](ctx, s, "collection", getCollectionQuery, map[string]any{"id": id})
}

func (s *Store) GetCollectionByHandle(ctx context.Context, handle string) (*models.Collection, error) {
	return get[models.Collection](ctx, s, "collectionByHandle", getCollectionByHandleQuery, map[string]any{"handle": handle})
}

func (s *Store) CreateCollection(ctx context.Context, in models.CollectionCreate) (*models.Collection, error) {
	var out struct {
		Collection *models.Collection `json:"collection"`
	}
	err := s.mutate(ctx, "collectionCreate", createCollectionMutation, map[string]any{"input": in}, in, &out)
	return out.Collection, err
}

func (s *Store) DeleteCollection(ctx context.Context, id string) (string, error) {
	var out struct {
		DeletedCollectionID *string `json:"deletedCollectionId"`
	}
	err := s.mutate(ctx, "collectionDelete", deleteCollectionMutation,
		map[string]any{"input": map[string]string{"id": id}}, id, &out)
	return utils.Deref(out.DeletedCollectionID), err
}

func (s *Store) ListPages(ctx context.Context) ([]models.Page, error) {
	nodes, err := list[pageNode](ctx, s, "pages", listPagesQuery, nil)
	if err != nil {
		return nil, err
	}
	pages := make([]models.Page, 0, len(nodes))
	for _, n := range nodes {
		pages = append(pages, n.model())
	}
	return pages, nil
}

func (s *Store) CreatePage(ctx context.Context, in models.PageCreate) (*models.Page, error) {
	var out struct {
		Page *pageNode `json:"page"`
	}
	if err := s.mutate(ctx, "pageCreate", createPageMutation, map[string]any{"page": in}, in, &out); err != nil {
		return nil, err
	}
	if out.Page == nil {
		return nil, nil
	}
	page := out.Page.model()
	return &page, nil
}

func (s *Store) ListCustomerAccountPages(ctx context.Context) ([]models.CustomerAccountPage, error) {
	return list[models.CustomerAccountPage](ctx, s, "customerAccountPages", listCustomerAccountPagesQuery, nil)
}

func (s *Store) ListMenus(ctx context.Context) ([]models.Menu, error) {
	return list[models.Menu](ctx, s, "menus", listMenusQuery, nil)
}

func (s *Store) CreateMenu(ctx context.Context, in models.MenuInput) (*models.Menu, error) {
	var out struct {
		Menu *models.Menu `json:"menu"`
	}
	err := s.mutate(ctx, "menuCreate", createMenuMutation,
		map[string]any{"title": in.Title, "handle": in.Handle, "items": in.Items}, in, &out)
	return out.Menu, err
}

func (s *Store) UpdateMenu(ctx context.Context, id string, in models.MenuInput) (*models.Menu, error) {
	var out struct {
		Menu *models.Menu `json:"menu"`
	}
	err := s.mutate(ctx, "menuUpdate", updateMenuMutation,
		map[string]any{"id": id, "title": in.Title, "handle": in.Handle, "items": in.Items}, in, &out)
	return out.Menu, err
}

func (s *Store) DeleteMenu(ctx context.Context, id string) (string, error) {
	var out struct {
		DeletedMenuID *string `json:"deletedMenuId"`
	}
	err := s.mutate(ctx, "menuDelete", deleteMenuMutation, map[string]any{"id": id}, id, &out)
	return utils.Deref(out.DeletedMenuID), err
}
