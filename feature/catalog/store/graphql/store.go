package graphql

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-sync/core/shopify"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"

	"go.uber.org/zap"
)

var _ store.Store = (*Store)(nil)

// Store implements store.Store on top of the Admin GraphQL API.
type Store struct {
	client shopify.Doer
	logger *zap.Logger
}

// New creates a Store sending its operations through client.
func New(client shopify.Doer, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, logger: logger}
}

type nodes[T any] struct {
	Nodes []T `json:"nodes"`
}

// list pages through a connection found under root.
func list[T any](ctx context.Context, s *Store, root, query string, vars map[string]any) ([]T, error) {
	return shopify.Paginate(ctx, func(ctx context.Context, after *string) (shopify.Connection[T], error) {
		v := map[string]any{"after": after}
		for k, val := range vars {
			v[k] = val
		}
		var data map[string]shopify.Connection[T]
		if err := s.client.Do(ctx, root, query, v, &data); err != nil {
			return shopify.Connection[T]{}, err
		}
		return data[root], nil
	})
}

// get runs a point read. A null root decodes to a nil out.
func get[T any](ctx context.Context, s *Store, root, query string, vars map[string]any) (*T, error) {
	var data map[string]*T
	if err := s.client.Do(ctx, root, query, vars, &data); err != nil {
		return nil, err
	}
	return data[root], nil
}

// mutate runs a mutation, turns userErrors into a ValidationConflictError and
// decodes the payload under root into out.
func (s *Store) mutate(ctx context.Context, root, query string, vars map[string]any, input any, out any) error {
	var data map[string]json.RawMessage
	if err := s.client.Do(ctx, root, query, vars, &data); err != nil {
		return err
	}
	raw, ok := data[root]
	if !ok {
		return fmt.Errorf("%s: empty response", root)
	}

	var payload struct {
		UserErrors []store.UserError `json:"userErrors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to decode %s: %w", root, err)
	}
	if err := store.CheckUserErrors(root, input, payload.UserErrors); err != nil {
		s.logger.Debug("Mutation rejected", zap.String("operation", root), zap.Error(err))
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", root, err)
	}
	return nil
}

type imageNode struct {
	URL string `json:"url"`
}

type previewNode struct {
	Image *imageNode `json:"image"`
}

func (p *previewNode) url() string {
	if p == nil || p.Image == nil {
		return ""
	}
	return p.Image.URL
}

type fileNode struct {
	ID      string       `json:"id"`
	Alt     *string      `json:"alt"`
	Preview *previewNode `json:"preview"`
}

func (f fileNode) model() models.File {
	return models.File{ID: f.ID, Alt: f.Alt, URL: f.Preview.url()}
}

type pageNode struct {
	models.Page
	Metafields nodes[models.Attribute] `json:"metafields"`
}

func (p pageNode) model() models.Page {
	page := p.Page
	page.Attributes = p.Metafields.Nodes
	return page
}

type mediaNode struct {
	ID               string       `json:"id"`
	Alt              *string      `json:"alt"`
	MediaContentType string       `json:"mediaContentType"`
	Preview          *previewNode `json:"preview"`
}

type variantNode struct {
	models.Variant
	Image         *imageNode `json:"image"`
	InventoryItem struct {
		models.InventoryItem
		UnitCost *struct {
			Amount string `json:"amount"`
		} `json:"unitCost"`
	} `json:"inventoryItem"`
	Metafields nodes[models.Attribute] `json:"metafields"`
}

func (v variantNode) model() models.Variant {
	variant := v.Variant
	variant.InventoryItem = v.InventoryItem.InventoryItem
	if v.InventoryItem.UnitCost != nil {
		variant.InventoryItem.UnitCost = &v.InventoryItem.UnitCost.Amount
	}
	if v.Image != nil {
		variant.ImageURL = &v.Image.URL
	}
	variant.Attributes = v.Metafields.Nodes
	return variant
}

type productNode struct {
	models.Product
	Collections nodes[models.Collection] `json:"collections"`
	Media       nodes[mediaNode]         `json:"media"`
	Metafields  nodes[models.Attribute]  `json:"metafields"`
	Variants    nodes[variantNode]       `json:"variants"`
}

func (p *productNode) model() *models.Product {
	if p == nil {
		return nil
	}
	product := p.Product
	product.Collections = p.Collections.Nodes
	product.Attributes = p.Metafields.Nodes
	product.Media = make([]models.Media, 0, len(p.Media.Nodes))
	for _, m := range p.Media.Nodes {
		product.Media = append(product.Media, models.Media{
			ID:               m.ID,
			Alt:              m.Alt,
			MediaContentType: m.MediaContentType,
			URL:              m.Preview.url(),
		})
	}
	product.Variants = make([]models.Variant, 0, len(p.Variants.Nodes))
	for _, v := range p.Variants.Nodes {
		product.Variants = append(product.Variants, v.model())
	}
	return &product
}
