package graphql

import (
	"context"

	"catalog-sync/feature/catalog/models"
)

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	n, err := get[productNode](ctx, s, "product", getProductQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	return n.model(), nil
}

func (s *Store) GetProductByHandle(ctx context.Context, handle string) (*models.Product, error) {
	n, err := get[productNode](ctx, s, "productByIdentifier", getProductByHandleQuery,
		map[string]any{"identifier": map[string]string{"handle": handle}})
	if err != nil {
		return nil, err
	}
	return n.model(), nil
}

func (s *Store) CreateProduct(ctx context.Context, in models.ProductCreate, media []models.MediaInput) (*models.Product, error) {
	var out struct {
		Product *productNode `json:"product"`
	}
	vars := map[string]any{"product": in}
	if len(media) > 0 {
		vars["media"] = media
	}
	if err := s.mutate(ctx, "productCreate", createProductMutation, vars, in, &out); err != nil {
		return nil, err
	}
	return out.Product.model(), nil
}

func (s *Store) UpdateProduct(ctx context.Context, in models.ProductUpdate) (*models.Product, error) {
	var out struct {
		Product *productNode `json:"product"`
	}
	if err := s.mutate(ctx, "productUpdate", updateProductMutation, map[string]any{"product": in}, in, &out); err != nil {
		return nil, err
	}
	return out.Product.model(), nil
}

func (s *Store) writeVariants(ctx context.Context, root, query, productID string, in []models.VariantInput) ([]models.Variant, error) {
	var out struct {
		ProductVariants []variantNode `json:"productVariants"`
	}
	if err := s.mutate(ctx, root, query, map[string]any{"productId": productID, "variants": in}, in, &out); err != nil {
		return nil, err
	}
	variants := make([]models.Variant, 0, len(out.ProductVariants))
	for _, v := range out.ProductVariants {
		variants = append(variants, v.model())
	}
	return variants, nil
}

func (s *Store) CreateVariants(ctx context.Context, productID string, in []models.VariantInput) ([]models.Variant, error) {
	return s.writeVariants(ctx, "productVariantsBulkCreate", createVariantsMutation, productID, in)
}

func (s *Store) UpdateVariants(ctx context.Context, productID string, in []models.VariantInput) ([]models.Variant, error) {
	return s.writeVariants(ctx, "productVariantsBulkUpdate", updateVariantsMutation, productID, in)
}
