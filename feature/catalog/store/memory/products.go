package memory

import (
	"context"
	"slices"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

func (s *Store) hydrate(p models.Product) models.Product {
	p.Attributes = slices.Clone(s.attributes[p.ID])
	variants := slices.Clone(p.Variants)
	for i := range variants {
		variants[i].Attributes = slices.Clone(s.attributes[variants[i].ID])
	}
	p.Variants = variants

	collections := make([]models.Collection, 0, len(p.Collections))
	for _, c := range p.Collections {
		if current, ok := s.collections[c.ID]; ok {
			collections = append(collections, current)
		}
	}
	p.Collections = collections
	return p
}

func (s *Store) GetProduct(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[id]; ok {
		p = s.hydrate(p)
		return &p, nil
	}
	return nil, nil
}

func (s *Store) GetProductByHandle(_ context.Context, handle string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Handle == handle {
			p = s.hydrate(p)
			return &p, nil
		}
	}
	return nil, nil
}

func (s *Store) joinCollections(op string, payload any, current []models.Collection, ids []string) ([]models.Collection, error) {
	out := slices.Clone(current)
	for _, id := range ids {
		c, ok := s.collections[id]
		if !ok {
			return nil, conflict(op, payload, "collectionsToJoin", "collection %s does not exist", id)
		}
		if !slices.ContainsFunc(out, func(x models.Collection) bool { return x.ID == id }) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) CreateProduct(_ context.Context, in models.ProductCreate, media []models.MediaInput) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "productCreate"

	for _, p := range s.products {
		if p.Handle == in.Handle {
			return nil, conflict(op, in, "handle", "handle %s is already taken", in.Handle)
		}
	}
	collections, err := s.joinCollections(op, in, nil, in.CollectionsToJoin)
	if err != nil {
		return nil, err
	}

	p := models.Product{
		ID:                     s.gid("Product"),
		Handle:                 in.Handle,
		Title:                  in.Title,
		DescriptionHTML:        in.DescriptionHTML,
		IsGiftCard:             in.GiftCard,
		Collections:            collections,
		ProductType:            in.ProductType,
		RequiresSellingPlan:    in.RequiresSellingPlan,
		Status:                 in.Status,
		Tags:                   slices.Clone(in.Tags),
		TemplateSuffix:         in.TemplateSuffix,
		GiftCardTemplateSuffix: in.GiftCardTemplateSuffix,
		Vendor:                 in.Vendor,
	}
	if p.Status == "" {
		p.Status = "ACTIVE"
	}
	if in.Category != nil {
		p.Category = &models.Category{ID: *in.Category}
	}
	if in.SEO != nil {
		p.SEO = *in.SEO
	}
	for _, o := range in.ProductOptions {
		opt := models.ProductOption{Name: o.Name, Position: o.Position}
		for _, v := range o.Values {
			opt.Values = append(opt.Values, v.Name)
		}
		p.Options = append(p.Options, opt)
	}
	for _, m := range media {
		p.Media = append(p.Media, models.Media{
			ID:               s.gid("MediaImage"),
			Alt:              m.Alt,
			MediaContentType: m.MediaContentType,
			URL:              m.OriginalSource,
		})
	}

	s.products[p.ID] = p
	s.record("CreateProduct", p.Handle)
	p = s.hydrate(p)
	return &p, nil
}

func (s *Store) UpdateProduct(_ context.Context, in models.ProductUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "productUpdate"

	p, ok := s.products[in.ID]
	if !ok {
		return nil, conflict(op, in, "id", "product %s does not exist", in.ID)
	}
	collections, err := s.joinCollections(op, in, p.Collections, in.CollectionsToJoin)
	if err != nil {
		return nil, err
	}
	p.Collections = slices.DeleteFunc(collections, func(c models.Collection) bool {
		return slices.Contains(in.CollectionsToLeave, c.ID)
	})

	if len(in.Category) > 0 {
		if string(in.Category) == "null" {
			p.Category = nil
		} else {
			p.Category = &models.Category{ID: string(in.Category[1 : len(in.Category)-1])}
		}
	}
	set(&p.Title, in.Title)
	set(&p.DescriptionHTML, in.DescriptionHTML)
	set(&p.ProductType, in.ProductType)
	set(&p.RequiresSellingPlan, in.RequiresSellingPlan)
	set(&p.Status, in.Status)
	set(&p.Vendor, in.Vendor)
	if in.SEO != nil {
		p.SEO = *in.SEO
	}
	if in.Tags != nil {
		p.Tags = slices.Clone(in.Tags)
	}
	if in.TemplateSuffix != nil {
		p.TemplateSuffix = in.TemplateSuffix
	}
	if in.GiftCardTemplateSuffix != nil {
		p.GiftCardTemplateSuffix = in.GiftCardTemplateSuffix
	}

	s.products[p.ID] = p
	s.record("UpdateProduct", p.Handle)
	p = s.hydrate(p)
	return &p, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *Store) mediaURL(p models.Product, mediaID *string) *string {
	if mediaID == nil {
		return nil
	}
	for _, m := range p.Media {
		if m.ID == *mediaID {
			return utils.Ptr(m.URL)
		}
	}
	if f, ok := s.files[*mediaID]; ok {
		return utils.Ptr(f.URL)
	}
	return nil
}

func applyVariant(v *models.Variant, in models.VariantInput) {
	if in.Barcode != nil {
		v.Barcode = in.Barcode
	}
	if in.CompareAtPrice != nil {
		v.CompareAtPrice = in.CompareAtPrice
	}
	set(&v.InventoryPolicy, in.InventoryPolicy)
	set(&v.Price, in.Price)
	set(&v.Taxable, in.Taxable)
	if in.TaxCode != nil {
		v.TaxCode = in.TaxCode
	}
	set(&v.RequiresComponents, in.RequiresComponents)
	if len(in.OptionValues) > 0 {
		v.SelectedOptions = nil
		for _, ov := range in.OptionValues {
			v.SelectedOptions = append(v.SelectedOptions, models.SelectedOption{Name: ov.OptionName, Value: ov.Name})
		}
	}
	if ii := in.InventoryItem; ii != nil {
		v.InventoryItem = models.InventoryItem{
			SKU:                  ii.SKU,
			Tracked:              ii.Tracked,
			RequiresShipping:     ii.RequiresShipping,
			UnitCost:             ii.Cost,
			CountryCodeOfOrigin:  ii.CountryCodeOfOrigin,
			HarmonizedSystemCode: ii.HarmonizedSystemCode,
			ProvinceCodeOfOrigin: ii.ProvinceCodeOfOrigin,
		}
	}
}

func variantTitle(v models.Variant) string {
	if len(v.SelectedOptions) == 0 {
		return "Default Title"
	}
	title := v.SelectedOptions[0].Value
	for _, o := range v.SelectedOptions[1:] {
		title += " / " + o.Value
	}
	return title
}

func (s *Store) CreateVariants(_ context.Context, productID string, in []models.VariantInput) ([]models.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "productVariantsBulkCreate"

	p, ok := s.products[productID]
	if !ok {
		return nil, conflict(op, in, "productId", "product %s does not exist", productID)
	}
	if len(p.Variants)+len(in) > models.MaxVariants {
		return nil, conflict(op, in, "variants", "a product can have at most %d variants", models.MaxVariants)
	}

	variants := slices.Clone(p.Variants)
	out := make([]models.Variant, 0, len(in))
	for _, vi := range in {
		v := models.Variant{ID: s.gid("ProductVariant")}
		applyVariant(&v, vi)
		v.Title = variantTitle(v)
		v.ImageURL = s.mediaURL(p, vi.MediaID)
		if slices.ContainsFunc(variants, func(x models.Variant) bool { return x.Title == v.Title }) {
			return nil, conflict(op, vi, "variants.optionValues", "variant %s already exists", v.Title)
		}
		variants = append(variants, v)
		s.variantOwners[v.ID] = p.ID
		out = append(out, v)
		s.record("CreateVariant", p.Handle+" "+v.Title)
	}
	p.Variants = variants
	s.products[p.ID] = p
	return out, nil
}

func (s *Store) UpdateVariants(_ context.Context, productID string, in []models.VariantInput) ([]models.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "productVariantsBulkUpdate"

	p, ok := s.products[productID]
	if !ok {
		return nil, conflict(op, in, "productId", "product %s does not exist", productID)
	}
	variants := slices.Clone(p.Variants)
	out := make([]models.Variant, 0, len(in))
	for _, vi := range in {
		i := slices.IndexFunc(variants, func(x models.Variant) bool { return vi.ID != nil && x.ID == *vi.ID })
		if i < 0 {
			return nil, conflict(op, vi, "variants.id", "variant %s does not exist", utils.Deref(vi.ID))
		}
		applyVariant(&variants[i], vi)
		if vi.MediaID != nil {
			variants[i].ImageURL = s.mediaURL(p, vi.MediaID)
		}
		out = append(out, variants[i])
		s.record("UpdateVariant", p.Handle+" "+variants[i].Title)
	}
	p.Variants = variants
	s.products[p.ID] = p
	return out, nil
}
