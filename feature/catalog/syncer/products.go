package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// SyncProducts syncs the products with the given handles.
func (s *Syncer) SyncProducts(ctx context.Context, handles []string) reconcile.Summary {
	return reconcile.Each(ctx, s.runner, KindProduct, handles, func(h string) string { return h },
		func(ctx context.Context, handle string) (reconcile.Outcome, error) {
			return s.SyncProduct(ctx, handle)
		})
}

// SyncProduct creates the product with handle at target, or brings the
// existing one and its variants up to date.
func (s *Syncer) SyncProduct(ctx context.Context, handle string) (reconcile.Outcome, error) {
	src, err := s.sourceProductByHandle(ctx, handle)
	if err != nil {
		return reconcile.Failed, err
	}
	tgt, err := s.target.GetProductByHandle(ctx, handle)
	if err != nil {
		return reconcile.Failed, err
	}
	if tgt == nil {
		if err := s.createProduct(ctx, *src); err != nil {
			return reconcile.Failed, err
		}
		return reconcile.Created, nil
	}
	return s.updateProduct(ctx, *src, *tgt)
}

// targetCollectionIDs maps source collections to target ids by handle,
// dropping the ones missing at target.
func (s *Syncer) targetCollectionIDs(ctx context.Context, collections []models.Collection) ([]string, error) {
	ids := make([]string, 0, len(collections))
	for _, c := range collections {
		tgt, err := s.target.GetCollectionByHandle(ctx, c.Handle)
		if err != nil {
			return nil, err
		}
		if tgt == nil {
			s.logger.Warn("Collection missing at target", zap.String("handle", c.Handle))
			continue
		}
		ids = append(ids, tgt.ID)
	}
	return ids, nil
}

func (s *Syncer) productMedia(ctx context.Context, src models.Product) ([]models.MediaInput, error) {
	media := make([]models.MediaInput, 0, len(src.Media))
	for _, m := range src.Media {
		f, err := s.target.GetFileByName(ctx, m.Name())
		if err != nil {
			return nil, err
		}
		if f == nil {
			s.logger.Warn("Product media missing at target",
				zap.String("product", src.Handle),
				zap.String("name", m.Name()))
			continue
		}
		media = append(media, models.MediaInput{
			Alt:              m.Alt,
			MediaContentType: m.MediaContentType,
			OriginalSource:   f.URL,
		})
	}
	return media, nil
}

// variantMediaID finds the target product media showing the variant image.
func variantMediaID(sv models.Variant, tgt models.Product) *string {
	if sv.ImageURL == nil {
		return nil
	}
	name := models.FileName(*sv.ImageURL)
	for _, m := range tgt.Media {
		if m.Name() == name {
			return utils.Ptr(m.ID)
		}
	}
	return nil
}

func variantCreate(sv models.Variant, tgt models.Product) models.VariantInput {
	in := models.VariantInput{
		Barcode:            sv.Barcode,
		CompareAtPrice:     sv.CompareAtPrice,
		InventoryPolicy:    utils.Ptr(sv.InventoryPolicy),
		Price:              utils.Ptr(sv.Price),
		Taxable:            utils.Ptr(sv.Taxable),
		TaxCode:            sv.TaxCode,
		RequiresComponents: utils.Ptr(sv.RequiresComponents),
		InventoryItem: &models.InventoryItemInput{
			SKU:                  sv.InventoryItem.SKU,
			Tracked:              sv.InventoryItem.Tracked,
			RequiresShipping:     sv.InventoryItem.RequiresShipping,
			Cost:                 sv.InventoryItem.UnitCost,
			CountryCodeOfOrigin:  sv.InventoryItem.CountryCodeOfOrigin,
			HarmonizedSystemCode: sv.InventoryItem.HarmonizedSystemCode,
			ProvinceCodeOfOrigin: sv.InventoryItem.ProvinceCodeOfOrigin,
		},
		MediaID: variantMediaID(sv, tgt),
	}
	for _, o := range sv.SelectedOptions {
		in.OptionValues = append(in.OptionValues, models.VariantOptionValueInput{OptionName: o.Name, Name: o.Value})
	}
	return in
}

func (s *Syncer) createVariants(ctx context.Context, productID string, in []models.VariantInput) error {
	_, err := reconcile.ApplyChunked(ctx, in, models.MaxVariants,
		func(ctx context.Context, chunk []models.VariantInput) ([]models.Variant, error) {
			return s.target.CreateVariants(ctx, productID, chunk)
		})
	if err != nil {
		return fmt.Errorf("failed to create variants: %w", err)
	}
	return nil
}

func (s *Syncer) createProduct(ctx context.Context, src models.Product) error {
	collections, err := s.targetCollectionIDs(ctx, src.Collections)
	if err != nil {
		return err
	}
	media, err := s.productMedia(ctx, src)
	if err != nil {
		return err
	}

	in := models.ProductCreate{
		Handle:                 src.Handle,
		Title:                  src.Title,
		DescriptionHTML:        src.DescriptionHTML,
		GiftCard:               src.IsGiftCard,
		CollectionsToJoin:      collections,
		ProductType:            src.ProductType,
		RequiresSellingPlan:    src.RequiresSellingPlan,
		Status:                 src.Status,
		Tags:                   src.Tags,
		TemplateSuffix:         src.TemplateSuffix,
		GiftCardTemplateSuffix: src.GiftCardTemplateSuffix,
		Vendor:                 src.Vendor,
	}
	if src.Category != nil {
		in.Category = utils.Ptr(src.Category.ID)
	}
	if src.SEO.Title != nil || src.SEO.Description != nil {
		in.SEO = utils.Ptr(src.SEO)
	}
	for _, o := range src.Options {
		opt := models.ProductOptionInput{Name: o.Name, Position: o.Position}
		for _, v := range o.Values {
			opt.Values = append(opt.Values, models.OptionValueInput{Name: v})
		}
		in.ProductOptions = append(in.ProductOptions, opt)
	}

	created, err := s.target.CreateProduct(ctx, in, media)
	if err != nil {
		return err
	}
	s.logger.Info("Product created", zap.String("handle", src.Handle), zap.String("id", created.ID))

	variants := make([]models.VariantInput, 0, len(src.Variants))
	for _, sv := range src.Variants {
		variants = append(variants, variantCreate(sv, *created))
	}
	return s.createVariants(ctx, created.ID, variants)
}

func sameTags(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}

func categoryID(c *models.Category) string {
	if c == nil {
		return ""
	}
	return c.ID
}

// diffProduct returns the partial update for tgt, or nil when it matches src.
func (s *Syncer) diffProduct(ctx context.Context, src, tgt models.Product) (*models.ProductUpdate, error) {
	upd := models.ProductUpdate{ID: tgt.ID}

	if categoryID(src.Category) != categoryID(tgt.Category) {
		upd.Category = json.RawMessage("null")
		if src.Category != nil {
			raw, err := json.Marshal(src.Category.ID)
			if err != nil {
				return nil, err
			}
			upd.Category = raw
		}
	}
	if src.Title != tgt.Title {
		upd.Title = utils.Ptr(src.Title)
	}
	if src.DescriptionHTML != tgt.DescriptionHTML {
		upd.DescriptionHTML = utils.Ptr(src.DescriptionHTML)
	}

	want, err := s.targetCollectionIDs(ctx, src.Collections)
	if err != nil {
		return nil, err
	}
	have := make([]string, 0, len(tgt.Collections))
	for _, c := range tgt.Collections {
		have = append(have, c.ID)
	}
	for _, id := range want {
		if !slices.Contains(have, id) {
			upd.CollectionsToJoin = append(upd.CollectionsToJoin, id)
		}
	}
	for _, id := range have {
		if !slices.Contains(want, id) {
			upd.CollectionsToLeave = append(upd.CollectionsToLeave, id)
		}
	}

	if src.ProductType != tgt.ProductType {
		upd.ProductType = utils.Ptr(src.ProductType)
	}
	if src.RequiresSellingPlan != tgt.RequiresSellingPlan {
		upd.RequiresSellingPlan = utils.Ptr(src.RequiresSellingPlan)
	}
	if !utils.EqualPtr(src.SEO.Title, tgt.SEO.Title) || !utils.EqualPtr(src.SEO.Description, tgt.SEO.Description) {
		upd.SEO = utils.Ptr(src.SEO)
	}
	if src.Status != tgt.Status {
		upd.Status = utils.Ptr(src.Status)
	}
	if !sameTags(src.Tags, tgt.Tags) {
		upd.Tags = slices.Clone(src.Tags)
		if upd.Tags == nil {
			upd.Tags = []string{}
		}
	}
	if utils.Deref(src.TemplateSuffix) != utils.Deref(tgt.TemplateSuffix) {
		upd.TemplateSuffix = utils.Ptr(utils.Deref(src.TemplateSuffix))
	}
	if utils.Deref(src.GiftCardTemplateSuffix) != utils.Deref(tgt.GiftCardTemplateSuffix) {
		upd.GiftCardTemplateSuffix = utils.Ptr(utils.Deref(src.GiftCardTemplateSuffix))
	}
	if src.Vendor != tgt.Vendor {
		upd.Vendor = utils.Ptr(src.Vendor)
	}

	if upd.IsEmpty() {
		return nil, nil
	}
	return &upd, nil
}

// diffVariant patches the scalar members of a paired variant. Option values,
// inventory and media are only written on create.
func diffVariant(sv, tv models.Variant) *models.VariantInput {
	in := models.VariantInput{}
	if utils.Deref(sv.Barcode) != utils.Deref(tv.Barcode) {
		in.Barcode = utils.Ptr(utils.Deref(sv.Barcode))
	}
	// the target cannot clear a compare-at price through a partial update
	if sv.CompareAtPrice != nil && !utils.EqualPtr(sv.CompareAtPrice, tv.CompareAtPrice) {
		in.CompareAtPrice = sv.CompareAtPrice
	}
	if sv.InventoryPolicy != tv.InventoryPolicy {
		in.InventoryPolicy = utils.Ptr(sv.InventoryPolicy)
	}
	if sv.Price != tv.Price {
		in.Price = utils.Ptr(sv.Price)
	}
	if sv.Taxable != tv.Taxable {
		in.Taxable = utils.Ptr(sv.Taxable)
	}
	if sv.TaxCode != nil && !utils.EqualPtr(sv.TaxCode, tv.TaxCode) {
		in.TaxCode = sv.TaxCode
	}
	if sv.RequiresComponents != tv.RequiresComponents {
		in.RequiresComponents = utils.Ptr(sv.RequiresComponents)
	}
	if in.IsPatchEmpty() {
		return nil
	}
	in.ID = utils.Ptr(tv.ID)
	return &in
}

func (s *Syncer) updateProduct(ctx context.Context, src, tgt models.Product) (reconcile.Outcome, error) {
	upd, err := s.diffProduct(ctx, src, tgt)
	if err != nil {
		return reconcile.Failed, err
	}

	var updates, creates []models.VariantInput
	for _, sv := range src.Variants {
		tv, ok := tgt.Variant(sv.Title)
		if !ok {
			creates = append(creates, variantCreate(sv, tgt))
			continue
		}
		if patch := diffVariant(sv, tv); patch != nil {
			updates = append(updates, *patch)
		}
	}

	if room := models.MaxVariants - len(tgt.Variants); len(creates) > room {
		s.logger.Warn("Product variant limit reached",
			zap.String("product", src.Handle),
			zap.Int("existing", len(tgt.Variants)),
			zap.Int("skipped", len(creates)-max(room, 0)))
		creates = creates[:max(room, 0)]
	}

	if upd == nil && len(updates) == 0 && len(creates) == 0 {
		return reconcile.Unchanged, nil
	}

	if upd != nil {
		if _, err := s.target.UpdateProduct(ctx, *upd); err != nil {
			return reconcile.Failed, err
		}
	}
	if err := s.createVariants(ctx, tgt.ID, creates); err != nil {
		return reconcile.Failed, err
	}
	if len(updates) > 0 {
		if _, err := s.target.UpdateVariants(ctx, tgt.ID, updates); err != nil {
			return reconcile.Failed, fmt.Errorf("failed to update variants: %w", err)
		}
	}
	s.logger.Info("Product updated",
		zap.String("handle", src.Handle),
		zap.Bool("product", upd != nil),
		zap.Int("variants_created", len(creates)),
		zap.Int("variants_updated", len(updates)))
	return reconcile.Updated, nil
}
