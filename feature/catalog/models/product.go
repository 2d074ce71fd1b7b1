package models

import "encoding/json"

// MaxVariants is the number of variants a product may carry in one bulk write.
const MaxVariants = 100

// Media is a file attached to a product.
type Media struct {
	ID               string  `json:"id"`
	Alt              *string `json:"alt"`
	MediaContentType string  `json:"mediaContentType"`
	URL              string  `json:"url"`
}

// Name returns the cross-system file name of the media preview.
func (m Media) Name() string {
	return FileName(m.URL)
}

// Category is a node of the standard product taxonomy.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SEO holds search engine overrides.
type SEO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// ProductOption is a named axis of variation.
type ProductOption struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// SelectedOption is a variant's value on one option axis.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// InventoryItem carries the shipping and customs data of a variant.
type InventoryItem struct {
	SKU                  *string `json:"sku"`
	Tracked              bool    `json:"tracked"`
	RequiresShipping     bool    `json:"requiresShipping"`
	UnitCost             *string `json:"unitCost"`
	CountryCodeOfOrigin  *string `json:"countryCodeOfOrigin"`
	HarmonizedSystemCode *string `json:"harmonizedSystemCode"`
	ProvinceCodeOfOrigin *string `json:"provinceCodeOfOrigin"`
}

// Variant is a purchasable version of a product, matched within a product by Title.
type Variant struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Barcode            *string          `json:"barcode"`
	CompareAtPrice     *string          `json:"compareAtPrice"`
	InventoryPolicy    string           `json:"inventoryPolicy"`
	Price              string           `json:"price"`
	Taxable            bool             `json:"taxable"`
	TaxCode            *string          `json:"taxCode"`
	RequiresComponents bool             `json:"requiresComponents"`
	SelectedOptions    []SelectedOption `json:"selectedOptions"`
	InventoryItem      InventoryItem    `json:"inventoryItem"`
	ImageURL           *string          `json:"imageUrl"`
	Attributes         []Attribute      `json:"metafields"`
}

// Product is a catalog item, keyed across stores by Handle.
type Product struct {
	ID                     string          `json:"id"`
	Handle                 string          `json:"handle"`
	Title                  string          `json:"title"`
	DescriptionHTML        string          `json:"descriptionHtml"`
	IsGiftCard             bool            `json:"isGiftCard"`
	Category               *Category       `json:"category"`
	Collections            []Collection    `json:"collections"`
	Media                  []Media         `json:"media"`
	Options                []ProductOption `json:"options"`
	ProductType            string          `json:"productType"`
	RequiresSellingPlan    bool            `json:"requiresSellingPlan"`
	SEO                    SEO             `json:"seo"`
	Status                 string          `json:"status"`
	Tags                   []string        `json:"tags"`
	TemplateSuffix         *string         `json:"templateSuffix"`
	GiftCardTemplateSuffix *string         `json:"giftCardTemplateSuffix"`
	Vendor                 string          `json:"vendor"`
	Variants               []Variant       `json:"variants"`
	Attributes             []Attribute     `json:"metafields"`
}

// Variant returns the variant with the given title.
func (p Product) Variant(title string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Title == title {
			return v, true
		}
	}
	return Variant{}, false
}

// ProductUpdate is a partial product update. Category is raw so that a
// JSON null can clear it; an empty Category is omitted.
type ProductUpdate struct {
	ID                     string          `json:"id"`
	Category               json.RawMessage `json:"category,omitempty"`
	Title                  *string         `json:"title,omitempty"`
	DescriptionHTML        *string         `json:"descriptionHtml,omitempty"`
	CollectionsToJoin      []string        `json:"collectionsToJoin,omitempty"`
	CollectionsToLeave     []string        `json:"collectionsToLeave,omitempty"`
	ProductType            *string         `json:"productType,omitempty"`
	RequiresSellingPlan    *bool           `json:"requiresSellingPlan,omitempty"`
	SEO                    *SEO            `json:"seo,omitempty"`
	Status                 *string         `json:"status,omitempty"`
	Tags                   []string        `json:"tags,omitempty"`
	TemplateSuffix         *string         `json:"templateSuffix,omitempty"`
	GiftCardTemplateSuffix *string         `json:"giftCardTemplateSuffix,omitempty"`
	Vendor                 *string         `json:"vendor,omitempty"`
}

// IsEmpty reports whether the update carries nothing besides the id.
func (u ProductUpdate) IsEmpty() bool {
	return len(u.Category) == 0 && u.Title == nil && u.DescriptionHTML == nil &&
		len(u.CollectionsToJoin) == 0 && len(u.CollectionsToLeave) == 0 &&
		u.ProductType == nil && u.RequiresSellingPlan == nil && u.SEO == nil &&
		u.Status == nil && u.Tags == nil && u.TemplateSuffix == nil &&
		u.GiftCardTemplateSuffix == nil && u.Vendor == nil
}

// OptionValueInput names one value of an option.
type OptionValueInput struct {
	Name string `json:"name"`
}

// ProductOptionInput declares an option axis on create.
type ProductOptionInput struct {
	Name     string             `json:"name"`
	Position int                `json:"position"`
	Values   []OptionValueInput `json:"values"`
}

// MediaInput attaches a file to a new product.
type MediaInput struct {
	Alt              *string `json:"alt,omitempty"`
	MediaContentType string  `json:"mediaContentType"`
	OriginalSource   string  `json:"originalSource"`
}

// ProductCreate is the payload for a new product.
type ProductCreate struct {
	Handle                 string               `json:"handle"`
	Title                  string               `json:"title"`
	DescriptionHTML        string               `json:"descriptionHtml"`
	GiftCard               bool                 `json:"giftCard"`
	Category               *string              `json:"category,omitempty"`
	CollectionsToJoin      []string             `json:"collectionsToJoin,omitempty"`
	ProductOptions         []ProductOptionInput `json:"productOptions,omitempty"`
	ProductType            string               `json:"productType"`
	RequiresSellingPlan    bool                 `json:"requiresSellingPlan"`
	SEO                    *SEO                 `json:"seo,omitempty"`
	Status                 string               `json:"status,omitempty"`
	Tags                   []string             `json:"tags"`
	TemplateSuffix         *string              `json:"templateSuffix,omitempty"`
	GiftCardTemplateSuffix *string              `json:"giftCardTemplateSuffix,omitempty"`
	Vendor                 string               `json:"vendor"`
}

// VariantOptionValueInput selects a value on one option axis.
type VariantOptionValueInput struct {
	OptionName string `json:"optionName"`
	Name       string `json:"name"`
}

// InventoryItemInput is the inventory part of a variant write.
type InventoryItemInput struct {
	SKU                  *string `json:"sku,omitempty"`
	Tracked              bool    `json:"tracked"`
	RequiresShipping     bool    `json:"requiresShipping"`
	Cost                 *string `json:"cost,omitempty"`
	CountryCodeOfOrigin  *string `json:"countryCodeOfOrigin,omitempty"`
	HarmonizedSystemCode *string `json:"harmonizedSystemCode,omitempty"`
	ProvinceCodeOfOrigin *string `json:"provinceCodeOfOrigin,omitempty"`
}

// VariantInput creates a variant when ID is nil and patches it otherwise.
type VariantInput struct {
	ID                 *string                   `json:"id,omitempty"`
	Barcode            *string                   `json:"barcode,omitempty"`
	CompareAtPrice     *string                   `json:"compareAtPrice,omitempty"`
	InventoryPolicy    *string                   `json:"inventoryPolicy,omitempty"`
	Price              *string                   `json:"price,omitempty"`
	Taxable            *bool                     `json:"taxable,omitempty"`
	TaxCode            *string                   `json:"taxCode,omitempty"`
	RequiresComponents *bool                     `json:"requiresComponents,omitempty"`
	OptionValues       []VariantOptionValueInput `json:"optionValues,omitempty"`
	InventoryItem      *InventoryItemInput       `json:"inventoryItem,omitempty"`
	MediaID            *string                   `json:"mediaId,omitempty"`
}

// IsPatchEmpty reports whether an update input changes nothing.
func (v VariantInput) IsPatchEmpty() bool {
	return v.Barcode == nil && v.CompareAtPrice == nil && v.InventoryPolicy == nil &&
		v.Price == nil && v.Taxable == nil && v.TaxCode == nil && v.RequiresComponents == nil &&
		len(v.OptionValues) == 0 && v.InventoryItem == nil && v.MediaID == nil
}
