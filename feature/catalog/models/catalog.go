package models

// Collection is a product grouping, keyed across stores by Handle.
type Collection struct {
	ID              string  `json:"id"`
	Handle          string  `json:"handle"`
	Title           string  `json:"title"`
	DescriptionHTML string  `json:"descriptionHtml"`
	TemplateSuffix  *string `json:"templateSuffix"`
}

// CollectionCreate is the payload for a new Collection.
type CollectionCreate struct {
	Handle          string  `json:"handle"`
	Title           string  `json:"title"`
	DescriptionHTML string  `json:"descriptionHtml"`
	TemplateSuffix  *string `json:"templateSuffix,omitempty"`
}

// Page is an online store page.
type Page struct {
	ID             string      `json:"id"`
	Handle         string      `json:"handle"`
	Title          string      `json:"title"`
	Body           string      `json:"body"`
	IsPublished    bool        `json:"isPublished"`
	TemplateSuffix *string     `json:"templateSuffix"`
	Attributes     []Attribute `json:"metafields"`
}

// PageCreate is the payload for a new Page.
type PageCreate struct {
	Handle         string  `json:"handle"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	IsPublished    bool    `json:"isPublished"`
	TemplateSuffix *string `json:"templateSuffix,omitempty"`
}

// CustomerAccountPage is a page of the customer account area. It can be the
// target of a menu item but is never written.
type CustomerAccountPage struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

// MenuItem is one node of a navigation tree.
type MenuItem struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Type       string     `json:"type"`
	ResourceID *string    `json:"resourceId"`
	URL        *string    `json:"url"`
	Tags       []string   `json:"tags"`
	Items      []MenuItem `json:"items"`
}

// Menu is a navigation tree, keyed across stores by Handle.
type Menu struct {
	ID        string     `json:"id"`
	Handle    string     `json:"handle"`
	Title     string     `json:"title"`
	IsDefault bool       `json:"isDefault"`
	Items     []MenuItem `json:"items"`
}

// MenuItemInput is a menu node in a mutation.
type MenuItemInput struct {
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	ResourceID *string         `json:"resourceId"`
	URL        *string         `json:"url,omitempty"`
	Tags       []string        `json:"tags"`
	Items      []MenuItemInput `json:"items"`
}

// MenuInput is the payload for creating or replacing a Menu.
type MenuInput struct {
	Handle string          `json:"handle"`
	Title  string          `json:"title"`
	Items  []MenuItemInput `json:"items"`
}
