package store

import (
	"context"

	"catalog-sync/feature/catalog/models"
)

// Point reads return (nil, nil) when the entity does not exist. Every write
// takes at most one chunk; splitting larger batches is up to the caller.

// DefinitionStore reads and writes Definitions.
type DefinitionStore interface {
	ListDefinitions(ctx context.Context) ([]models.Definition, error)
	GetDefinition(ctx context.Context, id string) (*models.Definition, error)
	CreateDefinition(ctx context.Context, in models.DefinitionCreate) (*models.Definition, error)
	UpdateDefinition(ctx context.Context, id string, in models.DefinitionUpdate) (*models.Definition, error)
	DeleteDefinition(ctx context.Context, id string) (string, error)
}

// InstanceStore reads and writes Instances.
type InstanceStore interface {
	ListInstances(ctx context.Context, typ string) ([]models.Instance, error)
	GetInstance(ctx context.Context, id string) (*models.Instance, error)
	GetInstanceByHandle(ctx context.Context, typ, handle string) (*models.Instance, error)
	CreateInstance(ctx context.Context, in models.InstanceCreate) (*models.Instance, error)
	UpdateInstance(ctx context.Context, id string, in models.InstanceUpdate) (*models.Instance, error)
	DeleteInstance(ctx context.Context, id string) (string, error)
	// BulkDeleteInstances starts an asynchronous deletion of every instance
	// of typ and returns the job id without waiting for it.
	BulkDeleteInstances(ctx context.Context, typ string) (string, error)
}

// AttributeStore reads and writes attribute definitions and attribute values.
type AttributeStore interface {
	ListAttributeDefinitions(ctx context.Context, ownerType string) ([]models.AttributeDefinition, error)
	CreateAttributeDefinition(ctx context.Context, in models.AttributeDefinitionCreate) (*models.AttributeDefinition, error)
	UpdateAttributeDefinition(ctx context.Context, in models.AttributeDefinitionUpdate) (*models.AttributeDefinition, error)
	DeleteAttributeDefinition(ctx context.Context, id string) (string, error)
	SetAttributes(ctx context.Context, in []models.AttributeInput) ([]models.Attribute, error)
	DeleteAttributes(ctx context.Context, in []models.AttributeIdentifier) error
}

// FileStore reads and creates files. Files are never updated.
type FileStore interface {
	ListFiles(ctx context.Context) ([]models.File, error)
	GetFile(ctx context.Context, id string) (*models.File, error)
	GetFileByName(ctx context.Context, name string) (*models.File, error)
	CreateFiles(ctx context.Context, in []models.FileCreate) ([]models.File, error)
}

// CatalogStore reads and writes collections, pages, menus and products.
type CatalogStore interface {
	ListCollections(ctx context.Context) ([]models.Collection, error)
	GetCollection(ctx context.Context, id string) (*models.Collection, error)
	GetCollectionByHandle(ctx context.Context, handle string) (*models.Collection, error)
	CreateCollection(ctx context.Context, in models.CollectionCreate) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id string) (string, error)

	ListPages(ctx context.Context) ([]models.Page, error)
	CreatePage(ctx context.Context, in models.PageCreate) (*models.Page, error)
	ListCustomerAccountPages(ctx context.Context) ([]models.CustomerAccountPage, error)

	ListMenus(ctx context.Context) ([]models.Menu, error)
	CreateMenu(ctx context.Context, in models.MenuInput) (*models.Menu, error)
	UpdateMenu(ctx context.Context, id string, in models.MenuInput) (*models.Menu, error)
	DeleteMenu(ctx context.Context, id string) (string, error)

	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductByHandle(ctx context.Context, handle string) (*models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductCreate, media []models.MediaInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, in models.ProductUpdate) (*models.Product, error)
	CreateVariants(ctx context.Context, productID string, in []models.VariantInput) ([]models.Variant, error)
	UpdateVariants(ctx context.Context, productID string, in []models.VariantInput) ([]models.Variant, error)
}

// Store is everything the sync engine needs from one side.
type Store interface {
	DefinitionStore
	InstanceStore
	AttributeStore
	FileStore
	CatalogStore
}
