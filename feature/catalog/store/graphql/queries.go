package graphql

const pageInfo = `pageInfo { hasNextPage endCursor }`

const userErrors = `userErrors { field message code }`

const attributeFields = `id namespace key type value`

// Definitions

const definitionFields = `
	id type name displayNameKey
	access { admin storefront }
	fieldDefinitions {
		key name description required
		type { name category }
		validations { name type value }
	}`

const listDefinitionsQuery = `query metaobjectDefinitions($after: String) {
	metaobjectDefinitions(first: 50, after: $after) { nodes {` + definitionFields + ` } ` + pageInfo + ` }
}`

const getDefinitionQuery = `query metaobjectDefinition($id: ID!) {
	metaobjectDefinition(id: $id) {` + definitionFields + ` }
}`

const createDefinitionMutation = `mutation metaobjectDefinitionCreate($definition: MetaobjectDefinitionCreateInput!) {
	metaobjectDefinitionCreate(definition: $definition) { metaobjectDefinition {` + definitionFields + ` } ` + userErrors + ` }
}`

const updateDefinitionMutation = `mutation metaobjectDefinitionUpdate($id: ID!, $definition: MetaobjectDefinitionUpdateInput!) {
	metaobjectDefinitionUpdate(id: $id, definition: $definition) { metaobjectDefinition {` + definitionFields + ` } ` + userErrors + ` }
}`

const deleteDefinitionMutation = `mutation metaobjectDefinitionDelete($id: ID!) {
	metaobjectDefinitionDelete(id: $id) { deletedId ` + userErrors + ` }
}`

// Instances

const instanceFields = `id handle type fields { key type value }`

const listInstancesQuery = `query metaobjects($type: String!, $after: String) {
	metaobjects(type: $type, first: 100, after: $after) { nodes { ` + instanceFields + ` } ` + pageInfo + ` }
}`

const getInstanceQuery = `query metaobject($id: ID!) {
	metaobject(id: $id) { ` + instanceFields + ` }
}`

const getInstanceByHandleQuery = `query metaobjectByHandle($handle: MetaobjectHandleInput!) {
	metaobjectByHandle(handle: $handle) { ` + instanceFields + ` }
}`

const createInstanceMutation = `mutation metaobjectCreate($metaobject: MetaobjectCreateInput!) {
	metaobjectCreate(metaobject: $metaobject) { metaobject { ` + instanceFields + ` } ` + userErrors + ` }
}`

const updateInstanceMutation = `mutation metaobjectUpdate($id: ID!, $metaobject: MetaobjectUpdateInput!) {
	metaobjectUpdate(id: $id, metaobject: $metaobject) { metaobject { ` + instanceFields + ` } ` + userErrors + ` }
}`

const deleteInstanceMutation = `mutation metaobjectDelete($id: ID!) {
	metaobjectDelete(id: $id) { deletedId ` + userErrors + ` }
}`

const bulkDeleteInstancesMutation = `mutation metaobjectBulkDelete($where: MetaobjectBulkDeleteWhereCondition!) {
	metaobjectBulkDelete(where: $where) { job { id } ` + userErrors + ` }
}`

// Attribute definitions and attributes

const attributeDefinitionFields = `
	id name namespace key ownerType pinnedPosition
	type { name category }
	access { admin storefront customerAccount }
	validations { name type value }`

const listAttributeDefinitionsQuery = `query metafieldDefinitions($ownerType: MetafieldOwnerType!, $after: String) {
	metafieldDefinitions(ownerType: $ownerType, first: 100, after: $after) { nodes {` + attributeDefinitionFields + ` } ` + pageInfo + ` }
}`

const createAttributeDefinitionMutation = `mutation metafieldDefinitionCreate($definition: MetafieldDefinitionInput!) {
	metafieldDefinitionCreate(definition: $definition) { createdDefinition {` + attributeDefinitionFields + ` } ` + userErrors + ` }
}`

const updateAttributeDefinitionMutation = `mutation metafieldDefinitionUpdate($definition: MetafieldDefinitionUpdateInput!) {
	metafieldDefinitionUpdate(definition: $definition) { updatedDefinition {` + attributeDefinitionFields + ` } ` + userErrors + ` }
}`

const deleteAttributeDefinitionMutation = `mutation metafieldDefinitionDelete($id: ID!) {
	metafieldDefinitionDelete(id: $id, deleteAllAssociatedMetafields: true) { deletedDefinitionId ` + userErrors + ` }
}`

const setAttributesMutation = `mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
	metafieldsSet(metafields: $metafields) { metafields { ` + attributeFields + ` } ` + userErrors + ` }
}`

const deleteAttributesMutation = `mutation metafieldsDelete($metafields: [MetafieldIdentifierInput!]!) {
	metafieldsDelete(metafields: $metafields) { deletedMetafields { ownerId namespace key } ` + userErrors + ` }
}`

// Files

const fileFields = `id alt preview { image { url } }`

const listFilesQuery = `query files($after: String, $query: String) {
	files(first: 100, after: $after, query: $query) { nodes { ` + fileFields + ` } ` + pageInfo + ` }
}`

const getFileQuery = `query node($id: ID!) {
	node(id: $id) { ... on File { ` + fileFields + ` } }
}`

const createFilesMutation = `mutation fileCreate($files: [FileCreateInput!]!) {
	fileCreate(files: $files) { files { ` + fileFields + ` } ` + userErrors + ` }
}`

// Collections, pages and menus

const collectionFields = `id handle title descriptionHtml templateSuffix`

const listCollectionsQuery = `query collections($after: String) {
	collections(first: 100, after: $after) { nodes { ` + collectionFields + ` } ` + pageInfo + ` }
}`

const getCollectionQuery = `query collection($id: ID!) {
	collection(id: $id) { ` + collectionFields + ` }
}`

const getCollectionByHandleQuery = `query collectionByHandle($handle: String!) {
	collectionByHandle(handle: $handle) { ` + collectionFields + ` }
}`

const createCollectionMutation = `mutation collectionCreate($input: CollectionInput!) {
	collectionCreate(input: $input) { collection { ` + collectionFields + ` } ` + userErrors + ` }
}`

const deleteCollectionMutation = `mutation collectionDelete($input: CollectionDeleteInput!) {
	collectionDelete(input: $input) { deletedCollectionId ` + userErrors + ` }
}`

const pageFields = `id handle title body isPublished templateSuffix metafields(first: 250) { nodes { ` + attributeFields + ` } }`

const listPagesQuery = `query pages($after: String) {
	pages(first: 100, after: $after) { nodes { ` + pageFields + ` } ` + pageInfo + ` }
}`

const createPageMutation = `mutation pageCreate($page: PageCreateInput!) {
	pageCreate(page: $page) { page { ` + pageFields + ` } ` + userErrors + ` }
}`

const listCustomerAccountPagesQuery = `query customerAccountPages($after: String) {
	customerAccountPages(first: 100, after: $after) { nodes { id handle title } ` + pageInfo + ` }
}`

const menuItemFields = `id title type resourceId url tags`

const menuFields = `id handle title isDefault
	items { ` + menuItemFields + ` items { ` + menuItemFields + ` items { ` + menuItemFields + ` } } }`

const listMenusQuery = `query menus($after: String) {
	menus(first: 100, after: $after) { nodes { ` + menuFields + ` } ` + pageInfo + ` }
}`

const createMenuMutation = `mutation menuCreate($title: String!, $handle: String!, $items: [MenuItemCreateInput!]!) {
	menuCreate(title: $title, handle: $handle, items: $items) { menu { ` + menuFields + ` } ` + userErrors + ` }
}`

const updateMenuMutation = `mutation menuUpdate($id: ID!, $title: String!, $handle: String, $items: [MenuItemUpdateInput!]!) {
	menuUpdate(id: $id, title: $title, handle: $handle, items: $items) { menu { ` + menuFields + ` } ` + userErrors + ` }
}`

const deleteMenuMutation = `mutation menuDelete($id: ID!) {
	menuDelete(id: $id) { deletedMenuId ` + userErrors + ` }
}`

// Products

const variantFields = `
	id title barcode compareAtPrice inventoryPolicy price taxable taxCode requiresComponents
	selectedOptions { name value }
	image { url }
	inventoryItem {
		sku tracked requiresShipping unitCost { amount }
		countryCodeOfOrigin harmonizedSystemCode provinceCodeOfOrigin
	}
	metafields(first: 250) { nodes { ` + attributeFields + ` } }`

const productFields = `
	id handle title descriptionHtml isGiftCard
	category { id name }
	collections(first: 250) { nodes { id handle } }
	media(first: 250) { nodes { id alt mediaContentType preview { image { url } } } }
	options { name position values }
	productType requiresSellingPlan
	seo { title description }
	status tags templateSuffix giftCardTemplateSuffix vendor
	metafields(first: 250) { nodes { ` + attributeFields + ` } }
	variants(first: 250) { nodes {` + variantFields + ` } }`

const getProductQuery = `query product($id: ID!) {
	product(id: $id) {` + productFields + ` }
}`

const getProductByHandleQuery = `query productByIdentifier($identifier: ProductIdentifierInput!) {
	productByIdentifier(identifier: $identifier) {` + productFields + ` }
}`

const createProductMutation = `mutation productCreate($product: ProductCreateInput!, $media: [CreateMediaInput!]) {
	productCreate(product: $product, media: $media) { product {` + productFields + ` } ` + userErrors + ` }
}`

const updateProductMutation = `mutation productUpdate($product: ProductUpdateInput!) {
	productUpdate(product: $product) { product {` + productFields + ` } ` + userErrors + ` }
}`

const createVariantsMutation = `mutation productVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
	productVariantsBulkCreate(productId: $productId, variants: $variants, strategy: REMOVE_STANDALONE_VARIANT) { productVariants {` + variantFields + ` } ` + userErrors + ` }
}`

const updateVariantsMutation = `mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
	productVariantsBulkUpdate(productId: $productId, variants: $variants) { productVariants {` + variantFields + ` } ` + userErrors + ` }
}`
