package syncer

// FieldKind classifies a field by how its value refers to other entities.
type FieldKind int

const (
	Scalar FieldKind = iota
	SingleReference
	ListReference
	FileRef
	ListFileRef
	ProductRef
	ListProductRef
	CollectionRef
	ListCollectionRef
)

var fieldKinds = map[string]FieldKind{
	"metaobject_reference":      SingleReference,
	"list.metaobject_reference": ListReference,
	"file_reference":            FileRef,
	"list.file_reference":       ListFileRef,
	"product_reference":         ProductRef,
	"list.product_reference":    ListProductRef,
	"collection_reference":      CollectionRef,
	"list.collection_reference": ListCollectionRef,
}

// KindOf returns the kind of a field type name. Unknown types are scalars.
func KindOf(typeName string) FieldKind {
	return fieldKinds[typeName]
}

// IsList reports whether values of this kind are JSON-encoded id lists.
func (k FieldKind) IsList() bool {
	switch k {
	case ListReference, ListFileRef, ListProductRef, ListCollectionRef:
		return true
	}
	return false
}

// Single returns the element kind of a list kind.
func (k FieldKind) Single() FieldKind {
	switch k {
	case ListReference:
		return SingleReference
	case ListFileRef:
		return FileRef
	case ListProductRef:
		return ProductRef
	case ListCollectionRef:
		return CollectionRef
	}
	return k
}

func (k FieldKind) String() string {
	switch k {
	case SingleReference:
		return "reference"
	case ListReference:
		return "list.reference"
	case FileRef:
		return "file"
	case ListFileRef:
		return "list.file"
	case ProductRef:
		return "product"
	case ListProductRef:
		return "list.product"
	case CollectionRef:
		return "collection"
	case ListCollectionRef:
		return "list.collection"
	}
	return "scalar"
}
