package models

// AttributeDefinition is the schema of an Attribute, keyed across stores by namespace:key.
type AttributeDefinition struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Namespace      string       `json:"namespace"`
	Key            string       `json:"key"`
	OwnerType      string       `json:"ownerType"`
	Type           FieldType    `json:"type"`
	PinnedPosition *int         `json:"pinnedPosition"`
	Access         Access       `json:"access"`
	Validations    []Validation `json:"validations"`
}

// QualifiedKey returns namespace:key.
func (d AttributeDefinition) QualifiedKey() string {
	return QualifiedKey(d.Namespace, d.Key)
}

// QualifiedKey joins a namespace and key.
func QualifiedKey(namespace, key string) string {
	return namespace + ":" + key
}

// AttributeDefinitionCreate is the payload for a new AttributeDefinition.
type AttributeDefinitionCreate struct {
	Name        string            `json:"name"`
	Namespace   string            `json:"namespace"`
	Key         string            `json:"key"`
	OwnerType   string            `json:"ownerType"`
	Type        string            `json:"type"`
	Pin         bool              `json:"pin"`
	Access      *AccessInput      `json:"access,omitempty"`
	Validations []ValidationInput `json:"validations"`
}

// AttributeDefinitionUpdate identifies a definition by namespace, key and
// owner type and carries only the changed members.
type AttributeDefinitionUpdate struct {
	Namespace   string            `json:"namespace"`
	Key         string            `json:"key"`
	OwnerType   string            `json:"ownerType"`
	Name        *string           `json:"name,omitempty"`
	Access      *AccessInput      `json:"access,omitempty"`
	Validations []ValidationInput `json:"validations,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u AttributeDefinitionUpdate) IsEmpty() bool {
	return u.Name == nil && u.Access == nil && len(u.Validations) == 0
}

// Attribute is a typed value attached to an owner object.
type Attribute struct {
	ID        string  `json:"id"`
	Namespace string  `json:"namespace"`
	Key       string  `json:"key"`
	Type      string  `json:"type"`
	Value     *string `json:"value"`
}

// QualifiedKey returns namespace:key.
func (a Attribute) QualifiedKey() string {
	return QualifiedKey(a.Namespace, a.Key)
}

// FindAttribute returns the attribute with the given namespace and key.
func FindAttribute(attrs []Attribute, namespace, key string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Namespace == namespace && a.Key == key {
			return a, true
		}
	}
	return Attribute{}, false
}

// AttributeInput writes one attribute value on an owner.
type AttributeInput struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// AttributeIdentifier addresses an attribute for deletion.
type AttributeIdentifier struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
}
