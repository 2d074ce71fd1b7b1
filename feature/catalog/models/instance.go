package models

// Field is one (key, type, value) triple of an Instance or Attribute.
// List references carry a JSON-encoded id list in Value.
type Field struct {
	Key   string  `json:"key"`
	Type  string  `json:"type"`
	Value *string `json:"value"`
}

// Instance is a record of a Definition, keyed across stores by Type and Handle.
type Instance struct {
	ID     string  `json:"id"`
	Handle string  `json:"handle"`
	Type   string  `json:"type"`
	Fields []Field `json:"fields"`
}

// InstanceKey is the cross-system key of an instance.
func InstanceKey(typ, handle string) string {
	return typ + "/" + handle
}

// Key returns the cross-system key.
func (i Instance) Key() string {
	return InstanceKey(i.Type, i.Handle)
}

// Field returns the field with the given key.
func (i Instance) Field(key string) (Field, bool) {
	for _, f := range i.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// FieldInput is a field value in a mutation. A nil Value clears the field.
type FieldInput struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// InstanceCreate is the payload for a new Instance.
type InstanceCreate struct {
	Type   string       `json:"type"`
	Handle string       `json:"handle"`
	Fields []FieldInput `json:"fields"`
}

// InstanceUpdate is the patch for an existing Instance.
type InstanceUpdate struct {
	Handle string       `json:"handle"`
	Fields []FieldInput `json:"fields,omitempty"`
}
