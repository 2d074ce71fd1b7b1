package models

// ValidationDefinitionRef names the validation whose value is another Definition's id.
const ValidationDefinitionRef = "metaobject_definition_id"

// Access is the visibility policy of a Definition or AttributeDefinition.
type Access struct {
	Admin           string `json:"admin,omitempty"`
	Storefront      string `json:"storefront,omitempty"`
	CustomerAccount string `json:"customerAccount,omitempty"`
}

// FieldType is the declared type of a field, e.g. {Name: "list.metaobject_reference"}.
type FieldType struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Validation is a named constraint on a field.
type Validation struct {
	Name  string  `json:"name"`
	Type  string  `json:"type,omitempty"`
	Value *string `json:"value"`
}

// FindValidation returns the validation named name.
func FindValidation(validations []Validation, name string) (Validation, bool) {
	for _, v := range validations {
		if v.Name == name {
			return v, true
		}
	}
	return Validation{}, false
}

// FieldDefinition describes one field of a Definition.
type FieldDefinition struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Required    bool         `json:"required"`
	Type        FieldType    `json:"type"`
	Validations []Validation `json:"validations"`
}

// Definition is a schema for Instances, keyed across stores by Type.
type Definition struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Name             string            `json:"name"`
	DisplayNameKey   *string           `json:"displayNameKey"`
	Access           Access            `json:"access"`
	FieldDefinitions []FieldDefinition `json:"fieldDefinitions"`
}

// Field returns the field definition with the given key.
func (d Definition) Field(key string) (FieldDefinition, bool) {
	for _, f := range d.FieldDefinitions {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// ValidationInput is a validation in a mutation payload.
type ValidationInput struct {
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

// AccessInput carries only the access settings being written.
type AccessInput struct {
	Storefront      *string `json:"storefront,omitempty"`
	CustomerAccount *string `json:"customerAccount,omitempty"`
}

// FieldDefinitionInput fully specifies a field to create.
type FieldDefinitionInput struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Required    bool              `json:"required"`
	Type        string            `json:"type"`
	Validations []ValidationInput `json:"validations"`
}

// FieldDefinitionUpdate carries the changed sub-fields of an existing field.
type FieldDefinitionUpdate struct {
	Key         string            `json:"key"`
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Required    *bool             `json:"required,omitempty"`
	Validations []ValidationInput `json:"validations,omitempty"`
}

// FieldDefinitionOperation is exactly one of create or update.
type FieldDefinitionOperation struct {
	Create *FieldDefinitionInput  `json:"create,omitempty"`
	Update *FieldDefinitionUpdate `json:"update,omitempty"`
}

// DefinitionCreate is the payload for a new Definition.
type DefinitionCreate struct {
	Type             string                 `json:"type"`
	Name             string                 `json:"name"`
	DisplayNameKey   *string                `json:"displayNameKey,omitempty"`
	Access           *AccessInput           `json:"access,omitempty"`
	FieldDefinitions []FieldDefinitionInput `json:"fieldDefinitions"`
}

// DefinitionUpdate is a partial update; nil members are left alone.
type DefinitionUpdate struct {
	Name             *string                    `json:"name,omitempty"`
	DisplayNameKey   *string                    `json:"displayNameKey,omitempty"`
	Access           *AccessInput               `json:"access,omitempty"`
	FieldDefinitions []FieldDefinitionOperation `json:"fieldDefinitions,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u DefinitionUpdate) IsEmpty() bool {
	return u.Name == nil && u.DisplayNameKey == nil && u.Access == nil && len(u.FieldDefinitions) == 0
}
