package memory

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"

	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

// Store keeps a whole catalog in memory and assigns gid-style ids. It checks
// references and uniqueness the way a real store would, so that writes
// carrying ids from another store are rejected.
type Store struct {
	mu   sync.RWMutex
	name string
	seq  int
	ops  []string

	definitions   map[string]models.Definition
	instances     map[string]models.Instance
	attrDefs      map[string]models.AttributeDefinition
	attributes    map[string][]models.Attribute
	files         map[string]models.File
	collections   map[string]models.Collection
	pages         map[string]models.Page
	accountPages  map[string]models.CustomerAccountPage
	menus         map[string]models.Menu
	products      map[string]models.Product
	variantOwners map[string]string
}

// New creates an empty store. name shows up in file URLs.
func New(name string) *Store {
	return &Store{
		name:          name,
		definitions:   make(map[string]models.Definition),
		instances:     make(map[string]models.Instance),
		attrDefs:      make(map[string]models.AttributeDefinition),
		attributes:    make(map[string][]models.Attribute),
		files:         make(map[string]models.File),
		collections:   make(map[string]models.Collection),
		pages:         make(map[string]models.Page),
		accountPages:  make(map[string]models.CustomerAccountPage),
		menus:         make(map[string]models.Menu),
		products:      make(map[string]models.Product),
		variantOwners: make(map[string]string),
	}
}

// Ops returns the mutations applied so far, e.g. "CreateInstance author/jane".
func (s *Store) Ops() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ops)
}

// ResetOps forgets recorded mutations.
func (s *Store) ResetOps() {
	s.mu.Lock()
	s.ops = nil
	s.mu.Unlock()
}

func (s *Store) gid(resource string) string {
	s.seq++
	return fmt.Sprintf("gid://shopify/%s/%d", resource, s.seq)
}

func (s *Store) record(op, key string) {
	s.ops = append(s.ops, op+" "+key)
}

func conflict(op string, payload any, field, format string, args ...any) error {
	return &store.ValidationConflictError{
		Operation:  op,
		Payload:    payload,
		UserErrors: []store.UserError{{Field: strings.Split(field, "."), Message: fmt.Sprintf(format, args...)}},
	}
}

func sorted[T any](m map[string]T) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// ids carry an increasing sequence, so creation order is id order
	slices.SortFunc(keys, func(a, b string) int {
		return compareGID(a, b)
	})
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func compareGID(a, b string) int {
	na, nb := gidSeq(a), gidSeq(b)
	if na != nb {
		return na - nb
	}
	return strings.Compare(a, b)
}

func gidSeq(id string) int {
	n, _ := strconv.Atoi(id[strings.LastIndex(id, "/")+1:])
	return n
}

// Definitions

func (s *Store) ListDefinitions(_ context.Context) ([]models.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.definitions), nil
}

func (s *Store) GetDefinition(_ context.Context, id string) (*models.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.definitions[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *Store) definitionByType(typ string) (models.Definition, bool) {
	for _, d := range s.definitions {
		if d.Type == typ {
			return d, true
		}
	}
	return models.Definition{}, false
}

func (s *Store) checkValidations(op string, payload any, validations []models.ValidationInput) error {
	for _, v := range validations {
		if v.Name != models.ValidationDefinitionRef || v.Value == nil {
			continue
		}
		if _, ok := s.definitions[*v.Value]; !ok {
			return conflict(op, payload, "validations.value", "definition %s does not exist", *v.Value)
		}
	}
	return nil
}

func toValidations(in []models.ValidationInput) []models.Validation {
	out := make([]models.Validation, 0, len(in))
	for _, v := range in {
		out = append(out, models.Validation{Name: v.Name, Value: v.Value})
	}
	return out
}

func applyAccess(access *models.Access, in *models.AccessInput) {
	if in == nil {
		return
	}
	if in.Storefront != nil {
		access.Storefront = *in.Storefront
	}
	if in.CustomerAccount != nil {
		access.CustomerAccount = *in.CustomerAccount
	}
}

func (s *Store) CreateDefinition(_ context.Context, in models.DefinitionCreate) (*models.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "metaobjectDefinitionCreate"

	if _, exists := s.definitionByType(in.Type); exists {
		return nil, conflict(op, in, "definition.type", "type %s is already taken", in.Type)
	}
	def := models.Definition{
		ID:             s.gid("MetaobjectDefinition"),
		Type:           in.Type,
		Name:           in.Name,
		DisplayNameKey: in.DisplayNameKey,
		Access:         models.Access{Admin: "MERCHANT_READ_WRITE", Storefront: "NONE"},
	}
	applyAccess(&def.Access, in.Access)
	for _, f := range in.FieldDefinitions {
		if err := s.checkValidations(op, in, f.Validations); err != nil {
			return nil, err
		}
		def.FieldDefinitions = append(def.FieldDefinitions, models.FieldDefinition{
			Key:         f.Key,
			Name:        f.Name,
			Description: f.Description,
			Required:    f.Required,
			Type:        models.FieldType{Name: f.Type},
			Validations: toValidations(f.Validations),
		})
	}
	s.definitions[def.ID] = def
	s.record("CreateDefinition", def.Type)
	return &def, nil
}

func (s *Store) UpdateDefinition(_ context.Context, id string, in models.DefinitionUpdate) (*models.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "metaobjectDefinitionUpdate"

	def, ok := s.definitions[id]
	if !ok {
		return nil, conflict(op, in, "id", "definition %s does not exist", id)
	}
	if in.Name != nil {
		def.Name = *in.Name
	}
	if in.DisplayNameKey != nil {
		def.DisplayNameKey = in.DisplayNameKey
		if *in.DisplayNameKey == "" {
			def.DisplayNameKey = nil
		}
	}
	applyAccess(&def.Access, in.Access)

	fields := slices.Clone(def.FieldDefinitions)
	for _, fop := range in.FieldDefinitions {
		switch {
		case fop.Create != nil:
			if _, exists := def.Field(fop.Create.Key); exists {
				return nil, conflict(op, in, "fieldDefinitions.create.key", "field %s already exists", fop.Create.Key)
			}
			if err := s.checkValidations(op, in, fop.Create.Validations); err != nil {
				return nil, err
			}
			fields = append(fields, models.FieldDefinition{
				Key:         fop.Create.Key,
				Name:        fop.Create.Name,
				Description: fop.Create.Description,
				Required:    fop.Create.Required,
				Type:        models.FieldType{Name: fop.Create.Type},
				Validations: toValidations(fop.Create.Validations),
			})
		case fop.Update != nil:
			i := slices.IndexFunc(fields, func(f models.FieldDefinition) bool { return f.Key == fop.Update.Key })
			if i < 0 {
				return nil, conflict(op, in, "fieldDefinitions.update.key", "field %s does not exist", fop.Update.Key)
			}
			if err := s.checkValidations(op, in, fop.Update.Validations); err != nil {
				return nil, err
			}
			f := fields[i]
			if fop.Update.Name != nil {
				f.Name = *fop.Update.Name
			}
			if fop.Update.Description != nil {
				f.Description = fop.Update.Description
			}
			if fop.Update.Required != nil {
				f.Required = *fop.Update.Required
			}
			if fop.Update.Validations != nil {
				f.Validations = toValidations(fop.Update.Validations)
			}
			fields[i] = f
		}
	}
	def.FieldDefinitions = fields
	s.definitions[id] = def
	s.record("UpdateDefinition", def.Type)
	return &def, nil
}

func (s *Store) DeleteDefinition(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.definitions[id]
	if !ok {
		return "", conflict("metaobjectDefinitionDelete", id, "id", "definition %s does not exist", id)
	}
	delete(s.definitions, id)
	s.record("DeleteDefinition", def.Type)
	return id, nil
}

// Instances

func (s *Store) ListInstances(_ context.Context, typ string) ([]models.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Instance
	for _, inst := range sorted(s.instances) {
		if inst.Type == typ {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (s *Store) GetInstance(_ context.Context, id string) (*models.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if inst, ok := s.instances[id]; ok {
		return &inst, nil
	}
	return nil, nil
}

func (s *Store) GetInstanceByHandle(_ context.Context, typ, handle string) (*models.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inst := range s.instances {
		if inst.Type == typ && inst.Handle == handle {
			return &inst, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateInstance(_ context.Context, in models.InstanceCreate) (*models.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "metaobjectCreate"

	def, ok := s.definitionByType(in.Type)
	if !ok {
		return nil, conflict(op, in, "metaobject.type", "no definition for type %s", in.Type)
	}
	for _, inst := range s.instances {
		if inst.Type == in.Type && inst.Handle == in.Handle {
			return nil, conflict(op, in, "metaobject.handle", "handle %s is already taken", in.Handle)
		}
	}

	inst := models.Instance{ID: s.gid("Metaobject"), Type: in.Type, Handle: in.Handle}
	for _, fd := range def.FieldDefinitions {
		inst.Fields = append(inst.Fields, models.Field{Key: fd.Key, Type: fd.Type.Name})
	}
	if err := s.applyFields(op, in, &inst, in.Fields); err != nil {
		return nil, err
	}
	s.instances[inst.ID] = inst
	s.record("CreateInstance", inst.Key())
	return &inst, nil
}

func (s *Store) applyFields(op string, payload any, inst *models.Instance, in []models.FieldInput) error {
	fields := slices.Clone(inst.Fields)
	for _, f := range in {
		i := slices.IndexFunc(fields, func(existing models.Field) bool { return existing.Key == f.Key })
		if i < 0 {
			return conflict(op, payload, "fields.key", "field %s is not defined on %s", f.Key, inst.Type)
		}
		if f.Value == nil || *f.Value == "" {
			fields[i].Value = nil
		} else {
			fields[i].Value = utils.Ptr(*f.Value)
		}
	}
	inst.Fields = fields
	return nil
}

func (s *Store) UpdateInstance(_ context.Context, id string, in models.InstanceUpdate) (*models.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "metaobjectUpdate"

	inst, ok := s.instances[id]
	if !ok {
		return nil, conflict(op, in, "id", "metaobject %s does not exist", id)
	}
	if in.Handle != "" {
		inst.Handle = in.Handle
	}
	if err := s.applyFields(op, in, &inst, in.Fields); err != nil {
		return nil, err
	}
	s.instances[id] = inst
	s.record("UpdateInstance", inst.Key())
	return &inst, nil
}

func (s *Store) DeleteInstance(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[id]
	if !ok {
		return "", conflict("metaobjectDelete", id, "id", "metaobject %s does not exist", id)
	}
	delete(s.instances, id)
	s.record("DeleteInstance", inst.Key())
	return id, nil
}

func (s *Store) BulkDeleteInstances(_ context.Context, typ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, inst := range s.instances {
		if inst.Type == typ {
			delete(s.instances, id)
		}
	}
	s.record("BulkDeleteInstances", typ)
	return s.gid("Job"), nil
}

// Attribute definitions and attributes

func (s *Store) ListAttributeDefinitions(_ context.Context, ownerType string) ([]models.AttributeDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.AttributeDefinition
	for _, d := range sorted(s.attrDefs) {
		if d.OwnerType == ownerType {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) findAttrDef(namespace, key, ownerType string) (models.AttributeDefinition, bool) {
	for _, d := range s.attrDefs {
		if d.Namespace == namespace && d.Key == key && d.OwnerType == ownerType {
			return d, true
		}
	}
	return models.AttributeDefinition{}, false
}

func (s *Store) CreateAttributeDefinition(_ context.Context, in models.AttributeDefinitionCreate) (*models.AttributeDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "metafieldDefinitionCreate"

	if _, exists := s.findAttrDef(in.Namespace, in.Key, in.OwnerType); exists {
		return nil, conflict(op, in, "definition.key", "%s is already taken", models.QualifiedKey(in.Namespace, in.Key))
	}
	if err := s.checkValidations(op, in, in.Validations); err != nil {
		return nil, err
	}
	def := models.AttributeDefinition{
		ID:          s.gid("MetafieldDefinition"),
		Name:        in.Name,
		Namespace:   in.Namespace,
		Key:         in.Key,
		OwnerType:   in.OwnerType,
		Type:        models.FieldType{Name: in.Type},
		Access:      models.Access{Admin: "PUBLIC_READ_WRITE"},
		Validations: toValidations(in.Validations),
	}
	if in.Pin {
		def.PinnedPosition = utils.Ptr(1)
	}
	applyAccess(&def.Access, in.Access)
	s.attrDefs[def.ID] = def
	s.record("CreateAttributeDefinition", def.QualifiedKey())
	return &def, nil
}

func (s *Store) UpdateAttributeDefinition(_ context.Context, in models.AttributeDefinitionUpdate) (*models.AttributeDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "metafieldDefinitionUpdate"

	def, ok := s.findAttrDef(in.Namespace, in.Key, in.OwnerType)
	if !ok {
		return nil, conflict(op, in, "definition.key", "%s does not exist", models.QualifiedKey(in.Namespace, in.Key))
	}
	if err := s.checkValidations(op, in, in.Validations); err != nil {
		return nil, err
	}
	if in.Name != nil {
		def.Name = *in.Name
	}
	applyAccess(&def.Access, in.Access)
	if in.Validations != nil {
		def.Validations = toValidations(in.Validations)
	}
	s.attrDefs[def.ID] = def
	s.record("UpdateAttributeDefinition", def.QualifiedKey())
	return &def, nil
}

func (s *Store) DeleteAttributeDefinition(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.attrDefs[id]
	if !ok {
		return "", conflict("metafieldDefinitionDelete", id, "id", "definition %s does not exist", id)
	}
	delete(s.attrDefs, id)
	s.record("DeleteAttributeDefinition", def.QualifiedKey())
	return id, nil
}

func (s *Store) ownerExists(id string) bool {
	switch utils.GIDResource(id) {
	case "Product":
		_, ok := s.products[id]
		return ok
	case "ProductVariant":
		_, ok := s.variantOwners[id]
		return ok
	case "Page":
		_, ok := s.pages[id]
		return ok
	}
	return false
}

func (s *Store) SetAttributes(_ context.Context, in []models.AttributeInput) ([]models.Attribute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "metafieldsSet"

	if len(in) > 250 {
		return nil, conflict(op, in, "metafields", "at most 250 metafields per call, got %d", len(in))
	}
	for _, a := range in {
		if !s.ownerExists(a.OwnerID) {
			return nil, conflict(op, a, "metafields.ownerId", "owner %s does not exist", a.OwnerID)
		}
	}

	out := make([]models.Attribute, 0, len(in))
	for _, a := range in {
		attrs := slices.Clone(s.attributes[a.OwnerID])
		i := slices.IndexFunc(attrs, func(x models.Attribute) bool { return x.Namespace == a.Namespace && x.Key == a.Key })
		if i < 0 {
			attrs = append(attrs, models.Attribute{ID: s.gid("Metafield"), Namespace: a.Namespace, Key: a.Key})
			i = len(attrs) - 1
		}
		attrs[i].Type = a.Type
		attrs[i].Value = utils.Ptr(a.Value)
		s.attributes[a.OwnerID] = attrs
		out = append(out, attrs[i])
		s.record("SetAttribute", a.OwnerID+" "+models.QualifiedKey(a.Namespace, a.Key))
	}
	return out, nil
}

func (s *Store) DeleteAttributes(_ context.Context, in []models.AttributeIdentifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range in {
		s.attributes[id.OwnerID] = slices.DeleteFunc(slices.Clone(s.attributes[id.OwnerID]), func(x models.Attribute) bool {
			return x.Namespace == id.Namespace && x.Key == id.Key
		})
		s.record("DeleteAttribute", id.OwnerID+" "+models.QualifiedKey(id.Namespace, id.Key))
	}
	return nil
}

// Files

func (s *Store) ListFiles(_ context.Context) ([]models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.files), nil
}

func (s *Store) GetFile(_ context.Context, id string) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.files[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (s *Store) GetFileByName(_ context.Context, name string) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range sorted(s.files) {
		if f.Name() == name {
			return &f, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateFiles(_ context.Context, in []models.FileCreate) ([]models.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(in) > 250 {
		return nil, conflict("fileCreate", in, "files", "at most 250 files per call, got %d", len(in))
	}

	out := make([]models.File, 0, len(in))
	for _, fc := range in {
		if fc.OriginalSource == "" {
			return nil, conflict("fileCreate", fc, "files.originalSource", "originalSource is required")
		}
		stored := fc.Filename
		for _, f := range s.files {
			if f.Name() == fc.Filename && fc.DuplicateResolutionMode == models.DuplicateAppendUUID {
				ext := ""
				if i := strings.LastIndex(stored, "."); i >= 0 {
					stored, ext = stored[:i], stored[i:]
				}
				stored = stored + "_" + uuid.NewString() + ext
				break
			}
		}
		f := models.File{
			ID:  s.gid("MediaImage"),
			URL: fmt.Sprintf("https://cdn.%s.test/files/%s?v=1", s.name, stored),
			Alt: fc.Alt,
		}
		s.files[f.ID] = f
		out = append(out, f)
		s.record("CreateFile", fc.Filename)
	}
	return out, nil
}

// Collections

func (s *Store) ListCollections(_ context.Context) ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.collections), nil
}

func (s *Store) GetCollection(_ context.Context, id string) (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.collections[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) GetCollectionByHandle(_ context.Context, handle string) (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.collections {
		if c.Handle == handle {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateCollection(_ context.Context, in models.CollectionCreate) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.collections {
		if c.Handle == in.Handle {
			return nil, conflict("collectionCreate", in, "handle", "handle %s is already taken", in.Handle)
		}
	}
	c := models.Collection{
		ID:              s.gid("Collection"),
		Handle:          in.Handle,
		Title:           in.Title,
		DescriptionHTML: in.DescriptionHTML,
		TemplateSuffix:  in.TemplateSuffix,
	}
	s.collections[c.ID] = c
	s.record("CreateCollection", c.Handle)
	return &c, nil
}

func (s *Store) DeleteCollection(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[id]
	if !ok {
		return "", conflict("collectionDelete", id, "id", "collection %s does not exist", id)
	}
	delete(s.collections, id)
	s.record("DeleteCollection", c.Handle)
	return id, nil
}

// Pages

func (s *Store) ListPages(_ context.Context) ([]models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pages := sorted(s.pages)
	for i := range pages {
		pages[i].Attributes = slices.Clone(s.attributes[pages[i].ID])
	}
	return pages, nil
}

func (s *Store) CreatePage(_ context.Context, in models.PageCreate) (*models.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pages {
		if p.Handle == in.Handle {
			return nil, conflict("pageCreate", in, "handle", "handle %s is already taken", in.Handle)
		}
	}
	p := models.Page{
		ID:             s.gid("Page"),
		Handle:         in.Handle,
		Title:          in.Title,
		Body:           in.Body,
		IsPublished:    in.IsPublished,
		TemplateSuffix: in.TemplateSuffix,
	}
	s.pages[p.ID] = p
	s.record("CreatePage", p.Handle)
	return &p, nil
}

// AddCustomerAccountPage seeds a customer account page. These are fixed by
// the platform and cannot be created through the API.
func (s *Store) AddCustomerAccountPage(handle, title string) models.CustomerAccountPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.CustomerAccountPage{ID: s.gid("CustomerAccountPage"), Handle: handle, Title: title}
	s.accountPages[p.ID] = p
	return p
}

func (s *Store) ListCustomerAccountPages(_ context.Context) ([]models.CustomerAccountPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.accountPages), nil
}

// Menus

func (s *Store) ListMenus(_ context.Context) ([]models.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(s.menus), nil
}

func (s *Store) resourceExists(id string) bool {
	switch utils.GIDResource(id) {
	case "Page":
		_, ok := s.pages[id]
		return ok
	case "CustomerAccountPage":
		_, ok := s.accountPages[id]
		return ok
	case "Collection":
		_, ok := s.collections[id]
		return ok
	case "Product":
		_, ok := s.products[id]
		return ok
	}
	return true
}

func (s *Store) buildItems(op string, payload any, in []models.MenuItemInput) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0, len(in))
	for _, it := range in {
		if it.ResourceID != nil && !s.resourceExists(*it.ResourceID) {
			return nil, conflict(op, payload, "items.resourceId", "resource %s does not exist", *it.ResourceID)
		}
		children, err := s.buildItems(op, payload, it.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, models.MenuItem{
			ID:         s.gid("MenuItem"),
			Title:      it.Title,
			Type:       it.Type,
			ResourceID: it.ResourceID,
			URL:        it.URL,
			Tags:       it.Tags,
			Items:      children,
		})
	}
	return items, nil
}

func (s *Store) CreateMenu(_ context.Context, in models.MenuInput) (*models.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "menuCreate"
	for _, m := range s.menus {
		if m.Handle == in.Handle {
			return nil, conflict(op, in, "handle", "handle %s is already taken", in.Handle)
		}
	}
	items, err := s.buildItems(op, in, in.Items)
	if err != nil {
		return nil, err
	}
	m := models.Menu{ID: s.gid("Menu"), Handle: in.Handle, Title: in.Title, Items: items}
	s.menus[m.ID] = m
	s.record("CreateMenu", m.Handle)
	return &m, nil
}

// AddDefaultMenu seeds a platform menu that can be updated but not deleted.
func (s *Store) AddDefaultMenu(handle, title string) models.Menu {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.Menu{ID: s.gid("Menu"), Handle: handle, Title: title, IsDefault: true}
	s.menus[m.ID] = m
	return m
}

func (s *Store) UpdateMenu(_ context.Context, id string, in models.MenuInput) (*models.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "menuUpdate"
	m, ok := s.menus[id]
	if !ok {
		return nil, conflict(op, in, "id", "menu %s does not exist", id)
	}
	items, err := s.buildItems(op, in, in.Items)
	if err != nil {
		return nil, err
	}
	m.Title, m.Items = in.Title, items
	s.menus[id] = m
	s.record("UpdateMenu", m.Handle)
	return &m, nil
}

func (s *Store) DeleteMenu(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "menuDelete"
	m, ok := s.menus[id]
	if !ok {
		return "", conflict(op, id, "id", "menu %s does not exist", id)
	}
	if m.IsDefault {
		return "", conflict(op, id, "id", "default menu %s cannot be deleted", m.Handle)
	}
	delete(s.menus, id)
	s.record("DeleteMenu", m.Handle)
	return id, nil
}
