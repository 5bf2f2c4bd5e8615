// =============================================================================
// Salesforce Permission Doc - Permission Document Model
// =============================================================================
//
// A parsed metadata file is a loosely typed tree. FromTree walks it once and
// produces a Permissions value with every collection already normalized, so
// the layout code never touches the raw tree.
//
// DOCUMENT SHAPE (after parsing):
//
//   Profile | PermissionSet
//   ├── description
//   ├── objectPermissions[]        object, allowRead, allowCreate, ...
//   ├── recordTypeVisibilities[]   recordType, default, visible
//   ├── layoutAssignments[]        layout, recordType (optional)
//   ├── tabVisibilities[]          tab, visibility  (permission sets use tabSettings)
//   ├── applicationVisibilities[]  application, default, visible
//   ├── pageAccesses[]             apexPage, enabled
//   ├── classAccesses[]            apexClass, enabled
//   ├── customSettingAccesses[]    name, enabled
//   ├── userPermissions[]          name, enabled
//   └── fieldPermissions[]         field, readable, editable
//
// =============================================================================

package metadata

import (
	"errors"
)

// ErrInvalidDocument is returned when a tree carries neither a Profile nor a
// PermissionSet root.
var ErrInvalidDocument = errors.New("not a valid salesforce profile or permission set")

// Kind identifies which of the two root variants a document uses.
type Kind string

const (
	KindProfile       Kind = "Profile"
	KindPermissionSet Kind = "PermissionSet"
)

// =============================================================================
// PERMISSION ITEMS
// =============================================================================

// ObjectPermission holds CRUD and view-all/modify-all flags for one object.
type ObjectPermission struct {
	Object           string
	AllowRead        bool
	AllowCreate      bool
	AllowEdit        bool
	AllowDelete      bool
	ViewAllRecords   bool
	ModifyAllRecords bool
}

// Any reports whether at least one access flag is set.
func (o ObjectPermission) Any() bool {
	return o.AllowRead || o.AllowCreate || o.AllowEdit || o.AllowDelete ||
		o.ViewAllRecords || o.ModifyAllRecords
}

// RecordTypeVisibility records whether a record type is visible/default.
// RecordType is an "Object.RecordType" reference.
type RecordTypeVisibility struct {
	RecordType string
	Default    bool
	Visible    bool
}

// LayoutAssignment maps an optional record type to a page layout.
type LayoutAssignment struct {
	Layout     string
	RecordType string
}

// TabVisibility is a tab name with its visibility setting (DefaultOn,
// DefaultOff, Hidden, Visible, Available, None).
type TabVisibility struct {
	Tab        string
	Visibility string
}

type ApplicationVisibility struct {
	Application string
	Default     bool
	Visible     bool
}

type PageAccess struct {
	ApexPage string
	Enabled  bool
}

type ClassAccess struct {
	ApexClass string
	Enabled   bool
}

type CustomSettingAccess struct {
	Name    string
	Enabled bool
}

type UserPermission struct {
	Name    string
	Enabled bool
}

// FieldPermission holds read/edit flags for one field. Field is an
// "Object.Field" reference.
type FieldPermission struct {
	Field    string
	Readable bool
	Editable bool
}

// =============================================================================
// PERMISSIONS
// =============================================================================

// Permissions is the normalized content of one profile or permission set.
// Every collection is optional and nil when absent.
type Permissions struct {
	Kind        Kind
	Description string

	ObjectPermissions       []ObjectPermission
	RecordTypeVisibilities  []RecordTypeVisibility
	LayoutAssignments       []LayoutAssignment
	TabVisibilities         []TabVisibility
	ApplicationVisibilities []ApplicationVisibility
	PageAccesses            []PageAccess
	ClassAccesses           []ClassAccess
	CustomSettingAccesses   []CustomSettingAccess
	UserPermissions         []UserPermission
	FieldPermissions        []FieldPermission
}

// FromTree resolves the Profile or PermissionSet root of a parsed tree and
// normalizes its collections. Profile wins when both are present.
//
// RETURNS:
//   - The normalized permissions.
//   - ErrInvalidDocument if neither root is present (or the root is empty).
func FromTree(tree map[string]any) (*Permissions, error) {
	kind, root, ok := resolveRoot(tree)
	if !ok {
		return nil, ErrInvalidDocument
	}

	p := &Permissions{
		Kind:        kind,
		Description: Text(root["description"]),
	}

	for _, item := range Items(root["objectPermissions"]) {
		p.ObjectPermissions = append(p.ObjectPermissions, ObjectPermission{
			Object:           Text(item["object"]),
			AllowRead:        AsBoolean(item["allowRead"]),
			AllowCreate:      AsBoolean(item["allowCreate"]),
			AllowEdit:        AsBoolean(item["allowEdit"]),
			AllowDelete:      AsBoolean(item["allowDelete"]),
			ViewAllRecords:   AsBoolean(item["viewAllRecords"]),
			ModifyAllRecords: AsBoolean(item["modifyAllRecords"]),
		})
	}

	for _, item := range Items(root["recordTypeVisibilities"]) {
		p.RecordTypeVisibilities = append(p.RecordTypeVisibilities, RecordTypeVisibility{
			RecordType: Text(item["recordType"]),
			Default:    AsBoolean(item["default"]),
			Visible:    AsBoolean(item["visible"]),
		})
	}

	for _, item := range Items(root["layoutAssignments"]) {
		p.LayoutAssignments = append(p.LayoutAssignments, LayoutAssignment{
			Layout:     Text(item["layout"]),
			RecordType: Text(item["recordType"]),
		})
	}

	// Profiles export tabVisibilities; permission sets export tabSettings.
	tabs, present := root["tabVisibilities"]
	if !present || tabs == nil {
		tabs = root["tabSettings"]
	}
	for _, item := range Items(tabs) {
		p.TabVisibilities = append(p.TabVisibilities, TabVisibility{
			Tab:        Text(item["tab"]),
			Visibility: Text(item["visibility"]),
		})
	}

	for _, item := range Items(root["applicationVisibilities"]) {
		p.ApplicationVisibilities = append(p.ApplicationVisibilities, ApplicationVisibility{
			Application: Text(item["application"]),
			Default:     AsBoolean(item["default"]),
			Visible:     AsBoolean(item["visible"]),
		})
	}

	for _, item := range Items(root["pageAccesses"]) {
		p.PageAccesses = append(p.PageAccesses, PageAccess{
			ApexPage: Text(item["apexPage"]),
			Enabled:  AsBoolean(item["enabled"]),
		})
	}

	for _, item := range Items(root["classAccesses"]) {
		p.ClassAccesses = append(p.ClassAccesses, ClassAccess{
			ApexClass: Text(item["apexClass"]),
			Enabled:   AsBoolean(item["enabled"]),
		})
	}

	for _, item := range Items(root["customSettingAccesses"]) {
		p.CustomSettingAccesses = append(p.CustomSettingAccesses, CustomSettingAccess{
			Name:    Text(item["name"]),
			Enabled: AsBoolean(item["enabled"]),
		})
	}

	for _, item := range Items(root["userPermissions"]) {
		p.UserPermissions = append(p.UserPermissions, UserPermission{
			Name:    Text(item["name"]),
			Enabled: AsBoolean(item["enabled"]),
		})
	}

	for _, item := range Items(root["fieldPermissions"]) {
		p.FieldPermissions = append(p.FieldPermissions, FieldPermission{
			Field:    Text(item["field"]),
			Readable: AsBoolean(item["readable"]),
			Editable: AsBoolean(item["editable"]),
		})
	}

	return p, nil
}

// resolveRoot picks the Profile or PermissionSet node. A root element with
// no children at all counts as absent.
func resolveRoot(tree map[string]any) (Kind, map[string]any, bool) {
	for _, kind := range []Kind{KindProfile, KindPermissionSet} {
		switch node := Unwrap(tree[string(kind)]).(type) {
		case map[string]any:
			return kind, node, true
		case string:
			if node != "" {
				return kind, map[string]any{}, true
			}
		}
	}
	return "", nil, false
}
