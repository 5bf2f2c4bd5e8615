package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFromTreeRejectsUnknownRoot(t *testing.T) {
	for _, tree := range []map[string]any{
		{},
		{"CustomObject": map[string]any{}},
		{"Profile": ""},
		{"Profile": nil},
	} {
		if _, err := FromTree(tree); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("FromTree(%v) error = %v, want ErrInvalidDocument", tree, err)
		}
	}
}

func TestFromTreeProfile(t *testing.T) {
	tree := map[string]any{
		"Profile": map[string]any{
			"description": []any{"Standard user"},
			"objectPermissions": []any{
				map[string]any{
					"object":           []any{"Account"},
					"allowRead":        []any{"true"},
					"allowCreate":      []any{"false"},
					"allowEdit":        "true",
					"allowDelete":      []any{"false"},
					"viewAllRecords":   []any{"false"},
					"modifyAllRecords": []any{"false"},
				},
			},
			"layoutAssignments": []any{
				map[string]any{"layout": []any{"Account-Account Layout"}},
				map[string]any{"layout": "Case-Support", "recordType": "Case.Support"},
			},
			"tabVisibilities": map[string]any{"tab": "standard-Account", "visibility": "DefaultOn"},
			"tabSettings":     map[string]any{"tab": "ignored", "visibility": "Hidden"},
			"fieldPermissions": []any{
				map[string]any{"field": "Account.Phone", "readable": "true", "editable": "false"},
			},
		},
	}

	p, err := FromTree(tree)
	if err != nil {
		t.Fatalf("FromTree failed: %v", err)
	}
	if p.Kind != KindProfile {
		t.Errorf("Kind = %q, want %q", p.Kind, KindProfile)
	}
	if p.Description != "Standard user" {
		t.Errorf("Description = %q", p.Description)
	}

	if len(p.ObjectPermissions) != 1 {
		t.Fatalf("expected 1 object permission, got %d", len(p.ObjectPermissions))
	}
	op := p.ObjectPermissions[0]
	want := ObjectPermission{Object: "Account", AllowRead: true, AllowEdit: true}
	if op != want {
		t.Errorf("object permission = %+v, want %+v", op, want)
	}

	if len(p.LayoutAssignments) != 2 {
		t.Fatalf("expected 2 layout assignments, got %d", len(p.LayoutAssignments))
	}
	if p.LayoutAssignments[0].RecordType != "" || p.LayoutAssignments[0].Layout != "Account-Account Layout" {
		t.Errorf("layout assignment 0 = %+v", p.LayoutAssignments[0])
	}
	if p.LayoutAssignments[1].RecordType != "Case.Support" {
		t.Errorf("layout assignment 1 = %+v", p.LayoutAssignments[1])
	}

	if len(p.TabVisibilities) != 1 || p.TabVisibilities[0].Tab != "standard-Account" {
		t.Errorf("tab visibilities = %+v, want tabVisibilities to win over tabSettings", p.TabVisibilities)
	}

	if len(p.FieldPermissions) != 1 || !p.FieldPermissions[0].Readable || p.FieldPermissions[0].Editable {
		t.Errorf("field permissions = %+v", p.FieldPermissions)
	}

	if p.RecordTypeVisibilities != nil || p.UserPermissions != nil {
		t.Errorf("absent collections should stay nil")
	}
}

func TestFromTreePermissionSetFallsBackToTabSettings(t *testing.T) {
	tree := map[string]any{
		"PermissionSet": []any{map[string]any{
			"tabSettings": []any{
				map[string]any{"tab": []any{"Invoice__c"}, "visibility": []any{"Visible"}},
			},
		}},
	}
	p, err := FromTree(tree)
	if err != nil {
		t.Fatalf("FromTree failed: %v", err)
	}
	if p.Kind != KindPermissionSet {
		t.Errorf("Kind = %q", p.Kind)
	}
	if len(p.TabVisibilities) != 1 || p.TabVisibilities[0].Visibility != "Visible" {
		t.Errorf("tab visibilities = %+v", p.TabVisibilities)
	}
	if p.Description != "" {
		t.Errorf("Description = %q, want empty", p.Description)
	}
}

func TestParseFile(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<PermissionSet>
    <description>Billing team</description>
    <userPermissions>
        <enabled>true</enabled>
        <name>ApiEnabled</name>
    </userPermissions>
    <userPermissions>
        <enabled>false</enabled>
        <name>ViewSetup</name>
    </userPermissions>
    <classAccesses>
        <apexClass>InvoiceController</apexClass>
        <enabled>true</enabled>
    </classAccesses>
</PermissionSet>
`
	path := filepath.Join(t.TempDir(), "Billing.permissionset-meta.xml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	tree, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	p, err := FromTree(tree)
	if err != nil {
		t.Fatalf("FromTree failed: %v", err)
	}

	if p.Description != "Billing team" {
		t.Errorf("Description = %q", p.Description)
	}
	if len(p.UserPermissions) != 2 {
		t.Fatalf("expected 2 user permissions, got %d", len(p.UserPermissions))
	}
	if !p.UserPermissions[0].Enabled || p.UserPermissions[0].Name != "ApiEnabled" {
		t.Errorf("user permission 0 = %+v", p.UserPermissions[0])
	}
	if p.UserPermissions[1].Enabled {
		t.Errorf("user permission 1 should be disabled")
	}
	if len(p.ClassAccesses) != 1 || p.ClassAccesses[0].ApexClass != "InvoiceController" {
		t.Errorf("class accesses = %+v", p.ClassAccesses)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.profile-meta.xml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile error = %v, want os.ErrNotExist", err)
	}
}
