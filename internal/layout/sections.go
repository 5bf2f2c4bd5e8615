// =============================================================================
// Salesforce Permission Doc - Section Renderers
// =============================================================================
//
// Every section is a fixed-shape table:
//
//   row  start     | <Section title, merged across the span>  |
//   row  start+1   | column header | column header | ...      |
//   row  start+2.. | one row per item that passes the filter   |
//
// A renderer receives the row where its title goes and returns the last row
// it wrote. The column-header row always exists, so an empty section
// returns start+1.
//
// =============================================================================

package layout

import (
	"fmt"

	"github.com/ginjaninja78/sfdc-pps-doc/internal/metadata"
	"github.com/xuri/excelize/v2"
)

// Anchor columns of the two logical columns.
const (
	PrimaryColumn = "A"
	FieldColumn   = "I"
)

// table is one rendered section: the rows are already filtered and hold
// cell values in column order starting at the anchor.
type table struct {
	title   string
	anchor  string
	headers []string
	rows    [][]any
}

// renderTable writes t starting at startRow and returns the final row.
func renderTable(w SheetWriter, startRow int, t table) (int, error) {
	first, err := excelize.ColumnNameToNumber(t.anchor)
	if err != nil {
		return startRow, err
	}
	last := first + len(t.headers) - 1

	// Title
	titleLeft, titleRight, err := rangeNames(first, startRow, last, startRow)
	if err != nil {
		return startRow, err
	}
	if err := w.SetValue(titleLeft, t.title); err != nil {
		return startRow, err
	}
	if last > first {
		if err := w.Merge(titleLeft, titleRight); err != nil {
			return startRow, err
		}
	}

	row := startRow + 1
	if err := writeRow(w, first, row, stringsToValues(t.headers)); err != nil {
		return row, err
	}

	for _, values := range t.rows {
		row++
		if err := writeRow(w, first, row, values); err != nil {
			return row, err
		}
	}

	// excelize replaces a cell's style instead of merging it, so the box goes
	// first and the header bands are laid over it.
	bands := []struct {
		top, bottom int
		style       Style
	}{
		{startRow, row, StyleBox},
		{startRow, startRow, StyleSectionTitle},
		{startRow + 1, startRow + 1, StyleColumnHeader},
	}
	for _, band := range bands {
		topLeft, bottomRight, err := rangeNames(first, band.top, last, band.bottom)
		if err != nil {
			return row, err
		}
		if err := w.Style(topLeft, bottomRight, band.style); err != nil {
			return row, err
		}
	}

	return row, nil
}

// writeRow writes values left to right from column first, skipping blanks.
func writeRow(w SheetWriter, first, row int, values []any) error {
	for i, value := range values {
		if isBlank(value) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(first+i, row)
		if err != nil {
			return fmt.Errorf("layout: %w", err)
		}
		if err := w.SetValue(cell, value); err != nil {
			return err
		}
	}
	return nil
}

// rangeNames converts a 1-based rectangle to its A1 corner names.
func rangeNames(left, top, right, bottom int) (string, string, error) {
	topLeft, err := excelize.CoordinatesToCellName(left, top)
	if err != nil {
		return "", "", fmt.Errorf("layout: %w", err)
	}
	bottomRight, err := excelize.CoordinatesToCellName(right, bottom)
	if err != nil {
		return "", "", fmt.Errorf("layout: %w", err)
	}
	return topLeft, bottomRight, nil
}

func stringsToValues(headers []string) []any {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return values
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

// =============================================================================
// FIRST LOGICAL COLUMN
// =============================================================================

func renderObjectPermissions(w SheetWriter, row int, items []metadata.ObjectPermission) (int, error) {
	t := table{
		title:   "Object Permissions",
		anchor:  PrimaryColumn,
		headers: []string{"Name", "Allow Read", "Allow Create", "Allow Edit", "Allow Delete", "View All", "Modify All"},
	}
	for _, item := range items {
		if !item.Any() {
			continue
		}
		t.rows = append(t.rows, []any{
			item.Object,
			item.AllowRead,
			item.AllowCreate,
			item.AllowEdit,
			item.AllowDelete,
			item.ViewAllRecords,
			item.ModifyAllRecords,
		})
	}
	return renderTable(w, row, t)
}

func renderRecordTypeVisibilities(w SheetWriter, row int, items []metadata.RecordTypeVisibility) (int, error) {
	t := table{
		title:   "Record Type Visibility",
		anchor:  PrimaryColumn,
		headers: []string{"Object name", "Record type", "Default", "Visible"},
	}
	for _, item := range items {
		object, recordType := metadata.SplitReference(item.RecordType)
		t.rows = append(t.rows, []any{object, recordType, item.Default, item.Visible})
	}
	return renderTable(w, row, t)
}

// Layout assignments without a record type apply to the object's master
// layout; columns A and B stay empty for them.
func renderLayoutAssignments(w SheetWriter, row int, items []metadata.LayoutAssignment) (int, error) {
	t := table{
		title:   "Layout Assignment",
		anchor:  PrimaryColumn,
		headers: []string{"Object name", "Record type", "Layout name"},
	}
	for _, item := range items {
		var object, recordType string
		if item.RecordType != "" {
			object, recordType = metadata.SplitReference(item.RecordType)
		}
		t.rows = append(t.rows, []any{object, recordType, item.Layout})
	}
	return renderTable(w, row, t)
}

func renderTabVisibilities(w SheetWriter, row int, items []metadata.TabVisibility) (int, error) {
	t := table{
		title:   "Tab Visibility",
		anchor:  PrimaryColumn,
		headers: []string{"Tab name", "Visible"},
	}
	for _, item := range items {
		t.rows = append(t.rows, []any{item.Tab, item.Visibility})
	}
	return renderTable(w, row, t)
}

func renderApplicationVisibilities(w SheetWriter, row int, items []metadata.ApplicationVisibility) (int, error) {
	t := table{
		title:   "Application Visibility",
		anchor:  PrimaryColumn,
		headers: []string{"Application", "Default"},
	}
	for _, item := range items {
		if !item.Visible {
			continue
		}
		t.rows = append(t.rows, []any{item.Application, item.Default})
	}
	return renderTable(w, row, t)
}

// renderNames draws the single-column sections listing only enabled names.
func renderNames(w SheetWriter, row int, title string, names []string) (int, error) {
	t := table{
		title:   title,
		anchor:  PrimaryColumn,
		headers: []string{"Name"},
	}
	for _, name := range names {
		t.rows = append(t.rows, []any{name})
	}
	return renderTable(w, row, t)
}

func renderPageAccesses(w SheetWriter, row int, items []metadata.PageAccess) (int, error) {
	var names []string
	for _, item := range items {
		if item.Enabled {
			names = append(names, item.ApexPage)
		}
	}
	return renderNames(w, row, "Page Access", names)
}

func renderClassAccesses(w SheetWriter, row int, items []metadata.ClassAccess) (int, error) {
	var names []string
	for _, item := range items {
		if item.Enabled {
			names = append(names, item.ApexClass)
		}
	}
	return renderNames(w, row, "Class Access", names)
}

func renderCustomSettingAccesses(w SheetWriter, row int, items []metadata.CustomSettingAccess) (int, error) {
	var names []string
	for _, item := range items {
		if item.Enabled {
			names = append(names, item.Name)
		}
	}
	return renderNames(w, row, "Custom Setting Access", names)
}

func renderUserPermissions(w SheetWriter, row int, items []metadata.UserPermission) (int, error) {
	var names []string
	for _, item := range items {
		if item.Enabled {
			names = append(names, item.Name)
		}
	}
	return renderNames(w, row, "User Permissions", names)
}

// =============================================================================
// SECOND LOGICAL COLUMN
// =============================================================================

func renderFieldPermissions(w SheetWriter, row int, items []metadata.FieldPermission) (int, error) {
	t := table{
		title:   "Field Permissions",
		anchor:  FieldColumn,
		headers: []string{"Object name", "Field Name", "Readable", "Editable"},
	}
	for _, item := range items {
		if !item.Readable && !item.Editable {
			continue
		}
		object, field := metadata.SplitReference(item.Field)
		t.rows = append(t.rows, []any{object, field, item.Readable, item.Editable})
	}
	return renderTable(w, row, t)
}
