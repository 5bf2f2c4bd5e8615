package layout

import (
	"github.com/ginjaninja78/sfdc-pps-doc/internal/metadata"
)

const (
	// firstSectionRow is where the first section of either logical column
	// starts; rows 1-2 hold the title band.
	firstSectionRow = 3

	// sectionPadding is the number of rows added after each section's last
	// row before the next section's title.
	sectionPadding = 2

	wideColumn   = 40
	narrowColumn = 10
)

var columnWidths = []struct {
	column string
	width  float64
}{
	{"A", wideColumn},
	{"B", wideColumn},
	{"C", wideColumn},
	{"D", narrowColumn},
	{"E", narrowColumn},
	{"F", narrowColumn},
	{"G", narrowColumn},
	{"H", narrowColumn},
	{"I", wideColumn},
	{"J", wideColumn},
	{"K", narrowColumn},
	{"L", narrowColumn},
}

// Extent reports the last row written in each logical column.
type Extent struct {
	PrimaryLastRow int
	FieldLastRow   int
}

// BuildSheet lays out one permission document on w.
//
// The first logical column (A-G) stacks the nine sections top to bottom with
// padding between them. The field permission section (I-L) starts at row 3
// regardless of how tall the first column becomes; the two columns do not
// share cells, only rows.
func BuildSheet(w SheetWriter, name string, p *metadata.Permissions) (Extent, error) {
	var extent Extent

	if err := w.SetValue("A1", name+" - "+p.Description); err != nil {
		return extent, err
	}
	if err := w.Merge("A1", "L2"); err != nil {
		return extent, err
	}
	if err := w.Style("A1", "L2", StyleTitle); err != nil {
		return extent, err
	}

	steps := []func(row int) (int, error){
		func(row int) (int, error) { return renderObjectPermissions(w, row, p.ObjectPermissions) },
		func(row int) (int, error) { return renderRecordTypeVisibilities(w, row, p.RecordTypeVisibilities) },
		func(row int) (int, error) { return renderLayoutAssignments(w, row, p.LayoutAssignments) },
		func(row int) (int, error) { return renderTabVisibilities(w, row, p.TabVisibilities) },
		func(row int) (int, error) { return renderPageAccesses(w, row, p.PageAccesses) },
		func(row int) (int, error) { return renderClassAccesses(w, row, p.ClassAccesses) },
		func(row int) (int, error) { return renderApplicationVisibilities(w, row, p.ApplicationVisibilities) },
		func(row int) (int, error) { return renderCustomSettingAccesses(w, row, p.CustomSettingAccesses) },
		func(row int) (int, error) { return renderUserPermissions(w, row, p.UserPermissions) },
	}

	row := firstSectionRow
	for _, step := range steps {
		last, err := step(row)
		if err != nil {
			return extent, err
		}
		extent.PrimaryLastRow = last
		row = last + sectionPadding
	}

	last, err := renderFieldPermissions(w, firstSectionRow, p.FieldPermissions)
	if err != nil {
		return extent, err
	}
	extent.FieldLastRow = last

	for _, cw := range columnWidths {
		if err := w.SetColumnWidth(cw.column, cw.width); err != nil {
			return extent, err
		}
	}

	return extent, nil
}
