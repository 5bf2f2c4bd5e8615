// =============================================================================
// Salesforce Permission Doc - Sheet Writer
// =============================================================================
//
// Renderers never hold a workbook handle. They receive a SheetWriter, a
// small capability scoped to one worksheet, and address cells in A1
// notation. ExcelSheet is the excelize-backed implementation; tests use a
// recording fake.
//
// =============================================================================

package layout

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Style names a cell style known to every SheetWriter.
type Style int

const (
	// StyleTitle is the sheet title band: header colors, centered, large font.
	StyleTitle Style = iota
	// StyleSectionTitle is a section's merged title row.
	StyleSectionTitle
	// StyleColumnHeader is a section's column-header row.
	StyleColumnHeader
	// StyleBox is the plain border drawn around a whole section.
	StyleBox
)

func (s Style) String() string {
	switch s {
	case StyleTitle:
		return "title"
	case StyleSectionTitle:
		return "section-title"
	case StyleColumnHeader:
		return "column-header"
	case StyleBox:
		return "box"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

// SheetWriter is the set of worksheet operations the layout engine needs.
// Ranges are inclusive and given as top-left and bottom-right cells.
type SheetWriter interface {
	SetValue(cell string, value any) error
	Merge(topLeft, bottomRight string) error
	Style(topLeft, bottomRight string, style Style) error
	SetColumnWidth(column string, width float64) error
}

// =============================================================================
// PALETTE
// =============================================================================

// Palette holds the colors and sizes used to build the header styles.
// Colors are hex RGB without the leading '#'.
type Palette struct {
	HeaderFill      string
	HeaderFontColor string
	TitleFontSize   float64
}

// DefaultPalette returns the teal header band with white text.
func DefaultPalette() Palette {
	return Palette{
		HeaderFill:      "2C94AB",
		HeaderFontColor: "FFFFFF",
		TitleFontSize:   16,
	}
}

// =============================================================================
// EXCELIZE IMPLEMENTATION
// =============================================================================

// Styles maps each Style to a style ID registered in one workbook.
// Style IDs are workbook-wide, so one Styles value serves every sheet.
type Styles struct {
	ids map[Style]int
}

// NewStyles registers the four layout styles in f.
func NewStyles(f *excelize.File, palette Palette) (*Styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	fill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{palette.HeaderFill}}

	defs := map[Style]*excelize.Style{
		StyleTitle: {
			Border:    border,
			Fill:      fill,
			Font:      &excelize.Font{Bold: true, Color: palette.HeaderFontColor, Size: palette.TitleFontSize},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		StyleSectionTitle: {
			Border:    border,
			Fill:      fill,
			Font:      &excelize.Font{Bold: true, Color: palette.HeaderFontColor},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		StyleColumnHeader: {
			Border: border,
			Fill:   fill,
			Font:   &excelize.Font{Bold: true, Color: palette.HeaderFontColor},
		},
		StyleBox: {
			Border: border,
		},
	}

	s := &Styles{ids: make(map[Style]int, len(defs))}
	for style, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return nil, fmt.Errorf("failed to register %s style: %w", style, err)
		}
		s.ids[style] = id
	}
	return s, nil
}

// ExcelSheet writes to one worksheet of an excelize workbook.
type ExcelSheet struct {
	file   *excelize.File
	sheet  string
	styles *Styles
}

// NewExcelSheet returns a SheetWriter for an existing sheet of f.
func NewExcelSheet(f *excelize.File, sheet string, styles *Styles) *ExcelSheet {
	return &ExcelSheet{file: f, sheet: sheet, styles: styles}
}

func (s *ExcelSheet) SetValue(cell string, value any) error {
	return s.file.SetCellValue(s.sheet, cell, value)
}

func (s *ExcelSheet) Merge(topLeft, bottomRight string) error {
	return s.file.MergeCell(s.sheet, topLeft, bottomRight)
}

func (s *ExcelSheet) Style(topLeft, bottomRight string, style Style) error {
	id, ok := s.styles.ids[style]
	if !ok {
		return fmt.Errorf("unknown style %s", style)
	}
	return s.file.SetCellStyle(s.sheet, topLeft, bottomRight, id)
}

func (s *ExcelSheet) SetColumnWidth(column string, width float64) error {
	return s.file.SetColWidth(s.sheet, column, column, width)
}
