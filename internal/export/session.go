// =============================================================================
// Salesforce Permission Doc - Export Session
// =============================================================================
//
// A Session owns one workbook for the whole run:
//
//   Open(name)      create a blank workbook (it comes with a scaffold sheet)
//   Add(doc, tree)  one new sheet per profile or permission set
//   Save(dir)       drop the scaffold sheet, write <dir>/<name>
//
// Save is the only call that touches the file system. A Session is not safe
// for concurrent use; callers serialize Add.
//
// =============================================================================

package export

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/sfdc-pps-doc/internal/layout"
	"github.com/ginjaninja78/sfdc-pps-doc/internal/metadata"
	"github.com/ginjaninja78/sfdc-pps-doc/pkg/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// OutputFileName is the name of the workbook written by the pps-doc command.
const OutputFileName = "ppsExport.xlsx"

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotInitialized is returned by Add and Save before Open.
var ErrNotInitialized = errors.New("export session is not initialized")

// ErrAlreadyOpen is returned by a second Open.
var ErrAlreadyOpen = errors.New("export session is already open")

// ErrInvalidDocument is returned by Add for a tree with neither a Profile nor
// a PermissionSet root.
var ErrInvalidDocument = metadata.ErrInvalidDocument

// =============================================================================
// SESSION
// =============================================================================

// Session accumulates one sheet per document in a single workbook.
type Session struct {
	logger  *slog.Logger
	palette layout.Palette

	file     *excelize.File
	fileName string
	scaffold string
	styles   *layout.Styles
	id       string

	// sheets holds the document sheet names in the order they were added.
	sheets []string

	// build is layout.BuildSheet outside of tests.
	build func(w layout.SheetWriter, name string, p *metadata.Permissions) (layout.Extent, error)
}

// NewSession creates a closed session. Call Open before adding documents.
func NewSession(logger *slog.Logger, palette layout.Palette) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{logger: logger, palette: palette, build: layout.BuildSheet}
}

// Open creates the blank workbook that Save will write as fileName.
func (s *Session) Open(fileName string) error {
	if s.file != nil {
		return ErrAlreadyOpen
	}

	f := excelize.NewFile()
	styles, err := layout.NewStyles(f, s.palette)
	if err != nil {
		f.Close()
		return err
	}

	id := uuid.New().String()
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      "Profile and permission set export",
		Subject:    "Salesforce access grants",
		Creator:    "ppsdoc",
		Identifier: id,
		Created:    time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		f.Close()
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	s.file = f
	s.fileName = fileName
	s.scaffold = f.GetSheetName(0)
	s.styles = styles
	s.id = id
	s.sheets = nil

	s.logger.Debug("opened workbook", "file", fileName, "id", id)
	return nil
}

// ID returns the identifier stamped into the workbook properties.
func (s *Session) ID() string {
	return s.id
}

// Sheets returns the names of the document sheets added so far.
func (s *Session) Sheets() []string {
	return append([]string(nil), s.sheets...)
}

// Add lays out one parsed document on a new sheet. documentName is the
// source file name; the sheet is named after its part before the first dot.
func (s *Session) Add(documentName string, tree map[string]any) error {
	if s.file == nil {
		return ErrNotInitialized
	}

	p, err := metadata.FromTree(tree)
	if err != nil {
		return fmt.Errorf("%s: %w", documentName, err)
	}

	base := utils.BaseName(documentName)
	sheet := utils.UniqueSheetName(utils.SheetName(base), s.sheetTaken)
	if _, err := s.file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	extent, err := s.build(layout.NewExcelSheet(s.file, sheet, s.styles), base, p)
	if err != nil {
		// Drop the partial sheet so the workbook only holds tracked sheets.
		if delErr := s.file.DeleteSheet(sheet); delErr != nil {
			return fmt.Errorf("failed to lay out %s: %w", documentName, errors.Join(err, delErr))
		}
		return fmt.Errorf("failed to lay out %s: %w", documentName, err)
	}
	s.sheets = append(s.sheets, sheet)

	s.logger.Debug("added sheet",
		"document", documentName,
		"sheet", sheet,
		"kind", p.Kind,
		"primary_last_row", extent.PrimaryLastRow,
		"field_last_row", extent.FieldLastRow,
	)
	if extent.FieldLastRow > extent.PrimaryLastRow {
		s.logger.Debug("field permissions extend below the first column", "sheet", sheet)
	}
	return nil
}

// Save removes the scaffold sheet and writes the workbook to
// <outputDirectory>/<fileName>, creating the directory if needed. The
// session is closed afterwards.
func (s *Session) Save(outputDirectory string) error {
	if s.file == nil {
		return ErrNotInitialized
	}

	// A workbook cannot be empty; the scaffold stays if nothing was added.
	if len(s.sheets) > 0 {
		if err := s.file.DeleteSheet(s.scaffold); err != nil {
			return fmt.Errorf("failed to remove scaffold sheet: %w", err)
		}
		s.file.SetActiveSheet(0)
	} else {
		s.logger.Warn("no documents were added; workbook keeps its scaffold sheet")
	}

	if err := utils.EnsureDirectory(outputDirectory); err != nil {
		return err
	}

	path := filepath.Join(outputDirectory, s.fileName)
	if err := s.file.SaveAs(path); err != nil {
		return err
	}
	s.logger.Debug("saved workbook", "path", path, "sheets", len(s.sheets))

	err := s.file.Close()
	s.file = nil
	return err
}

// Close discards an unsaved workbook. It is a no-op after Save.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *Session) sheetTaken(name string) bool {
	for _, existing := range s.file.GetSheetList() {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}
