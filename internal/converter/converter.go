// =============================================================================
// Salesforce Permission Doc - Converter Module
// =============================================================================
//
// This module runs one export from a metadata source directory to a single
// workbook.
//
// CONVERSION PIPELINE:
//   1. Open the export session (blank workbook)
//   2. Discover profile and permission set files
//   3. Read and parse the files (concurrently, bounded by max_concurrency)
//   4. Add each parsed document to the session, in discovery order
//   5. Save the workbook to the output directory
//
// The batch is all-or-nothing: the first error (in discovery order) aborts
// the run and nothing is written.
//
// =============================================================================

package converter

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/ginjaninja78/sfdc-pps-doc/internal/config"
	"github.com/ginjaninja78/sfdc-pps-doc/internal/export"
	"github.com/ginjaninja78/sfdc-pps-doc/internal/layout"
	"github.com/ginjaninja78/sfdc-pps-doc/internal/metadata"
	"github.com/ginjaninja78/sfdc-pps-doc/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result describes a completed export.
type Result struct {
	// OutputFile is the path of the written workbook.
	OutputFile string

	// Sheets lists the sheet names, one per document, in workbook order.
	Sheets []string

	// WorkbookID is the identifier stamped into the workbook properties.
	WorkbookID string

	// ProcessingTime is the wall time of the whole run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter exports the metadata found below one source directory.
type Converter struct {
	sourceDir string
	cfg       *config.Config
	files     *utils.FileManager
	logger    *slog.Logger

	// parse is metadata.ParseFile outside of tests.
	parse func(path string) (map[string]any, error)
}

// New creates a Converter for sourceDir.
func New(sourceDir string, cfg *config.Config, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		sourceDir: sourceDir,
		cfg:       cfg,
		files:     utils.NewFileManager(sourceDir, cfg.SourceSubdirs, cfg.FileMarkers),
		logger:    logger,
		parse:     metadata.ParseFile,
	}
}

// parsed is the outcome of reading one file.
type parsed struct {
	tree map[string]any
	err  error
}

// Run executes the pipeline and writes <outputDir>/ppsExport.xlsx.
func (c *Converter) Run(outputDir string) (Result, error) {
	startTime := time.Now()
	var result Result

	session := export.NewSession(c.logger, c.palette())
	if err := session.Open(export.OutputFileName); err != nil {
		return result, err
	}
	defer session.Close()

	paths, err := c.files.DiscoverDocuments()
	if err != nil {
		return result, err
	}
	c.logger.Debug("discovered metadata files", "count", len(paths))

	docs := c.parseAll(paths)

	// Sheets are built one at a time; the workbook is not safe for
	// concurrent mutation.
	for i, path := range paths {
		if docs[i].err != nil {
			return result, docs[i].err
		}
		if err := session.Add(filepath.Base(path), docs[i].tree); err != nil {
			return result, err
		}
	}

	if err := session.Save(outputDir); err != nil {
		return result, err
	}

	result.OutputFile = filepath.Join(outputDir, export.OutputFileName)
	result.Sheets = session.Sheets()
	result.WorkbookID = session.ID()
	result.ProcessingTime = time.Since(startTime)
	return result, nil
}

// parseAll reads and parses every path with at most MaxConcurrency files in
// flight. Results are returned in the order of paths.
func (c *Converter) parseAll(paths []string) []parsed {
	results := make([]parsed, len(paths))

	workers := c.cfg.MaxConcurrency
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			tree, err := c.parse(path)
			results[i] = parsed{tree: tree, err: err}
		}(i, path)
	}
	wg.Wait()

	return results
}

func (c *Converter) palette() layout.Palette {
	return layout.Palette{
		HeaderFill:      c.cfg.Style.HeaderFill,
		HeaderFontColor: c.cfg.Style.HeaderFontColor,
		TitleFontSize:   c.cfg.Style.TitleFontSize,
	}
}
