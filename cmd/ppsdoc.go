// =============================================================================
// Salesforce Permission Doc - pps-doc Command
// =============================================================================
//
// COMMAND USAGE:
//   ppsdoc pps-doc <source> [--output DIR]
//
// <source> must contain the "profiles" and "permissionsets" directories of a
// metadata retrieve. Every matching file becomes one sheet of
// <output>/ppsExport.xlsx.
//
// =============================================================================

package cmd

import (
	"github.com/ginjaninja78/sfdc-pps-doc/internal/converter"
	"github.com/spf13/cobra"
)

// outputDir is where the workbook is written.
var outputDir string

var ppsDocCmd = &cobra.Command{
	Use:   "pps-doc <source>",
	Short: "Generate document for profile and permission sets",
	Long: `The pps-doc command reads every profile and permission set below the
source directory and writes a single workbook, ppsExport.xlsx, with one sheet
per document.

Each sheet lists object permissions, record type visibility, layout
assignments, tab visibility, page and class access, application visibility,
custom setting access and user permissions in columns A-G, and field
permissions in columns I-L.

The export is all-or-nothing: if any file cannot be read or is not a
profile or permission set, no workbook is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPpsDoc(args[0])
	},
}

func init() {
	rootCmd.AddCommand(ppsDocCmd)

	ppsDocCmd.Flags().StringVarP(
		&outputDir,
		"output",
		"o",
		"./",
		"Output directory",
	)
}

func runPpsDoc(source string) error {
	logger.Info("Generating profile and permissionset document", "source", source)

	result, err := converter.New(source, cfg, logger).Run(outputDir)
	if err != nil {
		return err
	}

	logger.Debug("export complete",
		"output", result.OutputFile,
		"sheets", len(result.Sheets),
		"workbook_id", result.WorkbookID,
		"elapsed", result.ProcessingTime,
	)
	return nil
}
