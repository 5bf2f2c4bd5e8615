// =============================================================================
// Salesforce Permission Doc - Main Entry Point
// =============================================================================
//
// USAGE:
//   ppsdoc pps-doc <source> [-o DIR]   - Export profiles and permission sets to XLSX
//   ppsdoc version                     - Display the application version
//
// ARCHITECTURE:
//   - cmd/                 : CLI command definitions (Cobra)
//   - internal/config      : YAML run configuration
//   - internal/metadata    : metadata parsing and value normalization
//   - internal/layout      : section renderers and sheet composer
//   - internal/export      : workbook lifetime (open / add / save)
//   - internal/converter   : discovery-to-workbook pipeline
//   - pkg/utils            : file discovery and sheet naming helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sfdc-pps-doc/cmd"
)

func main() {
	cmd.Execute()
}
