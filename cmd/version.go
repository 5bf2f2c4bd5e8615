// =============================================================================
// Salesforce Permission Doc - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   ppsdoc version
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and BuildDate are set at build time using ldflags:
//   go build -ldflags "-X 'github.com/ginjaninja78/sfdc-pps-doc/cmd.Version=0.1.0'"
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

// versionCmd prints version information. It skips the root command's
// configuration loading so it works from any directory.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ppsdoc - Salesforce profile and permission set documenter")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
