// =============================================================================
// Salesforce Permission Doc - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ppsdoc)
//   ├── ppsDocCmd  (ppsdoc pps-doc <source>)
//   └── versionCmd (ppsdoc version)
//
// The root command owns the global flags and prepares the configuration and
// logger before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ginjaninja78/sfdc-pps-doc/internal/config"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging regardless of log_level.
var verbose bool

// cfg and logger are set by the root command's PersistentPreRunE.
var (
	cfg    *config.Config
	logger *slog.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ppsdoc",
	Short: "Document generator from salesforce metadata",
	Long: `ppsdoc turns retrieved Salesforce profiles and permission sets into a
spreadsheet report, one sheet per profile or permission set.

Example Usage:
  ppsdoc pps-doc ./force-app/main/default          # writes ./ppsExport.xlsx
  ppsdoc pps-doc ./src -o ./reports                # writes ./reports/ppsExport.xlsx
  ppsdoc pps-doc ./src --config ./ppsdoc.yaml -v   # custom config, debug logging`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		level, err := config.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		if verbose {
			level = slog.LevelDebug
		}
		cfg = loaded
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("export failed", "error", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
