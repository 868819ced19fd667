package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// rootFlags holds persistent flags shared by every command.
var rootFlags struct {
	verbose   bool
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "cadpost",
	Short: "Consolidate CAD assembly analysis output into one JSON document",
	Long: `cadpost reads the documents a CAD analysis run leaves in its output directory
(CADAssembly.xml, CADAssembly_metrics.xml and ComputedValues.xml), merges
everything known about each component, and writes a single canonical JSON file.

Settings are read from cadpost.yaml in the input directory, then from
CADPOST_* environment variables (a .env file in the working directory is
loaded first), then from flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  20 - A required input document is missing
  21 - An input document is malformed
  22 - The output file could not be written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFormat, "log-format", "", "Log format: console or json (default from config, else console)")
}

func resetRootFlags() {
	rootFlags.verbose = false
	rootFlags.logFormat = ""
}
