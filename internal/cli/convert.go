package cli

import (
	"github.com/spf13/cobra"
)

var convertFlags struct {
	output string
}

var convertCmd = &cobra.Command{
	Use:   "convert [dir]",
	Short: "Merge the analysis documents in dir into one JSON file",
	Long: `Reads CADAssembly.xml, CADAssembly_metrics.xml and ComputedValues.xml from dir
(default: the working directory) and writes the consolidated component
document. Without --output the file is written to dir/cad_data.json unless
cadpost.yaml or CADPOST_OUTPUT says otherwise. Use "-o -" for stdout.`,
	Example: `  cadpost convert ./analysis_output
  cadpost convert ./analysis_output -o model.json
  cadpost convert -o - | jq '.components | keys'`,
	Args: OptionalInputDir,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "Output file path, or - for stdout")
}

func resetConvertFlags() {
	convertFlags.output = ""
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args, convertFlags.output)
	if err != nil {
		return err
	}
	defer s.closeLog()

	_, err = s.convert(cmd.OutOrStdout())
	return err
}
