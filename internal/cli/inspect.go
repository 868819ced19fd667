package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/cadpost/internal/jsonfmt"
	"github.com/vvka-141/cadpost/internal/reader"
	"github.com/vvka-141/cadpost/internal/tui"
)

var inspectFlags struct {
	json bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [dir]",
	Short: "Summarize the analysis documents in dir without writing output",
	Long: `Parses the input documents and prints the dataset id, the input checksums,
and one line per component naming the documents that describe it.`,
	Args: OptionalInputDir,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectFlags.json, "json", false, "Print the summary as JSON")
}

func resetInspectFlags() {
	inspectFlags.json = false
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args, "")
	if err != nil {
		return err
	}
	defer s.closeLog()

	data, err := s.parse()
	if err != nil {
		return err
	}
	summary := buildSummary(s.dir, data)

	if inspectFlags.json {
		out, err := jsonfmt.Marshal(summary)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(summary, tui.IsStyled()))
	return nil
}

func buildSummary(dir string, data *reader.Data) tui.Summary {
	summary := tui.Summary{
		Directory:  dir,
		DatasetID:  data.DatasetID().String(),
		Inputs:     []tui.InputRow{},
		Components: []tui.ComponentRow{},
	}
	for _, in := range data.Inputs() {
		summary.Inputs = append(summary.Inputs, tui.InputRow{
			Name:     in.Name,
			Size:     in.SizeBytes,
			Checksum: in.ChecksumRaw,
		})
	}
	for _, id := range data.ComponentIDs() {
		rec, _ := data.Component(id)
		summary.Components = append(summary.Components, tui.ComponentRow{
			ID:       string(id),
			Name:     rec.ComponentName,
			Type:     string(rec.CADType),
			MetricID: string(rec.MetricID),
			Sources:  data.Sources(id),
			Points:   len(rec.Points),
		})
	}
	return summary
}
