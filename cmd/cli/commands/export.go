package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"crashify360/internal/assessment"
)

var exportPath string

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the decision history to CSV",
	Long: `Export all stored decisions to a CSV file. Without --output the file lands
in the configured output directory with a timestamped name.

Examples:
  crashify export
  crashify export --output /tmp/decisions.csv`,
	RunE: runExport,
}

func init() {
	ExportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "CSV destination (default: output dir, timestamped)")
}

func runExport(cmd *cobra.Command, args []string) error {
	uc, err := newUseCase()
	if err != nil {
		return err
	}

	output, err := uc.ExportCSV(cmd.Context(), assessment.ExportInput{Path: exportPath})
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d decisions to %s\n", output.Count, output.Path)
	return nil
}
