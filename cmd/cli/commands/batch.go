package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crashify360/internal/assessment"
	"crashify360/internal/model"
)

var batchFile string

// BatchCmd represents the batch command
var BatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a batch of cases from a JSON file",
	Long: `Evaluate every case in a JSON file. Each case is processed independently;
an invalid case is reported but never fails the batch.

The file holds a JSON array of case objects:
  [{"vin": "...", "policy_type": "comprehensive", "policy_value": 20000,
    "salvage_value": 5000, "repair_quote": 15000, "loss_type": "client"}]

Examples:
  crashify batch --file cases.json`,
	RunE: runBatch,
}

func init() {
	BatchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to the JSON case file")
	BatchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(batchFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", batchFile, err)
	}

	var cases []model.CaseInput
	if err := json.Unmarshal(raw, &cases); err != nil {
		return fmt.Errorf("failed to parse %s: %w", batchFile, err)
	}

	uc, err := newUseCase()
	if err != nil {
		return err
	}

	output, err := uc.AssessBatch(cmd.Context(), assessment.BatchInput{Cases: cases})
	if err != nil {
		return err
	}

	for i, item := range output.Items {
		if item.Record == nil {
			fmt.Printf("%3d. %-17s  FAILED   %s\n", i+1, item.Case.VIN, item.ValidationSummary)
			continue
		}
		fmt.Printf("%3d. %-17s  %-10s  %s\n", i+1, item.Record.VIN, item.Record.Decision, item.Record.ID)
	}

	fmt.Printf("\nRun %s: %d cases, %d successful, %d failed (%d total loss, %d repairable)\n",
		output.RunID, output.Summary.Total, output.Summary.Successful, output.Summary.Failed,
		output.Summary.TotalLosses, output.Summary.Repairable)
	return nil
}
