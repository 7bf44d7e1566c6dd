package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crashify360/internal/assessment"
	"crashify360/pkg/money"
)

var (
	parseFile        string
	parsePolicyValue float64
)

// ParseCmd represents the parse command
var ParseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract salvage values from offer text",
	Long: `Parse free-form salvage offer text (typically an email reply body) and
extract dollar values with confidence scoring. With --policy-value the best
value is also checked for plausibility against the policy.

Examples:
  crashify parse --file offer.txt
  crashify parse --file offer.txt --policy-value 20000`,
	RunE: runParse,
}

func init() {
	ParseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "Path to the offer text file")
	ParseCmd.Flags().Float64Var(&parsePolicyValue, "policy-value", 0, "Policy value for plausibility checks")
	ParseCmd.MarkFlagRequired("file")
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(parseFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", parseFile, err)
	}

	uc, err := newUseCase()
	if err != nil {
		return err
	}

	output, err := uc.ParseSalvage(cmd.Context(), assessment.ParseSalvageInput{
		Text:        string(raw),
		PolicyValue: parsePolicyValue,
	})
	if err != nil {
		return err
	}

	if !output.Result.Success() {
		fmt.Println("No salvage values found.")
		return nil
	}

	fmt.Printf("Best value:   %s\n", money.Format(output.Result.BestValue))
	fmt.Printf("Confidence:   %.0f%%\n", output.Result.Confidence*100)
	fmt.Printf("Method:       %s\n", output.Result.Method)
	fmt.Printf("Values found: %d\n", len(output.Result.Values))
	if output.Message != "" {
		if output.Valid {
			fmt.Printf("Note: %s\n", output.Message)
		} else {
			fmt.Printf("Invalid: %s\n", output.Message)
		}
	}
	return nil
}
