package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"crashify360/pkg/money"
)

// LookupCmd represents the lookup command
var LookupCmd = &cobra.Command{
	Use:   "lookup <vin>",
	Short: "Fetch the market valuation for a VIN",
	Long: `Fetch the external market valuation for a VIN from Auto Grap, with any
stored decision history attached. Requires AUTO_GRAP_KEY.

Examples:
  crashify lookup 1HGBH41JXMN109186`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	uc, err := newUseCase()
	if err != nil {
		return err
	}

	output, err := uc.Lookup(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	v := output.Valuation
	fmt.Printf("VIN:           %s\n", v.VIN)
	if v.Make != "" {
		fmt.Printf("Vehicle:       %d %s %s %s\n", v.Year, v.Make, v.Model, v.Variant)
	}
	fmt.Printf("Market value:  %s\n", money.Format(v.MarketValue))
	fmt.Printf("Trade-in:      %s\n", money.Format(v.TradeInValue))
	fmt.Printf("Retail:        %s\n", money.Format(v.RetailValue))
	if v.Confidence != "" {
		fmt.Printf("Confidence:    %s\n", v.Confidence)
	}

	if len(output.History) > 0 {
		fmt.Printf("\nDecision history (%d):\n", len(output.History))
		for _, d := range output.History {
			fmt.Printf("  %s  %-10s  repair %s  threshold %s\n",
				d.ID, d.Decision, money.Format(d.RepairQuote), money.Format(d.Threshold))
		}
	}
	return nil
}
