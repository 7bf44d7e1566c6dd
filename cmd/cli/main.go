package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crashify360/cmd/cli/commands"
)

var rootCmd = &cobra.Command{
	Use:   "crashify",
	Short: "Crashify360 - Vehicle total-loss assessment",
	Long: `Crashify360 - Vehicle total-loss assessment from the command line.

Available commands:
  assess - Evaluate a single case and store the decision
  batch  - Evaluate a JSON file of cases
  lookup - Fetch the market valuation for a VIN
  parse  - Extract salvage values from offer text
  stats  - Show decision history statistics
  export - Export the decision history to CSV

Examples:
  crashify assess --vin 1HGBH41JXMN109186 --policy-value 20000 --repair 15000
  crashify batch --file cases.json
  crashify stats`,
}

func init() {
	rootCmd.AddCommand(commands.AssessCmd)
	rootCmd.AddCommand(commands.BatchCmd)
	rootCmd.AddCommand(commands.LookupCmd)
	rootCmd.AddCommand(commands.ParseCmd)
	rootCmd.AddCommand(commands.StatsCmd)
	rootCmd.AddCommand(commands.ExportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
