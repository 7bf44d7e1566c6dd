package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"crashify360/pkg/money"
)

// StatsCmd represents the stats command
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over the stored decision history",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	uc, err := newUseCase()
	if err != nil {
		return err
	}

	stats, err := uc.Statistics(cmd.Context())
	if err != nil {
		return err
	}

	if stats.TotalDecisions == 0 {
		fmt.Println("No decisions stored yet.")
		return nil
	}

	fmt.Printf("Total decisions:   %d\n", stats.TotalDecisions)
	fmt.Printf("Total losses:      %d (%.1f%%)\n", stats.TotalLosses, stats.TotalLossPercentage)
	fmt.Printf("Repairable:        %d\n", stats.Repairable)
	fmt.Printf("Avg policy value:  %s\n", money.Format(stats.AvgPolicyValue))
	fmt.Printf("Avg repair quote:  %s\n", money.Format(stats.AvgRepairQuote))

	if len(stats.LossTypes) > 0 {
		fmt.Println("Loss types:")
		for lossType, count := range stats.LossTypes {
			fmt.Printf("  %-14s %d\n", lossType, count)
		}
	}
	if stats.FirstDecision != nil && stats.LastDecision != nil {
		fmt.Printf("Period:            %s — %s\n",
			stats.FirstDecision.Format("2006-01-02"), stats.LastDecision.Format("2006-01-02"))
	}
	return nil
}
