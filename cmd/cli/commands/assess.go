package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"crashify360/internal/assessment"
	"crashify360/internal/model"
)

var (
	assessVIN         string
	assessPolicyType  string
	assessPolicyValue float64
	assessSalvage     float64
	assessRepair      float64
	assessLossType    string
	assessOwnerEmail  string
	assessOwnerPhone  string
	assessNotes       string
)

// AssessCmd represents the assess command
var AssessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Evaluate a single total-loss case",
	Long: `Evaluate a single case against the total-loss threshold and store the decision.

Examples:
  crashify assess --vin 1HGBH41JXMN109186 --policy-type comprehensive \
      --policy-value 20000 --salvage 5000 --repair 15000 --loss-type client`,
	RunE: runAssess,
}

func init() {
	AssessCmd.Flags().StringVar(&assessVIN, "vin", "", "Vehicle Identification Number (17 chars)")
	AssessCmd.Flags().StringVar(&assessPolicyType, "policy-type", "comprehensive", "Policy type")
	AssessCmd.Flags().Float64Var(&assessPolicyValue, "policy-value", 0, "Policy value in dollars")
	AssessCmd.Flags().Float64Var(&assessSalvage, "salvage", 0, "Salvage value in dollars")
	AssessCmd.Flags().Float64Var(&assessRepair, "repair", 0, "Repair quote in dollars")
	AssessCmd.Flags().StringVar(&assessLossType, "loss-type", "client", "Loss type: client or third_party")
	AssessCmd.Flags().StringVar(&assessOwnerEmail, "owner-email", "", "Owner email (optional)")
	AssessCmd.Flags().StringVar(&assessOwnerPhone, "owner-phone", "", "Owner phone (optional)")
	AssessCmd.Flags().StringVar(&assessNotes, "notes", "", "Assessor notes (optional)")

	AssessCmd.MarkFlagRequired("vin")
	AssessCmd.MarkFlagRequired("policy-value")
	AssessCmd.MarkFlagRequired("repair")
}

func runAssess(cmd *cobra.Command, args []string) error {
	uc, err := newUseCase()
	if err != nil {
		return err
	}

	output, err := uc.Assess(cmd.Context(), assessment.AssessInput{
		Case: model.CaseInput{
			VIN:          assessVIN,
			PolicyType:   assessPolicyType,
			PolicyValue:  assessPolicyValue,
			SalvageValue: assessSalvage,
			RepairQuote:  assessRepair,
			LossType:     assessLossType,
			OwnerEmail:   assessOwnerEmail,
			OwnerPhone:   assessOwnerPhone,
		},
		Notes: assessNotes,
	})
	if err != nil {
		return err
	}

	if !output.Accepted() {
		fmt.Println("Validation failed:")
		for _, fieldErr := range output.Validation.Errors {
			fmt.Printf("  ✗ %s: %s\n", fieldErr.Field, fieldErr.Message)
		}
		return fmt.Errorf("case rejected")
	}

	for _, warning := range output.Validation.Warnings {
		fmt.Printf("  ⚠ %s: %s\n", warning.Field, warning.Message)
	}

	fmt.Println(output.Explanation)
	if output.Persisted {
		fmt.Printf("Stored as %s\n", output.ID)
	} else {
		fmt.Println("Warning: decision was not persisted")
	}
	return nil
}
