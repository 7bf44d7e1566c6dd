// Package validator guards the decision engine: it rejects structurally or
// semantically invalid assessment cases before any monetary arithmetic occurs
// and surfaces soft warnings without blocking.
package validator

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"crashify360/internal/model"
	"crashify360/pkg/money"
)

// VINs are 17 characters from the 33-symbol alphabet excluding I, O and Q.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Australian mobile/landline numbers: +61 or trunk 0, then an area/mobile
// digit from [234578] and 8 digits. Separators are stripped before matching.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+?61[234578]\d{8}$`),
	regexp.MustCompile(`^0[234578]\d{8}$`),
}

var phoneSeparators = regexp.MustCompile(`[\s\-\(\)]`)

// Validator checks assessment case inputs against a fixed rule set. It is a
// stateless value component; construct one per configuration and share freely.
type Validator struct {
	rules Rules
}

// New creates a Validator enforcing the given rules.
func New(rules Rules) Validator {
	return Validator{rules: rules}
}

// ValidateVIN reports whether vin is a well-formed VIN after trimming and
// upper-casing.
func (v Validator) ValidateVIN(vin string) bool {
	return vinPattern.MatchString(strings.ToUpper(strings.TrimSpace(vin)))
}

// ValidateEmail reports whether email has a plausible local@domain shape.
func (v Validator) ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidatePhone reports whether phone is a valid Australian number in
// country-code-prefixed or trunk-prefixed form.
func (v Validator) ValidatePhone(phone string) bool {
	stripped := phoneSeparators.ReplaceAllString(phone, "")
	for _, p := range phonePatterns {
		if p.MatchString(stripped) {
			return true
		}
	}
	return false
}

// ValidatePolicyType reports whether policyType is a recognized policy type.
func (v Validator) ValidatePolicyType(policyType string) bool {
	lower := strings.ToLower(policyType)
	for _, t := range v.rules.PolicyTypes {
		if lower == t {
			return true
		}
	}
	return false
}

// ValidateLossType reports whether lossType is "client" or "third_party".
func (v Validator) ValidateLossType(lossType string) bool {
	switch model.LossType(strings.ToLower(lossType)) {
	case model.LossTypeClient, model.LossTypeThirdParty:
		return true
	}
	return false
}

// checkMonetary validates a monetary amount against optional bounds.
// Returns ok and, when not ok, the message naming the violated constraint.
func checkMonetary(value float64, fieldName string, minValue, maxValue *float64) (bool, string) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false, fmt.Sprintf("%s must be a valid number", fieldName)
	}
	if value < 0 {
		return false, fmt.Sprintf("%s cannot be negative", fieldName)
	}
	if minValue != nil && value < *minValue {
		return false, fmt.Sprintf("%s must be at least %s", fieldName, money.Format(*minValue))
	}
	if maxValue != nil && value > *maxValue {
		return false, fmt.Sprintf("%s cannot exceed %s", fieldName, money.Format(*maxValue))
	}
	return true, ""
}

// ValidateCase validates all inputs for a total-loss calculation. Every rule
// is evaluated — nothing short-circuits — so one call reports every violation
// at once.
func (v Validator) ValidateCase(in model.CaseInput) Result {
	var result Result

	if !v.ValidateVIN(in.VIN) {
		result.addError("vin",
			"Invalid VIN format. Must be 17 characters, alphanumeric (no I, O, Q)",
			in.VIN)
	}

	if !v.ValidatePolicyType(in.PolicyType) {
		result.addError("policy_type",
			fmt.Sprintf("Invalid policy type. Must be one of: %s", strings.Join(v.rules.PolicyTypes, ", ")),
			in.PolicyType)
	}

	if !v.ValidateLossType(in.LossType) {
		result.addError("loss_type",
			fmt.Sprintf("Invalid loss type. Must be one of: %s, %s", model.LossTypeClient, model.LossTypeThirdParty),
			in.LossType)
	}

	policyOK, msg := checkMonetary(in.PolicyValue, "Policy Value",
		&v.rules.MinPolicyValue, &v.rules.MaxPolicyValue)
	if !policyOK {
		result.addError("policy_value", msg, in.PolicyValue)
	}

	salvageOK, msg := checkMonetary(in.SalvageValue, "Salvage Value",
		&v.rules.MinSalvageValue, nil)
	if !salvageOK {
		result.addError("salvage_value", msg, in.SalvageValue)
	} else if in.SalvageValue > in.PolicyValue {
		// Cross-field constraint, checked only once the numeric check passed.
		result.addError("salvage_value",
			"Salvage value cannot exceed policy value",
			in.SalvageValue)
	}

	repairOK, msg := checkMonetary(in.RepairQuote, "Repair Quote",
		&v.rules.MinRepairQuote, nil)
	if !repairOK {
		result.addError("repair_quote", msg, in.RepairQuote)
	} else if policyOK && in.PolicyValue > 0 && in.RepairQuote > in.PolicyValue*v.rules.MaxRepairQuoteRatio {
		result.addWarning("repair_quote",
			fmt.Sprintf("Repair quote is %.1fx the policy value. Please verify.",
				in.RepairQuote/in.PolicyValue))
	}

	if in.OwnerEmail != "" && !v.ValidateEmail(in.OwnerEmail) {
		result.addError("owner_email", "Invalid email address format", in.OwnerEmail)
	}

	if in.OwnerPhone != "" && !v.ValidatePhone(in.OwnerPhone) {
		result.addError("owner_phone", "Invalid phone number format (Australian format required)", in.OwnerPhone)
	}

	return result
}
