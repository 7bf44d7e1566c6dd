package validator

import (
	"fmt"
	"strings"
)

// FieldError is one field-attributed validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// FieldWarning is a non-blocking validation warning.
type FieldWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of one validation pass. Errors and warnings are kept
// in rule-evaluation order. A Result is valid iff the error list is empty;
// warnings never affect validity.
type Result struct {
	Errors   []FieldError   `json:"errors"`
	Warnings []FieldWarning `json:"warnings"`
}

func (r *Result) addError(field, message string, value any) {
	fe := FieldError{Field: field, Message: message}
	if value != nil {
		fe.Value = fmt.Sprintf("%v", value)
	}
	r.Errors = append(r.Errors, fe)
}

func (r *Result) addWarning(field, message string) {
	r.Warnings = append(r.Warnings, FieldWarning{Field: field, Message: message})
}

// IsValid reports whether validation passed.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Summary returns a human-readable validation summary.
func (r Result) Summary() string {
	if r.IsValid() {
		summary := "All validations passed"
		if len(r.Warnings) > 0 {
			summary += fmt.Sprintf(" (%d warning(s))", len(r.Warnings))
		}
		return summary
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Validation failed with %d error(s)", len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(&sb, "\n  - %s: %s", e.Field, e.Message)
	}
	return sb.String()
}
