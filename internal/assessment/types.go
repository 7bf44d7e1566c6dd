package assessment

import (
	"time"

	"crashify360/internal/model"
	"crashify360/internal/validator"
	"crashify360/internal/valuation"
	"crashify360/pkg/autograp"
	"crashify360/pkg/salvageparse"
)

// AssessInput is the input for a single assessment.
type AssessInput struct {
	Case  model.CaseInput
	Notes string // Free-text assessor notes, sanitized before use
}

// AssessOutput is the outcome of a single assessment. Record is nil when
// validation failed; Validation always carries the full outcome, warnings
// included.
type AssessOutput struct {
	ID          string
	Record      *model.Decision
	Explanation string
	Validation  validator.Result
	Persisted   bool
}

// Accepted reports whether the case passed validation and a decision was
// computed.
func (o AssessOutput) Accepted() bool {
	return o.Record != nil
}

// BatchInput is the input for a batch assessment run.
type BatchInput struct {
	Cases []model.CaseInput
}

// BatchOutput is the result of a batch run. Items preserves input order;
// successful items carry persisted records with storage-assigned IDs.
type BatchOutput struct {
	RunID   string
	Items   []valuation.BatchItem
	Summary valuation.BatchSummary
}

// SearchInput filters the decision history.
type SearchInput struct {
	VIN            string
	MinPolicyValue *float64
	MaxPolicyValue *float64
	LossType       string
	Decision       string
	From           *time.Time
	To             *time.Time
}

// ExportInput names the CSV destination. An empty Path exports to a
// timestamped file under the configured output directory.
type ExportInput struct {
	Path string
}

// ExportOutput reports where the export landed and how many rows it holds.
type ExportOutput struct {
	Path  string
	Count int
}

// LookupOutput carries the external market valuation for a VIN. History holds
// prior decisions for the same VIN; it is populated best-effort and may be
// empty even on a successful lookup.
type LookupOutput struct {
	Valuation autograp.Valuation
	History   []model.Decision
}

// ParseSalvageInput carries raw salvage-offer text, typically an email reply
// body from a salvage buyer. PolicyValue, when positive, enables plausibility
// validation of the extracted value.
type ParseSalvageInput struct {
	Text        string
	PolicyValue float64
}

// ParseSalvageOutput wraps the parser result. Message carries the validation
// outcome when a policy value was supplied; Valid is false only on a hard
// violation, advisory messages keep Valid true.
type ParseSalvageOutput struct {
	Result  salvageparse.ParseResult
	Valid   bool
	Message string
}

// SendSalvageInput is the input for dispatching salvage tender requests.
type SendSalvageInput struct {
	Vehicle        model.Vehicle
	PolicyValue    float64
	LossType       model.LossType
	Recipients     []string
	CC             []string
	Photos         []string
	AdditionalInfo string
}

// SendSalvageOutput tallies the dispatch outcome per recipient.
type SendSalvageOutput struct {
	Sent   int
	Failed int
	Errors []string
}
