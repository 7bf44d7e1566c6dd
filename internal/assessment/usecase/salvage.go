package usecase

import (
	"context"
	"errors"
	"strings"

	"crashify360/internal/assessment"
	"crashify360/internal/model"
	"crashify360/pkg/mailer"
)

// ErrMailerUnavailable is returned when no SMTP mailer is configured.
var ErrMailerUnavailable = errors.New("salvage mailer not configured")

// ParseSalvage extracts salvage values from free-form offer text and, when a
// policy value is supplied, validates the best value against it.
func (uc *implUseCase) ParseSalvage(ctx context.Context, input assessment.ParseSalvageInput) (assessment.ParseSalvageOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return assessment.ParseSalvageOutput{}, assessment.ErrEmptyText
	}

	result := uc.parser.Parse(ctx, input.Text)
	output := assessment.ParseSalvageOutput{Result: result, Valid: true}

	if input.PolicyValue > 0 && result.BestValue > 0 {
		output.Valid, output.Message = uc.parser.ValidateValue(result.BestValue, input.PolicyValue)
	}
	return output, nil
}

// SendSalvageRequest emails a salvage tender request to each recipient.
func (uc *implUseCase) SendSalvageRequest(ctx context.Context, input assessment.SendSalvageInput) (assessment.SendSalvageOutput, error) {
	if len(input.Recipients) == 0 {
		return assessment.SendSalvageOutput{}, assessment.ErrNoRecipients
	}
	if uc.mailer == nil {
		return assessment.SendSalvageOutput{}, ErrMailerUnavailable
	}

	lossType := string(input.LossType)
	if lossType == "" {
		lossType = string(model.LossTypeClient)
	}

	reqs := make([]mailer.SalvageRequest, 0, len(input.Recipients))
	for _, to := range input.Recipients {
		reqs = append(reqs, mailer.SalvageRequest{
			To: to,
			CC: input.CC,
			Vehicle: mailer.VehicleInfo{
				VIN:      input.Vehicle.VIN,
				Year:     input.Vehicle.Year,
				Make:     input.Vehicle.Make,
				Model:    input.Vehicle.Model,
				Variant:  input.Vehicle.Variant,
				Odometer: input.Vehicle.Odometer,
				Location: input.Vehicle.Location,
			},
			PolicyValue:    input.PolicyValue,
			LossType:       lossType,
			Photos:         input.Photos,
			AdditionalInfo: input.AdditionalInfo,
		})
	}

	result := uc.mailer.SendBulk(ctx, reqs)

	output := assessment.SendSalvageOutput{
		Sent:   result.Successful,
		Failed: result.Failed,
	}
	for _, d := range result.Details {
		if d.Error != "" {
			output.Errors = append(output.Errors, d.Error)
		}
	}
	return output, nil
}
