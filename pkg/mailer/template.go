package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"crashify360/pkg/money"
)

// Tender type labels by loss type. Salvage partners price firm-buy tenders
// differently, so the label in the request body is load-bearing.
const (
	TenderStandardSalvage = "Standard Salvage (Client)"
	TenderFirmBuy         = "Firm Buy Tender (Third Party)"
)

var lossTypeLabels = map[string]string{
	"client":      "Client Vehicle (Own Damage)",
	"third_party": "Third Party Vehicle",
}

var bodyTemplate = template.Must(template.New("salvage").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .header { background-color: #FF4B4B; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .info-table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        .info-table th { background-color: #f4f4f4; text-align: left; padding: 10px; border: 1px solid #ddd; }
        .info-table td { padding: 10px; border: 1px solid #ddd; }
        .tender-type { background-color: #fff3cd; padding: 15px; border-left: 4px solid #ffc107; margin: 20px 0; }
        .footer { background-color: #f4f4f4; padding: 15px; text-align: center; font-size: 0.9em; color: #666; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Crashify360 Salvage Request</h1>
    </div>

    <div class="content">
        <p>Dear Salvage Partner,</p>

        <p>We are requesting a salvage valuation for the following vehicle that has been declared a total loss:</p>

        <div class="tender-type">
            <strong>Tender Type:</strong> {{.TenderType}}
        </div>

        <table class="info-table">
            <tr>
                <th>Field</th>
                <th>Value</th>
            </tr>
            <tr>
                <td><strong>VIN</strong></td>
                <td>{{if .Vehicle.VIN}}{{.Vehicle.VIN}}{{else}}N/A{{end}}</td>
            </tr>
            <tr>
                <td><strong>Year</strong></td>
                <td>{{if .Vehicle.Year}}{{.Vehicle.Year}}{{else}}N/A{{end}}</td>
            </tr>
            <tr>
                <td><strong>Make</strong></td>
                <td>{{if .Vehicle.Make}}{{.Vehicle.Make}}{{else}}N/A{{end}}</td>
            </tr>
            <tr>
                <td><strong>Model</strong></td>
                <td>{{if .Vehicle.Model}}{{.Vehicle.Model}}{{else}}N/A{{end}}</td>
            </tr>
            <tr>
                <td><strong>Variant</strong></td>
                <td>{{if .Vehicle.Variant}}{{.Vehicle.Variant}}{{else}}N/A{{end}}</td>
            </tr>
            <tr>
                <td><strong>Odometer</strong></td>
                <td>{{if .Vehicle.Odometer}}{{.Vehicle.Odometer}} km{{else}}N/A{{end}}</td>
            </tr>
            <tr>
                <td><strong>Policy Value</strong></td>
                <td>{{.PolicyValue}}</td>
            </tr>
            <tr>
                <td><strong>Location</strong></td>
                <td>{{if .Vehicle.Location}}{{.Vehicle.Location}}{{else}}TBA{{end}}</td>
            </tr>
        </table>

        <h3>Request Details</h3>
        <p><strong>Loss Type:</strong> {{.LossTypeLabel}}</p>
        <p><strong>Date Requested:</strong> {{.DateRequested}}</p>

        {{if .AdditionalInfo}}<p><strong>Additional Information:</strong><br>{{.AdditionalInfo}}</p>{{end}}

        <h3>Required Information</h3>
        <p>Please provide your salvage offer including:</p>
        <ul>
            <li>Salvage value offer</li>
            <li>Collection arrangements</li>
            <li>Payment terms</li>
            <li>Any conditions or exclusions</li>
        </ul>

        {{if .HasPhotos}}<p>Photos are attached for your assessment.</p>{{end}}

        <h3>Response Required</h3>
        <p>Please respond within <strong>48 hours</strong> with your offer.</p>

        <p>Thank you for your prompt attention to this matter.</p>

        <p>Best regards,<br>
        <strong>Crashify360 Team</strong></p>
    </div>

    <div class="footer">
        <p>This is an automated message from Crashify360 Total Loss Evaluation System</p>
        <p>For queries, please contact your claims handler</p>
    </div>
</body>
</html>
`))

type bodyData struct {
	TenderType     string
	Vehicle        VehicleInfo
	PolicyValue    string
	LossTypeLabel  string
	DateRequested  string
	AdditionalInfo string
	HasPhotos      bool
}

// GenerateBody renders the salvage request email body for one request.
func GenerateBody(req SalvageRequest) (string, error) {
	tenderType := TenderStandardSalvage
	if req.LossType == "third_party" {
		tenderType = TenderFirmBuy
	}

	label, ok := lossTypeLabels[req.LossType]
	if !ok {
		label = req.LossType
	}

	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, bodyData{
		TenderType:     tenderType,
		Vehicle:        req.Vehicle,
		PolicyValue:    money.Format(req.PolicyValue),
		LossTypeLabel:  label,
		DateRequested:  time.Now().Format("2006-01-02 15:04:05"),
		AdditionalInfo: req.AdditionalInfo,
		HasPhotos:      len(req.Photos) > 0,
	})
	if err != nil {
		return "", fmt.Errorf("mailer: render body: %w", err)
	}
	return buf.String(), nil
}
