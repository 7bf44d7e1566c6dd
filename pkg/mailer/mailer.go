// Package mailer sends salvage tender request emails over SMTP.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	pkgLog "crashify360/pkg/log"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("mailer: email credentials not configured")

// Config holds SMTP settings.
type Config struct {
	User       string
	Password   string
	SMTPServer string
	SMTPPort   int
}

// VehicleInfo is the vehicle block rendered into the request body.
type VehicleInfo struct {
	VIN      string
	Year     int
	Make     string
	Model    string
	Variant  string
	Odometer int
	Location string
}

// SalvageRequest describes one salvage tender request email.
type SalvageRequest struct {
	To             string
	CC             []string
	Vehicle        VehicleInfo
	PolicyValue    float64
	LossType       string // "client" or "third_party"
	Photos         []string
	AdditionalInfo string
}

// BulkResult tallies a bulk send.
type BulkResult struct {
	Total      int          `json:"total"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Details    []BulkDetail `json:"details"`
}

// BulkDetail is the per-request outcome within a bulk send.
type BulkDetail struct {
	VIN    string `json:"vin"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends salvage request emails. Safe for concurrent use.
type Mailer struct {
	cfg  Config
	l    pkgLog.Logger
	send sendFunc // swapped out in tests
}

// New creates a Mailer from cfg.
func New(l pkgLog.Logger, cfg Config) *Mailer {
	return &Mailer{
		cfg:  cfg,
		l:    l,
		send: smtp.SendMail,
	}
}

// Send builds and dispatches one salvage request email.
func (m *Mailer) Send(ctx context.Context, req SalvageRequest) error {
	if m.cfg.User == "" || m.cfg.Password == "" {
		return ErrNotConfigured
	}

	msg, err := m.buildMessage(ctx, req)
	if err != nil {
		return err
	}

	recipients := append([]string{req.To}, req.CC...)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPServer, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.SMTPServer)

	if err := m.send(addr, auth, m.cfg.User, recipients, msg); err != nil {
		m.l.Errorf(ctx, "Send: vin=%s to=%s: %v", req.Vehicle.VIN, req.To, err)
		return fmt.Errorf("mailer: send: %w", err)
	}

	m.l.Infof(ctx, "Send: salvage request sent vin=%s to=%s loss_type=%s", req.Vehicle.VIN, req.To, req.LossType)
	return nil
}

// SendBulk dispatches many requests, isolating failures per request.
func (m *Mailer) SendBulk(ctx context.Context, reqs []SalvageRequest) BulkResult {
	result := BulkResult{Total: len(reqs)}

	for _, req := range reqs {
		detail := BulkDetail{VIN: req.Vehicle.VIN, Status: "success"}
		if err := m.Send(ctx, req); err != nil {
			detail.Status = "failed"
			detail.Error = err.Error()
			result.Failed++
		} else {
			result.Successful++
		}
		result.Details = append(result.Details, detail)
	}

	m.l.Infof(ctx, "SendBulk: total=%d successful=%d failed=%d", result.Total, result.Successful, result.Failed)
	return result
}

func (m *Mailer) buildMessage(ctx context.Context, req SalvageRequest) ([]byte, error) {
	body, err := GenerateBody(req)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Salvage Request - %s - VIN: %s", vehicleTitle(req.Vehicle), req.Vehicle.VIN)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", m.cfg.User)
	fmt.Fprintf(&buf, "To: %s\r\n", req.To)
	if len(req.CC) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", strings.Join(req.CC, ", "))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", w.Boundary())

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=utf-8")
	part, err := w.CreatePart(htmlHeader)
	if err != nil {
		return nil, fmt.Errorf("mailer: build message: %w", err)
	}
	if _, err := part.Write([]byte(body)); err != nil {
		return nil, fmt.Errorf("mailer: build message: %w", err)
	}

	for _, photo := range req.Photos {
		if err := m.attach(ctx, w, photo); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("mailer: build message: %w", err)
	}
	return buf.Bytes(), nil
}

// attach adds one photo as a base64 attachment. Missing files are logged and
// skipped so one lost photo never blocks the request.
func (m *Mailer) attach(ctx context.Context, w *multipart.Writer, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			m.l.Warnf(ctx, "attach: photo not found: %s", path)
			return nil
		}
		return fmt.Errorf("mailer: read attachment: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/octet-stream")
	header.Set("Content-Transfer-Encoding", "base64")
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("mailer: build attachment: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	if _, err := part.Write([]byte(encoded)); err != nil {
		return fmt.Errorf("mailer: build attachment: %w", err)
	}
	return nil
}

func vehicleTitle(v VehicleInfo) string {
	var parts []string
	if v.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", v.Year))
	}
	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	if len(parts) == 0 {
		return "Vehicle"
	}
	return strings.Join(parts, " ")
}
