// Package file implements decision persistence over a single JSON document.
// The on-disk format is {"version": "1.0", "created": ..., "decisions": [...]}
// and is shared with the CSV exporter and the dashboard.
package file

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"crashify360/internal/assessment/repository"
	"crashify360/internal/model"
	pkgLog "crashify360/pkg/log"
)

const documentVersion = "1.0"

type document struct {
	Version   string           `json:"version"`
	Created   time.Time        `json:"created"`
	Decisions []model.Decision `json:"decisions"`
}

// Store is a file-backed DecisionRepository. All operations serialize on an
// internal mutex; the store is safe for concurrent use within one process but
// assumes exclusive ownership of the file.
type Store struct {
	l    pkgLog.Logger
	path string
	mu   sync.Mutex
}

var _ repository.DecisionRepository = (*Store)(nil)

// New opens the store at path, creating the file and parent directories when
// missing.
func New(l pkgLog.Logger, path string) (*Store, error) {
	s := &Store{l: l, path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, err := s.initialize(); err != nil {
			return nil, err
		}
		l.Infof(context.Background(), "file.New: initialized storage at %s", path)
	}

	return s, nil
}

// initialize writes a fresh empty document and returns it, so callers keep
// the creation timestamp that just went to disk.
func (s *Store) initialize() (document, error) {
	doc := document{
		Version: documentVersion,
		Created: time.Now(),
	}
	return doc, s.write(doc)
}

func (s *Store) read() (document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.initialize()
		}
		return document{}, fmt.Errorf("read storage: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, fmt.Errorf("decode storage: %w", err)
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace storage: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, decision model.Decision) (model.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return model.Decision{}, err
	}

	now := time.Now()
	decision.ID = fmt.Sprintf("DEC-%s-%04d", now.Format("20060102150405"), len(doc.Decisions)+1)
	decision.StoredAt = now

	doc.Decisions = append(doc.Decisions, decision)
	if err := s.write(doc); err != nil {
		return model.Decision{}, err
	}

	s.l.Infof(ctx, "Save: id=%s vin=%s decision=%s", decision.ID, decision.VIN, decision.Decision)
	return decision, nil
}

func (s *Store) Get(ctx context.Context, id string) (model.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return model.Decision{}, err
	}
	for _, d := range doc.Decisions {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Decision{}, repository.ErrNotFound
}

func (s *Store) GetByVIN(ctx context.Context, vin string) ([]model.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	var matches []model.Decision
	for _, d := range doc.Decisions {
		if strings.EqualFold(d.VIN, vin) {
			matches = append(matches, d)
		}
	}
	sortByStoredAtDesc(matches)
	return matches, nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]model.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	decisions := append([]model.Decision(nil), doc.Decisions...)
	sortByStoredAtDesc(decisions)
	if limit > 0 && len(decisions) > limit {
		decisions = decisions[:limit]
	}
	return decisions, nil
}

func (s *Store) Search(ctx context.Context, opt repository.SearchOptions) ([]model.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	var matches []model.Decision
	for _, d := range doc.Decisions {
		if opt.MinPolicyValue != nil && d.PolicyValue < *opt.MinPolicyValue {
			continue
		}
		if opt.MaxPolicyValue != nil && d.PolicyValue > *opt.MaxPolicyValue {
			continue
		}
		if opt.LossType != "" && d.LossType != opt.LossType {
			continue
		}
		if opt.Decision != "" && d.Decision != opt.Decision {
			continue
		}
		if opt.From != nil && d.StoredAt.Before(*opt.From) {
			continue
		}
		if opt.To != nil && d.StoredAt.After(*opt.To) {
			continue
		}
		if opt.VIN != "" && !strings.EqualFold(d.VIN, opt.VIN) {
			continue
		}
		matches = append(matches, d)
	}
	return matches, nil
}

func (s *Store) Statistics(ctx context.Context) (repository.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return repository.Statistics{}, err
	}

	stats := repository.Statistics{
		TotalDecisions: len(doc.Decisions),
		LossTypes:      map[string]int{},
	}
	if len(doc.Decisions) == 0 {
		return stats, nil
	}

	var policySum, repairSum float64
	for i, d := range doc.Decisions {
		switch d.Decision {
		case model.DecisionTotalLoss:
			stats.TotalLosses++
		case model.DecisionRepairable:
			stats.Repairable++
		}
		stats.LossTypes[d.LossType]++
		policySum += d.PolicyValue
		repairSum += d.RepairQuote

		storedAt := doc.Decisions[i].StoredAt
		if stats.FirstDecision == nil || storedAt.Before(*stats.FirstDecision) {
			stats.FirstDecision = &storedAt
		}
		if stats.LastDecision == nil || storedAt.After(*stats.LastDecision) {
			stats.LastDecision = &storedAt
		}
	}

	n := float64(len(doc.Decisions))
	stats.TotalLossPercentage = float64(stats.TotalLosses) / n * 100
	stats.AvgPolicyValue = policySum / n
	stats.AvgRepairQuote = repairSum / n
	return stats, nil
}

// csvHeader fixes the column order of exports.
var csvHeader = []string{
	"id", "stored_at", "vin", "timestamp", "decision", "loss_type",
	"policy_type", "policy_value", "salvage_value", "repair_quote",
	"threshold", "threshold_percentage", "decision_margin", "calculation_method",
}

func (s *Store) ExportCSV(ctx context.Context, path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write export header: %w", err)
	}
	for _, d := range doc.Decisions {
		row := []string{
			d.ID,
			d.StoredAt.Format(time.RFC3339),
			d.VIN,
			d.Timestamp.Format(time.RFC3339),
			d.Decision,
			d.LossType,
			d.PolicyType,
			formatAmount(d.PolicyValue),
			formatAmount(d.SalvageValue),
			formatAmount(d.RepairQuote),
			formatAmount(d.Threshold),
			formatAmount(d.ThresholdPercentage),
			formatAmount(d.DecisionMargin),
			d.CalculationMethod,
		}
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flush export: %w", err)
	}

	s.l.Infof(ctx, "ExportCSV: exported %d decisions to %s", len(doc.Decisions), path)
	return len(doc.Decisions), nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.initialize(); err != nil {
		return err
	}
	s.l.Warnf(ctx, "Clear: all decisions removed from %s", s.path)
	return nil
}

func sortByStoredAtDesc(decisions []model.Decision) {
	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].StoredAt.After(decisions[j].StoredAt)
	})
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
