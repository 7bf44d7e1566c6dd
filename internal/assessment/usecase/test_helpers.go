package usecase

import (
	"context"
	"fmt"

	"crashify360/internal/assessment/repository"
	"crashify360/internal/model"
	"crashify360/internal/validator"
	"crashify360/internal/valuation"
	pkgLog "crashify360/pkg/log"
	"crashify360/pkg/salvageparse"
)

// mockRepo is a hand-written DecisionRepository test double. Unset hooks fall
// back to a simple in-memory implementation.
type mockRepo struct {
	saveFn   func(model.Decision) (model.Decision, error)
	getFn    func(string) (model.Decision, error)
	byVINFn  func(string) ([]model.Decision, error)
	recentFn func(int) ([]model.Decision, error)
	searchFn func(repository.SearchOptions) ([]model.Decision, error)
	statsFn  func() (repository.Statistics, error)
	exportFn func(string) (int, error)

	saved []model.Decision
}

var _ repository.DecisionRepository = (*mockRepo)(nil)

func (m *mockRepo) Save(ctx context.Context, d model.Decision) (model.Decision, error) {
	if m.saveFn != nil {
		return m.saveFn(d)
	}
	d.ID = fmt.Sprintf("DEC-TEST-%04d", len(m.saved)+1)
	m.saved = append(m.saved, d)
	return d, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (model.Decision, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	for _, d := range m.saved {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Decision{}, repository.ErrNotFound
}

func (m *mockRepo) GetByVIN(ctx context.Context, vin string) ([]model.Decision, error) {
	if m.byVINFn != nil {
		return m.byVINFn(vin)
	}
	var matches []model.Decision
	for _, d := range m.saved {
		if d.VIN == vin {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

func (m *mockRepo) Recent(ctx context.Context, limit int) ([]model.Decision, error) {
	if m.recentFn != nil {
		return m.recentFn(limit)
	}
	if limit > 0 && len(m.saved) > limit {
		return m.saved[len(m.saved)-limit:], nil
	}
	return m.saved, nil
}

func (m *mockRepo) Search(ctx context.Context, opt repository.SearchOptions) ([]model.Decision, error) {
	if m.searchFn != nil {
		return m.searchFn(opt)
	}
	return m.saved, nil
}

func (m *mockRepo) Statistics(ctx context.Context) (repository.Statistics, error) {
	if m.statsFn != nil {
		return m.statsFn()
	}
	return repository.Statistics{TotalDecisions: len(m.saved)}, nil
}

func (m *mockRepo) ExportCSV(ctx context.Context, path string) (int, error) {
	if m.exportFn != nil {
		return m.exportFn(path)
	}
	return len(m.saved), nil
}

func (m *mockRepo) Clear(ctx context.Context) error {
	m.saved = nil
	return nil
}

func newTestUseCase(repo *mockRepo) *implUseCase {
	l := pkgLog.NewNoop()
	v := validator.New(validator.DefaultRules())
	engine := valuation.New(valuation.DefaultThresholds(), v, l)
	return New(l, engine, v, repo, nil, salvageparse.New(l), nil, "")
}

func validCase() model.CaseInput {
	return model.CaseInput{
		VIN:          "1HGBH41JXMN109186",
		PolicyType:   "comprehensive",
		PolicyValue:  20000,
		SalvageValue: 5000,
		RepairQuote:  15000,
		LossType:     "client",
	}
}
