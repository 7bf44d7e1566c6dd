package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"crashify360/internal/assessment"
	"crashify360/internal/assessment/repository"
	"crashify360/internal/middleware"
	"crashify360/internal/model"
	"crashify360/internal/validator"
	pkgLog "crashify360/pkg/log"
)

type mockUseCase struct {
	assessFn   func(ctx context.Context, input assessment.AssessInput) (assessment.AssessOutput, error)
	batchFn    func(ctx context.Context, input assessment.BatchInput) (assessment.BatchOutput, error)
	detailFn   func(ctx context.Context, id string) (model.Decision, error)
	historyFn  func(ctx context.Context, vin string) ([]model.Decision, error)
	recentFn   func(ctx context.Context, limit int) ([]model.Decision, error)
	searchFn   func(ctx context.Context, input assessment.SearchInput) ([]model.Decision, error)
	statsFn    func(ctx context.Context) (repository.Statistics, error)
	exportFn   func(ctx context.Context, input assessment.ExportInput) (assessment.ExportOutput, error)
	lookupFn   func(ctx context.Context, vin string) (assessment.LookupOutput, error)
	parseFn    func(ctx context.Context, input assessment.ParseSalvageInput) (assessment.ParseSalvageOutput, error)
	sendSalvFn func(ctx context.Context, input assessment.SendSalvageInput) (assessment.SendSalvageOutput, error)
}

func (m *mockUseCase) Assess(ctx context.Context, input assessment.AssessInput) (assessment.AssessOutput, error) {
	return m.assessFn(ctx, input)
}

func (m *mockUseCase) AssessBatch(ctx context.Context, input assessment.BatchInput) (assessment.BatchOutput, error) {
	return m.batchFn(ctx, input)
}

func (m *mockUseCase) Detail(ctx context.Context, id string) (model.Decision, error) {
	return m.detailFn(ctx, id)
}

func (m *mockUseCase) History(ctx context.Context, vin string) ([]model.Decision, error) {
	return m.historyFn(ctx, vin)
}

func (m *mockUseCase) Recent(ctx context.Context, limit int) ([]model.Decision, error) {
	return m.recentFn(ctx, limit)
}

func (m *mockUseCase) Search(ctx context.Context, input assessment.SearchInput) ([]model.Decision, error) {
	return m.searchFn(ctx, input)
}

func (m *mockUseCase) Statistics(ctx context.Context) (repository.Statistics, error) {
	return m.statsFn(ctx)
}

func (m *mockUseCase) ExportCSV(ctx context.Context, input assessment.ExportInput) (assessment.ExportOutput, error) {
	return m.exportFn(ctx, input)
}

func (m *mockUseCase) Lookup(ctx context.Context, vin string) (assessment.LookupOutput, error) {
	return m.lookupFn(ctx, vin)
}

func (m *mockUseCase) ParseSalvage(ctx context.Context, input assessment.ParseSalvageInput) (assessment.ParseSalvageOutput, error) {
	return m.parseFn(ctx, input)
}

func (m *mockUseCase) SendSalvageRequest(ctx context.Context, input assessment.SendSalvageInput) (assessment.SendSalvageOutput, error) {
	return m.sendSalvFn(ctx, input)
}

func newTestRouter(uc assessment.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	l := pkgLog.NewNoop()
	r := gin.New()
	h := New(l, uc)
	RegisterRoutes(r.Group("/api/v1"), h, middleware.New(l, 100))
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validAssessBody = `{
	"vin": "1HGBH41JXMN109186",
	"policy_type": "comprehensive",
	"policy_value": 20000,
	"salvage_value": 5000,
	"repair_quote": 15000,
	"loss_type": "client"
}`

func TestAssessHandler(t *testing.T) {
	t.Run("Valid Case Returns Decision", func(t *testing.T) {
		uc := &mockUseCase{
			assessFn: func(ctx context.Context, input assessment.AssessInput) (assessment.AssessOutput, error) {
				if input.Case.VIN != "1HGBH41JXMN109186" {
					t.Errorf("unexpected VIN forwarded: %s", input.Case.VIN)
				}
				return assessment.AssessOutput{
					ID: "DEC-20250101120000-0001",
					Record: &model.Decision{
						ID:       "DEC-20250101120000-0001",
						VIN:      input.Case.VIN,
						Decision: model.DecisionTotalLoss,
					},
					Explanation: "report",
					Persisted:   true,
				}, nil
			},
		}
		w := doRequest(newTestRouter(uc), http.MethodPost, "/api/v1/assessments", validAssessBody)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "DEC-20250101120000-0001") {
			t.Errorf("expected decision id in response, got %s", w.Body.String())
		}
	})

	t.Run("Validation Failure Returns 422", func(t *testing.T) {
		uc := &mockUseCase{
			assessFn: func(ctx context.Context, input assessment.AssessInput) (assessment.AssessOutput, error) {
				out := assessment.AssessOutput{}
				out.Validation.Errors = []validator.FieldError{
					{Field: "vin", Message: "VIN must be exactly 17 characters", Value: "SHORT"},
				}
				return out, nil
			},
		}
		w := doRequest(newTestRouter(uc), http.MethodPost, "/api/v1/assessments", validAssessBody)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "VIN must be exactly 17 characters") {
			t.Errorf("expected field error in response, got %s", w.Body.String())
		}
	})

	t.Run("Malformed JSON Returns 400", func(t *testing.T) {
		uc := &mockUseCase{}
		w := doRequest(newTestRouter(uc), http.MethodPost, "/api/v1/assessments", `{"policy_value": `)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Missing Fields Reach The Validator", func(t *testing.T) {
		var gotCase model.CaseInput
		uc := &mockUseCase{
			assessFn: func(ctx context.Context, input assessment.AssessInput) (assessment.AssessOutput, error) {
				gotCase = input.Case
				out := assessment.AssessOutput{}
				out.Validation.Errors = []validator.FieldError{
					{Field: "vin", Message: "VIN must be exactly 17 characters"},
					{Field: "policy_value", Message: "policy_value must be at least $1,000.00"},
				}
				return out, nil
			},
		}
		w := doRequest(newTestRouter(uc), http.MethodPost, "/api/v1/assessments", `{"policy_value": 0}`)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
		}
		if gotCase.VIN != "" || gotCase.PolicyValue != 0 {
			t.Errorf("case not forwarded as-is: %+v", gotCase)
		}
		if !strings.Contains(w.Body.String(), `"field":"policy_value"`) {
			t.Errorf("expected field-attributed errors, got %s", w.Body.String())
		}
	})
}

func TestDetailHandler(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		uc := &mockUseCase{
			detailFn: func(ctx context.Context, id string) (model.Decision, error) {
				return model.Decision{ID: id, VIN: "1HGBH41JXMN109186", Decision: model.DecisionRepairable}, nil
			},
		}
		w := doRequest(newTestRouter(uc), http.MethodGet, "/api/v1/decisions/DEC-1", "")

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), model.DecisionRepairable) {
			t.Errorf("expected decision label in response, got %s", w.Body.String())
		}
	})

	t.Run("Not Found Returns 404", func(t *testing.T) {
		uc := &mockUseCase{
			detailFn: func(ctx context.Context, id string) (model.Decision, error) {
				return model.Decision{}, assessment.ErrDecisionNotFound
			},
		}
		w := doRequest(newTestRouter(uc), http.MethodGet, "/api/v1/decisions/DEC-missing", "")

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestSearchHandler(t *testing.T) {
	t.Run("Invalid Date Filter Returns 400", func(t *testing.T) {
		uc := &mockUseCase{}
		w := doRequest(newTestRouter(uc), http.MethodGet, "/api/v1/decisions?from=not-a-date", "")

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Filters Forwarded", func(t *testing.T) {
		var got assessment.SearchInput
		uc := &mockUseCase{
			searchFn: func(ctx context.Context, input assessment.SearchInput) ([]model.Decision, error) {
				got = input
				return nil, nil
			},
		}
		w := doRequest(newTestRouter(uc), http.MethodGet, "/api/v1/decisions?vin=1HGBH41JXMN109186&decision=TOTAL%20LOSS", "")

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got.VIN != "1HGBH41JXMN109186" || got.Decision != "TOTAL LOSS" {
			t.Errorf("filters not forwarded: %+v", got)
		}
	})
}

func TestRecentHandler(t *testing.T) {
	var gotLimit int
	uc := &mockUseCase{
		recentFn: func(ctx context.Context, limit int) ([]model.Decision, error) {
			gotLimit = limit
			return []model.Decision{
				{ID: "DEC-2", VIN: "1HGBH41JXMN109186", Decision: model.DecisionTotalLoss},
				{ID: "DEC-1", VIN: "1HGBH41JXMN109186", Decision: model.DecisionRepairable},
			}, nil
		},
	}
	w := doRequest(newTestRouter(uc), http.MethodGet, "/api/v1/decisions/recent?limit=2", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotLimit != 2 {
		t.Errorf("expected limit 2 forwarded, got %d", gotLimit)
	}
	if !strings.Contains(w.Body.String(), `"count":2`) {
		t.Errorf("expected two decisions in response, got %s", w.Body.String())
	}
}

func TestStatisticsHandler(t *testing.T) {
	uc := &mockUseCase{
		statsFn: func(ctx context.Context) (repository.Statistics, error) {
			return repository.Statistics{TotalDecisions: 4, TotalLosses: 2, TotalLossPercentage: 50}, nil
		},
	}
	w := doRequest(newTestRouter(uc), http.MethodGet, "/api/v1/statistics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"total_decisions":4`) {
		t.Errorf("expected statistics payload, got %s", w.Body.String())
	}
}

func TestSendSalvageHandler(t *testing.T) {
	t.Run("No Recipients Returns 400", func(t *testing.T) {
		uc := &mockUseCase{
			sendSalvFn: func(ctx context.Context, input assessment.SendSalvageInput) (assessment.SendSalvageOutput, error) {
				return assessment.SendSalvageOutput{}, assessment.ErrNoRecipients
			},
		}
		body := `{"vehicle": {"vin": "1HGBH41JXMN109186"}, "loss_type": "client", "recipients": ["yard@example.com"]}`
		w := doRequest(newTestRouter(uc), http.MethodPost, "/api/v1/salvage/requests", body)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Dispatch Tally Returned", func(t *testing.T) {
		uc := &mockUseCase{
			sendSalvFn: func(ctx context.Context, input assessment.SendSalvageInput) (assessment.SendSalvageOutput, error) {
				return assessment.SendSalvageOutput{Sent: 2, Failed: 1, Errors: []string{"smtp timeout"}}, nil
			},
		}
		body := `{"vehicle": {"vin": "1HGBH41JXMN109186"}, "loss_type": "third_party", "recipients": ["a@example.com", "b@example.com", "c@example.com"]}`
		w := doRequest(newTestRouter(uc), http.MethodPost, "/api/v1/salvage/requests", body)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"sent":2`) || !strings.Contains(w.Body.String(), "smtp timeout") {
			t.Errorf("expected tally in response, got %s", w.Body.String())
		}
	})
}
