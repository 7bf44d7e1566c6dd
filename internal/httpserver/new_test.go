package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"crashify360/internal/assessment"
	"crashify360/internal/assessment/repository"
	"crashify360/internal/model"
	pkgLog "crashify360/pkg/log"
)

// stubUseCase satisfies assessment.UseCase for wiring tests.
type stubUseCase struct{}

func (stubUseCase) Assess(ctx context.Context, input assessment.AssessInput) (assessment.AssessOutput, error) {
	return assessment.AssessOutput{}, nil
}

func (stubUseCase) AssessBatch(ctx context.Context, input assessment.BatchInput) (assessment.BatchOutput, error) {
	return assessment.BatchOutput{}, nil
}

func (stubUseCase) Detail(ctx context.Context, id string) (model.Decision, error) {
	return model.Decision{}, nil
}

func (stubUseCase) History(ctx context.Context, vin string) ([]model.Decision, error) {
	return nil, nil
}

func (stubUseCase) Recent(ctx context.Context, limit int) ([]model.Decision, error) {
	return nil, nil
}

func (stubUseCase) Search(ctx context.Context, input assessment.SearchInput) ([]model.Decision, error) {
	return nil, nil
}

func (stubUseCase) Statistics(ctx context.Context) (repository.Statistics, error) {
	return repository.Statistics{}, nil
}

func (stubUseCase) ExportCSV(ctx context.Context, input assessment.ExportInput) (assessment.ExportOutput, error) {
	return assessment.ExportOutput{}, nil
}

func (stubUseCase) Lookup(ctx context.Context, vin string) (assessment.LookupOutput, error) {
	return assessment.LookupOutput{}, nil
}

func (stubUseCase) ParseSalvage(ctx context.Context, input assessment.ParseSalvageInput) (assessment.ParseSalvageOutput, error) {
	return assessment.ParseSalvageOutput{}, nil
}

func (stubUseCase) SendSalvageRequest(ctx context.Context, input assessment.SendSalvageInput) (assessment.SendSalvageOutput, error) {
	return assessment.SendSalvageOutput{}, nil
}

func newTestServer(t *testing.T) *HTTPServer {
	t.Helper()
	srv, err := New(pkgLog.NewNoop(), Config{
		Logger:       pkgLog.NewNoop(),
		Port:         8080,
		Mode:         gin.TestMode,
		Environment:  "test",
		AssessmentUC: stubUseCase{},
		RateLimitRPS: 10,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestNew(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		newTestServer(t)
	})

	t.Run("Missing Port", func(t *testing.T) {
		_, err := New(pkgLog.NewNoop(), Config{
			Mode:         gin.TestMode,
			AssessmentUC: stubUseCase{},
		})
		if err == nil {
			t.Error("expected error for missing port")
		}
	})

	t.Run("Missing UseCase", func(t *testing.T) {
		_, err := New(pkgLog.NewNoop(), Config{
			Port: 8080,
			Mode: gin.TestMode,
		})
		if err == nil {
			t.Error("expected error for missing usecase")
		}
	})
}

func TestMapHandlers(t *testing.T) {
	srv := newTestServer(t)

	if err := srv.mapHandlers(); err != nil {
		t.Fatalf("mapHandlers: %v", err)
	}

	t.Run("Health Route Registered", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "healthy") {
			t.Errorf("unexpected health body: %s", w.Body.String())
		}
	})

	t.Run("Assessment Domain Registered", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
