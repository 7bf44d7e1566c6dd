package usecase

import (
	"crashify360/internal/assessment"
	"crashify360/internal/assessment/repository"
	"crashify360/internal/validator"
	"crashify360/internal/valuation"
	"crashify360/pkg/autograp"
	pkgLog "crashify360/pkg/log"
	"crashify360/pkg/mailer"
	"crashify360/pkg/salvageparse"
)

var _ assessment.UseCase = (*implUseCase)(nil)

type implUseCase struct {
	l         pkgLog.Logger
	engine    valuation.Engine
	validator validator.Validator
	repo      repository.DecisionRepository
	valuer    *autograp.Client
	parser    *salvageparse.Parser
	mailer    *mailer.Mailer
	outputDir string
}

// New creates a new assessment UseCase instance. valuer and mailer may be nil
// when the corresponding integrations are not configured; the operations that
// need them fail with a clear error.
func New(
	l pkgLog.Logger,
	engine valuation.Engine,
	v validator.Validator,
	repo repository.DecisionRepository,
	valuer *autograp.Client,
	parser *salvageparse.Parser,
	m *mailer.Mailer,
	outputDir string,
) *implUseCase {
	return &implUseCase{
		l:         l,
		engine:    engine,
		validator: v,
		repo:      repo,
		valuer:    valuer,
		parser:    parser,
		mailer:    m,
		outputDir: outputDir,
	}
}
