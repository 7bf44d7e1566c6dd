package commands

import (
	"fmt"
	"time"

	"crashify360/config"
	"crashify360/internal/assessment"
	repoFile "crashify360/internal/assessment/repository/file"
	"crashify360/internal/assessment/usecase"
	"crashify360/internal/validator"
	"crashify360/internal/valuation"
	"crashify360/pkg/autograp"
	"crashify360/pkg/log"
	"crashify360/pkg/mailer"
	"crashify360/pkg/salvageparse"
)

// newUseCase wires the assessment stack for CLI commands. Logging is kept at
// warn so command output stays readable.
func newUseCase() (assessment.UseCase, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.Init(log.ZapConfig{
		Level:    "warn",
		Mode:     cfg.Logger.Mode,
		Encoding: "console",
	})

	v := validator.New(validator.Rules{
		MinPolicyValue:      cfg.Validation.MinPolicyValue,
		MaxPolicyValue:      cfg.Validation.MaxPolicyValue,
		MinSalvageValue:     cfg.Validation.MinSalvageValue,
		MinRepairQuote:      cfg.Validation.MinRepairQuote,
		MaxRepairQuoteRatio: cfg.Validation.MaxRepairQuoteRatio,
		PolicyTypes:         cfg.Validation.PolicyTypes,
	})

	engine := valuation.New(valuation.Thresholds{
		PerPolicyType: cfg.Thresholds.PerPolicyType,
		Default:       cfg.Thresholds.Default,
	}, v, logger)

	repo, err := repoFile.New(logger, cfg.Storage.DecisionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open decision store: %w", err)
	}

	var valuer *autograp.Client
	if cfg.AutoGrap.APIKey != "" {
		valuer, err = autograp.NewClient(logger, autograp.Config{
			APIKey:     cfg.AutoGrap.APIKey,
			BaseURL:    cfg.AutoGrap.BaseURL,
			Timeout:    time.Duration(cfg.AutoGrap.TimeoutSec) * time.Second,
			MaxRetries: cfg.AutoGrap.MaxRetries,
			RetryDelay: time.Duration(cfg.AutoGrap.RetryDelaySec) * time.Second,
			RateLimit:  cfg.AutoGrap.RateLimitCalls,
			RateWindow: time.Duration(cfg.AutoGrap.RateLimitWindowSec) * time.Second,
			CacheSize:  cfg.AutoGrap.CacheSize,
		})
		if err != nil {
			valuer = nil
		}
	}

	var m *mailer.Mailer
	if cfg.Email.User != "" && cfg.Email.Password != "" {
		m = mailer.New(logger, mailer.Config{
			User:       cfg.Email.User,
			Password:   cfg.Email.Password,
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
		})
	}

	parser := salvageparse.New(logger)

	return usecase.New(logger, engine, v, repo, valuer, parser, m, cfg.Storage.OutputDir), nil
}
