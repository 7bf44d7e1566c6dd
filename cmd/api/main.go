package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crashify360/config"
	_ "crashify360/docs" // Swagger docs
	repoFile "crashify360/internal/assessment/repository/file"
	"crashify360/internal/assessment/usecase"
	"crashify360/internal/httpserver"
	"crashify360/internal/validator"
	"crashify360/internal/valuation"
	"crashify360/pkg/autograp"
	"crashify360/pkg/log"
	"crashify360/pkg/mailer"
	"crashify360/pkg/salvageparse"
)

// @title       Crashify360 Total Loss API
// @description Vehicle total-loss assessment with salvage tendering, market valuation lookup and decision history.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Crashify360...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Decision store: %s", cfg.Storage.DecisionsPath)

	// 3. Assessment core
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
		logger.Errorf(ctx, "Failed to open decision store: %v", err)
		return
	}

	// 4. Optional integrations
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
			logger.Warnf(ctx, "Auto Grap client not available (optional): %v", err)
		} else {
			logger.Info(ctx, "Auto Grap valuation client initialized")
		}
	} else {
		logger.Warn(ctx, "AUTO_GRAP_KEY missing, valuation lookup disabled")
	}

	var m *mailer.Mailer
	if cfg.Email.User != "" && cfg.Email.Password != "" {
		m = mailer.New(logger, mailer.Config{
			User:       cfg.Email.User,
			Password:   cfg.Email.Password,
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
		})
		logger.Info(ctx, "Salvage mailer initialized")
	} else {
		logger.Warn(ctx, "EMAIL_USER or EMAIL_PASS missing, salvage requests disabled")
	}

	parser := salvageparse.New(logger)

	// 5. Assessment UseCase
	uc := usecase.New(logger, engine, v, repo, valuer, parser, m, cfg.Storage.OutputDir)

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		AssessmentUC: uc,
		RateLimitRPS: cfg.HTTPServer.RateLimitRPS,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
