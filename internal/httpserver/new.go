package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"crashify360/internal/assessment"
	"crashify360/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Assessment domain
	assessmentUC assessment.UseCase

	// Rate limit for external-valuation routes, requests per second.
	rateLimitRPS int
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Assessment domain
	AssessmentUC assessment.UseCase

	RateLimitRPS int
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:            logger,
		gin:          gin.New(),
		port:         cfg.Port,
		mode:         cfg.Mode,
		environment:  cfg.Environment,
		assessmentUC: cfg.AssessmentUC,
		rateLimitRPS: cfg.RateLimitRPS,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.assessmentUC == nil {
		return errors.New("assessment usecase is required")
	}
	return nil
}
