package http

import (
	"crashify360/internal/assessment"
	pkgLog "crashify360/pkg/log"
)

type handler struct {
	l  pkgLog.Logger
	uc assessment.UseCase
}

// New creates a new HTTP handler for the assessment domain.
func New(l pkgLog.Logger, uc assessment.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
