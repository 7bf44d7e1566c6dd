package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"crashify360/internal/assessment"
	"crashify360/internal/assessment/usecase"
	"crashify360/pkg/response"
)

var errInvalidDateRange = errors.New("invalid date filter, expected RFC3339")

// respondError translates domain errors into the HTTP error envelope.
// Unknown errors are reported as opaque 500s; the detail stays in the logs.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assessment.ErrDecisionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, assessment.ErrInvalidVIN),
		errors.Is(err, assessment.ErrEmptyBatch),
		errors.Is(err, assessment.ErrEmptyText),
		errors.Is(err, assessment.ErrNoRecipients),
		errors.Is(err, errInvalidDateRange):
		response.Error(c, err, nil)
	case errors.Is(err, usecase.ErrLookupUnavailable),
		errors.Is(err, usecase.ErrMailerUnavailable):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
