package http

import (
	"github.com/gin-gonic/gin"

	"crashify360/internal/assessment"
)

// processAssessReq binds the single-assessment request body.
func (h *handler) processAssessReq(c *gin.Context) (assessReq, error) {
	var req assessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processBatchReq binds the batch request body.
func (h *handler) processBatchReq(c *gin.Context) (batchReq, error) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processSearchReq binds and parses the search query parameters.
func (h *handler) processSearchReq(c *gin.Context) (assessment.SearchInput, error) {
	var req searchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return assessment.SearchInput{}, err
	}
	return req.toInput()
}

// processExportReq binds the optional export request body.
func (h *handler) processExportReq(c *gin.Context) (exportReq, error) {
	var req exportReq
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
	}
	return req, nil
}

// processParseSalvageReq binds the salvage text request body.
func (h *handler) processParseSalvageReq(c *gin.Context) (parseSalvageReq, error) {
	var req parseSalvageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processSendSalvageReq binds the salvage request dispatch body.
func (h *handler) processSendSalvageReq(c *gin.Context) (sendSalvageReq, error) {
	var req sendSalvageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
