package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"crashify360/internal/assessment"
	"crashify360/pkg/response"
)

// Assess godoc
// @Summary     Assess a single case
// @Description Validates the case and computes the total-loss decision. Validation failures return 422 with field-level errors.
// @Tags        Assessment
// @Accept      json
// @Produce     json
// @Param       body body assessReq true "Assessment case"
// @Success     200 {object} assessResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     422 {object} response.Resp "Validation Failed"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/assessments [POST]
func (h *handler) Assess(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAssessReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Assess(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Assess: %v", err)
		h.respondError(c, err)
		return
	}

	if !output.Accepted() {
		response.ValidationFailed(c, output.Validation.Errors, output.Validation.Warnings)
		return
	}

	response.OK(c, h.newAssessResp(output))
}

// AssessBatch godoc
// @Summary     Assess a batch of cases
// @Description Runs the full pipeline over many cases with per-case isolation. Invalid cases are reported per item, never failing the batch.
// @Tags        Assessment
// @Accept      json
// @Produce     json
// @Param       body body batchReq true "Batch of cases"
// @Success     200 {object} batchResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/assessments/batch [POST]
func (h *handler) AssessBatch(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processBatchReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.AssessBatch(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.AssessBatch: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newBatchResp(output))
}

// Detail godoc
// @Summary     Get a stored decision
// @Description Returns one stored decision by its identifier.
// @Tags        Decisions
// @Produce     json
// @Param       id path string true "Decision ID"
// @Success     200 {object} decisionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/decisions/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	decision, err := h.uc.Detail(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newDecisionResp(decision))
}

// Search godoc
// @Summary     Search stored decisions
// @Description Filters the decision history by VIN, policy value range, loss type, decision and date range.
// @Tags        Decisions
// @Produce     json
// @Param       vin              query string false "Filter by VIN"
// @Param       min_policy_value query number false "Minimum policy value"
// @Param       max_policy_value query number false "Maximum policy value"
// @Param       loss_type        query string false "Filter by loss type (client/third_party)"
// @Param       decision         query string false "Filter by decision (TOTAL LOSS/REPAIRABLE)"
// @Param       from             query string false "Stored-at lower bound (RFC3339)"
// @Param       to               query string false "Stored-at upper bound (RFC3339)"
// @Success     200 {object} decisionListResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/decisions [GET]
func (h *handler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processSearchReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	decisions, err := h.uc.Search(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "uc.Search: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newDecisionListResp(decisions))
}

// Recent godoc
// @Summary     Recent decisions
// @Description Returns the most recently stored decisions, newest first.
// @Tags        Decisions
// @Produce     json
// @Param       limit query int false "Maximum number of decisions (default 20)"
// @Success     200 {object} decisionListResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/decisions/recent [GET]
func (h *handler) Recent(c *gin.Context) {
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.Query("limit"))

	decisions, err := h.uc.Recent(ctx, limit)
	if err != nil {
		h.l.Errorf(ctx, "uc.Recent: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newDecisionListResp(decisions))
}

// History godoc
// @Summary     Decision history for a VIN
// @Description Returns all stored decisions for a vehicle, newest first.
// @Tags        Vehicles
// @Produce     json
// @Param       vin path string true "Vehicle Identification Number"
// @Success     200 {object} decisionListResp
// @Failure     400 {object} response.Resp "Invalid VIN"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/vehicles/{vin}/decisions [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	decisions, err := h.uc.History(ctx, c.Param("vin"))
	if err != nil {
		h.l.Errorf(ctx, "uc.History: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newDecisionListResp(decisions))
}

// Lookup godoc
// @Summary     Market valuation lookup
// @Description Fetches the external market valuation for a VIN with the stored decision history attached.
// @Tags        Vehicles
// @Produce     json
// @Param       vin path string true "Vehicle Identification Number"
// @Success     200 {object} lookupResp
// @Failure     400 {object} response.Resp "Invalid VIN or lookup unavailable"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/vehicles/{vin}/valuation [GET]
func (h *handler) Lookup(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Lookup(ctx, c.Param("vin"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Lookup: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newLookupResp(output))
}

// Statistics godoc
// @Summary     Decision statistics
// @Description Aggregates the stored decision history.
// @Tags        Decisions
// @Produce     json
// @Success     200 {object} statisticsResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/statistics [GET]
func (h *handler) Statistics(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.uc.Statistics(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.Statistics: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, statisticsResp{Statistics: stats})
}

// Export godoc
// @Summary     Export decisions to CSV
// @Description Writes the stored decisions to a CSV file and returns its path.
// @Tags        Decisions
// @Accept      json
// @Produce     json
// @Param       body body exportReq false "Optional export destination"
// @Success     200 {object} exportResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/decisions/export [POST]
func (h *handler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExportReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ExportCSV(ctx, assessment.ExportInput{Path: req.Path})
	if err != nil {
		h.l.Errorf(ctx, "uc.ExportCSV: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, exportResp{Path: output.Path, Count: output.Count})
}

// ParseSalvage godoc
// @Summary     Parse salvage offer text
// @Description Extracts salvage values from free-form offer text with confidence scoring.
// @Tags        Salvage
// @Accept      json
// @Produce     json
// @Param       body body parseSalvageReq true "Offer text"
// @Success     200 {object} parseSalvageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/salvage/parse [POST]
func (h *handler) ParseSalvage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processParseSalvageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ParseSalvage(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ParseSalvage: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, parseSalvageResp{
		Result:  output.Result,
		Valid:   output.Valid,
		Message: output.Message,
	})
}

// SendSalvage godoc
// @Summary     Send salvage tender requests
// @Description Emails a salvage tender request for a vehicle to each recipient.
// @Tags        Salvage
// @Accept      json
// @Produce     json
// @Param       body body sendSalvageReq true "Salvage request"
// @Success     200 {object} sendSalvageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/salvage/requests [POST]
func (h *handler) SendSalvage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSendSalvageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.SendSalvageRequest(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SendSalvageRequest: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, sendSalvageResp{
		Sent:   output.Sent,
		Failed: output.Failed,
		Errors: output.Errors,
	})
}
