package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/models"
)

// WorkReportHandler serves work report CRUD and month upsert endpoints.
type WorkReportHandler struct {
	svc WorkReportService
	log *logrus.Logger
}

// NewWorkReportHandler creates a WorkReportHandler with the given service and logger.
func NewWorkReportHandler(svc WorkReportService, log *logrus.Logger) *WorkReportHandler {
	return &WorkReportHandler{svc: svc, log: log}
}

// List handles GET /api/v1/work-reports. An optional contract_id query param
// narrows the list to one contract.
func (h *WorkReportHandler) List(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	reports, err := h.svc.ListWorkReports(c.Request.Context(), p.ID, c.Query("contract_id"))
	if err != nil {
		respondGuardError(c, h.log, err, "listing work reports")

		return
	}

	c.JSON(http.StatusOK, gin.H{"work_reports": reports})
}

// Get handles GET /api/v1/work-reports/:id.
func (h *WorkReportHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	report, err := h.svc.GetWorkReport(c.Request.Context(), id)
	if err != nil {
		respondGuardError(c, h.log, err, "getting work report")

		return
	}

	c.JSON(http.StatusOK, report)
}

// Create handles POST /api/v1/work-reports.
func (h *WorkReportHandler) Create(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	var req models.WorkReport
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if req.UserID == "" {
		req.UserID = p.ID
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	report, err := h.svc.CreateWorkReport(c.Request.Context(), &req)
	if err != nil {
		respondGuardError(c, h.log, err, "creating work report")

		return
	}

	c.JSON(http.StatusCreated, report)
}

// Update handles PATCH /api/v1/work-reports/:id.
func (h *WorkReportHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var patch models.WorkReportPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := patch.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	report, err := h.svc.UpdateWorkReport(c.Request.Context(), id, patch)
	if err != nil {
		respondGuardError(c, h.log, err, "updating work report")

		return
	}

	c.JSON(http.StatusOK, report)
}

// Delete handles DELETE /api/v1/work-reports/:id.
func (h *WorkReportHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if p := getPrincipal(c); p == nil {
		return
	}

	if _, err := h.svc.DeleteWorkReport(c.Request.Context(), id); err != nil {
		respondGuardError(c, h.log, err, "deleting work report")

		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// upsertMonthRequest is the payload for the bulk month upsert.
type upsertMonthRequest struct {
	ContractID string             `json:"contract_id"`
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	Entries    map[string]float64 `json:"entries"`
}

// UpsertMonth handles PUT /api/v1/work-reports/month — bulk attendance edit
// that creates the month's report when absent and merges entries otherwise.
func (h *WorkReportHandler) UpsertMonth(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		return
	}

	var req upsertMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	report, err := h.svc.UpsertMonth(c.Request.Context(), p.ID, req.ContractID, req.Year, req.Month, req.Entries)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingContract),
			errors.Is(err, models.ErrInvalidYear),
			errors.Is(err, models.ErrInvalidMonth):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			respondGuardError(c, h.log, err, "upserting month report")
		}

		return
	}

	c.JSON(http.StatusOK, report)
}
