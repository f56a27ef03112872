package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/api/dto"
	"github.com/mhmdevan/workload-radar/internal/domain/project"
	"github.com/mhmdevan/workload-radar/internal/domain/report"
)

// ReportHandler handles HTTP requests for report operations
type ReportHandler struct {
	service report.Service
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(service report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// RequestDailySummary requests an asynchronous daily summary report
// for a project. The response is the pending report record; callers
// poll GetReport for the result.
func (h *ReportHandler) RequestDailySummary(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var params dto.RequestReportBody
	if err := c.ShouldBindJSON(&params); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.RequestProjectSummary(c.Request.Context(), projectID, params)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, project.ErrProjectNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, dto.ReportToResponse(created))
}

// GetReport fetches a report by id
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	rep, err := h.service.GetReport(c.Request.Context(), reportID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, report.ErrReportNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ReportToResponse(rep))
}
