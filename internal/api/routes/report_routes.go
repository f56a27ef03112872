package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/api/handlers"
	"github.com/mhmdevan/workload-radar/internal/api/middleware"
)

// ReportRoutes handles the setup of report-related routes
type ReportRoutes struct {
	handler   *handlers.ReportHandler
	jwtSecret string
}

// NewReportRoutes creates a new ReportRoutes instance
func NewReportRoutes(handler *handlers.ReportHandler, jwtSecret string) *ReportRoutes {
	return &ReportRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all report-related routes
func (rr *ReportRoutes) RegisterRoutes(router *gin.Engine) {
	reportGroup := router.Group("/api/reports")
	reportGroup.Use(middleware.NewAuthMiddleware(rr.jwtSecret))

	reportGroup.POST("/project/:id/daily-summary", rr.handler.RequestDailySummary)
	reportGroup.GET("/:id", rr.handler.GetReport)
}
