package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/api/handlers"
)

// HealthRoutes handles the setup of health-check routes
type HealthRoutes struct {
	handler *handlers.HealthHandler
}

// NewHealthRoutes creates a new HealthRoutes instance
func NewHealthRoutes(handler *handlers.HealthHandler) *HealthRoutes {
	return &HealthRoutes{handler: handler}
}

// RegisterRoutes registers the health-check route
func (hr *HealthRoutes) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", hr.handler.Check)
}
