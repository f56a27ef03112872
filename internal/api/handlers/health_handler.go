package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/infrastructure/persistence/connection"
)

// HealthHandler reports service health including database connectivity
type HealthHandler struct {
	db *connection.Database
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db *connection.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check runs the health probes
func (h *HealthHandler) Check(c *gin.Context) {
	dbOK := false
	if sqlDB, err := h.db.DB.DB(); err == nil {
		dbOK = sqlDB.PingContext(c.Request.Context()) == nil
	}

	status := "ok"
	statusCode := http.StatusOK
	dbStatus := "ok"
	if !dbOK {
		status = "degraded"
		statusCode = http.StatusInternalServerError
		dbStatus = "failed"
	}

	c.JSON(statusCode, gin.H{
		"status": status,
		"checks": gin.H{
			"database": dbStatus,
		},
	})
}
