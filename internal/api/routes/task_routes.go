package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/api/handlers"
	"github.com/mhmdevan/workload-radar/internal/api/middleware"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all task-related routes
func (tr *TaskRoutes) RegisterRoutes(router *gin.Engine) {
	taskGroup := router.Group("/api/tasks")
	taskGroup.Use(middleware.NewAuthMiddleware(tr.jwtSecret))

	taskGroup.GET("/:id", tr.handler.GetTask)
	taskGroup.PATCH("/:id/status", tr.handler.UpdateTaskStatus)
}
