package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/api/handlers"
	"github.com/mhmdevan/workload-radar/internal/api/middleware"
)

// ProjectRoutes handles the setup of project-related routes
type ProjectRoutes struct {
	handler     *handlers.ProjectHandler
	taskHandler *handlers.TaskHandler
	jwtSecret   string
}

// NewProjectRoutes creates a new ProjectRoutes instance
func NewProjectRoutes(handler *handlers.ProjectHandler, taskHandler *handlers.TaskHandler, jwtSecret string) *ProjectRoutes {
	return &ProjectRoutes{
		handler:     handler,
		taskHandler: taskHandler,
		jwtSecret:   jwtSecret,
	}
}

// RegisterRoutes registers all project-related routes, including the
// nested task collection.
func (pr *ProjectRoutes) RegisterRoutes(router *gin.Engine) {
	projectGroup := router.Group("/api/projects")
	projectGroup.Use(middleware.NewAuthMiddleware(pr.jwtSecret))

	projectGroup.POST("", pr.handler.CreateProject)
	projectGroup.GET("", pr.handler.ListProjects)
	projectGroup.GET("/:id", pr.handler.GetProject)
	projectGroup.POST("/:id/tasks", pr.taskHandler.CreateTask)
	projectGroup.GET("/:id/tasks", pr.taskHandler.ListTasks)
}
