package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/api/dto"
	"github.com/mhmdevan/workload-radar/internal/api/middleware"
	"github.com/mhmdevan/workload-radar/internal/domain/project"
	"github.com/mhmdevan/workload-radar/internal/domain/user"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	service project.Service
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(service project.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProject creates a project owned by the authenticated user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.service.CreateProject(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, project.ErrInvalidInput) {
			statusCode = http.StatusBadRequest
		} else if errors.Is(err, user.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ProjectToResponse(created))
}

// GetProject returns a single project by id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	p, err := h.service.GetProject(c.Request.Context(), projectID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, project.ErrProjectNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ProjectToResponse(p))
}

// ListProjects lists the authenticated user's projects with pagination
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, offset := getPaginationParams(c)

	projects, err := h.service.ListProjectsForOwner(c.Request.Context(), ownerID, limit, offset)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	items := dto.ProjectsToResponse(projects)
	c.JSON(http.StatusOK, dto.ListResponse[dto.ProjectResponse]{
		Items:  items,
		Limit:  limit,
		Offset: offset,
		Count:  len(items),
	})
}
