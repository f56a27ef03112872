package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/api/dto"
	"github.com/mhmdevan/workload-radar/internal/api/middleware"
	"github.com/mhmdevan/workload-radar/internal/domain/user"
	"github.com/mhmdevan/workload-radar/pkg/security/auth"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	service user.Service
	jwt     *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(service user.Service, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{service: service, jwt: jwt}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, user.ErrInvalidInput) {
			statusCode = http.StatusBadRequest
		} else if errors.Is(err, user.ErrEmailTaken) {
			statusCode = http.StatusConflict
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.UserToResponse(created))
}

// Login authenticates a user and returns a signed token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authenticated, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if authenticated == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.jwt.GenerateToken(authenticated.ID, authenticated.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		User:  dto.UserToResponse(authenticated),
		Token: token,
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, user.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.UserToResponse(u))
}
