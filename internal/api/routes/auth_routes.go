package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mhmdevan/workload-radar/internal/api/handlers"
	"github.com/mhmdevan/workload-radar/internal/api/middleware"
)

// AuthRoutes handles the setup of authentication routes
type AuthRoutes struct {
	handler   *handlers.AuthHandler
	jwtSecret string
}

// NewAuthRoutes creates a new AuthRoutes instance
func NewAuthRoutes(handler *handlers.AuthHandler, jwtSecret string) *AuthRoutes {
	return &AuthRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all authentication routes
func (ar *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")
	authGroup.POST("/register", ar.handler.Register)
	authGroup.POST("/login", ar.handler.Login)
	authGroup.GET("/me", middleware.NewAuthMiddleware(ar.jwtSecret), ar.handler.Me)
}
