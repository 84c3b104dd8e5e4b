package routes

import (
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/handlers"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/gin-gonic/gin"
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

	meGroup := router.Group("/api/me")
	meGroup.Use(middleware.NewAuthMiddleware(ar.jwtSecret))
	meGroup.GET("", ar.handler.Me)
	meGroup.PUT("/preferences", ar.handler.UpdatePreferences)
}
