package routes

import (
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/handlers"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// ExtensionRoutes handles the setup of extension request routes
type ExtensionRoutes struct {
	handler   *handlers.ExtensionHandler
	jwtSecret string
}

// NewExtensionRoutes creates a new ExtensionRoutes instance
func NewExtensionRoutes(handler *handlers.ExtensionHandler, jwtSecret string) *ExtensionRoutes {
	return &ExtensionRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all extension request routes
func (er *ExtensionRoutes) RegisterRoutes(router *gin.Engine) {
	extensionGroup := router.Group("/api/extensions")
	extensionGroup.Use(middleware.NewAuthMiddleware(er.jwtSecret))

	extensionGroup.POST("", er.handler.RequestExtension)
	extensionGroup.PUT("/:id/approve", er.handler.ApproveExtension)
	extensionGroup.PUT("/:id/reject", er.handler.RejectExtension)
	extensionGroup.GET("/task/:task_id", er.handler.ListForTask)
}
