package routes

import (
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/handlers"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// NotificationRoutes handles the setup of notification routes
type NotificationRoutes struct {
	handler   *handlers.NotificationHandler
	jwtSecret string
}

// NewNotificationRoutes creates a new NotificationRoutes instance
func NewNotificationRoutes(handler *handlers.NotificationHandler, jwtSecret string) *NotificationRoutes {
	return &NotificationRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all notification routes
func (nr *NotificationRoutes) RegisterRoutes(router *gin.Engine) {
	notificationGroup := router.Group("/api/notifications")
	notificationGroup.Use(middleware.NewAuthMiddleware(nr.jwtSecret))

	notificationGroup.GET("", nr.handler.ListNotifications)
	notificationGroup.PUT("/:id/read", nr.handler.MarkRead)
	notificationGroup.PUT("/read-all", nr.handler.MarkAllRead)

	// The stream endpoint authenticates itself (header or token query
	// parameter) because WebSocket upgrades from browsers cannot carry an
	// Authorization header.
	router.GET("/api/notifications/stream", nr.handler.StreamNotifications)
}
