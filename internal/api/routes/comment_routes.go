package routes

import (
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/handlers"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// CommentRoutes handles the setup of comment-related routes
type CommentRoutes struct {
	handler   *handlers.CommentHandler
	jwtSecret string
}

// NewCommentRoutes creates a new CommentRoutes instance
func NewCommentRoutes(handler *handlers.CommentHandler, jwtSecret string) *CommentRoutes {
	return &CommentRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all comment-related routes
func (cr *CommentRoutes) RegisterRoutes(router *gin.Engine) {
	commentGroup := router.Group("/api/comments")
	commentGroup.Use(middleware.NewAuthMiddleware(cr.jwtSecret))

	commentGroup.POST("", cr.handler.AddComment)
	commentGroup.GET("", cr.handler.GetThreads)
	commentGroup.PUT("/:id", cr.handler.EditComment)
	commentGroup.DELETE("/:id", cr.handler.DeleteComment)
	commentGroup.PUT("/:id/pin", cr.handler.TogglePin)
	commentGroup.PUT("/:id/reactions", cr.handler.React)
}
