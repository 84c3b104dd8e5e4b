package routes

import (
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/handlers"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// WorkspaceRoutes handles the setup of workspace-related routes
type WorkspaceRoutes struct {
	handler   *handlers.WorkspaceHandler
	jwtSecret string
}

// NewWorkspaceRoutes creates a new WorkspaceRoutes instance
func NewWorkspaceRoutes(handler *handlers.WorkspaceHandler, jwtSecret string) *WorkspaceRoutes {
	return &WorkspaceRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all workspace-related routes
func (wr *WorkspaceRoutes) RegisterRoutes(router *gin.Engine) {
	workspaceGroup := router.Group("/api/workspaces")
	workspaceGroup.Use(middleware.NewAuthMiddleware(wr.jwtSecret))

	workspaceGroup.POST("", wr.handler.CreateWorkspace)
	workspaceGroup.GET("", wr.handler.ListWorkspaces)
	workspaceGroup.GET("/:id", wr.handler.GetWorkspace)
	workspaceGroup.POST("/:id/members", wr.handler.AddMember)
	workspaceGroup.DELETE("/:id/members/:email", wr.handler.RemoveMember)
	workspaceGroup.PUT("/:id/statuses", wr.handler.UpdateStatuses)
}
