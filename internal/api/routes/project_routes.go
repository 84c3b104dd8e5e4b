package routes

import (
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/handlers"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// ProjectRoutes handles the setup of project-related routes
type ProjectRoutes struct {
	handler   *handlers.ProjectHandler
	jwtSecret string
}

// NewProjectRoutes creates a new ProjectRoutes instance
func NewProjectRoutes(handler *handlers.ProjectHandler, jwtSecret string) *ProjectRoutes {
	return &ProjectRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all project-related routes
func (pr *ProjectRoutes) RegisterRoutes(router *gin.Engine) {
	projectGroup := router.Group("/api/projects")
	projectGroup.Use(middleware.NewAuthMiddleware(pr.jwtSecret))

	projectGroup.POST("", pr.handler.CreateProject)
	projectGroup.GET("", pr.handler.ListProjects)
	projectGroup.GET("/:id", pr.handler.GetProject)
	projectGroup.PUT("/:id", pr.handler.UpdateProject)
}
