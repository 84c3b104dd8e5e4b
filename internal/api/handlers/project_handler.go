package handlers

import (
	"errors"
	"net/http"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/dto"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/project"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	service project.Service
}

func NewProjectHandler(service project.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func projectStatusCode(err error) int {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidWorkspace),
		errors.Is(err, project.ErrInvalidStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// CreateProject creates a new project in a workspace
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateProject(c.Request.Context(), project.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		WorkspaceID: req.WorkspaceID,
		Deadline:    req.Deadline,
		ServiceMeta: req.ServiceMeta,
		CreatedBy:   email,
	})
	if err != nil {
		c.JSON(projectStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ProjectToResponse(created)})
}

// GetProject returns one project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	found, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(projectStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProjectToResponse(found)})
}

// ListProjects returns projects, optionally filtered by workspace and status
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var filter project.ProjectFilter

	if ws := c.Query("workspace_id"); ws != "" {
		id, err := uuid.Parse(ws)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
			return
		}
		filter.WorkspaceID = &id
	}
	if status := c.Query("status"); status != "" {
		s := project.ProjectStatus(status)
		filter.Status = &s
	}

	projects, err := h.service.ListProjects(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, ProjectToResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// UpdateProject updates project fields
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := project.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if req.Status != nil {
		s := project.ProjectStatus(*req.Status)
		input.Status = &s
	}

	updated, err := h.service.UpdateProject(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(projectStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ProjectToResponse(updated)})
}
