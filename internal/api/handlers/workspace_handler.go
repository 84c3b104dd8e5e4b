package handlers

import (
	"errors"
	"net/http"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/dto"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/user"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceHandler struct {
	service workspace.Service
	users   user.Service
}

func NewWorkspaceHandler(service workspace.Service, users user.Service) *WorkspaceHandler {
	return &WorkspaceHandler{service: service, users: users}
}

func workspaceStatusCode(err error) int {
	switch {
	case errors.Is(err, workspace.ErrWorkspaceNotFound), errors.Is(err, workspace.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, workspace.ErrMemberExists):
		return http.StatusConflict
	case errors.Is(err, workspace.ErrInvalidInput),
		errors.Is(err, workspace.ErrInvalidOwner),
		errors.Is(err, workspace.ErrInvalidRole),
		errors.Is(err, workspace.ErrEmptyStatusSet):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// CreateWorkspace creates a workspace owned by the authenticated user
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerName := email
	if u, err := h.users.GetByEmail(c.Request.Context(), email); err == nil {
		ownerName = u.Name
	}

	created, err := h.service.CreateWorkspace(c.Request.Context(), workspace.CreateWorkspaceInput{
		Name:           req.Name,
		OwnerEmail:     email,
		OwnerName:      ownerName,
		CustomStatuses: req.CustomStatuses,
	})
	if err != nil {
		c.JSON(workspaceStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": WorkspaceToResponse(created)})
}

// GetWorkspace returns one workspace by ID
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	found, err := h.service.GetWorkspace(c.Request.Context(), id)
	if err != nil {
		c.JSON(workspaceStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": WorkspaceToResponse(found)})
}

// ListWorkspaces returns the workspaces the authenticated user belongs to
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	workspaces, err := h.service.ListForMember(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		out = append(out, WorkspaceToResponse(&workspaces[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// AddMember adds a member to a workspace
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.AddMember(c.Request.Context(), id, workspace.Member{
		Email: req.Email,
		Name:  req.Name,
		Role:  workspace.Role(req.Role),
	})
	if err != nil {
		c.JSON(workspaceStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": WorkspaceToResponse(updated)})
}

// RemoveMember removes a member from a workspace
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	email := c.Param("email")
	updated, err := h.service.RemoveMember(c.Request.Context(), id, email)
	if err != nil {
		c.JSON(workspaceStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": WorkspaceToResponse(updated)})
}

// UpdateStatuses replaces the workspace status vocabulary
func (h *WorkspaceHandler) UpdateStatuses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
		return
	}

	var req dto.UpdateStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateStatuses(c.Request.Context(), id, req.CustomStatuses)
	if err != nil {
		c.JSON(workspaceStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": WorkspaceToResponse(updated)})
}
