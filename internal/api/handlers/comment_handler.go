package handlers

import (
	"errors"
	"net/http"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/dto"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/comment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

func commentStatusCode(err error) int {
	switch {
	case errors.Is(err, comment.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, comment.ErrNotAuthor):
		return http.StatusForbidden
	case errors.Is(err, comment.ErrInvalidInput),
		errors.Is(err, comment.ErrEmptyContent),
		errors.Is(err, comment.ErrInvalidEntity),
		errors.Is(err, comment.ErrParentMismatch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// AddComment posts a comment on a task or project
func (h *CommentHandler) AddComment(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.AddComment(c.Request.Context(), comment.AddCommentInput{
		EntityType:      comment.EntityType(req.EntityType),
		EntityID:        req.EntityID,
		WorkspaceID:     req.WorkspaceID,
		AuthorEmail:     email,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		c.JSON(commentStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": CommentToResponse(created)})
}

// GetThreads returns an entity's comments grouped into threads
func (h *CommentHandler) GetThreads(c *gin.Context) {
	entityType := comment.EntityType(c.Query("entity_type"))
	if !entityType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity type"})
		return
	}

	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
		return
	}

	threads, err := h.service.GetThreads(c.Request.Context(), entityType, entityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.ThreadResponse, 0, len(threads))
	for _, t := range threads {
		out = append(out, ThreadToResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// EditComment replaces a comment's content
func (h *CommentHandler) EditComment(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	var req dto.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.EditComment(c.Request.Context(), id, email, req.Content)
	if err != nil {
		c.JSON(commentStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CommentToResponse(updated)})
}

// DeleteComment tombstones a comment
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	deleted, err := h.service.DeleteComment(c.Request.Context(), id, email)
	if err != nil {
		c.JSON(commentStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CommentToResponse(deleted)})
}

// TogglePin flips a comment's pinned flag
func (h *CommentHandler) TogglePin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	updated, err := h.service.TogglePin(c.Request.Context(), id)
	if err != nil {
		c.JSON(commentStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CommentToResponse(updated)})
}

// React toggles an emoji reaction on a comment
func (h *CommentHandler) React(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	var req dto.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.React(c.Request.Context(), id, req.Emoji, email)
	if err != nil {
		c.JSON(commentStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CommentToResponse(updated)})
}
