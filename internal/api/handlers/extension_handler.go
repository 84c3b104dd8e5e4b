package handlers

import (
	"errors"
	"net/http"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/dto"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/extension"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExtensionHandler struct {
	service extension.Service
	tasks   task.Service
}

func NewExtensionHandler(service extension.Service, tasks task.Service) *ExtensionHandler {
	return &ExtensionHandler{service: service, tasks: tasks}
}

func extensionStatusCode(err error) int {
	switch {
	case errors.Is(err, extension.ErrRequestNotFound), errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, extension.ErrAlreadyResolved):
		return http.StatusConflict
	case errors.Is(err, extension.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RequestExtension files a deadline-change request
func (h *ExtensionHandler) RequestExtension(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.RequestExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Request(c.Request.Context(), extension.RequestInput{
		TaskID:         req.TaskID,
		RequesterEmail: email,
		NewDate:        req.NewDate,
		Reason:         req.Reason,
	})
	if err != nil {
		c.JSON(extensionStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ExtensionToResponse(result.Request)})
}

// ApproveExtension approves a pending request, optionally moving the task's
// due date to the requested one.
func (h *ExtensionHandler) ApproveExtension(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid extension request ID"})
		return
	}

	// Body is optional; absent means approve without touching the task
	var req dto.DecideExtensionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	decided, err := h.service.Approve(c.Request.Context(), id, email)
	if err != nil {
		c.JSON(extensionStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	// Applying the new deadline is an explicit caller decision, never an
	// automatic side effect of approval.
	if req.ApplyToTask {
		if _, err := h.tasks.SetDueDate(c.Request.Context(), decided.TaskID, decided.NewDate, email); err != nil {
			c.JSON(taskStatusCode(err), gin.H{
				"error": "request approved but due date not applied: " + err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": ExtensionToResponse(decided)})
}

// RejectExtension rejects a pending request
func (h *ExtensionHandler) RejectExtension(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid extension request ID"})
		return
	}

	decided, err := h.service.Reject(c.Request.Context(), id, email)
	if err != nil {
		c.JSON(extensionStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ExtensionToResponse(decided)})
}

// ListForTask returns a task's extension requests
func (h *ExtensionHandler) ListForTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	requests, err := h.service.ListForTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.ExtensionResponse, 0, len(requests))
	for i := range requests {
		out = append(out, ExtensionToResponse(&requests[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
