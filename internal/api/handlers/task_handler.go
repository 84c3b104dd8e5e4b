package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/dto"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	service task.Service
}

func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

func taskStatusCode(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, workspace.ErrWorkspaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidWorkspace):
		return http.StatusBadRequest
	case errors.Is(err, task.ErrStatusNotAllowed):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := task.TaskPriority(req.Priority)
	if req.Priority != "" && !priority.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
		return
	}

	created, err := h.service.CreateTask(c.Request.Context(), task.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		AssigneeEmail: req.AssigneeEmail,
		Status:        req.Status,
		Priority:      priority,
		DueDate:       req.DueDate,
		StartDate:     req.StartDate,
		Subtasks:      req.Subtasks,
		Recurrence:    req.Recurrence,
		ProjectID:     req.ProjectID,
		WorkspaceID:   req.WorkspaceID,
		CreatedBy:     email,
	})
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": TaskToResponse(created)})
}

// GetTask returns one task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	found, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(found)})
}

// ListTasks returns tasks matching the query filters
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filter task.TaskFilter

	if ws := c.Query("workspace_id"); ws != "" {
		id, err := uuid.Parse(ws)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace ID"})
			return
		}
		filter.WorkspaceID = &id
	}
	if p := c.Query("project_id"); p != "" {
		id, err := uuid.Parse(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
			return
		}
		filter.ProjectID = &id
	}
	if assignee := c.Query("assignee"); assignee != "" {
		filter.AssigneeEmail = &assignee
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if p := c.Query("priority"); p != "" {
		priority := task.TaskPriority(p)
		if !priority.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
			return
		}
		filter.Priority = &priority
	}
	if due := c.Query("due_before"); due != "" {
		t, err := time.Parse(time.RFC3339, due)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_before timestamp"})
			return
		}
		filter.DueDateEnd = &t
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	tasks, total, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.TaskListResponse{
		Tasks:    out,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}})
}

// UpdateTask updates task fields
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := task.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		AssigneeEmail: req.AssigneeEmail,
		DueDate:       req.DueDate,
		StartDate:     req.StartDate,
		CompletionPct: req.CompletionPct,
		Recurrence:    req.Recurrence,
	}
	if req.Priority != nil {
		priority := task.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	updated, err := h.service.UpdateTask(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated)})
}

// UpdateStatus moves a task to a new status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, email)
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated)})
}

// AssignTask assigns a task to a member
func (h *TaskHandler) AssignTask(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.AssignTask(c.Request.Context(), id, req.AssigneeEmail, email)
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated)})
}

// AddSubtask appends a subtask to the task's checklist
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.AddSubtask(c.Request.Context(), id, req.Title)
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated)})
}

// ToggleSubtask flips a subtask's completion flag
func (h *TaskHandler) ToggleSubtask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	subtaskID, err := uuid.Parse(c.Param("subtask_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subtask ID"})
		return
	}

	updated, err := h.service.ToggleSubtask(c.Request.Context(), id, subtaskID)
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated)})
}

// LogTime records a time entry against a task
func (h *TaskHandler) LogTime(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.LogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.LogTime(c.Request.Context(), task.LogTimeInput{
		TaskID:      id,
		UserEmail:   email,
		Duration:    req.Duration,
		Description: req.Description,
	})
	if err != nil {
		c.JSON(taskStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": TimeEntryToResponse(entry)})
}

// ListTimeEntries returns a task's logged time entries
func (h *TaskHandler) ListTimeEntries(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	entries, err := h.service.ListTimeEntries(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.TimeEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, TimeEntryToResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
