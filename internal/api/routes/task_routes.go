package routes

import (
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/handlers"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all task-related routes
func (tr *TaskRoutes) RegisterRoutes(router *gin.Engine) {
	taskGroup := router.Group("/api/tasks")
	taskGroup.Use(middleware.NewAuthMiddleware(tr.jwtSecret))

	taskGroup.POST("", tr.handler.CreateTask)
	taskGroup.GET("", tr.handler.ListTasks)
	taskGroup.GET("/:id", tr.handler.GetTask)
	taskGroup.PUT("/:id", tr.handler.UpdateTask)
	taskGroup.PUT("/:id/status", tr.handler.UpdateStatus)
	taskGroup.PUT("/:id/assignee", tr.handler.AssignTask)
	taskGroup.POST("/:id/subtasks", tr.handler.AddSubtask)
	taskGroup.PUT("/:id/subtasks/:subtask_id", tr.handler.ToggleSubtask)
	taskGroup.POST("/:id/time", tr.handler.LogTime)
	taskGroup.GET("/:id/time", tr.handler.ListTimeEntries)
}
