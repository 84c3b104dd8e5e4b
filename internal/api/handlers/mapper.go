package handlers

import (
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/dto"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/comment"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/extension"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/notification"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/project"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/user"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
)

// UserToResponse converts a user to its public view
func UserToResponse(u *user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 u.ID.String(),
		Email:              u.Email,
		Name:               u.Name,
		EmailNotifications: u.EmailNotifications,
	}
}

// WorkspaceToResponse converts a workspace to its public view
func WorkspaceToResponse(w *workspace.Workspace) dto.WorkspaceResponse {
	members := make([]dto.MemberResponse, 0, len(w.Members))
	for _, m := range w.Members {
		members = append(members, dto.MemberResponse{
			Email: m.Email,
			Name:  m.Name,
			Role:  string(m.Role),
		})
	}
	return dto.WorkspaceResponse{
		ID:             w.ID.String(),
		Name:           w.Name,
		OwnerEmail:     w.OwnerEmail,
		Members:        members,
		CustomStatuses: w.CustomStatuses,
		CreatedAt:      w.CreatedAt,
	}
}

// ProjectToResponse converts a project to its public view
func ProjectToResponse(p *project.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		WorkspaceID: p.WorkspaceID.String(),
		Deadline:    p.Deadline,
		Status:      string(p.Status),
		ServiceMeta: p.ServiceMeta,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

// TaskToResponse converts a task to its public view, deriving urgency from
// the due date at response time.
func TaskToResponse(t *task.Task) dto.TaskResponse {
	subtasks := make([]dto.SubtaskResponse, 0, len(t.Subtasks))
	for _, st := range t.Subtasks {
		subtasks = append(subtasks, dto.SubtaskResponse{
			ID:        st.ID.String(),
			Title:     st.Title,
			Completed: st.Completed,
		})
	}

	history := make([]dto.StatusChangeResponse, 0, len(t.StatusHistory))
	for _, h := range t.StatusHistory {
		history = append(history, dto.StatusChangeResponse{
			From: h.From,
			To:   h.To,
			By:   h.By,
			At:   h.At,
		})
	}

	var projectID *string
	if t.ProjectID != nil {
		id := t.ProjectID.String()
		projectID = &id
	}

	return dto.TaskResponse{
		ID:            t.ID.String(),
		Title:         t.Title,
		Description:   t.Description,
		AssigneeEmail: t.AssigneeEmail,
		Status:        t.Status,
		Priority:      string(t.Priority),
		Urgency:       string(t.Urgency(time.Now())),
		DueDate:       t.DueDate,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		CompletionPct: t.CompletionPct,
		Subtasks:      subtasks,
		StatusHistory: history,
		Recurrence:    t.Recurrence,
		ProjectID:     projectID,
		WorkspaceID:   t.WorkspaceID.String(),
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// TimeEntryToResponse converts a time entry to its public view
func TimeEntryToResponse(e *task.TimeEntry) dto.TimeEntryResponse {
	return dto.TimeEntryResponse{
		ID:          e.ID.String(),
		TaskID:      e.TaskID.String(),
		UserEmail:   e.UserEmail,
		Duration:    e.Duration,
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}
}

// CommentToResponse converts a comment to its public view. Tombstoned
// comments are rendered with the placeholder content for everyone.
func CommentToResponse(c *comment.Comment) dto.CommentResponse {
	var parentID *string
	if c.ParentCommentID != nil {
		id := c.ParentCommentID.String()
		parentID = &id
	}

	reactions := c.Reactions
	if reactions == nil {
		reactions = comment.ReactionMap{}
	}

	return dto.CommentResponse{
		ID:              c.ID.String(),
		EntityType:      string(c.EntityType),
		EntityID:        c.EntityID.String(),
		AuthorEmail:     c.AuthorEmail,
		Content:         c.DisplayContent(),
		ParentCommentID: parentID,
		IsPinned:        c.IsPinned,
		IsDeleted:       c.IsDeleted,
		Reactions:       reactions,
		CreatedAt:       c.CreatedAt,
		EditedAt:        c.EditedAt,
	}
}

// ThreadToResponse converts a comment thread to its public view
func ThreadToResponse(t comment.Thread) dto.ThreadResponse {
	replies := make([]dto.CommentResponse, 0, len(t.Replies))
	for i := range t.Replies {
		replies = append(replies, CommentToResponse(&t.Replies[i]))
	}
	return dto.ThreadResponse{
		Comment: CommentToResponse(&t.Comment),
		Replies: replies,
	}
}

// NotificationToResponse converts a notification to its public view
func NotificationToResponse(n *notification.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.Status == notification.Read,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}

// ExtensionToResponse converts an extension request to its public view
func ExtensionToResponse(e *extension.ExtensionRequest) dto.ExtensionResponse {
	return dto.ExtensionResponse{
		ID:             e.ID.String(),
		TaskID:         e.TaskID.String(),
		RequesterEmail: e.RequesterEmail,
		NewDate:        e.NewDate,
		Reason:         e.Reason,
		Status:         string(e.Status),
		DeciderEmail:   e.DeciderEmail,
		DecidedAt:      e.DecidedAt,
		CreatedAt:      e.CreatedAt,
	}
}
