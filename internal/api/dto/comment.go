package dto

import (
	"time"

	"github.com/google/uuid"
)

// AddCommentRequest posts a comment on a task or project
type AddCommentRequest struct {
	EntityType      string     `json:"entity_type" binding:"required"`
	EntityID        uuid.UUID  `json:"entity_id" binding:"required"`
	WorkspaceID     uuid.UUID  `json:"workspace_id" binding:"required"`
	Content         string     `json:"content" binding:"required"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id,omitempty"`
}

// EditCommentRequest replaces a comment's content
type EditCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReactRequest toggles an emoji reaction
type ReactRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

// CommentResponse is the public view of a comment. Content is already the
// display form, so tombstoned comments carry the placeholder.
type CommentResponse struct {
	ID              string              `json:"id"`
	EntityType      string              `json:"entity_type"`
	EntityID        string              `json:"entity_id"`
	AuthorEmail     string              `json:"author_email"`
	Content         string              `json:"content"`
	ParentCommentID *string             `json:"parent_comment_id,omitempty"`
	IsPinned        bool                `json:"is_pinned"`
	IsDeleted       bool                `json:"is_deleted"`
	Reactions       map[string][]string `json:"reactions"`
	CreatedAt       time.Time           `json:"created_at"`
	EditedAt        *time.Time          `json:"edited_at,omitempty"`
}

// ThreadResponse is a top-level comment with its replies
type ThreadResponse struct {
	Comment CommentResponse   `json:"comment"`
	Replies []CommentResponse `json:"replies"`
}
