package events

import (
	"time"

	"github.com/google/uuid"
)

// Workspace event types published on task and comment mutations so inbox
// and board views can refresh.
const (
	EventTaskCreated      = "task_created"
	EventTaskStatusMoved  = "task_status_moved"
	EventTaskGenerated    = "task_generated"
	EventCommentAdded     = "comment_added"
	EventExtensionDecided = "extension_decided"
)

// WorkspaceEvent represents a change within a workspace
type WorkspaceEvent struct {
	EventType   string      `json:"event_type"`
	WorkspaceID uuid.UUID   `json:"workspace_id"`
	EntityID    uuid.UUID   `json:"entity_id"`
	ActorEmail  string      `json:"actor_email,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Details     interface{} `json:"details,omitempty"`
}
