package comment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityType names the kind of record a comment hangs off
type EntityType string

const (
	EntityTask    EntityType = "task"
	EntityProject EntityType = "project"
)

// IsValid checks if the entity type is a commentable kind
func (e EntityType) IsValid() bool {
	switch e {
	case EntityTask, EntityProject:
		return true
	}
	return false
}

// deletedPlaceholder is rendered in place of a tombstoned comment's content
// for every reader, the author included.
const deletedPlaceholder = "[deleted]"

// ReactionMap stores emoji reactions as a JSONB column, keyed by emoji with
// the reacting members' emails as values.
type ReactionMap map[string][]string

// Value implements the driver.Valuer interface for ReactionMap
func (r ReactionMap) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "{}", nil
	}
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface for ReactionMap
func (r *ReactionMap) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal ReactionMap value: %v", value)
	}
	return json.Unmarshal(bytes, r)
}

// Comment is a discussion entry on a task or project. Threading is single
// level: a comment either sits at the top or replies to a top-level comment.
type Comment struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	EntityType      EntityType  `json:"entity_type" gorm:"type:varchar(32);not null;index:idx_comment_entity"`
	EntityID        uuid.UUID   `json:"entity_id" gorm:"type:uuid;not null;index:idx_comment_entity"`
	WorkspaceID     uuid.UUID   `json:"workspace_id" gorm:"type:uuid;not null;index:idx_comment_workspace"`
	AuthorEmail     string      `json:"author_email" gorm:"type:varchar(255);not null"`
	Content         string      `json:"content" gorm:"type:text;not null"`
	ParentCommentID *uuid.UUID  `json:"parent_comment_id,omitempty" gorm:"type:uuid;index:idx_comment_parent"`
	IsPinned        bool        `json:"is_pinned" gorm:"not null;default:false"`
	IsDeleted       bool        `json:"is_deleted" gorm:"not null;default:false"`
	Reactions       ReactionMap `json:"reactions" gorm:"type:jsonb"`
	CreatedAt       time.Time   `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt       time.Time   `json:"updated_at" gorm:"not null;default:current_timestamp"`
	EditedAt        *time.Time  `json:"edited_at,omitempty"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// Validate checks if the comment data is valid
func (c *Comment) Validate() error {
	if c.Content == "" {
		return ErrEmptyContent
	}
	if !c.EntityType.IsValid() {
		return ErrInvalidEntity
	}
	if c.EntityID == uuid.Nil || c.WorkspaceID == uuid.Nil {
		return ErrInvalidEntity
	}
	if c.AuthorEmail == "" {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new comment record
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return c.Validate()
}

// BeforeUpdate is called before updating a comment record
func (c *Comment) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// DisplayContent returns the content readers see. Tombstoned comments render
// the placeholder regardless of who asks.
func (c *Comment) DisplayContent() string {
	if c.IsDeleted {
		return deletedPlaceholder
	}
	return c.Content
}

// ToggleReaction adds the user's reaction under the emoji, or removes it if
// already present. Reports whether the reaction is present afterwards.
func (c *Comment) ToggleReaction(emoji, userEmail string) bool {
	if c.Reactions == nil {
		c.Reactions = make(ReactionMap)
	}
	users := c.Reactions[emoji]
	for i, u := range users {
		if u == userEmail {
			users = append(users[:i], users[i+1:]...)
			if len(users) == 0 {
				delete(c.Reactions, emoji)
			} else {
				c.Reactions[emoji] = users
			}
			return false
		}
	}
	c.Reactions[emoji] = append(users, userEmail)
	return true
}
