package comment

import (
	"context"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/events"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MentionHandler scans freshly posted content for @mentions and notifies
// the mentioned members.
type MentionHandler interface {
	HandleMentions(ctx context.Context, workspaceID uuid.UUID, entityType string, entityID uuid.UUID, authorEmail, content string) error
}

type AddCommentInput struct {
	EntityType      EntityType `json:"entity_type"`
	EntityID        uuid.UUID  `json:"entity_id"`
	WorkspaceID     uuid.UUID  `json:"workspace_id"`
	AuthorEmail     string     `json:"author_email"`
	Content         string     `json:"content"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id,omitempty"`
}

type Service interface {
	AddComment(ctx context.Context, input AddCommentInput) (*Comment, error)
	GetThreads(ctx context.Context, entityType EntityType, entityID uuid.UUID) ([]Thread, error)
	EditComment(ctx context.Context, id uuid.UUID, actorEmail, content string) (*Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID, actorEmail string) (*Comment, error)
	TogglePin(ctx context.Context, id uuid.UUID) (*Comment, error)
	React(ctx context.Context, id uuid.UUID, emoji, userEmail string) (*Comment, error)
}

type service struct {
	repo     Repository
	mentions MentionHandler
	redis    *cache.RedisClient
	logger   *zap.Logger
}

func NewService(repo Repository, mentions MentionHandler, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{repo: repo, mentions: mentions, redis: redis, logger: logger}
}

// AddComment posts a comment. A reply to a reply is re-parented onto the
// top-level comment at write time, keeping threads a single level deep.
func (s *service) AddComment(ctx context.Context, input AddCommentInput) (*Comment, error) {
	c := &Comment{
		ID:              uuid.New(),
		EntityType:      input.EntityType,
		EntityID:        input.EntityID,
		WorkspaceID:     input.WorkspaceID,
		AuthorEmail:     input.AuthorEmail,
		Content:         input.Content,
		ParentCommentID: input.ParentCommentID,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if input.ParentCommentID != nil {
		parent, err := s.repo.FindByID(ctx, *input.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.EntityType != input.EntityType || parent.EntityID != input.EntityID {
			return nil, ErrParentMismatch
		}
		if parent.ParentCommentID != nil {
			c.ParentCommentID = parent.ParentCommentID
		}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.mentions != nil {
		if err := s.mentions.HandleMentions(ctx, c.WorkspaceID, string(c.EntityType), c.EntityID, c.AuthorEmail, c.Content); err != nil {
			s.logger.Error("Mention handling failed",
				zap.String("comment_id", c.ID.String()),
				zap.Error(err))
		}
	}

	s.publishEvent(ctx, c)

	return c, nil
}

func (s *service) GetThreads(ctx context.Context, entityType EntityType, entityID uuid.UUID) ([]Thread, error) {
	comments, err := s.repo.FindByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	threads := BuildThreads(comments)
	SortForDisplay(threads)
	return threads, nil
}

func (s *service) EditComment(ctx context.Context, id uuid.UUID, actorEmail, content string) (*Comment, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AuthorEmail != actorEmail {
		return nil, ErrNotAuthor
	}
	if c.IsDeleted {
		return nil, ErrCommentNotFound
	}

	now := time.Now()
	c.Content = content
	c.EditedAt = &now
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if s.mentions != nil {
		if err := s.mentions.HandleMentions(ctx, c.WorkspaceID, string(c.EntityType), c.EntityID, c.AuthorEmail, c.Content); err != nil {
			s.logger.Error("Mention handling failed",
				zap.String("comment_id", c.ID.String()),
				zap.Error(err))
		}
	}

	return c, nil
}

// DeleteComment tombstones a comment. The row stays so replies keep their
// anchor, and the text stays on the record; readers get the placeholder
// through DisplayContent.
func (s *service) DeleteComment(ctx context.Context, id uuid.UUID, actorEmail string) (*Comment, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AuthorEmail != actorEmail {
		return nil, ErrNotAuthor
	}

	c.IsDeleted = true
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) TogglePin(ctx context.Context, id uuid.UUID) (*Comment, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.IsPinned = !c.IsPinned
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) React(ctx context.Context, id uuid.UUID, emoji, userEmail string) (*Comment, error) {
	if emoji == "" || userEmail == "" {
		return nil, ErrInvalidInput
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted {
		return nil, ErrCommentNotFound
	}

	c.ToggleReaction(emoji, userEmail)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) publishEvent(ctx context.Context, c *Comment) {
	if s.redis == nil {
		return
	}

	event := &events.WorkspaceEvent{
		EventType:   events.EventCommentAdded,
		WorkspaceID: c.WorkspaceID,
		EntityID:    c.EntityID,
		ActorEmail:  c.AuthorEmail,
		Timestamp:   time.Now().UTC(),
		Details: map[string]interface{}{
			"comment_id":  c.ID.String(),
			"entity_type": string(c.EntityType),
		},
	}
	if err := s.redis.PublishWorkspaceEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish workspace event", zap.Error(err))
	}
}
