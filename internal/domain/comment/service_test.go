package comment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCommentRepository struct {
	comments map[uuid.UUID]*Comment
	seq      time.Time
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{
		comments: make(map[uuid.UUID]*Comment),
		seq:      time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (m *mockCommentRepository) Create(ctx context.Context, c *Comment) error {
	// Monotonic timestamps so ordering assertions are deterministic
	m.seq = m.seq.Add(time.Minute)
	c.CreatedAt = m.seq
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *mockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCommentRepository) FindByEntity(ctx context.Context, entityType EntityType, entityID uuid.UUID) ([]Comment, error) {
	var out []Comment
	for _, c := range m.comments {
		if c.EntityType == entityType && c.EntityID == entityID {
			out = append(out, *c)
		}
	}
	// Repository contract: oldest first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.Before(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *mockCommentRepository) Update(ctx context.Context, c *Comment) error {
	if _, ok := m.comments[c.ID]; !ok {
		return ErrCommentNotFound
	}
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

type mockMentionHandler struct {
	calls int
	last  string
}

func (m *mockMentionHandler) HandleMentions(ctx context.Context, workspaceID uuid.UUID, entityType string, entityID uuid.UUID, authorEmail, content string) error {
	m.calls++
	m.last = content
	return nil
}

func newTestService() (Service, *mockCommentRepository, *mockMentionHandler) {
	repo := newMockCommentRepository()
	mentions := &mockMentionHandler{}
	return NewService(repo, mentions, nil, zap.NewNop()), repo, mentions
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	wsID := uuid.New()

	base := AddCommentInput{
		EntityType:  EntityTask,
		EntityID:    taskID,
		WorkspaceID: wsID,
		AuthorEmail: "ann@dreamshift.io",
		Content:     "Looks good to me",
	}

	t.Run("creates a top-level comment and scans mentions", func(t *testing.T) {
		svc, _, mentions := newTestService()

		c, err := svc.AddComment(ctx, base)
		require.NoError(t, err)
		assert.Nil(t, c.ParentCommentID)
		assert.Equal(t, 1, mentions.calls)
		assert.Equal(t, "Looks good to me", mentions.last)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		svc, _, _ := newTestService()
		input := base
		input.Content = ""
		_, err := svc.AddComment(ctx, input)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("rejects unknown entity type", func(t *testing.T) {
		svc, _, _ := newTestService()
		input := base
		input.EntityType = "sprint"
		_, err := svc.AddComment(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidEntity)
	})

	t.Run("reply to a reply is re-parented to the top", func(t *testing.T) {
		svc, _, _ := newTestService()

		top, err := svc.AddComment(ctx, base)
		require.NoError(t, err)

		reply := base
		reply.Content = "Agreed"
		reply.ParentCommentID = &top.ID
		first, err := svc.AddComment(ctx, reply)
		require.NoError(t, err)
		require.NotNil(t, first.ParentCommentID)
		assert.Equal(t, top.ID, *first.ParentCommentID)

		nested := base
		nested.Content = "Same here"
		nested.ParentCommentID = &first.ID
		second, err := svc.AddComment(ctx, nested)
		require.NoError(t, err)
		require.NotNil(t, second.ParentCommentID)
		assert.Equal(t, top.ID, *second.ParentCommentID)
	})

	t.Run("rejects a parent on a different entity", func(t *testing.T) {
		svc, _, _ := newTestService()

		top, err := svc.AddComment(ctx, base)
		require.NoError(t, err)

		other := base
		other.EntityID = uuid.New()
		other.ParentCommentID = &top.ID
		_, err = svc.AddComment(ctx, other)
		assert.ErrorIs(t, err, ErrParentMismatch)
	})

	t.Run("rejects a missing parent", func(t *testing.T) {
		svc, _, _ := newTestService()
		missing := uuid.New()
		input := base
		input.ParentCommentID = &missing
		_, err := svc.AddComment(ctx, input)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestEditAndDeleteComment(t *testing.T) {
	ctx := context.Background()
	svc, repo, mentions := newTestService()

	c, err := svc.AddComment(ctx, AddCommentInput{
		EntityType:  EntityTask,
		EntityID:    uuid.New(),
		WorkspaceID: uuid.New(),
		AuthorEmail: "ann@dreamshift.io",
		Content:     "First draft",
	})
	require.NoError(t, err)

	t.Run("author can edit, mentions rescanned", func(t *testing.T) {
		before := mentions.calls
		edited, err := svc.EditComment(ctx, c.ID, "ann@dreamshift.io", "Second draft")
		require.NoError(t, err)
		assert.Equal(t, "Second draft", edited.Content)
		assert.NotNil(t, edited.EditedAt)
		assert.Equal(t, before+1, mentions.calls)
	})

	t.Run("non-author cannot edit", func(t *testing.T) {
		_, err := svc.EditComment(ctx, c.ID, "bob@dreamshift.io", "Hijack")
		assert.ErrorIs(t, err, ErrNotAuthor)
	})

	t.Run("non-author cannot delete", func(t *testing.T) {
		_, err := svc.DeleteComment(ctx, c.ID, "bob@dreamshift.io")
		assert.ErrorIs(t, err, ErrNotAuthor)
	})

	t.Run("delete tombstones and hides content from everyone", func(t *testing.T) {
		deleted, err := svc.DeleteComment(ctx, c.ID, "ann@dreamshift.io")
		require.NoError(t, err)
		assert.True(t, deleted.IsDeleted)
		assert.Equal(t, "[deleted]", deleted.DisplayContent())

		// The text stays on the stored record; only the rendering hides it
		stored, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Second draft", stored.Content)

		_, err = svc.EditComment(ctx, c.ID, "ann@dreamshift.io", "Necromancy")
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestReactions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	c, err := svc.AddComment(ctx, AddCommentInput{
		EntityType:  EntityTask,
		EntityID:    uuid.New(),
		WorkspaceID: uuid.New(),
		AuthorEmail: "ann@dreamshift.io",
		Content:     "Shipped!",
	})
	require.NoError(t, err)

	c, err = svc.React(ctx, c.ID, "🎉", "bob@dreamshift.io")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@dreamshift.io"}, c.Reactions["🎉"])

	c, err = svc.React(ctx, c.ID, "🎉", "cara@dreamshift.io")
	require.NoError(t, err)
	assert.Len(t, c.Reactions["🎉"], 2)

	// Same user reacting again withdraws the reaction
	c, err = svc.React(ctx, c.ID, "🎉", "bob@dreamshift.io")
	require.NoError(t, err)
	assert.Equal(t, []string{"cara@dreamshift.io"}, c.Reactions["🎉"])

	_, err = svc.React(ctx, c.ID, "", "bob@dreamshift.io")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetThreads(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	taskID := uuid.New()
	wsID := uuid.New()

	post := func(t *testing.T, content string, parent *uuid.UUID) *Comment {
		t.Helper()
		c, err := svc.AddComment(ctx, AddCommentInput{
			EntityType:      EntityTask,
			EntityID:        taskID,
			WorkspaceID:     wsID,
			AuthorEmail:     "ann@dreamshift.io",
			Content:         content,
			ParentCommentID: parent,
		})
		require.NoError(t, err)
		return c
	}

	first := post(t, "First topic", nil)
	post(t, "Reply A", &first.ID)
	second := post(t, "Second topic", nil)
	post(t, "Reply B", &first.ID)

	// Pin the older topic; it must surface first
	_, err := svc.TogglePin(ctx, first.ID)
	require.NoError(t, err)

	threads, err := svc.GetThreads(ctx, EntityTask, taskID)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, first.ID, threads[0].Comment.ID)
	assert.True(t, threads[0].Comment.IsPinned)
	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, "Reply A", threads[0].Replies[0].Content)
	assert.Equal(t, "Reply B", threads[0].Replies[1].Content)

	assert.Equal(t, second.ID, threads[1].Comment.ID)
	assert.Empty(t, threads[1].Replies)
}

func TestBuildThreadsOrphanPromotion(t *testing.T) {
	missing := uuid.New()
	orphan := Comment{ID: uuid.New(), ParentCommentID: &missing, Content: "Lost reply"}

	threads := BuildThreads([]Comment{orphan})
	require.Len(t, threads, 1)
	assert.Equal(t, orphan.ID, threads[0].Comment.ID)
}

func TestBuildThreadsNestedStoredReply(t *testing.T) {
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	top := Comment{ID: uuid.New(), Content: "Top", CreatedAt: base}
	reply := Comment{ID: uuid.New(), ParentCommentID: &top.ID, Content: "Reply", CreatedAt: base.Add(time.Minute)}
	// A stored row pointing at a reply instead of a top-level comment
	nested := Comment{ID: uuid.New(), ParentCommentID: &reply.ID, Content: "Nested", CreatedAt: base.Add(2 * time.Minute)}

	threads := BuildThreads([]Comment{top, reply, nested})
	require.Len(t, threads, 2)
	assert.Equal(t, top.ID, threads[0].Comment.ID)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, reply.ID, threads[0].Replies[0].ID)

	// The nested row is promoted, never attached to an unrelated thread
	assert.Equal(t, nested.ID, threads[1].Comment.ID)
	assert.Empty(t, threads[1].Replies)
}

func TestBuildThreadsParentCycle(t *testing.T) {
	idA, idB := uuid.New(), uuid.New()
	a := Comment{ID: idA, ParentCommentID: &idB, Content: "A"}
	b := Comment{ID: idB, ParentCommentID: &idA, Content: "B"}

	threads := BuildThreads([]Comment{a, b})
	require.Len(t, threads, 2)
	assert.Equal(t, idA, threads[0].Comment.ID)
	assert.Equal(t, idB, threads[1].Comment.ID)
}
