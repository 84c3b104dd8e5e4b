package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingService struct {
	created []CreateInput
}

func (c *capturingService) Notify(ctx context.Context, input CreateInput) (*Notification, error) {
	c.created = append(c.created, input)
	return &Notification{ID: uuid.New(), UserEmail: input.UserEmail}, nil
}

func (c *capturingService) List(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error) {
	return nil, nil
}

func (c *capturingService) ListUnread(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error) {
	return nil, nil
}

func (c *capturingService) MarkRead(ctx context.Context, id uuid.UUID, userEmail string) error {
	return nil
}

func (c *capturingService) MarkAllRead(ctx context.Context, userEmail string) error { return nil }

func (c *capturingService) CountUnread(ctx context.Context, userEmail string) (int, error) {
	return 0, nil
}

func (c *capturingService) Subscribe(userEmail string) (<-chan *Notification, func(), error) {
	return nil, func() {}, nil
}

type singleWorkspaceRepo struct {
	ws *workspace.Workspace
}

func (r *singleWorkspaceRepo) Create(ctx context.Context, ws *workspace.Workspace) error { return nil }

func (r *singleWorkspaceRepo) FindByID(ctx context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	if r.ws == nil || r.ws.ID != id {
		return nil, workspace.ErrWorkspaceNotFound
	}
	return r.ws, nil
}

func (r *singleWorkspaceRepo) FindByMember(ctx context.Context, email string) ([]workspace.Workspace, error) {
	return nil, nil
}

func (r *singleWorkspaceRepo) Update(ctx context.Context, ws *workspace.Workspace) error { return nil }

func newMentionFixture() (*MentionService, *capturingService, *workspace.Workspace) {
	ws := &workspace.Workspace{
		ID:         uuid.New(),
		Name:       "Design",
		OwnerEmail: "owner@co.com",
		Members: workspace.MemberList{
			{Email: "john@co.com", Name: "John Smith", Role: workspace.RoleEmployee},
			{Email: "jane@co.com", Name: "Jane Doe", Role: workspace.RoleAdmin},
			{Email: "amy@co.com", Name: "Amy", Role: workspace.RoleEmployee},
		},
		CustomStatuses: workspace.DefaultStatuses(),
	}

	sink := &capturingService{}
	logger := logrus.New()
	svc := NewMentionService(sink, &singleWorkspaceRepo{ws: ws}, "https://ems.dreamshift.io/", logger)
	return svc, sink, ws
}

func recipientsOf(sink *capturingService) []string {
	var out []string
	for _, n := range sink.created {
		out = append(out, n.UserEmail)
	}
	return out
}

func TestHandleMentions(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()

	t.Run("resolves email and display-name mentions", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com",
			"ping @jane@co.com and @John Smith please")
		require.NoError(t, err)

		got := recipientsOf(sink)
		assert.ElementsMatch(t, []string{"jane@co.com", "john@co.com"}, got)
	})

	t.Run("display names resolve case-insensitively", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com",
			"cc @JOHN SMITH on this")
		require.NoError(t, err)
		assert.Equal(t, []string{"john@co.com"}, recipientsOf(sink))
	})

	t.Run("unknown names are dropped silently", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com",
			"waiting on @Nobody Here for review")
		require.NoError(t, err)
		assert.Empty(t, sink.created)
	})

	t.Run("recipients are deduplicated", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com",
			"@john@co.com also @John Smith and again @JOHN@CO.COM")
		require.NoError(t, err)
		assert.Equal(t, []string{"john@co.com"}, recipientsOf(sink))
	})

	t.Run("self-mentions are excluded", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "jane@co.com",
			"note to self @jane@co.com and to @John Smith")
		require.NoError(t, err)
		assert.Equal(t, []string{"john@co.com"}, recipientsOf(sink))
	})

	t.Run("an email-shaped token never doubles as a name mention", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		// Member "Amy" must not be resolved out of @amy@co.com's local part
		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com",
			"ask @amy@co.com directly")
		require.NoError(t, err)

		require.Len(t, sink.created, 1)
		assert.Equal(t, "amy@co.com", sink.created[0].UserEmail)
	})

	t.Run("notification carries the mention shape", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com", "@Amy take a look")
		require.NoError(t, err)

		require.Len(t, sink.created, 1)
		n := sink.created[0]
		assert.Equal(t, Mention, n.Type)
		assert.Equal(t, "Mentioned", n.Title)
		assert.Equal(t, "https://ems.dreamshift.io/tasks", n.Link)
		assert.Contains(t, n.Message, "owner@co.com mentioned you")
	})

	t.Run("project mentions link to projects", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		err := svc.HandleMentions(ctx, ws.ID, "project", uuid.New(), "owner@co.com", "@Amy fyi")
		require.NoError(t, err)
		require.Len(t, sink.created, 1)
		assert.Equal(t, "https://ems.dreamshift.io/projects", sink.created[0].Link)
	})

	t.Run("markup in the content is stored untouched", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com",
			"@Amy see <b>this</b> & more")
		require.NoError(t, err)

		require.Len(t, sink.created, 1)
		assert.Contains(t, sink.created[0].Message, "<b>this</b> & more")
		assert.NotContains(t, sink.created[0].Message, "&lt;")
	})

	t.Run("long previews are truncated with an ellipsis", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()

		long := "@Amy " + strings.Repeat("x", 300)
		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com", long)
		require.NoError(t, err)

		require.Len(t, sink.created, 1)
		assert.Contains(t, sink.created[0].Message, "...")
		assert.Less(t, len(sink.created[0].Message), 300)
	})

	t.Run("empty content is a no-op", func(t *testing.T) {
		svc, sink, ws := newMentionFixture()
		err := svc.HandleMentions(ctx, ws.ID, "task", taskID, "owner@co.com", "")
		require.NoError(t, err)
		assert.Empty(t, sink.created)
	})

	t.Run("unknown workspace is reported", func(t *testing.T) {
		svc, _, _ := newMentionFixture()
		err := svc.HandleMentions(ctx, uuid.New(), "task", taskID, "owner@co.com", "@Amy hi")
		assert.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)
	})
}

func TestBuildPreview(t *testing.T) {
	assert.Equal(t, "hello", buildPreview("hello"))

	// Markup passes through untouched; escaping happens once, at the
	// email boundary
	assert.Equal(t, "<b>hi</b>", buildPreview("<b>hi</b>"))

	long := strings.Repeat("a", 250)
	got := buildPreview(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, got, 203)
}
