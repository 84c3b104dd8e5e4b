package notification

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// emailMentionPattern matches @user@domain.tld tokens
var emailMentionPattern = regexp.MustCompile(`@([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)

// maxNameMention caps how long a display-name mention can be
const maxNameMention = 48

// previewLimit caps the comment preview embedded in mention emails
const previewLimit = 200

// MentionService scans posted text for @mentions and fans out notifications
// to the resolved workspace members.
type MentionService struct {
	notifications Service
	workspaces    workspace.Repository
	baseURL       string
	logger        *logrus.Logger
}

// NewMentionService creates a new mention service
func NewMentionService(notifications Service, workspaces workspace.Repository, baseURL string, logger *logrus.Logger) *MentionService {
	return &MentionService{
		notifications: notifications,
		workspaces:    workspaces,
		baseURL:       strings.TrimRight(baseURL, "/"),
		logger:        logger,
	}
}

// HandleMentions resolves every @email and @name token in content against
// the workspace members and notifies each resolved recipient once. Names
// that match no member are dropped silently. The author never receives a
// self-mention.
func (s *MentionService) HandleMentions(ctx context.Context, workspaceID uuid.UUID, entityType string, entityID uuid.UUID, authorEmail, content string) error {
	if content == "" {
		return nil
	}

	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}

	recipients := s.resolveMentions(ws, content)

	author := strings.ToLower(authorEmail)
	link := s.entityLink(entityType)
	preview := buildPreview(content)

	for email, name := range recipients {
		if email == author {
			continue
		}

		input := CreateInput{
			UserEmail: email,
			Type:      Mention,
			Title:     "Mentioned",
			Message:   fmt.Sprintf("%s mentioned you: %s", authorEmail, preview),
			Link:      link,
		}
		if _, err := s.notifications.Notify(ctx, input); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"recipient": email,
				"name":      name,
			}).Error("Failed to create mention notification")
		}
	}

	return nil
}

// resolveMentions returns recipient email -> display name, lowercased and
// deduplicated.
func (s *MentionService) resolveMentions(ws *workspace.Workspace, content string) map[string]string {
	recipients := make(map[string]string)

	for _, match := range emailMentionPattern.FindAllStringSubmatch(content, -1) {
		email := strings.ToLower(match[1])
		name := email
		if member, ok := ws.MemberByEmail(email); ok {
			name = member.Name
		}
		recipients[email] = name
	}

	// Display-name mentions are resolved member-first: every member name is
	// looked for in the text, which makes resolution case-insensitive and
	// drops unknown names without any parsing ambiguity.
	lower := strings.ToLower(content)
	for _, member := range ws.Members {
		name := strings.TrimSpace(member.Name)
		if name == "" || len(name) > maxNameMention {
			continue
		}
		if mentionsName(lower, strings.ToLower(name)) {
			recipients[strings.ToLower(member.Email)] = member.Name
		}
	}

	return recipients
}

// mentionsName reports whether text contains "@"+name as a whole token. The
// character after the name must not extend the token, so "@jane@co.com"
// never counts as a mention of a member named Jane.
func mentionsName(text, name string) bool {
	needle := "@" + name
	for start := 0; ; {
		idx := strings.Index(text[start:], needle)
		if idx < 0 {
			return false
		}
		end := start + idx + len(needle)
		if end >= len(text) {
			return true
		}
		next := rune(text[end])
		if !unicode.IsLetter(next) && !unicode.IsDigit(next) && next != '@' && next != '\'' {
			return true
		}
		start = end
	}
}

// entityLink derives the inbox link from the kind of record commented on
func (s *MentionService) entityLink(entityType string) string {
	switch entityType {
	case "task":
		return s.baseURL + "/tasks"
	case "project":
		return s.baseURL + "/projects"
	}
	return s.baseURL
}

// buildPreview produces the truncated excerpt used in mention messages.
// The text is stored as-is; the email boundary escapes it for HTML.
func buildPreview(content string) string {
	runes := []rune(content)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return content
}
