package workspace

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateWorkspaceInput struct {
	Name           string   `json:"name"`
	OwnerEmail     string   `json:"owner_email"`
	OwnerName      string   `json:"owner_name"`
	CustomStatuses []string `json:"custom_statuses,omitempty"`
}

type Service interface {
	CreateWorkspace(ctx context.Context, input CreateWorkspaceInput) (*Workspace, error)
	GetWorkspace(ctx context.Context, id uuid.UUID) (*Workspace, error)
	ListForMember(ctx context.Context, email string) ([]Workspace, error)
	AddMember(ctx context.Context, id uuid.UUID, member Member) (*Workspace, error)
	RemoveMember(ctx context.Context, id uuid.UUID, email string) (*Workspace, error)
	UpdateStatuses(ctx context.Context, id uuid.UUID, statuses []string) (*Workspace, error)
	ResolveMemberName(ctx context.Context, id uuid.UUID, name string) (*Member, error)
	ListAdmins(ctx context.Context, id uuid.UUID) ([]string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateWorkspace(ctx context.Context, input CreateWorkspaceInput) (*Workspace, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	if input.OwnerEmail == "" {
		return nil, ErrInvalidOwner
	}

	statuses := StatusList(input.CustomStatuses)
	if len(statuses) == 0 {
		statuses = DefaultStatuses()
	}

	workspace := &Workspace{
		ID:         uuid.New(),
		Name:       input.Name,
		OwnerEmail: strings.ToLower(input.OwnerEmail),
		Members: MemberList{
			{Email: strings.ToLower(input.OwnerEmail), Name: input.OwnerName, Role: RoleOwner},
		},
		CustomStatuses: statuses,
	}

	if err := s.repo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	s.logger.Info("Workspace created",
		zap.String("workspace_id", workspace.ID.String()),
		zap.String("owner", workspace.OwnerEmail))

	return workspace, nil
}

func (s *service) GetWorkspace(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListForMember(ctx context.Context, email string) ([]Workspace, error) {
	return s.repo.FindByMember(ctx, strings.ToLower(email))
}

func (s *service) AddMember(ctx context.Context, id uuid.UUID, member Member) (*Workspace, error) {
	if !member.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Email = strings.ToLower(strings.TrimSpace(member.Email))
	if _, exists := workspace.MemberByEmail(member.Email); exists {
		return nil, ErrMemberExists
	}

	workspace.Members = append(workspace.Members, member)
	if err := s.repo.Update(ctx, workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *service) RemoveMember(ctx context.Context, id uuid.UUID, email string) (*Workspace, error) {
	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(email))
	kept := make(MemberList, 0, len(workspace.Members))
	found := false
	for _, m := range workspace.Members {
		if strings.ToLower(m.Email) == needle {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return nil, ErrMemberNotFound
	}

	workspace.Members = kept
	if err := s.repo.Update(ctx, workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *service) UpdateStatuses(ctx context.Context, id uuid.UUID, statuses []string) (*Workspace, error) {
	if len(statuses) == 0 {
		return nil, ErrEmptyStatusSet
	}

	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workspace.CustomStatuses = StatusList(statuses)
	if err := s.repo.Update(ctx, workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *service) ResolveMemberName(ctx context.Context, id uuid.UUID, name string) (*Member, error) {
	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member, ok := workspace.MemberByName(name)
	if !ok {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (s *service) ListAdmins(ctx context.Context, id uuid.UUID) ([]string, error) {
	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return workspace.AdminEmails(), nil
}
