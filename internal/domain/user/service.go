package user

import (
	"context"
	"errors"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/config"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrBadCredentials = errors.New("invalid email or password")

type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetEmailNotifications(ctx context.Context, id uuid.UUID, enabled bool) (*User, error)
}

type service struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) Service {
	return &service{repo: repo, cfg: cfg, logger: logger}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if input.Email == "" || input.Name == "" {
		return nil, ErrInvalidInput
	}

	user := &User{
		ID:                 uuid.New(),
		Email:              input.Email,
		Name:               input.Name,
		EmailNotifications: true,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", ErrBadCredentials
	}

	token, err := auth.GenerateToken(
		user.ID,
		user.Email,
		s.cfg.Auth.JWTSecret,
		s.cfg.Auth.JWTIssuer,
		s.cfg.Auth.JWTExpiryHours,
	)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *service) SetEmailNotifications(ctx context.Context, id uuid.UUID, enabled bool) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.EmailNotifications = enabled
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
