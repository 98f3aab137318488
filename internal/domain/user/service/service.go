package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vadim/bloglist/internal/auth"
	"github.com/vadim/bloglist/internal/domain/user/entity"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

// TokenIssuer signs login tokens
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// Service handles user registration and login
type Service struct {
	repo       UserRepository
	tokens     TokenIssuer
	bcryptCost int
}

// New creates a new user service
func New(repo UserRepository, tokens TokenIssuer, bcryptCost int) *Service {
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// RegisterInput represents input for registering a user
type RegisterInput struct {
	Username string
	Name     string
	Password string
}

// Register validates and stores a new user with a hashed password
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	if err := entity.ValidateRegistration(username, in.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		Name:         in.Name,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if err == entity.ErrUsernameTaken {
			return nil, err
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrUserNotFound
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

// List retrieves all users with their blogs
func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// LoginOutput is returned on successful login
type LoginOutput struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Login checks credentials and issues a token
func (s *Service) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, entity.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &LoginOutput{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}
