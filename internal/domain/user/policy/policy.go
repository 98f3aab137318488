package policy

import (
	"context"

	"github.com/vadim/bloglist/internal/domain/user/entity"
	"github.com/vadim/bloglist/internal/domain/user/service"
	"github.com/vadim/bloglist/internal/metrics"
)

// UserService defines the interface for the user service
type UserService interface {
	Register(ctx context.Context, in service.RegisterInput) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Login(ctx context.Context, username, password string) (*service.LoginOutput, error)
}

// Policy handles user operations
type Policy struct {
	svc UserService
}

// New creates a new user policy
func New(svc UserService) *Policy {
	return &Policy{svc: svc}
}

// RegisterInput represents input for registering a user
type RegisterInput struct {
	Username string
	Name     string
	Password string
}

// Register creates a new user
func (p *Policy) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	user, err := p.svc.Register(ctx, service.RegisterInput{
		Username: in.Username,
		Name:     in.Name,
		Password: in.Password,
	})
	metrics.UserOperation("register", err)
	return user, err
}

// GetByID retrieves a user by ID
func (p *Policy) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return p.svc.GetByID(ctx, id)
}

// List retrieves all users with their blogs
func (p *Policy) List(ctx context.Context) ([]entity.User, error) {
	return p.svc.List(ctx)
}

// LoginOutput is returned on successful login
type LoginOutput = service.LoginOutput

// Login checks credentials and issues a token
func (p *Policy) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	out, err := p.svc.Login(ctx, username, password)
	metrics.UserOperation("login", err)
	return out, err
}
