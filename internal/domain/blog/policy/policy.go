package policy

import (
	"context"

	"github.com/vadim/bloglist/internal/domain/blog/entity"
	"github.com/vadim/bloglist/internal/domain/blog/service"
	"github.com/vadim/bloglist/internal/metrics"
)

// BlogService defines the interface for the blog service
type BlogService interface {
	Create(ctx context.Context, in service.CreateInput) (*entity.Blog, error)
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	List(ctx context.Context) ([]entity.Blog, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Blog, error)
	Update(ctx context.Context, in service.UpdateInput) (*entity.Blog, error)
	AddComment(ctx context.Context, id, comment string) (*entity.Blog, error)
	Delete(ctx context.Context, id, userID string) error
	Statistics(ctx context.Context) (*entity.BlogStatistics, error)
}

// UserProvider resolves the owner of a token
type UserProvider interface {
	// Owner returns the user reference for id, or nil when the user does not exist
	Owner(ctx context.Context, id string) (*entity.UserRef, error)
}

// Policy orchestrates blog operations across domains
type Policy struct {
	svc   BlogService
	users UserProvider
}

// New creates a new blog policy
func New(svc BlogService, users UserProvider) *Policy {
	return &Policy{svc: svc, users: users}
}

// CreateInput represents input for creating a blog
type CreateInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int64
	UserID string
}

// Create creates a blog on behalf of an authenticated user
func (p *Policy) Create(ctx context.Context, in CreateInput) (*entity.Blog, error) {
	owner, err := p.users.Owner(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, entity.ErrUnknownUser
	}

	blog, err := p.svc.Create(ctx, service.CreateInput{
		Title:  in.Title,
		Author: in.Author,
		URL:    in.URL,
		Likes:  in.Likes,
		UserID: owner.ID,
	})
	if err != nil {
		return nil, err
	}

	blog.User = owner
	metrics.BlogOperation("create")
	return blog, nil
}

// GetByID retrieves a blog by ID
func (p *Policy) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	return p.svc.GetByID(ctx, id)
}

// List retrieves all blogs
func (p *Policy) List(ctx context.Context) ([]entity.Blog, error) {
	return p.svc.List(ctx)
}

// ListByUser retrieves the blogs added by a user
func (p *Policy) ListByUser(ctx context.Context, userID string) ([]entity.Blog, error) {
	return p.svc.ListByUser(ctx, userID)
}

// UpdateInput represents input for updating a blog; nil fields are left unchanged
type UpdateInput struct {
	ID     string
	Title  *string
	Author *string
	URL    *string
	Likes  *int64
}

// Update updates a blog
func (p *Policy) Update(ctx context.Context, in UpdateInput) (*entity.Blog, error) {
	blog, err := p.svc.Update(ctx, service.UpdateInput{
		ID:     in.ID,
		Title:  in.Title,
		Author: in.Author,
		URL:    in.URL,
		Likes:  in.Likes,
	})
	if err != nil {
		return nil, err
	}

	metrics.BlogOperation("update")
	return blog, nil
}

// AddComment appends a comment to a blog
func (p *Policy) AddComment(ctx context.Context, id, comment string) (*entity.Blog, error) {
	blog, err := p.svc.AddComment(ctx, id, comment)
	if err != nil {
		return nil, err
	}

	metrics.BlogOperation("comment")
	return blog, nil
}

// Delete removes a blog on behalf of an authenticated user
func (p *Policy) Delete(ctx context.Context, id, userID string) error {
	if err := p.svc.Delete(ctx, id, userID); err != nil {
		return err
	}

	metrics.BlogOperation("delete")
	return nil
}

// Statistics returns aggregate statistics over all blogs
func (p *Policy) Statistics(ctx context.Context) (*entity.BlogStatistics, error) {
	return p.svc.Statistics(ctx)
}
