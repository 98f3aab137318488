package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vadim/bloglist/internal/domain/blog/entity"
	"github.com/vadim/bloglist/internal/domain/blog/stats"
)

// BlogRepository defines the interface for blog storage
type BlogRepository interface {
	Create(ctx context.Context, blog *entity.Blog) error
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	List(ctx context.Context) ([]entity.Blog, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Blog, error)
	Update(ctx context.Context, blog *entity.Blog) error
	AppendComment(ctx context.Context, id, comment string) error
	Delete(ctx context.Context, id string) error
}

// Service handles blog business logic
type Service struct {
	repo BlogRepository
}

// New creates a new blog service
func New(repo BlogRepository) *Service {
	return &Service{repo: repo}
}

// CreateInput represents input for creating a blog
type CreateInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int64
	UserID string
}

// Create creates a new blog owned by in.UserID. Missing likes default to zero.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Blog, error) {
	blog := &entity.Blog{
		Title:    in.Title,
		Author:   in.Author,
		URL:      in.URL,
		Comments: []string{},
		UserID:   in.UserID,
	}
	if in.Likes != nil {
		blog.Likes = *in.Likes
	}

	if err := blog.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	return blog, nil
}

// GetByID retrieves a blog by ID
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting blog: %w", err)
	}
	if blog == nil {
		return nil, entity.ErrBlogNotFound
	}
	return blog, nil
}

// List retrieves all blogs
func (s *Service) List(ctx context.Context) ([]entity.Blog, error) {
	blogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, nil
}

// ListByUser retrieves the blogs added by a user
func (s *Service) ListByUser(ctx context.Context, userID string) ([]entity.Blog, error) {
	if err := validateID(userID); err != nil {
		return nil, err
	}

	blogs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing blogs by user: %w", err)
	}
	return blogs, nil
}

// UpdateInput represents input for updating a blog.
// Nil fields keep the stored value.
type UpdateInput struct {
	ID     string
	Title  *string
	Author *string
	URL    *string
	Likes  *int64
}

// Update overwrites the fields present in the input
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Blog, error) {
	blog, err := s.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		blog.Title = *in.Title
	}
	if in.Author != nil {
		blog.Author = *in.Author
	}
	if in.URL != nil {
		blog.URL = *in.URL
	}
	if in.Likes != nil {
		blog.Likes = *in.Likes
	}

	if err := blog.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		if err == entity.ErrBlogNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("updating blog: %w", err)
	}

	return blog, nil
}

// AddComment appends a comment to a blog and returns the updated blog
func (s *Service) AddComment(ctx context.Context, id, comment string) (*entity.Blog, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := entity.ValidateComment(comment); err != nil {
		return nil, err
	}

	if err := s.repo.AppendComment(ctx, id, comment); err != nil {
		if err == entity.ErrBlogNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a blog. Only the user who added it may delete it.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	blog, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !blog.IsOwnedBy(userID) {
		return entity.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == entity.ErrBlogNotFound {
			return err
		}
		return fmt.Errorf("deleting blog: %w", err)
	}

	return nil
}

// Statistics computes aggregate statistics over all stored blogs
func (s *Service) Statistics(ctx context.Context) (*entity.BlogStatistics, error) {
	blogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}

	st := stats.Compute(blogs)
	return &st, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return entity.ErrMalformedID
	}
	return nil
}
