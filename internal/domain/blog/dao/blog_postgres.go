package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/bloglist/internal/domain/blog/entity"
)

const blogColumns = `
	b.id::text, b.title, b.author, b.url, b.likes, b.comments,
	b.user_id::text, u.username, u.name, b.created_at, b.updated_at
`

const blogFrom = `
	FROM blogs b
	LEFT JOIN users u ON u.id = b.user_id
`

// BlogPostgres implements blog repository for PostgreSQL
type BlogPostgres struct {
	pool *pgxpool.Pool
}

// NewBlogPostgres creates a new PostgreSQL blog repository
func NewBlogPostgres(pool *pgxpool.Pool) *BlogPostgres {
	return &BlogPostgres{pool: pool}
}

// Create inserts a new blog
func (r *BlogPostgres) Create(ctx context.Context, blog *entity.Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, comments, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $7)
		RETURNING id::text, created_at, updated_at
	`

	comments := blog.Comments
	if comments == nil {
		comments = []string{}
	}

	now := time.Now()
	err := r.pool.QueryRow(ctx, query,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		comments,
		blog.UserID,
		now,
	).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating blog: %w", err)
	}

	blog.Comments = comments
	return nil
}

// GetByID retrieves a blog by ID with its owner populated
func (r *BlogPostgres) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	query := "SELECT " + blogColumns + blogFrom + " WHERE b.id = $1"

	blog, err := scanBlog(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting blog: %w", err)
	}

	return blog, nil
}

// List retrieves all blogs in creation order
func (r *BlogPostgres) List(ctx context.Context) ([]entity.Blog, error) {
	query := "SELECT " + blogColumns + blogFrom + " ORDER BY b.created_at, b.id"
	return r.query(ctx, query)
}

// ListByUser retrieves the blogs added by a user
func (r *BlogPostgres) ListByUser(ctx context.Context, userID string) ([]entity.Blog, error) {
	query := "SELECT " + blogColumns + blogFrom + " WHERE b.user_id = $1 ORDER BY b.created_at, b.id"
	return r.query(ctx, query, userID)
}

// Update replaces the editable fields of a blog
func (r *BlogPostgres) Update(ctx context.Context, blog *entity.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, author = $3, url = $4, likes = $5, updated_at = $6
		WHERE id = $1
	`

	now := time.Now()
	result, err := r.pool.Exec(ctx, query,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		now,
	)
	if err != nil {
		return fmt.Errorf("updating blog: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBlogNotFound
	}

	blog.UpdatedAt = now
	return nil
}

// AppendComment adds a comment to the end of a blog's comment list
func (r *BlogPostgres) AppendComment(ctx context.Context, id, comment string) error {
	result, err := r.pool.Exec(ctx,
		"UPDATE blogs SET comments = array_append(comments, $2), updated_at = $3 WHERE id = $1",
		id, comment, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("appending comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBlogNotFound
	}

	return nil
}

// Delete removes a blog
func (r *BlogPostgres) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM blogs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting blog: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBlogNotFound
	}

	return nil
}

func (r *BlogPostgres) query(ctx context.Context, query string, args ...any) ([]entity.Blog, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]entity.Blog, 0)
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning blog: %w", err)
		}
		blogs = append(blogs, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blogs: %w", err)
	}

	return blogs, nil
}

func scanBlog(row pgx.Row) (*entity.Blog, error) {
	var (
		blog     entity.Blog
		userID   *string
		username *string
		name     *string
	)

	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.Comments,
		&userID,
		&username,
		&name,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if blog.Comments == nil {
		blog.Comments = []string{}
	}
	if userID != nil {
		blog.UserID = *userID
		blog.User = &entity.UserRef{ID: *userID}
		if username != nil {
			blog.User.Username = *username
		}
		if name != nil {
			blog.User.Name = *name
		}
	}

	return &blog, nil
}
