package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/bloglist/internal/domain/user/entity"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures
const uniqueViolation = "23505"

// UserPostgres implements user repository for PostgreSQL
type UserPostgres struct {
	pool *pgxpool.Pool
}

// NewUserPostgres creates a new PostgreSQL user repository
func NewUserPostgres(pool *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{pool: pool}
}

// Create inserts a new user
func (r *UserPostgres) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id::text, created_at
	`

	err := r.pool.QueryRow(ctx, query, user.Username, user.Name, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrUsernameTaken
		}
		return fmt.Errorf("creating user: %w", err)
	}

	user.Blogs = []entity.BlogRef{}
	return nil
}

// GetByID retrieves a user by ID without blogs
func (r *UserPostgres) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "WHERE id = $1", id)
}

// GetByUsername retrieves a user by username without blogs
func (r *UserPostgres) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, "WHERE username = $1", username)
}

func (r *UserPostgres) getOne(ctx context.Context, where string, arg string) (*entity.User, error) {
	query := "SELECT id::text, username, name, password_hash, created_at FROM users " + where

	var user entity.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &user, nil
}

// List retrieves all users with their blogs populated
func (r *UserPostgres) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, username, name, password_hash, created_at
		FROM users
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	index := make(map[string]int)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Blogs = []entity.BlogRef{}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	blogRows, err := r.pool.Query(ctx, `
		SELECT id::text, title, author, url, likes, user_id::text
		FROM blogs
		WHERE user_id IS NOT NULL
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing user blogs: %w", err)
	}
	defer blogRows.Close()

	for blogRows.Next() {
		var (
			ref    entity.BlogRef
			userID string
		)
		if err := blogRows.Scan(&ref.ID, &ref.Title, &ref.Author, &ref.URL, &ref.Likes, &userID); err != nil {
			return nil, fmt.Errorf("scanning user blog: %w", err)
		}
		if i, ok := index[userID]; ok {
			users[i].Blogs = append(users[i].Blogs, ref)
		}
	}
	if err := blogRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user blogs: %w", err)
	}

	return users, nil
}
