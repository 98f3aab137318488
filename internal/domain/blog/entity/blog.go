package entity

import (
	"time"
)

// UserRef is the populated owner of a blog
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Blog represents a blog post
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int64     `json:"likes"`
	Comments  []string  `json:"comments"`
	UserID    string    `json:"-"`
	User      *UserRef  `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxCommentLength is the maximum length of a single comment
const MaxCommentLength = 2000

// Validate validates blog fields
func (b *Blog) Validate() error {
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if b.URL == "" {
		return ErrEmptyURL
	}
	if b.Likes < 0 {
		return ErrNegativeLikes
	}
	return nil
}

// IsOwnedBy reports whether the blog was added by the given user
func (b *Blog) IsOwnedBy(userID string) bool {
	return b.UserID != "" && b.UserID == userID
}

// ValidateComment validates the text of a comment
func ValidateComment(text string) error {
	if text == "" {
		return ErrEmptyComment
	}
	if len(text) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}
