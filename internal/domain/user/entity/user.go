package entity

import (
	"fmt"
	"time"
)

// BlogRef is a blog populated into its owner's listing
type BlogRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int64  `json:"likes"`
}

// User represents a registered user
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Blogs        []BlogRef `json:"blogs"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	// MinUsernameLength is the minimum length of a username
	MinUsernameLength = 3
	// MinPasswordLength is the minimum length of a password
	MinPasswordLength = 3
	// MaxUsernameLength is the maximum length of a username
	MaxUsernameLength = 64
	// MaxPasswordLength is the most bytes bcrypt will hash
	MaxPasswordLength = 72
)

// ValidationError describes a rejected registration field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateRegistration checks username and password before hashing
func ValidateRegistration(username, password string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "Path `username` is required."}
	}
	if len(username) < MinUsernameLength {
		return &ValidationError{
			Field: "username",
			Message: fmt.Sprintf("Path `username` (`%s`) is shorter than the minimum allowed length (%d).",
				username, MinUsernameLength),
		}
	}
	if len(username) > MaxUsernameLength {
		return &ValidationError{
			Field: "username",
			Message: fmt.Sprintf("Path `username` is longer than the maximum allowed length (%d).",
				MaxUsernameLength),
		}
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
