package entity

import "errors"

// Domain errors for users
var (
	ErrPasswordTooShort   = errors.New("password too small")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrUsernameTaken      = errors.New("expected `username` to be unique")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
