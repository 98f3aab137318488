package entity

import "errors"

// Domain errors for blogs
var (
	// Validation errors
	ErrEmptyTitle     = errors.New("title is required")
	ErrEmptyURL       = errors.New("url is required")
	ErrNegativeLikes  = errors.New("likes cannot be negative")
	ErrEmptyComment   = errors.New("comment cannot be empty")
	ErrCommentTooLong = errors.New("comment exceeds maximum length")
	ErrMalformedID    = errors.New("malformed id")

	// Business logic errors
	ErrBlogNotFound = errors.New("blog not found")
	ErrUnknownUser  = errors.New("token user no longer exists")
	ErrNotOwner     = errors.New("a blog can be deleted only by the user who added the blog")
)
