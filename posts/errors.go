package posts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPostNotFound    = errors.New("posts: post not found")
	ErrPostIDRequired  = errors.New("posts: post id required")
	ErrSlugRequired    = errors.New("posts: slug is required")
	ErrSlugInvalid     = errors.New("posts: slug contains invalid characters")
	ErrSlugExists      = errors.New("posts: slug already exists")
	ErrTitleRequired   = errors.New("posts: title is required")
	ErrDateRequired    = errors.New("posts: publication date is required")
	ErrBodyRequired    = errors.New("posts: body is required")
	ErrLayoutRequired  = errors.New("posts: layout is required")
	ErrRepositoryError = errors.New("posts: repository error")
)

// NotFoundError carries the lookup key that missed so callers can report
// which document or identifier was requested.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrPostNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key == "" {
		return ErrPostNotFound.Error()
	}
	resource := strings.TrimSpace(e.Resource)
	if resource == "" {
		resource = "post"
	}
	return fmt.Sprintf("%s: %s=%s", ErrPostNotFound.Error(), resource, key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPostNotFound
}
