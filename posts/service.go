package posts

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes the post index use cases. Listing honours the ordering
// contract: publication date descending with slug as the stable tie break.
type Service interface {
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, req UpdatePostRequest) (*Post, error)
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, opts ...ListOption) ([]*Post, error)
	Tags(ctx context.Context) ([]TagCount, error)
	Delete(ctx context.Context, req DeletePostRequest) error
}
