package posts

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	blogposts "github.com/goliatone/go-blog/posts"
)

// PostRepository is the persistence contract the service depends on. The bun
// implementation backs production use; the memory implementation backs tests
// and storage-less hosts.
type PostRepository interface {
	Create(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*blogposts.Post, error)
	GetBySlug(ctx context.Context, slug string) (*blogposts.Post, error)
	List(ctx context.Context, query blogposts.ListQuery) ([]*blogposts.Post, error)
	Update(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewPostRepository wires the generic bun repository for the posts table,
// using the slug as the secondary identifier.
func NewPostRepository(db *bun.DB) repository.Repository[*blogposts.Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*blogposts.Post]{
		NewRecord: func() *blogposts.Post { return &blogposts.Post{} },
		GetID: func(p *blogposts.Post) uuid.UUID {
			return p.ID
		},
		SetID: func(p *blogposts.Post, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *blogposts.Post) string {
			return p.Slug
		},
	})
}
