package posts

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	blogposts "github.com/goliatone/go-blog/posts"
)

// MemoryPostRepository keeps the post index in process memory. It backs tests
// and storage-less hosts that only need a one-shot build.
type MemoryPostRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*blogposts.Post
}

// NewMemoryPostRepository returns an empty in-memory repository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		records: map[uuid.UUID]*blogposts.Post{},
	}
}

func (r *MemoryPostRepository) Create(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clonePost(post)
	r.records[stored.ID] = stored
	return clonePost(stored), nil
}

func (r *MemoryPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*blogposts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, &blogposts.NotFoundError{Resource: "id", Key: id.String()}
	}
	return clonePost(record), nil
}

func (r *MemoryPostRepository) GetBySlug(ctx context.Context, slug string) (*blogposts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.Slug == slug {
			return clonePost(record), nil
		}
	}
	return nil, &blogposts.NotFoundError{Resource: "slug", Key: slug}
}

func (r *MemoryPostRepository) List(ctx context.Context, query blogposts.ListQuery) ([]*blogposts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*blogposts.Post, 0, len(r.records))
	for _, record := range r.records {
		if record.Draft && !query.IncludeDrafts {
			continue
		}
		if query.Tag != "" && !record.HasTag(query.Tag) {
			continue
		}
		out = append(out, clonePost(record))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return strings.Compare(out[i].Slug, out[j].Slug) < 0
	})

	return paginate(out, query.Limit, query.Offset), nil
}

func (r *MemoryPostRepository) Update(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[post.ID]; !ok {
		return nil, &blogposts.NotFoundError{Resource: "id", Key: post.ID.String()}
	}
	stored := clonePost(post)
	r.records[stored.ID] = stored
	return clonePost(stored), nil
}

func (r *MemoryPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return &blogposts.NotFoundError{Resource: "id", Key: id.String()}
	}
	delete(r.records, id)
	return nil
}

func clonePost(post *blogposts.Post) *blogposts.Post {
	if post == nil {
		return nil
	}
	copied := *post
	copied.Tags = append([]string(nil), post.Tags...)
	if post.Metadata != nil {
		metadata := make(map[string]any, len(post.Metadata))
		for k, v := range post.Metadata {
			metadata[k] = v
		}
		copied.Metadata = metadata
	}
	return &copied
}
