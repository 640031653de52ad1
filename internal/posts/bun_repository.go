package posts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	blogposts "github.com/goliatone/go-blog/posts"
)

const postNamespace = "post"

// BunPostRepository implements PostRepository with optional read caching.
type BunPostRepository struct {
	repo         repository.Repository[*blogposts.Post]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunPostRepository creates a post repository without caching.
func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

// NewBunPostRepositoryWithCache creates a post repository with caching services.
func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPostRepository {
	base := NewPostRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = postNamespace + ":"
	}
	return &BunPostRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunPostRepository) Create(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error) {
	record, err := r.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*blogposts.Post, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "id", id.String())
	}
	return record, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*blogposts.Post, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "slug", slug)
	}
	return record, nil
}

// List returns posts ordered by publication date descending with the slug as
// a stable tie break. Draft exclusion and pagination run in SQL; tag matching
// happens in memory because tags persist as a JSON array.
func (r *BunPostRepository) List(ctx context.Context, query blogposts.ListQuery) ([]*blogposts.Post, error) {
	ordered := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if !query.IncludeDrafts {
			q = q.Where("?TableAlias.draft = ?", false)
		}
		return q.OrderExpr("?TableAlias.published_at DESC").
			OrderExpr("?TableAlias.slug ASC")
	})

	var (
		records []*blogposts.Post
		err     error
	)
	if query.Tag == "" && query.Limit > 0 {
		records, _, err = r.repo.List(ctx, ordered, repository.SelectPaginate(query.Limit, query.Offset))
	} else {
		records, _, err = r.repo.List(ctx, ordered)
	}
	if err != nil {
		return nil, err
	}
	if query.Tag == "" {
		if query.Limit > 0 {
			return records, nil
		}
		return paginate(records, 0, query.Offset), nil
	}

	filtered := make([]*blogposts.Post, 0, len(records))
	for _, record := range records {
		if record.HasTag(query.Tag) {
			filtered = append(filtered, record)
		}
	}
	return paginate(filtered, query.Limit, query.Offset), nil
}

func (r *BunPostRepository) Update(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error) {
	record, err := r.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &blogposts.Post{ID: id})
}

// InvalidateCache drops cached post reads after bulk sync runs.
func (r *BunPostRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func paginate(records []*blogposts.Post, limit, offset int) []*blogposts.Post {
	if offset > 0 {
		if offset >= len(records) {
			return []*blogposts.Post{}
		}
		records = records[offset:]
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &blogposts.NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("post repository error: %w", err)
}
