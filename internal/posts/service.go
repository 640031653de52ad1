package posts

import (
	"context"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

// ServiceConfig carries the dependencies for the post index service.
type ServiceConfig struct {
	Repository PostRepository
	Logger     interfaces.Logger
}

type service struct {
	repo   PostRepository
	logger interfaces.Logger
}

// NewService constructs the post index service.
func NewService(cfg ServiceConfig) blogposts.Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		repo:   cfg.Repository,
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, req blogposts.CreatePostRequest) (*blogposts.Post, error) {
	slug, err := normalizeRequestSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	req.Slug = slug

	if err := validateCreate(req); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetBySlug(ctx, req.Slug); err == nil && existing != nil {
		return nil, blogposts.ErrSlugExists
	}

	now := time.Now().UTC()
	record := &blogposts.Post{
		ID:          identity.PostUUID(req.Slug),
		Slug:        req.Slug,
		Layout:      defaultLayout(req.Layout),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Image:       req.Image,
		Tags:        normalizeTags(req.Tags),
		PublishedAt: req.PublishedAt,
		Draft:       req.Draft,
		Body:        req.Body,
		BodyHTML:    req.BodyHTML,
		Checksum:    req.Checksum,
		SourcePath:  req.SourcePath,
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("post.create", "slug", created.Slug)
	return created, nil
}

func (s *service) Update(ctx context.Context, req blogposts.UpdatePostRequest) (*blogposts.Post, error) {
	if req.ID == uuid.Nil {
		return nil, blogposts.ErrPostIDRequired
	}

	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	applyUpdate(record, req)
	if err := validatePost(record); err != nil {
		return nil, err
	}
	record.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("post.update", "slug", updated.Slug)
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*blogposts.Post, error) {
	if id == uuid.Nil {
		return nil, blogposts.ErrPostIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*blogposts.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, blogposts.ErrSlugRequired
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context, opts ...blogposts.ListOption) ([]*blogposts.Post, error) {
	return s.repo.List(ctx, blogposts.DecodeListOptions(opts...))
}

// Tags aggregates the tags of every published post, sorted lexicographically
// on the normalised form.
func (s *service) Tags(ctx context.Context) ([]blogposts.TagCount, error) {
	records, err := s.repo.List(ctx, blogposts.ListQuery{})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	display := map[string]string{}
	for _, record := range records {
		for _, tag := range record.Tags {
			normalized := strings.ToLower(strings.TrimSpace(tag))
			if normalized == "" {
				continue
			}
			counts[normalized]++
			if _, ok := display[normalized]; !ok {
				display[normalized] = strings.TrimSpace(tag)
			}
		}
	}

	out := make([]blogposts.TagCount, 0, len(counts))
	for normalized, count := range counts {
		out = append(out, blogposts.TagCount{Tag: display[normalized], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Tag) < strings.ToLower(out[j].Tag)
	})
	return out, nil
}

func (s *service) Delete(ctx context.Context, req blogposts.DeletePostRequest) error {
	if req.ID == uuid.Nil {
		return blogposts.ErrPostIDRequired
	}
	if err := s.repo.Delete(ctx, req.ID); err != nil {
		return err
	}
	s.logger.Info("post.delete", "id", req.ID.String())
	return nil
}

func validateCreate(req blogposts.CreatePostRequest) error {
	return validation.Errors{
		"title": requireNonEmpty(req.Title, blogposts.ErrTitleRequired),
		"date":  requireDate(req.PublishedAt),
		"body":  requireNonEmpty(req.Body, blogposts.ErrBodyRequired),
	}.Filter()
}

func validatePost(post *blogposts.Post) error {
	return validation.Errors{
		"title": requireNonEmpty(post.Title, blogposts.ErrTitleRequired),
		"date":  requireDate(post.PublishedAt),
		"body":  requireNonEmpty(post.Body, blogposts.ErrBodyRequired),
	}.Filter()
}

func requireNonEmpty(value string, err error) error {
	if strings.TrimSpace(value) == "" {
		return err
	}
	return nil
}

func requireDate(value time.Time) error {
	if value.IsZero() {
		return blogposts.ErrDateRequired
	}
	return nil
}

func normalizeRequestSlug(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", blogposts.ErrSlugRequired
	}
	if blogposts.IsValidSlug(trimmed) {
		return trimmed, nil
	}
	normalized, err := blogposts.NormalizeSlug(trimmed)
	if err != nil || normalized == "" {
		return "", blogposts.ErrSlugInvalid
	}
	return normalized, nil
}

func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func defaultLayout(layout string) string {
	trimmed := strings.TrimSpace(layout)
	if trimmed == "" {
		return "post"
	}
	return trimmed
}

func applyUpdate(record *blogposts.Post, req blogposts.UpdatePostRequest) {
	if req.Layout != nil {
		record.Layout = defaultLayout(*req.Layout)
	}
	if req.Title != nil {
		record.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		record.Description = req.Description
	}
	if req.Image != nil {
		record.Image = req.Image
	}
	if req.Tags != nil {
		record.Tags = normalizeTags(req.Tags)
	}
	if req.PublishedAt != nil {
		record.PublishedAt = *req.PublishedAt
	}
	if req.Draft != nil {
		record.Draft = *req.Draft
	}
	if req.Body != nil {
		record.Body = *req.Body
	}
	if req.BodyHTML != nil {
		record.BodyHTML = *req.BodyHTML
	}
	if req.Checksum != nil {
		record.Checksum = *req.Checksum
	}
	if req.SourcePath != nil {
		record.SourcePath = *req.SourcePath
	}
	if req.Metadata != nil {
		record.Metadata = req.Metadata
	}
}
