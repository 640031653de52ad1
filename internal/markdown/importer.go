package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

var (
	ErrPostServiceRequired = errors.New("markdown importer: post service is required")
	ErrTitleMissing        = errors.New("markdown importer: frontmatter title is required")
	ErrDateMissing         = errors.New("markdown importer: frontmatter date is required")
	ErrSlugUnresolvable    = errors.New("markdown importer: slug could not be derived")
)

// datePrefix matches the conventional YYYY-MM-DD- file name prefix so slugs
// derived from file names stay stable when posts are reorganised.
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Posts  blogposts.Service
	Logger interfaces.Logger
}

// Importer orchestrates conversion of markdown documents into post records.
type Importer struct {
	posts  blogposts.Service
	logger interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		posts:  cfg.Posts,
		logger: logger,
	}
}

// ImportDocument imports a single markdown document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}
	acc := newImportAccumulator()
	if err := i.applyDocument(ctx, doc, opts, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments imports an arbitrary slice of documents.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}

	acc := newImportAccumulator()
	for _, doc := range docs {
		if err := i.applyDocument(ctx, doc, opts, acc); err != nil {
			acc.addError(err)
		}
	}
	return acc.result(), firstError(acc.errors)
}

// SyncDocuments imports all provided documents and optionally deletes posts
// whose source documents disappeared.
func (i *Importer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}

	acc := newSyncAccumulator()
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		// A document still on disk is never an orphan, even when the import
		// below rejects it.
		if doc != nil {
			if slug, err := ResolveSlug(doc); err == nil && slug != "" {
				seen[slug] = struct{}{}
			}
		}

		res := newImportAccumulator()
		if err := i.applyDocument(ctx, doc, opts.ImportOptions, res); err != nil {
			res.addError(err)
		}
		acc.merge(res.result())
	}

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, seen, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

func (i *Importer) applyDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions, acc *importAccumulator) error {
	if doc == nil {
		return errors.New("markdown importer: nil document")
	}
	if strings.TrimSpace(doc.FrontMatter.Title) == "" {
		return fmt.Errorf("%w: %s", ErrTitleMissing, doc.FilePath)
	}
	if doc.FrontMatter.Date.IsZero() {
		return fmt.Errorf("%w: %s", ErrDateMissing, doc.FilePath)
	}

	slug, err := ResolveSlug(doc)
	if err != nil {
		return err
	}

	checksum := hex.EncodeToString(doc.Checksum)
	logger := logging.WithDocumentContext(i.logger, doc.FilePath, slug, "")

	existing, err := i.posts.GetBySlug(ctx, slug)
	if err != nil && !errors.Is(err, blogposts.ErrPostNotFound) {
		return fmt.Errorf("markdown importer: post lookup %s: %w", slug, err)
	}

	if existing == nil {
		if opts.DryRun {
			acc.created(slug)
			return nil
		}

		created, createErr := i.posts.Create(ctx, buildCreateRequest(doc, slug, checksum, opts))
		if createErr != nil {
			return fmt.Errorf("markdown importer: create post %s: %w", slug, createErr)
		}
		logger.Info("markdown.import.created", "id", created.ID.String())
		acc.created(slug)
		return nil
	}

	if existing.Checksum == checksum {
		acc.skip(slug)
		return nil
	}

	if opts.DryRun {
		acc.updated(slug)
		return nil
	}

	updated, updateErr := i.posts.Update(ctx, buildUpdateRequest(doc, existing, checksum, opts))
	if updateErr != nil {
		return fmt.Errorf("markdown importer: update post %s: %w", slug, updateErr)
	}
	logger.Info("markdown.import.updated", "id", updated.ID.String())
	acc.updated(slug)
	return nil
}

func (i *Importer) deleteOrphaned(ctx context.Context, seen map[string]struct{}, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	existing, err := i.posts.List(ctx, blogposts.WithDrafts())
	if err != nil {
		return fmt.Errorf("markdown importer: list posts: %w", err)
	}

	for _, record := range existing {
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		if err := i.posts.Delete(ctx, blogposts.DeletePostRequest{ID: record.ID}); err != nil {
			return fmt.Errorf("markdown importer: delete post %s: %w", record.Slug, err)
		}
		logging.WithDocumentContext(i.logger, record.SourcePath, record.Slug, "delete").
			Info("markdown.sync.deleted")
		acc.deleted++
	}

	return nil
}

func buildCreateRequest(doc *interfaces.Document, slug, checksum string, opts interfaces.ImportOptions) blogposts.CreatePostRequest {
	return blogposts.CreatePostRequest{
		Slug:        slug,
		Layout:      selectLayout(doc, opts),
		Title:       strings.TrimSpace(doc.FrontMatter.Title),
		Description: optionalString(doc.FrontMatter.Description),
		Image:       optionalString(doc.FrontMatter.Image),
		Tags:        append([]string(nil), doc.FrontMatter.Tags...),
		PublishedAt: doc.FrontMatter.Date,
		Draft:       doc.FrontMatter.Draft,
		Body:        string(doc.Body),
		BodyHTML:    string(doc.BodyHTML),
		Checksum:    checksum,
		SourcePath:  doc.FilePath,
		Metadata: map[string]any{
			"source":      "markdown",
			"frontmatter": doc.FrontMatter.Raw,
		},
	}
}

func buildUpdateRequest(doc *interfaces.Document, existing *blogposts.Post, checksum string, opts interfaces.ImportOptions) blogposts.UpdatePostRequest {
	layout := selectLayout(doc, opts)
	title := strings.TrimSpace(doc.FrontMatter.Title)
	body := string(doc.Body)
	bodyHTML := string(doc.BodyHTML)
	date := doc.FrontMatter.Date
	draft := doc.FrontMatter.Draft
	sourcePath := doc.FilePath

	return blogposts.UpdatePostRequest{
		ID:          existing.ID,
		Layout:      &layout,
		Title:       &title,
		Description: optionalString(doc.FrontMatter.Description),
		Image:       optionalString(doc.FrontMatter.Image),
		Tags:        append([]string(nil), doc.FrontMatter.Tags...),
		PublishedAt: &date,
		Draft:       &draft,
		Body:        &body,
		BodyHTML:    &bodyHTML,
		Checksum:    &checksum,
		SourcePath:  &sourcePath,
		Metadata: map[string]any{
			"source":      "markdown",
			"frontmatter": doc.FrontMatter.Raw,
		},
	}
}

func selectLayout(doc *interfaces.Document, opts interfaces.ImportOptions) string {
	if layout := strings.TrimSpace(doc.FrontMatter.Layout); layout != "" {
		return layout
	}
	if layout := strings.TrimSpace(opts.DefaultLayout); layout != "" {
		return layout
	}
	return "post"
}

// ResolveSlug prefers an explicit frontmatter slug and falls back to the file
// name, stripping the conventional date prefix and extension.
func ResolveSlug(doc *interfaces.Document) (string, error) {
	if explicit := strings.TrimSpace(doc.FrontMatter.Slug); explicit != "" {
		if blogposts.IsValidSlug(explicit) {
			return explicit, nil
		}
		normalized, err := blogposts.NormalizeSlug(explicit)
		if err != nil || normalized == "" {
			return "", fmt.Errorf("%w: %s", ErrSlugUnresolvable, doc.FilePath)
		}
		return normalized, nil
	}

	base := path.Base(filepathToSlash(doc.FilePath))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = datePrefix.ReplaceAllString(base, "")
	if base == "" {
		return "", fmt.Errorf("%w: %s", ErrSlugUnresolvable, doc.FilePath)
	}

	normalized, err := blogposts.NormalizeSlug(base)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("%w: %s", ErrSlugUnresolvable, doc.FilePath)
	}
	return normalized, nil
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

type importAccumulator struct {
	createdSlugs []string
	updatedSlugs []string
	skippedSlugs []string
	errors       []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdSlugs: []string{},
		updatedSlugs: []string{},
		skippedSlugs: []string{},
		errors:       []error{},
	}
}

func (a *importAccumulator) created(slug string) {
	if slug != "" {
		a.createdSlugs = append(a.createdSlugs, slug)
	}
}

func (a *importAccumulator) updated(slug string) {
	if slug != "" {
		a.updatedSlugs = append(a.updatedSlugs, slug)
	}
}

func (a *importAccumulator) skip(slug string) {
	if slug != "" {
		a.skippedSlugs = append(a.skippedSlugs, slug)
	}
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedSlugs: a.createdSlugs,
		UpdatedSlugs: a.updatedSlugs,
		SkippedSlugs: a.skippedSlugs,
		Errors:       a.errors,
	}
}

type syncAccumulator struct {
	created int
	updated int
	deleted int
	skipped int
	errors  []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) merge(res *interfaces.ImportResult) {
	if res == nil {
		return
	}
	s.created += len(res.CreatedSlugs)
	s.updated += len(res.UpdatedSlugs)
	s.skipped += len(res.SkippedSlugs)
	s.errors = append(s.errors, res.Errors...)
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		Created: s.created,
		Updated: s.updated,
		Skipped: s.skipped,
		Deleted: s.deleted,
		Errors:  s.errors,
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
