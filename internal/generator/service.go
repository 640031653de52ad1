// Package generator renders the post index into a static site: one page per
// post, a chronological index, tag listings, an RSS feed, and crawler
// artifacts.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled = errors.New("generator: service disabled")
	errPostsRequired   = errors.New("generator: post service is required")
	errOutputRequired  = errors.New("generator: output directory is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	CleanBuild      bool
	GenerateFeeds   bool
	GenerateSitemap bool
	GenerateRobots  bool
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	IncludeDrafts bool
	DryRun        bool
}

// RenderedPage records one generated artifact and its site route.
type RenderedPage struct {
	Route        string
	OutputPath   string
	Category     string
	LastModified time.Time
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt    int
	TagPagesBuilt int
	FeedsBuilt    int
	SitemapBuilt  bool
	RobotsBuilt   bool
	Rendered      []RenderedPage
	Duration      time.Duration
	DryRun        bool
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Posts  blogposts.Service
	Logger interfaces.Logger
}

// NewService wires a generator implementation with the provided configuration
// and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	writer := artifactWriter(nil)
	if strings.TrimSpace(cfg.OutputDir) != "" {
		writer = newFilesystemWriter(cfg.OutputDir)
	}
	return newService(cfg, deps, writer)
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

func newService(cfg Config, deps Dependencies, writer artifactWriter) (Service, error) {
	if deps.Posts == nil {
		return nil, errPostsRequired
	}
	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:      cfg,
		deps:     deps,
		writer:   writer,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

type service struct {
	cfg      Config
	deps     Dependencies
	writer   artifactWriter
	renderer *templateRenderer
	logger   interfaces.Logger
	now      func() time.Time
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	writer := s.writer
	if opts.DryRun || writer == nil {
		if !opts.DryRun && writer == nil {
			return nil, errOutputRequired
		}
		writer = noopWriter{}
	}

	start := s.now()
	generatedAt := start.UTC()

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	listOpts := []blogposts.ListOption{}
	if opts.IncludeDrafts {
		listOpts = append(listOpts, blogposts.WithDrafts())
	}
	records, err := s.deps.Posts.List(ctx, listOpts...)
	if err != nil {
		return nil, fmt.Errorf("generator: list posts: %w", err)
	}

	site := SiteMetadata{
		Title:       s.cfg.SiteTitle,
		Description: s.cfg.SiteDescription,
		BaseURL:     strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/"),
	}

	result := &BuildResult{DryRun: opts.DryRun}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := s.writePostPage(ctx, writer, site, record)
		if err != nil {
			return nil, err
		}
		result.Rendered = append(result.Rendered, page)
		result.PagesBuilt++
	}

	indexPage, err := s.writeIndexPage(ctx, writer, site, records, generatedAt)
	if err != nil {
		return nil, err
	}
	result.Rendered = append(result.Rendered, indexPage)
	result.PagesBuilt++

	tagPages, err := s.writeTagPages(ctx, writer, site, opts, generatedAt)
	if err != nil {
		return nil, err
	}
	result.Rendered = append(result.Rendered, tagPages...)
	result.TagPagesBuilt = len(tagPages)

	if s.cfg.GenerateFeeds {
		if err := s.writeFeed(ctx, writer, site, records, generatedAt); err != nil {
			return nil, err
		}
		result.FeedsBuilt++
	}

	if s.cfg.GenerateSitemap {
		if err := s.writeSitemap(ctx, writer, site, result.Rendered, generatedAt); err != nil {
			return nil, err
		}
		result.SitemapBuilt = true
	}

	if s.cfg.GenerateRobots {
		if err := s.writeRobots(ctx, writer, site); err != nil {
			return nil, err
		}
		result.RobotsBuilt = true
	}

	result.Duration = s.now().Sub(start)
	s.logger.Info("generator.build.done",
		"pages", result.PagesBuilt,
		"tag_pages", result.TagPagesBuilt,
		"feeds", result.FeedsBuilt,
		"dry_run", opts.DryRun,
		"duration", result.Duration.String(),
	)
	return result, nil
}

func (s *service) Clean(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := strings.TrimSpace(s.cfg.OutputDir)
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("generator: clean %s: %w", dir, err)
	}
	return nil
}

func (s *service) writePostPage(ctx context.Context, writer artifactWriter, site SiteMetadata, record *blogposts.Post) (RenderedPage, error) {
	content, err := s.renderer.renderPost(site, record)
	if err != nil {
		return RenderedPage{}, err
	}

	route := postRoute(record.Slug)
	outputPath := routeOutputPath(route)
	lastMod := record.UpdatedAt
	if lastMod.IsZero() {
		lastMod = record.PublishedAt
	}

	if err := s.writeHTML(ctx, writer, outputPath, content, categoryPage); err != nil {
		return RenderedPage{}, err
	}

	return RenderedPage{
		Route:        route,
		OutputPath:   outputPath,
		Category:     string(categoryPage),
		LastModified: lastMod,
	}, nil
}

func (s *service) writeIndexPage(ctx context.Context, writer artifactWriter, site SiteMetadata, records []*blogposts.Post, generatedAt time.Time) (RenderedPage, error) {
	content, err := s.renderer.renderIndex(site, records)
	if err != nil {
		return RenderedPage{}, err
	}
	if err := s.writeHTML(ctx, writer, "index.html", content, categoryIndex); err != nil {
		return RenderedPage{}, err
	}
	return RenderedPage{
		Route:        "/",
		OutputPath:   "index.html",
		Category:     string(categoryIndex),
		LastModified: generatedAt,
	}, nil
}

func (s *service) writeTagPages(ctx context.Context, writer artifactWriter, site SiteMetadata, opts BuildOptions, generatedAt time.Time) ([]RenderedPage, error) {
	tags, err := s.deps.Posts.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: list tags: %w", err)
	}

	pages := make([]RenderedPage, 0, len(tags))
	for _, tag := range tags {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		listOpts := []blogposts.ListOption{blogposts.WithTag(tag.Tag)}
		if opts.IncludeDrafts {
			listOpts = append(listOpts, blogposts.WithDrafts())
		}
		records, err := s.deps.Posts.List(ctx, listOpts...)
		if err != nil {
			return nil, fmt.Errorf("generator: list posts for tag %s: %w", tag.Tag, err)
		}
		if len(records) == 0 {
			continue
		}

		content, err := s.renderer.renderTag(site, tag.Tag, records)
		if err != nil {
			return nil, err
		}

		route := tagRoute(tag.Tag)
		outputPath := routeOutputPath(route)
		if err := s.writeHTML(ctx, writer, outputPath, content, categoryTag); err != nil {
			return nil, err
		}
		pages = append(pages, RenderedPage{
			Route:        route,
			OutputPath:   outputPath,
			Category:     string(categoryTag),
			LastModified: generatedAt,
		})
	}
	return pages, nil
}

func (s *service) writeFeed(ctx context.Context, writer artifactWriter, site SiteMetadata, records []*blogposts.Post, generatedAt time.Time) error {
	items := buildFeedItems(site, records)
	content := buildRSSFeed(site, items, generatedAt)
	return writer.WriteFile(ctx, writeFileRequest{
		Path:        "feed.xml",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryFeed,
		ContentType: "application/rss+xml",
		Checksum:    computeHashFromString(content),
	})
}

func (s *service) writeSitemap(ctx context.Context, writer artifactWriter, site SiteMetadata, pages []RenderedPage, generatedAt time.Time) error {
	content := buildSitemap(site.BaseURL, pages, generatedAt)
	return writer.WriteFile(ctx, writeFileRequest{
		Path:        "sitemap.xml",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHashFromString(content),
	})
}

func (s *service) writeRobots(ctx context.Context, writer artifactWriter, site SiteMetadata) error {
	content := buildRobots(site.BaseURL, s.cfg.GenerateSitemap)
	return writer.WriteFile(ctx, writeFileRequest{
		Path:        "robots.txt",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain",
		Checksum:    computeHashFromString(content),
	})
}

func (s *service) writeHTML(ctx context.Context, writer artifactWriter, path, content string, category writeCategory) error {
	return writer.WriteFile(ctx, writeFileRequest{
		Path:        path,
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    category,
		ContentType: "text/html; charset=utf-8",
		Checksum:    computeHashFromString(content),
	})
}

func computeHashFromString(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
