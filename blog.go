// Package blog assembles a Markdown-backed blog pipeline: content ingestion,
// a queryable post index, integrity checks, and static site generation.
package blog

import (
	"errors"
	"fmt"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	internalposts "github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/storage"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

// PostService exports the post index contract for consumers of the blog package.
type PostService = blogposts.Service

// MarkdownService exports the markdown workflow contract.
type MarkdownService = interfaces.MarkdownService

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports per-build overrides for the generator.
type BuildOptions = generator.BuildOptions

// BuildResult exports the outcome summary of a generator build.
type BuildResult = generator.BuildResult

// Importer exports the markdown import pipeline.
type Importer = markdown.Importer

// Linter exports the content integrity checker.
type Linter = lint.Linter

// ErrModuleDisabled is returned when the module is constructed with Enabled false.
var ErrModuleDisabled = errors.New("blog: module disabled")

// Option overrides module wiring during construction.
type Option func(*Module)

// WithBunDB supplies an existing database handle instead of opening one from
// the storage configuration.
func WithBunDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
		m.ownsDB = false
	}
}

// WithPostRepository overrides the post repository, bypassing storage wiring.
// Hosts use this to run against the in-memory implementation.
func WithPostRepository(repo internalposts.PostRepository) Option {
	return func(m *Module) {
		m.repo = repo
	}
}

// WithLoggerProvider overrides the logger provider used for module namespaces.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.logProvider = provider
	}
}

// WithCache overrides the cache service and key serializer used for
// repository reads.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(m *Module) {
		m.cacheService = service
		m.keySerializer = serializer
	}
}

// Module is the top level blog runtime façade.
type Module struct {
	cfg Config

	db       *bun.DB
	ownsDB   bool
	repo     internalposts.PostRepository
	posts    blogposts.Service
	mdSvc    interfaces.MarkdownService
	importer *markdown.Importer

	generatorSvc generator.Service
	linter       *lint.Linter

	logProvider   interfaces.LoggerProvider
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
}

// New constructs a blog module using the provided configuration and optional
// wiring overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if !cfg.Enabled {
		return nil, ErrModuleDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg, ownsDB: true}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.wireLogging(); err != nil {
		return nil, err
	}
	if err := m.wireRepository(); err != nil {
		return nil, err
	}
	m.wirePosts()
	if err := m.wireMarkdown(); err != nil {
		return nil, err
	}
	if err := m.wireGenerator(); err != nil {
		return nil, err
	}
	m.wireLint()

	return m, nil
}

// Posts returns the configured post index service.
func (m *Module) Posts() PostService {
	return m.posts
}

// Markdown returns the markdown service when configured.
func (m *Module) Markdown() MarkdownService {
	return m.mdSvc
}

// Importer returns the markdown import pipeline when configured.
func (m *Module) Importer() *Importer {
	return m.importer
}

// Generator returns the configured generator service.
func (m *Module) Generator() GeneratorService {
	return m.generatorSvc
}

// Linter returns the content integrity checker when configured.
func (m *Module) Linter() *Linter {
	return m.linter
}

// LoggerProvider exposes the configured logger provider. It is nil when
// logging is disabled, in which case consumers fall back to no-op loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.logProvider
}

// DB exposes the underlying database handle for advanced integrations. It is
// nil when the module runs on the in-memory repository.
func (m *Module) DB() *bun.DB {
	return m.db
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m.db != nil && m.ownsDB {
		return m.db.Close()
	}
	return nil
}

func (m *Module) wireLogging() error {
	if m.logProvider != nil {
		return nil
	}
	if !m.cfg.Features.Logger {
		return nil
	}
	provider := strings.ToLower(strings.TrimSpace(m.cfg.Logging.Provider))
	if provider != "gologger" {
		return nil
	}
	logProvider, err := gologger.NewProvider(gologger.Config{
		Level:     m.cfg.Logging.Level,
		Format:    m.cfg.Logging.Format,
		AddSource: m.cfg.Logging.AddSource,
		Focus:     m.cfg.Logging.Focus,
	})
	if err != nil {
		return err
	}
	m.logProvider = logProvider
	return nil
}

func (m *Module) wireRepository() error {
	if m.repo != nil {
		return nil
	}

	provider := strings.ToLower(strings.TrimSpace(m.cfg.Storage.Provider))
	if provider == "" || provider == "memory" {
		m.repo = internalposts.NewMemoryPostRepository()
		return nil
	}

	if m.db == nil {
		db, err := storage.Open(storage.Config{
			Provider: provider,
			DSN:      m.cfg.Storage.DSN,
		})
		if err != nil {
			return err
		}
		m.db = db
		m.ownsDB = true
	}

	if m.cfg.Cache.Enabled && m.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if m.cfg.Cache.DefaultTTL > 0 {
			cacheCfg.TTL = m.cfg.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("blog: cache service: %w", err)
		}
		m.cacheService = service
	}
	if m.cacheService != nil && m.keySerializer == nil {
		m.keySerializer = repocache.NewDefaultKeySerializer()
	}

	if m.cfg.Cache.Enabled {
		m.repo = internalposts.NewBunPostRepositoryWithCache(m.db, m.cacheService, m.keySerializer)
	} else {
		m.repo = internalposts.NewBunPostRepository(m.db)
	}
	return nil
}

func (m *Module) wirePosts() {
	m.posts = internalposts.NewService(internalposts.ServiceConfig{
		Repository: m.repo,
		Logger:     logging.PostsLogger(m.logProvider),
	})
}

func (m *Module) wireMarkdown() error {
	if !m.cfg.Markdown.Enabled || !m.cfg.Features.Markdown {
		return nil
	}

	service, err := markdown.NewService(markdown.Config{
		BasePath:  m.cfg.Markdown.ContentDir,
		Pattern:   m.cfg.Markdown.Pattern,
		Recursive: m.cfg.Markdown.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: m.cfg.Markdown.Parser.Extensions,
			Sanitize:   m.cfg.Markdown.Parser.Sanitize,
			HardWraps:  m.cfg.Markdown.Parser.HardWraps,
			SafeMode:   m.cfg.Markdown.Parser.SafeMode,
		},
	}, nil)
	if err != nil {
		return err
	}

	m.mdSvc = service
	m.importer = markdown.NewImporter(markdown.ImporterConfig{
		Posts:  m.posts,
		Logger: logging.MarkdownLogger(m.logProvider),
	})
	return nil
}

func (m *Module) wireGenerator() error {
	if !m.cfg.Generator.Enabled || !m.cfg.Features.Generator {
		m.generatorSvc = generator.NewDisabledService()
		return nil
	}

	service, err := generator.NewService(generator.Config{
		OutputDir:       m.cfg.Generator.OutputDir,
		BaseURL:         m.cfg.Site.BaseURL,
		SiteTitle:       m.cfg.Site.Title,
		SiteDescription: m.cfg.Site.Description,
		CleanBuild:      m.cfg.Generator.CleanBuild,
		GenerateFeeds:   m.cfg.Generator.GenerateFeeds,
		GenerateSitemap: m.cfg.Generator.GenerateSitemap,
		GenerateRobots:  m.cfg.Generator.GenerateRobots,
	}, generator.Dependencies{
		Posts:  m.posts,
		Logger: logging.GeneratorLogger(m.logProvider),
	})
	if err != nil {
		return err
	}
	m.generatorSvc = service
	return nil
}

func (m *Module) wireLint() {
	if !m.cfg.Features.Lint {
		return
	}
	m.linter = lint.New(lint.Config{
		Logger: logging.LintLogger(m.logProvider),
	})
}
