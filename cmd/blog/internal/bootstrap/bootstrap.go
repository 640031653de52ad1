// Package bootstrap builds blog modules for the CLI entry points.
package bootstrap

import (
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures configuration shared by the blog CLI bootstraps.
type Options struct {
	ContentDir      string
	Pattern         string
	Recursive       bool
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	StorageProvider string
	StorageDSN      string
	CacheEnabled    *bool
	LogLevel        string
	LoggerProvider  interfaces.LoggerProvider
}

// Module wraps the blog module with the services the CLIs operate on.
type Module struct {
	Module    *blog.Module
	Posts     blog.PostService
	Markdown  blog.MarkdownService
	Importer  *blog.Importer
	Generator blog.GeneratorService
	Linter    *blog.Linter
	Logger    interfaces.Logger
}

// BuildModule constructs a blog module configured from CLI options.
func BuildModule(opts Options) (*Module, error) {
	cfg := blog.DefaultConfig()

	if trimmed := strings.TrimSpace(opts.ContentDir); trimmed != "" {
		cfg.Markdown.ContentDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive

	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Site.BaseURL = trimmed
	}
	if trimmed := strings.TrimSpace(opts.SiteTitle); trimmed != "" {
		cfg.Site.Title = trimmed
	}
	if trimmed := strings.TrimSpace(opts.SiteDescription); trimmed != "" {
		cfg.Site.Description = trimmed
	}

	if trimmed := strings.TrimSpace(opts.StorageProvider); trimmed != "" {
		cfg.Storage.Provider = trimmed
	}
	if trimmed := strings.TrimSpace(opts.StorageDSN); trimmed != "" {
		cfg.Storage.DSN = trimmed
	}
	if strings.EqualFold(cfg.Storage.Provider, "memory") {
		cfg.Storage.DSN = ""
		cfg.Cache.Enabled = false
	}
	if opts.CacheEnabled != nil {
		cfg.Cache.Enabled = *opts.CacheEnabled
	}

	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
		cfg.Features.Logger = true
	}

	moduleOpts := []blog.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, blog.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blog.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	return &Module{
		Module:    module,
		Posts:     module.Posts(),
		Markdown:  module.Markdown(),
		Importer:  module.Importer(),
		Generator: module.Generator(),
		Linter:    module.Linter(),
		Logger:    logging.ModuleLogger(module.LoggerProvider(), ""),
	}, nil
}

// Close releases resources held by the wrapped module.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}
