// Package runtimeconfig holds the wiring configuration for the blog module.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrContentDirRequired         = errors.New("blog config: content directory is required when markdown is enabled")
	ErrGeneratorOutputDirRequired = errors.New("blog config: generator output directory is required when generator is enabled")
	ErrStorageProviderUnknown     = errors.New("blog config: storage provider is invalid")
	ErrStorageDSNRequired         = errors.New("blog config: storage DSN is required for database providers")
	ErrCacheRequiresTTL           = errors.New("blog config: cache TTL must be zero or positive")
	ErrLoggingProviderRequired    = errors.New("blog config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown     = errors.New("blog config: logging provider is invalid")
	ErrLoggingLevelInvalid        = errors.New("blog config: logging level is invalid")
	ErrLoggingFormatInvalid       = errors.New("blog config: logging format is invalid")
)

// Config aggregates feature flags and adapter bindings for the blog module.
// Fields intentionally use simple types so host applications can unmarshal
// them from their own configuration layer.
type Config struct {
	Enabled   bool
	Site      SiteConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Markdown  MarkdownConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
	Features  Features
}

// SiteConfig carries the public identity of the generated site.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
}

// StorageConfig selects the post index backend.
type StorageConfig struct {
	// Provider is one of "memory", "sqlite" or "postgres".
	Provider string
	DSN      string
}

// CacheConfig captures cache behaviour toggles for repository reads.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// MarkdownConfig captures filesystem and parser behaviour for content ingestion.
type MarkdownConfig struct {
	Enabled       bool
	ContentDir    string
	Pattern       string
	Recursive     bool
	DefaultLayout string
	Parser        MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool
	OutputDir       string
	CleanBuild      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Markdown  bool
	Generator bool
	Lint      bool
	Logger    bool
}

// DefaultConfig returns opinionated defaults for a filesystem-backed blog.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Site: SiteConfig{
			Title: "Blog",
		},
		Storage: StorageConfig{
			Provider: "sqlite",
			DSN:      "file:blog.db?cache=shared&_fk=1",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Markdown: MarkdownConfig{
			Enabled:       true,
			ContentDir:    "content/posts",
			Pattern:       "*.md",
			Recursive:     true,
			DefaultLayout: "post",
		},
		Generator: GeneratorConfig{
			Enabled:         true,
			OutputDir:       "dist",
			CleanBuild:      true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateFeeds:   true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
		},
		Features: Features{
			Markdown:  true,
			Generator: true,
			Lint:      true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	provider := normalizeToken(cfg.Storage.Provider)
	switch provider {
	case "", "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheRequiresTTL
	}

	if cfg.Markdown.Enabled && cfg.Features.Markdown {
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrContentDirRequired
		}
	}

	if cfg.Generator.Enabled && cfg.Features.Generator {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
	}

	if cfg.Features.Logger {
		logProvider := normalizeToken(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if logProvider != "gologger" && logProvider != "noop" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalizeToken(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalizeToken(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
