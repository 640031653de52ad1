package blog

import (
	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

// Config aggregates feature flags and adapter bindings for the blog module.
type Config = runtimeconfig.Config

// SiteConfig carries the public identity of the generated site.
type SiteConfig = runtimeconfig.SiteConfig

// StorageConfig selects the post index backend.
type StorageConfig = runtimeconfig.StorageConfig

// CacheConfig captures cache behaviour toggles for repository reads.
type CacheConfig = runtimeconfig.CacheConfig

// MarkdownConfig captures filesystem and parser behaviour for content ingestion.
type MarkdownConfig = runtimeconfig.MarkdownConfig

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig = runtimeconfig.GeneratorConfig

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig = runtimeconfig.LoggingConfig

// Features toggles module functionality.
type Features = runtimeconfig.Features

// DefaultConfig returns opinionated defaults for a filesystem-backed blog.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
