package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across documents so hosts can share a
// single instance without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the file-centric workflows for blog content,
// enabling hosts to load Markdown documents, convert them into HTML, and
// synchronise them with the post index.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document represents a Markdown file with parsed metadata and content. The
// struct is shared between the interfaces package and internal implementations
// so consumers can depend on a stable contract.
type Document struct {
	FilePath    string
	FrontMatter FrontMatter
	Body        []byte
	BodyHTML    []byte
	// LastModified mirrors the file modification time so sync workflows can
	// fall back to it when the front matter carries no date.
	LastModified time.Time
	// Checksum stores a digest of the original file content (SHA-256) so sync
	// workflows can detect changes without re-importing unchanged files.
	Checksum []byte
}

// FrontMatter models the metadata block every post document carries. Layout,
// title and date form the contract consumed by the site generator; everything
// the envelope does not recognise lands in Custom.
type FrontMatter struct {
	Layout      string         `yaml:"layout" json:"layout"`
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Date        time.Time      `yaml:"date" json:"date"`
	Description string         `yaml:"description" json:"description"`
	Image       string         `yaml:"img" json:"img"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Draft       bool           `yaml:"draft" json:"draft"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ImportOptions controls how Markdown documents are converted into post
// records.
type ImportOptions struct {
	// DefaultLayout is recorded when a document omits the layout key.
	DefaultLayout string
	DryRun        bool
}

// SyncOptions extends ImportOptions to handle update/delete semantics for
// repeated synchronisation runs.
type SyncOptions struct {
	ImportOptions
	DeleteOrphaned bool
}

// ImportResult reports the outcome of a single import operation, exposing
// counts and slugs so callers can audit behaviour or trigger follow-up actions.
type ImportResult struct {
	CreatedSlugs []string
	UpdatedSlugs []string
	SkippedSlugs []string
	Errors       []error
}

// SyncResult summarises a bulk sync run across many files.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}
