package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importDirectoryMessageType = "blog.markdown.import_directory"
	syncDirectoryMessageType   = "blog.markdown.sync_directory"
)

// ImportDirectoryCommand triggers a filesystem walk for Markdown documents
// under the provided Directory and indexes them as posts.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// DefaultLayout is recorded on documents that omit the layout key.
	DefaultLayout string `json:"default_layout,omitempty"`
	// DryRun toggles preview mode to collect import diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// SyncDirectoryCommand orchestrates a Markdown sync run for the provided
// Directory, optionally deleting posts whose source files disappeared.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// DefaultLayout is recorded on documents that omit the layout key.
	DefaultLayout string `json:"default_layout,omitempty"`
	// DryRun toggles preview mode to collect sync diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes indexed posts without matching Markdown files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.markdown.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
