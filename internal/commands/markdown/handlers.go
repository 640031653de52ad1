// Package markdowncmd exposes command handlers for Markdown ingestion runs.
package markdowncmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	importOperation = "markdown.import_directory"
	syncOperation   = "markdown.sync_directory"
)

// ErrMarkdownFeatureDisabled is returned when the markdown feature flag is disabled at runtime.
var ErrMarkdownFeatureDisabled = errors.New("markdown command: feature disabled")

var (
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
	_ command.Commander[SyncDirectoryCommand]   = (*SyncDirectoryHandler)(nil)
)

// Dependencies bundles the services the markdown command handlers execute against.
type Dependencies struct {
	Markdown interfaces.MarkdownService
	Importer *markdown.Importer
	Enabled  func() bool
}

func (d Dependencies) featureEnabled() bool {
	if d.Enabled == nil {
		return true
	}
	return d.Enabled()
}

// ImportDirectoryHandler orchestrates Markdown directory imports via the shared command handler foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to the supplied services.
func NewImportDirectoryHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !deps.featureEnabled() {
			return ErrMarkdownFeatureDisabled
		}

		docs, err := deps.Markdown.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{})
		if err != nil {
			return err
		}

		result, err := deps.Importer.ImportDocuments(ctx, docs, interfaces.ImportOptions{
			DefaultLayout: msg.DefaultLayout,
			DryRun:        msg.DryRun,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count": len(result.CreatedSlugs),
				"updated_count": len(result.UpdatedSlugs),
				"skipped_count": len(result.SkippedSlugs),
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("markdown.command.import_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DefaultLayout != "" {
				fields["default_layout"] = msg.DefaultLayout
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler orchestrates Markdown sync workflows via the shared command handler foundation.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied services.
func NewSyncDirectoryHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		if !deps.featureEnabled() {
			return ErrMarkdownFeatureDisabled
		}

		docs, err := deps.Markdown.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{})
		if err != nil {
			return err
		}

		result, err := deps.Importer.SyncDocuments(ctx, docs, interfaces.SyncOptions{
			ImportOptions: interfaces.ImportOptions{
				DefaultLayout: msg.DefaultLayout,
				DryRun:        msg.DryRun,
			},
			DeleteOrphaned: msg.DeleteOrphaned,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":  result.Created,
				"updated_count":  result.Updated,
				"deleted_count":  result.Deleted,
				"skipped_count":  result.Skipped,
				"error_count":    len(result.Errors),
				"dry_run":        msg.DryRun,
				"delete_orphans": msg.DeleteOrphaned,
			}).Info("markdown.command.sync_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DefaultLayout != "" {
				fields["default_layout"] = msg.DefaultLayout
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
