// Package staticcmd exposes command handlers for static site builds.
package staticcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const buildOperation = "static.build_site"

// ErrGeneratorFeatureDisabled is returned when the generator feature flag is disabled at runtime.
var ErrGeneratorFeatureDisabled = errors.New("static command: feature disabled")

var _ command.Commander[BuildSiteCommand] = (*BuildSiteHandler)(nil)

// Dependencies bundles the services the static command handlers execute against.
type Dependencies struct {
	Generator generator.Service
	Enabled   func() bool
}

func (d Dependencies) featureEnabled() bool {
	if d.Enabled == nil {
		return true
	}
	return d.Enabled()
}

// BuildSiteHandler orchestrates site builds via the shared command handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler creates a handler bound to the supplied generator service.
func NewBuildSiteHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if !deps.featureEnabled() {
			return ErrGeneratorFeatureDisabled
		}

		result, err := deps.Generator.Build(ctx, generator.BuildOptions{
			IncludeDrafts: msg.IncludeDrafts,
			DryRun:        msg.DryRun,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"pages_built":     result.PagesBuilt,
				"tag_pages_built": result.TagPagesBuilt,
				"feeds_built":     result.FeedsBuilt,
				"duration":        result.Duration.String(),
				"dry_run":         msg.DryRun,
			}).Info("static.command.build_site.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if msg.IncludeDrafts {
				fields["include_drafts"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
