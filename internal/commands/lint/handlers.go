// Package lintcmd exposes command handlers for content integrity checks.
package lintcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
	command "github.com/goliatone/go-command"
)

const checkOperation = "lint.check_content"

var (
	// ErrLintFeatureDisabled is returned when the lint feature flag is disabled at runtime.
	ErrLintFeatureDisabled = errors.New("lint command: feature disabled")
	// ErrContentIssues is returned when the checks find problems.
	ErrContentIssues = errors.New("lint command: content issues found")
)

var _ command.Commander[CheckContentCommand] = (*CheckContentHandler)(nil)

// Dependencies bundles the services the lint command handlers execute against.
type Dependencies struct {
	Markdown interfaces.MarkdownService
	Linter   *lint.Linter
	Posts    blogposts.Service
	Enabled  func() bool
}

func (d Dependencies) featureEnabled() bool {
	if d.Enabled == nil {
		return true
	}
	return d.Enabled()
}

// CheckContentHandler runs integrity checks via the shared command handler foundation.
type CheckContentHandler struct {
	inner  *commands.Handler[CheckContentCommand]
	report *lint.Report
}

// NewCheckContentHandler creates a handler bound to the supplied services.
func NewCheckContentHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[CheckContentCommand]) *CheckContentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	handler := &CheckContentHandler{}

	exec := func(ctx context.Context, msg CheckContentCommand) error {
		if !deps.featureEnabled() {
			return ErrLintFeatureDisabled
		}

		docs, err := deps.Markdown.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{})
		if err != nil {
			return err
		}

		report := deps.Linter.CheckDocuments(docs)

		if msg.CheckIndex && deps.Posts != nil {
			indexReport, err := deps.Linter.CheckIndex(ctx, deps.Posts)
			if err != nil {
				return err
			}
			report.Issues = append(report.Issues, indexReport.Issues...)
		}

		handler.report = report

		errorCount := len(report.Errors())
		warningCount := len(report.Warnings())
		logging.WithFields(baseLogger, map[string]any{
			"documents": len(docs),
			"errors":    errorCount,
			"warnings":  warningCount,
		}).Info("lint.command.check_content.completed")

		if errorCount > 0 || (msg.FailOnWarnings && warningCount > 0) {
			return fmt.Errorf("%w: %d errors, %d warnings", ErrContentIssues, errorCount, warningCount)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckContentCommand]{
		commands.WithLogger[CheckContentCommand](baseLogger),
		commands.WithOperation[CheckContentCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckContentCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.CheckIndex {
				fields["check_index"] = true
			}
			if msg.FailOnWarnings {
				fields["fail_on_warnings"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	handler.inner = commands.NewHandler(exec, handlerOpts...)
	return handler
}

// Execute satisfies command.Commander[CheckContentCommand].
func (h *CheckContentHandler) Execute(ctx context.Context, msg CheckContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Report returns the report produced by the most recent execution.
func (h *CheckContentHandler) Report() *lint.Report {
	return h.report
}
