package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	lintcmd "github.com/goliatone/go-blog/internal/commands/lint"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runCheck(os.Args[1:]); err != nil {
		log.Fatalf("blog check: %v", err)
	}
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("blog-check", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content/posts", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to check, relative to the content root")
	checkIndex := fs.Bool("check-index", false, "Also verify index ordering (imports content first)")
	failOnWarnings := fs.Bool("fail-on-warnings", false, "Exit non-zero when warnings are reported")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:      *contentDir,
		Pattern:         *pattern,
		Recursive:       true,
		StorageProvider: "memory",
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Markdown == nil || module.Linter == nil {
		return fmt.Errorf("lint services not configured; ensure Features.Lint is enabled")
	}

	ctx := context.Background()

	// Index checks run against a throwaway in-memory index built from the
	// same content directory.
	if *checkIndex {
		importHandler := markdowncmd.NewImportDirectoryHandler(markdowncmd.Dependencies{
			Markdown: module.Markdown,
			Importer: module.Importer,
		}, module.Logger)
		if err := importHandler.Execute(ctx, markdowncmd.ImportDirectoryCommand{Directory: *directory}); err != nil {
			return fmt.Errorf("execute import command: %w", err)
		}
	}

	handler := lintcmd.NewCheckContentHandler(lintcmd.Dependencies{
		Markdown: module.Markdown,
		Linter:   module.Linter,
		Posts:    module.Posts,
	}, module.Logger)
	cmd := lintcmd.CheckContentCommand{
		Directory:      *directory,
		CheckIndex:     *checkIndex,
		FailOnWarnings: *failOnWarnings,
	}

	execErr := handler.Execute(ctx, cmd)

	if report := handler.Report(); report != nil {
		for _, issue := range report.Issues {
			fmt.Fprintln(os.Stdout, issue.String())
		}
		fmt.Fprintf(os.Stdout, "checked content: %d errors, %d warnings\n",
			len(report.Errors()), len(report.Warnings()))
	}

	if execErr != nil {
		if errors.Is(execErr, lintcmd.ErrContentIssues) {
			return execErr
		}
		return fmt.Errorf("execute check command: %w", execErr)
	}
	return nil
}
