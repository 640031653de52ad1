package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("blog import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("blog-import", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content/posts", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	defaultLayout := fs.String("default-layout", "", "Layout applied to documents without one")
	storageProvider := fs.String("storage", "sqlite", "Storage provider: memory, sqlite or postgres")
	storageDSN := fs.String("dsn", "", "Storage DSN (defaults to the provider default)")
	sync := fs.Bool("sync", false, "Sync mode: delete indexed posts whose source files are gone")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting content")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:      *contentDir,
		Pattern:         *pattern,
		Recursive:       true,
		StorageProvider: *storageProvider,
		StorageDSN:      *storageDSN,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Markdown == nil || module.Importer == nil {
		return fmt.Errorf("markdown service not configured; ensure Features.Markdown is enabled")
	}

	ctx := context.Background()
	deps := markdowncmd.Dependencies{
		Markdown: module.Markdown,
		Importer: module.Importer,
	}

	if *sync {
		handler := markdowncmd.NewSyncDirectoryHandler(deps, module.Logger)
		cmd := markdowncmd.SyncDirectoryCommand{
			Directory:      *directory,
			DefaultLayout:  *defaultLayout,
			DeleteOrphaned: true,
			DryRun:         *dryRun,
		}
		if err := handler.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("execute sync command: %w", err)
		}
		fmt.Fprintln(os.Stdout, "blog sync command executed successfully")
		return nil
	}

	handler := markdowncmd.NewImportDirectoryHandler(deps, module.Logger)
	cmd := markdowncmd.ImportDirectoryCommand{
		Directory:     *directory,
		DefaultLayout: *defaultLayout,
		DryRun:        *dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "blog import command executed successfully")

	return nil
}
