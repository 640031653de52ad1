package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	staticcmd "github.com/goliatone/go-blog/internal/commands/static"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("blog build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content/posts", "Path to the markdown content root")
	outputDir := fs.String("output-dir", "dist", "Directory where generated pages are written")
	baseURL := fs.String("base-url", "", "Absolute base URL used in feeds and sitemaps")
	siteTitle := fs.String("site-title", "", "Site title used in generated pages and feeds")
	storageProvider := fs.String("storage", "memory", "Storage provider: memory, sqlite or postgres")
	storageDSN := fs.String("dsn", "", "Storage DSN (defaults to the provider default)")
	skipImport := fs.Bool("skip-import", false, "Build from the existing index without re-importing content")
	includeDrafts := fs.Bool("include-drafts", false, "Include draft posts in the generated site")
	dryRun := fs.Bool("dry-run", false, "Render pages without writing artefacts to disk")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:      *contentDir,
		Recursive:       true,
		OutputDir:       *outputDir,
		BaseURL:         *baseURL,
		SiteTitle:       *siteTitle,
		StorageProvider: *storageProvider,
		StorageDSN:      *storageDSN,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	ctx := context.Background()

	if !*skipImport {
		if module.Markdown == nil || module.Importer == nil {
			return fmt.Errorf("markdown service not configured; ensure Features.Markdown is enabled")
		}
		importHandler := markdowncmd.NewImportDirectoryHandler(markdowncmd.Dependencies{
			Markdown: module.Markdown,
			Importer: module.Importer,
		}, module.Logger)
		if err := importHandler.Execute(ctx, markdowncmd.ImportDirectoryCommand{Directory: "."}); err != nil {
			return fmt.Errorf("execute import command: %w", err)
		}
	}

	handler := staticcmd.NewBuildSiteHandler(staticcmd.Dependencies{
		Generator: module.Generator,
	}, module.Logger)
	cmd := staticcmd.BuildSiteCommand{
		IncludeDrafts: *includeDrafts,
		DryRun:        *dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "blog build command executed successfully")

	return nil
}
