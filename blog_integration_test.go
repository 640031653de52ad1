package blog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const optionalPost = `---
layout: post
title: Understanding Java Optional
date: 2019-02-21
description: A practical tour of java.util.Optional.
img: optional.png
tags: [Java, Core Java]
---
Optional was introduced in Java 8 as a return type.
`

const loomPost = `---
layout: post
title: Virtual Threads with Project Loom
date: 2023-09-04
tags: [Java, Concurrency]
---
Virtual threads are cheap enough to create one per task.
`

func newTestModule(t *testing.T) (*blog.Module, string) {
	t.Helper()

	contentDir := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, filepath.Join(contentDir, "2019-02-21-understanding-java-optional.md"), optionalPost)
	writeFile(t, filepath.Join(contentDir, "2023-09-04-virtual-threads-with-loom.md"), loomPost)

	cfg := blog.DefaultConfig()
	cfg.Site.Title = "Java Notes"
	cfg.Site.BaseURL = "https://blog.example.com"
	cfg.Storage.Provider = "memory"
	cfg.Storage.DSN = ""
	cfg.Cache.Enabled = false
	cfg.Markdown.ContentDir = contentDir
	cfg.Generator.OutputDir = outputDir

	module, err := blog.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = module.Close()
	})
	return module, outputDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestModuleImportAndListOrdering(t *testing.T) {
	module, _ := newTestModule(t)
	ctx := context.Background()

	docs, err := module.Markdown().LoadDirectory(ctx, ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	result, err := module.Importer().ImportDocuments(ctx, docs, interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDocuments() error = %v", err)
	}
	if len(result.CreatedSlugs) != 2 {
		t.Fatalf("CreatedSlugs = %v", result.CreatedSlugs)
	}

	records, err := module.Posts().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(records))
	}
	if records[0].Slug != "virtual-threads-with-loom" {
		t.Errorf("expected newest post first, got %q", records[0].Slug)
	}

	post, err := module.Posts().GetBySlug(ctx, "understanding-java-optional")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if post.Description == nil || *post.Description == "" {
		t.Error("expected description from frontmatter")
	}
	if post.Image == nil || *post.Image != "optional.png" {
		t.Error("expected image from frontmatter img key")
	}
}

func TestModuleLintAndBuild(t *testing.T) {
	module, outputDir := newTestModule(t)
	ctx := context.Background()

	docs, err := module.Markdown().LoadDirectory(ctx, ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if _, err := module.Importer().ImportDocuments(ctx, docs, interfaces.ImportOptions{}); err != nil {
		t.Fatalf("ImportDocuments() error = %v", err)
	}

	report := module.Linter().CheckDocuments(docs)
	if report.HasErrors() {
		t.Fatalf("expected clean content, got %v", report.Issues)
	}

	indexReport, err := module.Linter().CheckIndex(ctx, module.Posts())
	if err != nil {
		t.Fatalf("CheckIndex() error = %v", err)
	}
	if len(indexReport.Issues) != 0 {
		t.Fatalf("expected ordered index, got %v", indexReport.Issues)
	}

	buildResult, err := module.Generator().Build(ctx, blog.BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if buildResult.PagesBuilt != 3 {
		t.Errorf("PagesBuilt = %d, want 3", buildResult.PagesBuilt)
	}

	page, err := os.ReadFile(filepath.Join(outputDir, "posts", "virtual-threads-with-loom", "index.html"))
	if err != nil {
		t.Fatalf("read generated page: %v", err)
	}
	if !strings.Contains(string(page), "Virtual Threads with Project Loom") {
		t.Error("generated page missing title")
	}

	if _, err := os.Stat(filepath.Join(outputDir, "feed.xml")); err != nil {
		t.Errorf("expected feed.xml: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "sitemap.xml")); err != nil {
		t.Errorf("expected sitemap.xml: %v", err)
	}
}

func TestModuleDisabled(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Enabled = false
	if _, err := blog.New(cfg); err != blog.ErrModuleDisabled {
		t.Fatalf("expected ErrModuleDisabled, got %v", err)
	}
}
