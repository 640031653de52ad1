package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	internalposts "github.com/goliatone/go-blog/internal/posts"
	blogposts "github.com/goliatone/go-blog/posts"
)

func TestRunBuildWritesPages(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	outputDir := t.TempDir()
	posts := internalposts.NewService(internalposts.ServiceConfig{
		Repository: internalposts.NewMemoryPostRepository(),
	})
	if _, err := posts.Create(context.Background(), blogposts.CreatePostRequest{
		Slug:        "hello-world",
		Title:       "Hello World",
		PublishedAt: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		Body:        "first post",
		BodyHTML:    "<p>first post</p>",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	generatorSvc, err := generator.NewService(generator.Config{
		OutputDir:       outputDir,
		BaseURL:         "https://blog.example.com",
		SiteTitle:       "Test Blog",
		GenerateFeeds:   true,
		GenerateSitemap: true,
		GenerateRobots:  true,
	}, generator.Dependencies{Posts: posts})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Posts:     posts,
			Generator: generatorSvc,
			Logger:    logging.NoOp(),
		}, nil
	}

	if err := runBuild([]string{"-skip-import", "-output-dir", outputDir}); err != nil {
		t.Fatalf("runBuild returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "posts", "hello-world", "index.html")); err != nil {
		t.Fatalf("expected generated post page: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); err != nil {
		t.Fatalf("expected generated index page: %v", err)
	}
}
