package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	internalposts "github.com/goliatone/go-blog/internal/posts"
	blogposts "github.com/goliatone/go-blog/posts"
)

func stubModule(t *testing.T) (*bootstrap.Module, blogposts.Service) {
	t.Helper()

	service := markdown.NewServiceWithFS(markdown.Config{
		BasePath:  "../../../internal/markdown/testdata",
		Recursive: true,
	}, nil, os.DirFS("../../../internal/markdown/testdata"))

	posts := internalposts.NewService(internalposts.ServiceConfig{
		Repository: internalposts.NewMemoryPostRepository(),
	})

	return &bootstrap.Module{
		Posts:    posts,
		Markdown: service,
		Importer: markdown.NewImporter(markdown.ImporterConfig{Posts: posts}),
		Logger:   logging.NoOp(),
	}, posts
}

func TestRunImportUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	module, posts := stubModule(t)
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return module, nil
	}

	if err := runImport([]string{"-directory", "posts"}); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}

	records, err := posts.List(context.Background(), blogposts.WithDrafts())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 imported posts, got %d", len(records))
	}
}

func TestRunImportSyncDeletesOrphans(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	module, posts := stubModule(t)
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return module, nil
	}

	ctx := context.Background()
	if _, err := posts.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "stale-post",
		Title:       "Stale Post",
		PublishedAt: time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC),
		Body:        "body",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := runImport([]string{"-directory", "posts", "-sync"}); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}

	if _, err := posts.GetBySlug(ctx, "stale-post"); err == nil {
		t.Fatal("expected stale post to be deleted")
	}
}
