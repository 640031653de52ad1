package main

import (
	"errors"
	"os"
	"testing"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	lintcmd "github.com/goliatone/go-blog/internal/commands/lint"
	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	internalposts "github.com/goliatone/go-blog/internal/posts"
)

func stubModule(t *testing.T) *bootstrap.Module {
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
		Linter:   lint.New(lint.Config{}),
		Logger:   logging.NoOp(),
	}
}

func TestRunCheckCleanContent(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return stubModule(t), nil
	}

	if err := runCheck([]string{"-directory", "posts", "-check-index"}); err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
}

func TestRunCheckReportsIssues(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	contentDir := t.TempDir()
	if err := os.WriteFile(contentDir+"/broken.md", []byte("---\nlayout: post\n---\nno title or date\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	posts := internalposts.NewService(internalposts.ServiceConfig{
		Repository: internalposts.NewMemoryPostRepository(),
	})
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Posts: posts,
			Markdown: markdown.NewServiceWithFS(markdown.Config{
				BasePath: contentDir,
			}, nil, os.DirFS(contentDir)),
			Importer: markdown.NewImporter(markdown.ImporterConfig{Posts: posts}),
			Linter:   lint.New(lint.Config{}),
			Logger:   logging.NoOp(),
		}, nil
	}

	err := runCheck([]string{"-directory", "."})
	if !errors.Is(err, lintcmd.ErrContentIssues) {
		t.Fatalf("expected ErrContentIssues, got %v", err)
	}
}
