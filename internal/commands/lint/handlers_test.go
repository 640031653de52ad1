package lintcmd

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/markdown"
	internalposts "github.com/goliatone/go-blog/internal/posts"
)

func newFixture(t *testing.T) Dependencies {
	t.Helper()
	service := markdown.NewServiceWithFS(markdown.Config{
		BasePath:  "../../markdown/testdata",
		Recursive: true,
	}, nil, os.DirFS("../../markdown/testdata"))

	return Dependencies{
		Markdown: service,
		Linter:   lint.New(lint.Config{}),
		Posts: internalposts.NewService(internalposts.ServiceConfig{
			Repository: internalposts.NewMemoryPostRepository(),
		}),
	}
}

func TestCheckContentHandlerCleanContent(t *testing.T) {
	handler := NewCheckContentHandler(newFixture(t), nil)

	if err := handler.Execute(context.Background(), CheckContentCommand{
		Directory:  "posts",
		CheckIndex: true,
	}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	report := handler.Report()
	if report == nil {
		t.Fatal("expected report")
	}
	if report.HasErrors() {
		t.Fatalf("expected clean report, got %v", report.Issues)
	}
}

func TestCheckContentHandlerRequiresDirectory(t *testing.T) {
	handler := NewCheckContentHandler(newFixture(t), nil)
	if err := handler.Execute(context.Background(), CheckContentCommand{}); err == nil {
		t.Fatal("expected validation error for missing directory")
	}
}

func TestCheckContentHandlerFeatureGate(t *testing.T) {
	deps := newFixture(t)
	deps.Enabled = func() bool { return false }
	handler := NewCheckContentHandler(deps, nil)

	err := handler.Execute(context.Background(), CheckContentCommand{Directory: "posts"})
	if !errors.Is(err, ErrLintFeatureDisabled) {
		t.Fatalf("expected ErrLintFeatureDisabled, got %v", err)
	}
}
