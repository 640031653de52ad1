package markdown

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewServiceWithFS(Config{
		BasePath:  "testdata",
		Recursive: true,
	}, nil, os.DirFS("testdata"))
}

func TestServiceLoadRendersHTML(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Load(context.Background(), "posts/2019-02-21-understanding-java-optional.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if doc.FrontMatter.Layout != "post" {
		t.Errorf("Layout = %q", doc.FrontMatter.Layout)
	}
	html := string(doc.BodyHTML)
	if !strings.Contains(html, "<h2") {
		t.Errorf("expected rendered heading, got %q", html)
	}
	if !strings.Contains(html, `<a href="https://docs.oracle.com`) {
		t.Errorf("expected rendered link, got %q", html)
	}
}

func TestServiceLoadDirectorySortsByPath(t *testing.T) {
	svc := newTestService(t)

	docs, err := svc.LoadDirectory(context.Background(), "posts", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for i := 1; i < len(docs); i++ {
		if docs[i-1].FilePath > docs[i].FilePath {
			t.Fatalf("documents out of order: %q before %q", docs[i-1].FilePath, docs[i].FilePath)
		}
	}
	for _, doc := range docs {
		if len(doc.BodyHTML) == 0 {
			t.Errorf("document %s was not rendered", doc.FilePath)
		}
	}
}

func TestServiceRenderHonoursOverrides(t *testing.T) {
	svc := newTestService(t)
	source := []byte("line one\nline two")

	html, err := svc.Render(context.Background(), source, interfaces.ParseOptions{HardWraps: true})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(html), "<br") {
		t.Errorf("expected hard wrap break, got %q", string(html))
	}
}

func TestServiceRenderDocumentNil(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.RenderDocument(context.Background(), nil, interfaces.ParseOptions{}); err == nil {
		t.Fatal("expected error for nil document")
	}
}
