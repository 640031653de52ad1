package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryPage    writeCategory = "page"
	categoryIndex   writeCategory = "index"
	categoryTag     writeCategory = "tag"
	categoryFeed    writeCategory = "feed"
	categorySitemap writeCategory = "sitemap"
	categoryRobots  writeCategory = "robots"
)

// writeFileRequest describes a file write routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// artifactWriter abstracts the output target so builds can run against the
// local filesystem, a dry-run sink, or an in-memory writer in tests.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
}

// newFilesystemWriter returns a writer rooted at dir.
func newFilesystemWriter(dir string) artifactWriter {
	return &filesystemWriter{root: filepath.Clean(dir)}
}

type filesystemWriter struct {
	root string
}

func (w *filesystemWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(w.root, filepath.FromSlash(path)), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir %s: %w", path, err)
	}
	return nil
}

func (w *filesystemWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}

	target := filepath.Join(w.root, filepath.FromSlash(req.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", req.Path, err)
	}

	content, err := io.ReadAll(req.Content)
	if err != nil {
		return fmt.Errorf("generator: read content for %s: %w", req.Path, err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, writeFileRequest) error { return nil }
