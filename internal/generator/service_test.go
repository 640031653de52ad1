package generator

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	internalposts "github.com/goliatone/go-blog/internal/posts"
	blogposts "github.com/goliatone/go-blog/posts"
)

type memoryWriter struct {
	files map[string]string
	dirs  map[string]struct{}
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{
		files: map[string]string{},
		dirs:  map[string]struct{}{},
	}
}

func (w *memoryWriter) EnsureDir(_ context.Context, path string) error {
	w.dirs[path] = struct{}{}
	return nil
}

func (w *memoryWriter) WriteFile(_ context.Context, req writeFileRequest) error {
	content, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	w.files[req.Path] = string(content)
	return nil
}

func seedPosts(t *testing.T) blogposts.Service {
	t.Helper()
	service := internalposts.NewService(internalposts.ServiceConfig{
		Repository: internalposts.NewMemoryPostRepository(),
	})
	ctx := context.Background()

	description := "A practical tour of java.util.Optional."
	image := "optional.png"
	seed := []blogposts.CreatePostRequest{
		{
			Slug:        "understanding-java-optional",
			Title:       "Understanding Java Optional",
			Description: &description,
			Image:       &image,
			Tags:        []string{"Java", "Core Java"},
			PublishedAt: time.Date(2019, 2, 21, 0, 0, 0, 0, time.UTC),
			Body:        "body",
			BodyHTML:    "<p>Optional is a return type.</p>",
		},
		{
			Slug:        "virtual-threads-with-loom",
			Title:       "Virtual Threads with Project Loom",
			Tags:        []string{"Java", "Concurrency"},
			PublishedAt: time.Date(2023, 9, 4, 0, 0, 0, 0, time.UTC),
			Body:        "body",
			BodyHTML:    "<p>Virtual threads are cheap.</p>",
		},
	}
	for _, req := range seed {
		if _, err := service.Create(ctx, req); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	return service
}

func newTestService(t *testing.T, cfg Config, posts blogposts.Service, writer artifactWriter) Service {
	t.Helper()
	svc, err := newService(cfg, Dependencies{Posts: posts}, writer)
	if err != nil {
		t.Fatalf("newService() error = %v", err)
	}
	return svc
}

func TestBuildWritesPostAndIndexPages(t *testing.T) {
	writer := newMemoryWriter()
	svc := newTestService(t, Config{
		BaseURL:   "https://blog.example.com",
		SiteTitle: "Java Notes",
	}, seedPosts(t), writer)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if result.PagesBuilt != 3 {
		t.Errorf("PagesBuilt = %d, want 3", result.PagesBuilt)
	}

	page, ok := writer.files["posts/understanding-java-optional/index.html"]
	if !ok {
		t.Fatalf("missing post page, wrote %v", keys(writer.files))
	}
	if !strings.Contains(page, "Understanding Java Optional") {
		t.Error("post page missing title")
	}
	if !strings.Contains(page, "Optional is a return type.") {
		t.Error("post page missing rendered body")
	}

	index, ok := writer.files["index.html"]
	if !ok {
		t.Fatal("missing index page")
	}
	// The listing is date descending, so the Loom post appears first.
	loom := strings.Index(index, "Virtual Threads with Project Loom")
	optional := strings.Index(index, "Understanding Java Optional")
	if loom == -1 || optional == -1 || loom > optional {
		t.Errorf("index ordering wrong: loom=%d optional=%d", loom, optional)
	}
}

func TestBuildWritesTagPages(t *testing.T) {
	writer := newMemoryWriter()
	svc := newTestService(t, Config{SiteTitle: "Java Notes"}, seedPosts(t), writer)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.TagPagesBuilt != 3 {
		t.Errorf("TagPagesBuilt = %d, want 3", result.TagPagesBuilt)
	}

	javaPage, ok := writer.files["tags/java/index.html"]
	if !ok {
		t.Fatalf("missing java tag page, wrote %v", keys(writer.files))
	}
	if !strings.Contains(javaPage, "Virtual Threads with Project Loom") {
		t.Error("tag page missing post")
	}
	if _, ok := writer.files["tags/core-java/index.html"]; !ok {
		t.Error("expected multi-word tag route to be slugified")
	}
}

func TestBuildWritesFeedSitemapRobots(t *testing.T) {
	writer := newMemoryWriter()
	svc := newTestService(t, Config{
		BaseURL:         "https://blog.example.com",
		SiteTitle:       "Java Notes",
		GenerateFeeds:   true,
		GenerateSitemap: true,
		GenerateRobots:  true,
	}, seedPosts(t), writer)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.FeedsBuilt != 1 || !result.SitemapBuilt || !result.RobotsBuilt {
		t.Fatalf("unexpected result %+v", result)
	}

	feed := writer.files["feed.xml"]
	if !strings.Contains(feed, "<rss version=\"2.0\">") {
		t.Error("feed missing rss envelope")
	}
	if !strings.Contains(feed, "https://blog.example.com/posts/virtual-threads-with-loom/") {
		t.Errorf("feed missing absolute post link: %s", feed)
	}

	sitemap := writer.files["sitemap.xml"]
	if !strings.Contains(sitemap, "<loc>https://blog.example.com/posts/understanding-java-optional/</loc>") {
		t.Errorf("sitemap missing post url: %s", sitemap)
	}

	robots := writer.files["robots.txt"]
	if !strings.Contains(robots, "Sitemap: https://blog.example.com/sitemap.xml") {
		t.Errorf("robots missing sitemap hint: %s", robots)
	}
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	writer := newMemoryWriter()
	svc := newTestService(t, Config{GenerateFeeds: true}, seedPosts(t), writer)

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !result.DryRun {
		t.Error("expected dry run flag")
	}
	if result.PagesBuilt == 0 {
		t.Error("dry run should still count pages")
	}
	if len(writer.files) != 0 {
		t.Errorf("dry run wrote files: %v", keys(writer.files))
	}
}

func TestBuildExcludesDrafts(t *testing.T) {
	posts := seedPosts(t)
	ctx := context.Background()
	if _, err := posts.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "wip-notes",
		Title:       "WIP Notes",
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Draft:       true,
		Body:        "body",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	writer := newMemoryWriter()
	svc := newTestService(t, Config{}, posts, writer)

	if _, err := svc.Build(ctx, BuildOptions{}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := writer.files["posts/wip-notes/index.html"]; ok {
		t.Error("draft post should not be rendered")
	}

	writer = newMemoryWriter()
	svc = newTestService(t, Config{}, posts, writer)
	if _, err := svc.Build(ctx, BuildOptions{IncludeDrafts: true}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := writer.files["posts/wip-notes/index.html"]; !ok {
		t.Error("draft post should be rendered when drafts are included")
	}
}

func TestLayoutFallsBackToPostTemplate(t *testing.T) {
	posts := internalposts.NewService(internalposts.ServiceConfig{
		Repository: internalposts.NewMemoryPostRepository(),
	})
	ctx := context.Background()
	if _, err := posts.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "custom-layout",
		Layout:      "keynote",
		Title:       "Custom Layout",
		PublishedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Body:        "body",
		BodyHTML:    "<p>content</p>",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	writer := newMemoryWriter()
	svc := newTestService(t, Config{SiteTitle: "Java Notes"}, posts, writer)

	if _, err := svc.Build(ctx, BuildOptions{}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	page := writer.files["posts/custom-layout/index.html"]
	if !strings.Contains(page, "Custom Layout") {
		t.Errorf("expected fallback template to render, got %q", page)
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewDisabledService()
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != ErrServiceDisabled {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
