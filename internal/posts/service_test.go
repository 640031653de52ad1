package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	blogposts "github.com/goliatone/go-blog/posts"
)

func TestServiceCreateAndGetBySlug(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})
	ctx := context.Background()

	created, err := svc.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "understanding-java-optional",
		Title:       "Understanding Java Optional",
		PublishedAt: time.Date(2019, 2, 21, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"java", "Java", "functional"},
		Body:        "Optional is a container object.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected deterministic id to be assigned")
	}
	if created.Layout != "post" {
		t.Fatalf("expected default layout, got %q", created.Layout)
	}
	if len(created.Tags) != 2 {
		t.Fatalf("expected duplicate tags to collapse, got %#v", created.Tags)
	}

	fetched, err := svc.GetBySlug(ctx, "understanding-java-optional")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("expected stable id, got %s != %s", fetched.ID, created.ID)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})
	ctx := context.Background()

	_, err := svc.Create(ctx, blogposts.CreatePostRequest{
		Slug: "missing-title",
		Body: "body",
	})
	if err == nil {
		t.Fatalf("expected validation error for missing title and date")
	}

	_, err = svc.Create(ctx, blogposts.CreatePostRequest{
		Title:       "No slug",
		PublishedAt: time.Now(),
		Body:        "body",
	})
	if !errors.Is(err, blogposts.ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
}

func TestServiceCreateRejectsDuplicateSlug(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})
	ctx := context.Background()

	req := blogposts.CreatePostRequest{
		Slug:        "tail-call-elimination",
		Title:       "Tail Call Elimination",
		PublishedAt: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		Body:        "Trampolines all the way down.",
	}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, blogposts.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestServiceListOrdering(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})
	ctx := context.Background()

	seed := []struct {
		slug string
		date time.Time
	}{
		{"virtual-threads", time.Date(2023, 9, 19, 0, 0, 0, 0, time.UTC)},
		{"testcontainers-integration-tests", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"b-same-day", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
	}
	for _, entry := range seed {
		if _, err := svc.Create(ctx, blogposts.CreatePostRequest{
			Slug:        entry.slug,
			Title:       entry.slug,
			PublishedAt: entry.date,
			Body:        "body",
		}); err != nil {
			t.Fatalf("Create %s: %v", entry.slug, err)
		}
	}

	listed, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(listed))
	}
	got := []string{listed[0].Slug, listed[1].Slug, listed[2].Slug}
	want := []string{"virtual-threads", "b-same-day", "testcontainers-integration-tests"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordering mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestServiceListExcludesDraftsByDefault(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})
	ctx := context.Background()

	if _, err := svc.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "published",
		Title:       "Published",
		PublishedAt: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		Body:        "body",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "draft",
		Title:       "Draft",
		PublishedAt: time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC),
		Draft:       true,
		Body:        "body",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	listed, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].Slug != "published" {
		t.Fatalf("expected only the published post, got %#v", listed)
	}

	all, err := svc.List(ctx, blogposts.WithDrafts())
	if err != nil {
		t.Fatalf("List with drafts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 posts with drafts, got %d", len(all))
	}
}

func TestServiceListByTag(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})
	ctx := context.Background()

	entries := map[string][]string{
		"optional-post": {"java", "functional"},
		"loom-post":     {"java", "concurrency"},
		"docker-post":   {"testing"},
	}
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for slug, tags := range entries {
		if _, err := svc.Create(ctx, blogposts.CreatePostRequest{
			Slug:        slug,
			Title:       slug,
			PublishedAt: date,
			Tags:        tags,
			Body:        "body",
		}); err != nil {
			t.Fatalf("Create %s: %v", slug, err)
		}
		date = date.Add(24 * time.Hour)
	}

	java, err := svc.List(ctx, blogposts.WithTag("Java"))
	if err != nil {
		t.Fatalf("List by tag: %v", err)
	}
	if len(java) != 2 {
		t.Fatalf("expected 2 java posts, got %d", len(java))
	}
}

func TestServiceTags(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})
	ctx := context.Background()

	if _, err := svc.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "one",
		Title:       "One",
		PublishedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"java", "loom"},
		Body:        "body",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "two",
		Title:       "Two",
		PublishedAt: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"Java"},
		Body:        "body",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tags, err := svc.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %#v", tags)
	}
	if tags[0].Tag != "java" || tags[0].Count != 2 {
		t.Fatalf("expected java counted twice, got %#v", tags[0])
	}
}

func TestServiceUpdate(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})
	ctx := context.Background()

	created, err := svc.Create(ctx, blogposts.CreatePostRequest{
		Slug:        "editable",
		Title:       "Before",
		PublishedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Body:        "body",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "After"
	updated, err := svc.Update(ctx, blogposts.UpdatePostRequest{
		ID:    created.ID,
		Title: &title,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "After" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.PublishedAt != created.PublishedAt {
		t.Fatalf("expected untouched date to persist")
	}
}

func TestServiceDeleteMissing(t *testing.T) {
	svc := NewService(ServiceConfig{Repository: NewMemoryPostRepository()})

	err := svc.Delete(context.Background(), blogposts.DeletePostRequest{ID: uuid.New()})
	if !errors.Is(err, blogposts.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
