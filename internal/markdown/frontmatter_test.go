package markdown

import (
	"testing"
	"time"
)

func TestParseFrontMatterFullEnvelope(t *testing.T) {
	source := []byte(`---
layout: post
title: Understanding Java Optional
date: 2019-02-21
description: A practical tour of java.util.Optional.
img: optional.png
tags: [Java, Core Java]
---
Body content here.
`)

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter() error = %v", err)
	}

	if meta.Layout != "post" {
		t.Errorf("Layout = %q, want %q", meta.Layout, "post")
	}
	if meta.Title != "Understanding Java Optional" {
		t.Errorf("Title = %q", meta.Title)
	}
	want := time.Date(2019, 2, 21, 0, 0, 0, 0, time.UTC)
	if !meta.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", meta.Date, want)
	}
	if meta.Description == "" {
		t.Error("expected description to be populated")
	}
	if meta.Image != "optional.png" {
		t.Errorf("Image = %q, want %q", meta.Image, "optional.png")
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "Java" {
		t.Errorf("Tags = %v", meta.Tags)
	}
	if string(body) != "Body content here.\n" {
		t.Errorf("body = %q", string(body))
	}
}

func TestParseFrontMatterOptionalKeysOmitted(t *testing.T) {
	source := []byte(`---
layout: post
title: Short Note
date: 2020-01-05
---
text
`)

	meta, _, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter() error = %v", err)
	}
	if meta.Description != "" || meta.Image != "" {
		t.Errorf("expected empty optional fields, got description=%q img=%q", meta.Description, meta.Image)
	}
	if len(meta.Tags) != 0 {
		t.Errorf("expected no tags, got %v", meta.Tags)
	}
	if meta.Draft {
		t.Error("draft should default to false")
	}
}

func TestParseFrontMatterCustomKeys(t *testing.T) {
	source := []byte(`---
layout: post
title: Loom Notes
date: 2023-09-04
series: loom
level: advanced
---
text
`)

	meta, _, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter() error = %v", err)
	}
	if meta.Custom["series"] != "loom" {
		t.Errorf("Custom[series] = %v", meta.Custom["series"])
	}
	if meta.Custom["level"] != "advanced" {
		t.Errorf("Custom[level] = %v", meta.Custom["level"])
	}
	if meta.Raw["title"] != "Loom Notes" {
		t.Errorf("Raw[title] = %v", meta.Raw["title"])
	}
	if meta.Raw["series"] != "loom" {
		t.Errorf("Raw[series] = %v", meta.Raw["series"])
	}
}

func TestBuildDocumentCarriesMetadata(t *testing.T) {
	source := []byte(`---
layout: post
title: Loom Notes
date: 2023-09-04
---
text
`)
	modified := time.Date(2023, 9, 5, 10, 0, 0, 0, time.UTC)

	doc, err := BuildDocument("posts/loom-notes.md", source, modified)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if doc.FilePath != "posts/loom-notes.md" {
		t.Errorf("FilePath = %q", doc.FilePath)
	}
	if !doc.LastModified.Equal(modified) {
		t.Errorf("LastModified = %v", doc.LastModified)
	}
	if len(doc.BodyHTML) != 0 {
		t.Error("BodyHTML should be empty until rendered")
	}
}
