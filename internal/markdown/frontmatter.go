package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	frontmatter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  frontmatter,
		Body:         body,
		LastModified: modified,
	}, nil
}

// frontMatterEnvelope mirrors the post contract: layout, title and date are
// the required keys, img carries the illustrative asset reference, and any
// key the envelope does not name lands in Custom.
type frontMatterEnvelope struct {
	Layout      string         `yaml:"layout"`
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Date        time.Time      `yaml:"date"`
	Description string         `yaml:"description"`
	Image       string         `yaml:"img"`
	Tags        []string       `yaml:"tags"`
	Draft       bool           `yaml:"draft"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Layout != "" {
		raw["layout"] = env.Layout
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if env.Image != "" {
		raw["img"] = env.Image
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	raw["draft"] = env.Draft

	return interfaces.FrontMatter{
		Layout:      env.Layout,
		Title:       env.Title,
		Slug:        env.Slug,
		Date:        env.Date,
		Description: env.Description,
		Image:       env.Image,
		Tags:        append([]string(nil), env.Tags...),
		Draft:       env.Draft,
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
