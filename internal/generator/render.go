package generator

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	blogposts "github.com/goliatone/go-blog/posts"
)

//go:embed templates/*.html
var templateFS embed.FS

// SiteMetadata carries the site-wide values templates and feeds consume.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
}

// TagView is a rendered tag reference with its listing route.
type TagView struct {
	Name  string
	Route string
}

// PostView is the template-facing projection of a post record.
type PostView struct {
	Slug        string
	Title       string
	Description string
	Image       string
	Route       string
	Tags        []TagView
	PublishedAt time.Time
	Body        template.HTML
}

type postPageData struct {
	Site SiteMetadata
	Post PostView
}

type indexPageData struct {
	Site  SiteMetadata
	Posts []PostView
}

type tagPageData struct {
	Site  SiteMetadata
	Tag   string
	Posts []PostView
}

type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	parsed, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("generator: parse templates: %w", err)
	}
	return &templateRenderer{templates: parsed}, nil
}

// renderPost renders a post page using the template named after the post's
// layout, falling back to the default post template when no template with
// that name exists.
func (r *templateRenderer) renderPost(site SiteMetadata, post *blogposts.Post) (string, error) {
	name := layoutTemplate(r.templates, post.Layout)
	return r.execute(name, postPageData{
		Site: site,
		Post: newPostView(post),
	})
}

func (r *templateRenderer) renderIndex(site SiteMetadata, records []*blogposts.Post) (string, error) {
	return r.execute("index.html", indexPageData{
		Site:  site,
		Posts: newPostViews(records),
	})
}

func (r *templateRenderer) renderTag(site SiteMetadata, tag string, records []*blogposts.Post) (string, error) {
	return r.execute("tag.html", tagPageData{
		Site:  site,
		Tag:   tag,
		Posts: newPostViews(records),
	})
}

func (r *templateRenderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("generator: render %s: %w", name, err)
	}
	return buf.String(), nil
}

func layoutTemplate(templates *template.Template, layout string) string {
	layout = strings.TrimSpace(strings.ToLower(layout))
	if layout == "" {
		return "post.html"
	}
	name := layout + ".html"
	if templates.Lookup(name) != nil {
		return name
	}
	return "post.html"
}

func newPostView(post *blogposts.Post) PostView {
	view := PostView{
		Slug:        post.Slug,
		Title:       post.Title,
		Route:       postRoute(post.Slug),
		PublishedAt: post.PublishedAt,
		Body:        template.HTML(post.BodyHTML),
	}
	if post.Description != nil {
		view.Description = strings.TrimSpace(*post.Description)
	}
	if post.Image != nil {
		view.Image = strings.TrimSpace(*post.Image)
	}
	for _, tag := range post.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		view.Tags = append(view.Tags, TagView{
			Name:  tag,
			Route: tagRoute(tag),
		})
	}
	return view
}

func newPostViews(records []*blogposts.Post) []PostView {
	views := make([]PostView, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		views = append(views, newPostView(record))
	}
	return views
}
