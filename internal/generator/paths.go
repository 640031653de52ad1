package generator

import (
	"path"
	"strings"
)

func postRoute(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return "/"
	}
	return "/posts/" + slug + "/"
}

func tagRoute(tag string) string {
	tag = strings.ToLower(strings.Trim(strings.TrimSpace(tag), "/"))
	if tag == "" {
		return "/tags/"
	}
	return "/tags/" + slugifyTag(tag) + "/"
}

// routeOutputPath converts a site route into the relative file path of the
// generated artifact: "/" becomes index.html, "/posts/loom/" becomes
// posts/loom/index.html.
func routeOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), " \t\r\n/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

// slugifyTag folds a display tag into its URL segment. Tags are free-form in
// frontmatter ("Core Java"), routes need a stable lowercase form.
func slugifyTag(tag string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(tag)))
	return strings.Join(fields, "-")
}

func joinOutputPath(baseDir, relative string) string {
	baseDir = strings.Trim(strings.TrimSpace(baseDir), "/")
	relative = strings.Trim(strings.TrimSpace(relative), "/")
	if baseDir == "" {
		return relative
	}
	if relative == "" {
		return baseDir
	}
	return path.Join(baseDir, relative)
}
