// Package lint implements the content integrity checks for authored posts:
// required frontmatter keys, valid publication dates, well-formed links, and
// the stable ordering contract of the post index.
package lint

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

// Severity grades how a reported issue affects the site build.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifiers for reported issues.
const (
	RuleSchema        = "frontmatter/schema"
	RuleTitle         = "frontmatter/title"
	RuleDate          = "frontmatter/date"
	RuleLink          = "content/link"
	RuleDuplicateSlug = "content/duplicate-slug"
	RuleDuplicateDate = "content/duplicate-date"
	RuleOrdering      = "index/ordering"
)

// Issue describes a single content problem tied to a source document or to the
// index as a whole.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Slug     string   `json:"slug,omitempty"`
	Location string   `json:"location,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	target := i.Path
	if target == "" {
		target = i.Slug
	}
	if target == "" {
		return fmt.Sprintf("%s [%s] %s", i.Severity, i.Rule, i.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", i.Severity, i.Rule, target, i.Message)
}

// Report aggregates the issues found by a lint run.
type Report struct {
	Issues []Issue `json:"issues"`
}

// HasErrors reports whether any issue has error severity.
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the subset of issues with error severity.
func (r *Report) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Warnings returns the subset of issues with warning severity.
func (r *Report) Warnings() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			out = append(out, issue)
		}
	}
	return out
}

func (r *Report) add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}

// Config carries linter dependencies.
type Config struct {
	Logger interfaces.Logger
}

// Linter runs the integrity checks over documents and the post index.
type Linter struct {
	logger interfaces.Logger
	engine goldmark.Markdown
}

// New constructs a Linter. The goldmark engine is shared across documents, it
// only parses to an AST and never renders.
func New(cfg Config) *Linter {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Linter{
		logger: logger,
		engine: goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Linkify)),
	}
}

// CheckDocument runs the per-document checks: frontmatter schema, required
// title and date, and link well-formedness.
func (l *Linter) CheckDocument(doc *interfaces.Document) []Issue {
	if doc == nil {
		return nil
	}

	var issues []Issue

	if strings.TrimSpace(doc.FrontMatter.Title) == "" {
		issues = append(issues, Issue{
			Rule:     RuleTitle,
			Severity: SeverityError,
			Path:     doc.FilePath,
			Message:  "title is required",
		})
	}
	if doc.FrontMatter.Date.IsZero() {
		issues = append(issues, Issue{
			Rule:     RuleDate,
			Severity: SeverityError,
			Path:     doc.FilePath,
			Message:  "date is required and must be a valid date",
		})
	}

	if err := ValidateFrontMatter(doc.FrontMatter.Raw); err != nil {
		for _, schemaIssue := range SchemaIssues(err) {
			issues = append(issues, Issue{
				Rule:     RuleSchema,
				Severity: SeverityError,
				Path:     doc.FilePath,
				Location: schemaIssue.Location,
				Message:  schemaIssue.Message,
			})
		}
	}

	issues = append(issues, l.checkLinks(doc)...)
	return issues
}

// CheckDocuments runs per-document checks over a set of documents and adds
// cross-document checks: duplicate slugs and shared publication dates.
func (l *Linter) CheckDocuments(docs []*interfaces.Document) *Report {
	report := &Report{}
	seenSlugs := map[string]string{}
	seenDates := map[string]string{}

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		report.add(l.CheckDocument(doc)...)

		if date := doc.FrontMatter.Date; !date.IsZero() {
			key := date.UTC().Format(time.RFC3339)
			if previous, ok := seenDates[key]; ok {
				report.add(Issue{
					Rule:     RuleDuplicateDate,
					Severity: SeverityWarning,
					Path:     doc.FilePath,
					Message:  fmt.Sprintf("publication date %s shared with %s; listing falls back to slug order", date.Format("2006-01-02"), previous),
				})
			} else {
				seenDates[key] = doc.FilePath
			}
		}

		slug, err := markdown.ResolveSlug(doc)
		if err != nil || slug == "" {
			continue
		}
		if previous, ok := seenSlugs[slug]; ok {
			report.add(Issue{
				Rule:     RuleDuplicateSlug,
				Severity: SeverityError,
				Path:     doc.FilePath,
				Slug:     slug,
				Message:  fmt.Sprintf("slug already used by %s", previous),
			})
			continue
		}
		seenSlugs[slug] = doc.FilePath
	}

	l.logReport(report, len(docs))
	return report
}

// CheckIndex verifies the listing contract of the post index: publication date
// descending with slug ascending as the tie break.
func (l *Linter) CheckIndex(ctx context.Context, service blogposts.Service) (*Report, error) {
	records, err := service.List(ctx, blogposts.WithDrafts())
	if err != nil {
		return nil, fmt.Errorf("lint: list posts: %w", err)
	}

	report := &Report{}
	report.add(VerifyOrdering(records)...)
	l.logReport(report, len(records))
	return report, nil
}

// VerifyOrdering checks that posts are sorted by publication date descending,
// with ascending slug breaking ties deterministically.
func VerifyOrdering(records []*blogposts.Post) []Issue {
	var issues []Issue
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev == nil || cur == nil {
			continue
		}
		if prev.PublishedAt.Before(cur.PublishedAt) {
			issues = append(issues, Issue{
				Rule:     RuleOrdering,
				Severity: SeverityError,
				Slug:     cur.Slug,
				Message:  fmt.Sprintf("post dated %s listed after %s", cur.PublishedAt.Format("2006-01-02"), prev.PublishedAt.Format("2006-01-02")),
			})
			continue
		}
		if prev.PublishedAt.Equal(cur.PublishedAt) && prev.Slug > cur.Slug {
			issues = append(issues, Issue{
				Rule:     RuleOrdering,
				Severity: SeverityError,
				Slug:     cur.Slug,
				Message:  fmt.Sprintf("slug %q should precede %q for posts sharing a date", cur.Slug, prev.Slug),
			})
		}
	}
	return issues
}

// checkLinks walks the Markdown AST and flags malformed link and image
// destinations.
func (l *Linter) checkLinks(doc *interfaces.Document) []Issue {
	if len(doc.Body) == 0 {
		return nil
	}

	root := l.engine.Parser().Parse(text.NewReader(doc.Body))

	var issues []Issue
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var destination string
		var kind string
		switch node := n.(type) {
		case *ast.Link:
			destination = string(node.Destination)
			kind = "link"
		case *ast.Image:
			destination = string(node.Destination)
			kind = "image"
		default:
			return ast.WalkContinue, nil
		}

		if message := checkDestination(destination); message != "" {
			issues = append(issues, Issue{
				Rule:     RuleLink,
				Severity: SeverityError,
				Path:     doc.FilePath,
				Message:  fmt.Sprintf("%s %q: %s", kind, destination, message),
			})
		}
		return ast.WalkContinue, nil
	})

	return issues
}

func checkDestination(destination string) string {
	if strings.TrimSpace(destination) == "" {
		return "empty destination"
	}
	if strings.ContainsAny(destination, " \t\n") {
		return "destination contains whitespace"
	}
	parsed, err := url.Parse(destination)
	if err != nil {
		return fmt.Sprintf("malformed URL: %v", err)
	}
	if parsed.Scheme != "" && parsed.Scheme != "http" && parsed.Scheme != "https" && parsed.Scheme != "mailto" {
		return fmt.Sprintf("unsupported scheme %q", parsed.Scheme)
	}
	return ""
}

func (l *Linter) logReport(report *Report, total int) {
	if report == nil {
		return
	}
	l.logger.Debug("lint.report",
		"checked", total,
		"errors", len(report.Errors()),
		"warnings", len(report.Warnings()),
	)
}
