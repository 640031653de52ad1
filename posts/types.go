package posts

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is the canonical record of the post index. Each row mirrors one
// authored Markdown document: the front-matter keys the site contract
// requires plus the rendered body and bookkeeping columns used by sync runs.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID          uuid.UUID      `bun:",pk,type:uuid"                    json:"id"`
	Slug        string         `bun:"slug,notnull,unique"              json:"slug"`
	Layout      string         `bun:"layout,notnull,default:'post'"    json:"layout"`
	Title       string         `bun:"title,notnull"                    json:"title"`
	Description *string        `bun:"description"                      json:"description,omitempty"`
	Image       *string        `bun:"image"                            json:"image,omitempty"`
	Tags        []string       `bun:"tags,type:jsonb"                  json:"tags,omitempty"`
	PublishedAt time.Time      `bun:"published_at,notnull"             json:"published_at"`
	Draft       bool           `bun:"draft,notnull,default:false"      json:"draft"`
	Body        string         `bun:"body,notnull"                     json:"body"`
	BodyHTML    string         `bun:"body_html"                        json:"body_html"`
	Checksum    string         `bun:"checksum"                         json:"checksum"`
	SourcePath  string         `bun:"source_path"                      json:"source_path"`
	Metadata    map[string]any `bun:"metadata,type:jsonb"              json:"metadata,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// HasTag reports whether the post carries the supplied tag. Matching is
// case-insensitive so authoring variations ("Java" vs "java") group together.
func (p *Post) HasTag(tag string) bool {
	if p == nil {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(tag))
	if needle == "" {
		return false
	}
	for _, candidate := range p.Tags {
		if strings.ToLower(strings.TrimSpace(candidate)) == needle {
			return true
		}
	}
	return false
}

// TagCount pairs a tag with the number of published posts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CreatePostRequest captures the information required to index a post.
type CreatePostRequest struct {
	Slug        string
	Layout      string
	Title       string
	Description *string
	Image       *string
	Tags        []string
	PublishedAt time.Time
	Draft       bool
	Body        string
	BodyHTML    string
	Checksum    string
	SourcePath  string
	Metadata    map[string]any
}

// UpdatePostRequest captures mutable fields for an existing post. Nil pointer
// fields leave the stored value untouched.
type UpdatePostRequest struct {
	ID          uuid.UUID
	Layout      *string
	Title       *string
	Description *string
	Image       *string
	Tags        []string
	PublishedAt *time.Time
	Draft       *bool
	Body        *string
	BodyHTML    *string
	Checksum    *string
	SourcePath  *string
	Metadata    map[string]any
}

// DeletePostRequest captures the information required to remove a post from
// the index.
type DeletePostRequest struct {
	ID uuid.UUID
}

// ListOption configures post list behavior. It is an alias to string to keep
// the List(ctx, opts ...ListOption) call pattern cheap to extend.
type ListOption = string

const (
	listWithDrafts   ListOption = "posts:list:with_drafts"
	listTagPrefix    ListOption = "posts:list:tag:"
	listLimitPrefix  ListOption = "posts:list:limit:"
	listOffsetPrefix ListOption = "posts:list:offset:"
)

// WithDrafts includes draft posts when listing. Listings exclude drafts by
// default so the published ordering contract stays deterministic.
func WithDrafts() ListOption {
	return listWithDrafts
}

// WithTag restricts the listing to posts carrying the supplied tag.
func WithTag(tag string) ListOption {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return ""
	}
	return ListOption(string(listTagPrefix) + normalized)
}

// WithLimit caps the number of returned posts. Zero or negative values are
// ignored.
func WithLimit(limit int) ListOption {
	if limit <= 0 {
		return ""
	}
	return ListOption(string(listLimitPrefix) + strconv.Itoa(limit))
}

// WithOffset skips the first offset posts of the ordered listing.
func WithOffset(offset int) ListOption {
	if offset <= 0 {
		return ""
	}
	return ListOption(string(listOffsetPrefix) + strconv.Itoa(offset))
}

// ListQuery is the decoded form of a set of ListOptions.
type ListQuery struct {
	Tag           string
	IncludeDrafts bool
	Limit         int
	Offset        int
}

// DecodeListOptions folds option tokens into a ListQuery. Unknown tokens are
// ignored so future options stay backwards compatible.
func DecodeListOptions(opts ...ListOption) ListQuery {
	query := ListQuery{}
	for _, opt := range opts {
		token := strings.TrimSpace(string(opt))
		switch {
		case token == "":
		case token == string(listWithDrafts):
			query.IncludeDrafts = true
		case strings.HasPrefix(token, string(listTagPrefix)):
			query.Tag = strings.TrimPrefix(token, string(listTagPrefix))
		case strings.HasPrefix(token, string(listLimitPrefix)):
			if n, err := strconv.Atoi(strings.TrimPrefix(token, string(listLimitPrefix))); err == nil {
				query.Limit = n
			}
		case strings.HasPrefix(token, string(listOffsetPrefix)):
			if n, err := strconv.Atoi(strings.TrimPrefix(token, string(listOffsetPrefix))); err == nil {
				query.Offset = n
			}
		}
	}
	return query
}
