package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("frontmatter schema invalid")
	ErrSchemaValidation = errors.New("frontmatter validation failed")
)

// frontMatterSchema is the authoring contract for post metadata. Layout, title
// and date are mandatory; description, img and tags stay optional. Unknown
// keys are allowed so authors can carry custom metadata.
const frontMatterSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "layout": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1},
    "slug": {"type": "string"},
    "date": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "img": {"type": "string"},
    "tags": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "draft": {"type": "boolean"}
  },
  "required": ["layout", "title", "date"],
  "additionalProperties": true
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// SchemaIssue captures a single schema validation failure.
type SchemaIssue struct {
	Location string
	Message  string
}

// FrontMatterValidationError surfaces schema issues with instance locations.
type FrontMatterValidationError struct {
	Issues []SchemaIssue
	Cause  error
}

func (e *FrontMatterValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *FrontMatterValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// ValidateFrontMatter checks the raw frontmatter payload against the post
// contract. Values pass through a JSON round trip first so YAML-native types
// such as timestamps compare as strings.
func ValidateFrontMatter(raw map[string]any) error {
	schema, err := compileFrontMatterSchema()
	if err != nil {
		return err
	}

	payload, err := normalizePayload(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if err := schema.Validate(payload); err != nil {
		return &FrontMatterValidationError{
			Issues: collectSchemaIssues(err),
			Cause:  err,
		}
	}
	return nil
}

// SchemaIssues extracts structured issues from a validation error.
func SchemaIssues(err error) []SchemaIssue {
	if err == nil {
		return nil
	}
	var payloadErr *FrontMatterValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return walkValidationError(validationErr)
	}
	return []SchemaIssue{{Message: err.Error()}}
}

func compileFrontMatterSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("frontmatter.json", strings.NewReader(frontMatterSchema)); err != nil {
			schemaErr = fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("frontmatter.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("%w: %v", ErrSchemaInvalid, schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// normalizePayload round-trips the payload through JSON so the validator only
// sees JSON-native values. time.Time becomes an RFC 3339 string.
func normalizePayload(raw map[string]any) (any, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func collectSchemaIssues(err error) []SchemaIssue {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return walkValidationError(validationErr)
	}
	return []SchemaIssue{{Message: err.Error()}}
}

func walkValidationError(err *jsonschema.ValidationError) []SchemaIssue {
	if err == nil {
		return nil
	}
	issues := []SchemaIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, SchemaIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
