package lintcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const checkContentMessageType = "blog.lint.check_content"

// CheckContentCommand runs the content integrity checks over a Markdown
// directory and the post index.
type CheckContentCommand struct {
	// Directory selects the filesystem path holding the Markdown sources.
	Directory string `json:"directory"`
	// CheckIndex also verifies the post index ordering contract.
	CheckIndex bool `json:"check_index,omitempty"`
	// FailOnWarnings treats warnings as failures.
	FailOnWarnings bool `json:"fail_on_warnings,omitempty"`
}

// Type implements command.Message.
func (CheckContentCommand) Type() string { return checkContentMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd CheckContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.lint.check_content.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
