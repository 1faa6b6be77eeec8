package postscmd

import (
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	checkPostsMessageType      = "folio.posts.check"
	importDirectoryMessageType = "folio.posts.import_directory"
)

// CheckPostsCommand resolves every post of the configured source and
// reports the ones that fail to load.
type CheckPostsCommand struct {
	// Strict also flags posts whose front matter has no title.
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (CheckPostsCommand) Type() string { return checkPostsMessageType }

// Validate implements command validation. The command carries no required
// input.
func (CheckPostsCommand) Validate() error { return nil }

// ImportDirectoryCommand copies the markdown files under Directory into the
// database source.
type ImportDirectoryCommand struct {
	Directory string `json:"directory"`
	// Pattern filters file names, "*.md" when empty.
	Pattern string `json:"pattern,omitempty"`
	// DryRun reports what would be written without touching the database.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures a directory is given and the pattern is a valid glob.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("folio.posts.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern := strings.TrimSpace(value.(string))
			if pattern == "" {
				return nil
			}
			if _, err := path.Match(pattern, ""); err != nil {
				return validation.NewError("folio.posts.import_directory.pattern_invalid", "pattern is not a valid glob")
			}
			return nil
		})),
	)
}
