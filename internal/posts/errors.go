package posts

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrDuplicateIdentifier is returned by sources that enumerate two entries
	// with the same identifier.
	ErrDuplicateIdentifier = errors.New("posts: duplicate identifier")
	// ErrSourceRequired is returned when a service is built without a source.
	ErrSourceRequired = errors.New("posts: source is required")
	// ErrUnknownParser reports an unsupported front matter parser name.
	ErrUnknownParser = errors.New("posts: unknown front matter parser")
)

const (
	enumerateFailedCode = "POSTS_ENUMERATE_FAILED"
	loadFailedCode      = "POSTS_LOAD_FAILED"
	renderFailedCode    = "POSTS_RENDER_FAILED"
)

func duplicateIdentifierError(id, first, second string) error {
	return fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateIdentifier, id, first, second)
}

func wrapEnumerateError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, "posts enumeration failed").
		WithTextCode(enumerateFailedCode)
}

func wrapLoadError(err error, id string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "post load failed").
		WithTextCode(loadFailedCode).
		WithMetadata(map[string]any{"slug": id})
}

func wrapRenderError(err error, id string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "post render failed").
		WithTextCode(renderFailedCode).
		WithMetadata(map[string]any{"slug": id})
}

// loadReason renders the human-readable reason carried by a LoadError result.
func loadReason(id string, err error) string {
	return fmt.Sprintf("Unable to load post %q: %v", id, err)
}
