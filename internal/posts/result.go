package posts

import "fmt"

// Status tags the outcome of a resolution.
type Status uint8

const (
	StatusFound Status = iota + 1
	StatusNotFound
	StatusLoadError
)

// String renders the status label used in logs and JSON payloads.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusLoadError:
		return "load_error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status label.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Post is a parsed markdown document.
type Post struct {
	ID       string      `json:"id"`
	Metadata FrontMatter `json:"metadata"`
	Body     string      `json:"body"`
}

// Title returns the `title` metadata value or fallback.
func (p Post) Title(fallback string) string {
	return p.Metadata.Get("title", fallback)
}

// Result is the outcome of resolving a slug: Found carries the Post, LoadError
// carries a human-readable Reason, NotFound carries neither.
type Result struct {
	Status Status `json:"status"`
	Post   *Post  `json:"post,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Found wraps a parsed post. The metadata is copied so later changes to the
// caller's map do not leak into the result.
func Found(post Post) Result {
	post.Metadata = post.Metadata.Clone()
	return Result{Status: StatusFound, Post: &post}
}

// NotFound reports that no entry matched the requested identifier.
func NotFound() Result {
	return Result{Status: StatusNotFound}
}

// LoadFailed reports that the matching entry could not be loaded.
func LoadFailed(reason string) Result {
	return Result{Status: StatusLoadError, Reason: reason}
}

func (r Result) IsFound() bool     { return r.Status == StatusFound && r.Post != nil }
func (r Result) IsNotFound() bool  { return r.Status == StatusNotFound }
func (r Result) IsLoadError() bool { return r.Status == StatusLoadError }

func (r Result) String() string {
	switch r.Status {
	case StatusFound:
		if r.Post != nil {
			return fmt.Sprintf("found(%s)", r.Post.ID)
		}
	case StatusLoadError:
		return fmt.Sprintf("load_error(%s)", r.Reason)
	}
	return r.Status.String()
}
