package posts

import "context"

// ContentLoader produces the raw markdown text for a single entry. Loaders may
// return resident content or fetch it from storage when invoked.
type ContentLoader func(ctx context.Context) (string, error)

// SourceEntry pairs a post identifier with the loader that yields its content.
// Identifiers are expected to already have any file extension stripped.
type SourceEntry struct {
	ID   string
	Load ContentLoader
}

// NewEntry builds a SourceEntry from an identifier and loader.
func NewEntry(id string, load ContentLoader) SourceEntry {
	return SourceEntry{ID: id, Load: load}
}

// StaticEntry returns an entry whose loader always yields the given text.
func StaticEntry(id, text string) SourceEntry {
	return SourceEntry{
		ID: id,
		Load: func(context.Context) (string, error) {
			return text, nil
		},
	}
}

// findEntry returns the first entry whose identifier equals id exactly.
func findEntry(entries []SourceEntry, id string) (SourceEntry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return SourceEntry{}, false
}
