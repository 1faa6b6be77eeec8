package posts

import (
	"context"
	"strings"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	DefaultListTitle   = "Untitled Blog"
	DefaultListExcerpt = "No description available."
)

// Defaults are applied when a post's front matter lacks a listing field.
type Defaults struct {
	Title   string
	Excerpt string
}

// DefaultDefaults returns the listing fallbacks used by the blog index.
func DefaultDefaults() Defaults {
	return Defaults{
		Title:   DefaultListTitle,
		Excerpt: DefaultListExcerpt,
	}
}

func (d Defaults) withFallbacks() Defaults {
	if strings.TrimSpace(d.Title) == "" {
		d.Title = DefaultListTitle
	}
	if strings.TrimSpace(d.Excerpt) == "" {
		d.Excerpt = DefaultListExcerpt
	}
	return d
}

// Summary is the listing card for a single post.
type Summary struct {
	ID      string `json:"slug"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Image   string `json:"image,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Summarize maps a parsed post to its listing card. The excerpt falls back to
// the `description` key before the default.
func Summarize(post Post, defaults Defaults) Summary {
	defaults = defaults.withFallbacks()
	excerpt := post.Metadata.Get("excerpt", "")
	if excerpt == "" {
		excerpt = post.Metadata.Get("description", defaults.Excerpt)
	}
	return Summary{
		ID:      post.ID,
		Title:   post.Metadata.Get("title", defaults.Title),
		Excerpt: excerpt,
		Image:   post.Metadata.Get("image", ""),
		Date:    post.Metadata.Get("date", ""),
	}
}

// Catalog builds listing summaries for every entry of a source.
type Catalog struct {
	resolver *Resolver
	defaults Defaults
	logger   interfaces.Logger
}

// NewCatalog constructs a catalog that resolves entries with resolver.
func NewCatalog(resolver *Resolver, defaults Defaults, logger interfaces.Logger) *Catalog {
	if resolver == nil {
		resolver = NewResolver()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Catalog{
		resolver: resolver,
		defaults: defaults.withFallbacks(),
		logger:   logger,
	}
}

// Summaries resolves each entry in order and returns its summary. Entries that
// fail to load are logged and skipped; only context cancellation is returned
// as an error.
func (c *Catalog) Summaries(ctx context.Context, entries []SourceEntry) ([]Summary, error) {
	summaries := make([]Summary, 0, len(entries))
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if indexOfEntry(entries, entry.ID) != i {
			continue
		}
		result := c.resolver.Resolve(ctx, entries, entry.ID)
		if !result.IsFound() {
			c.logger.Warn("posts.catalog.entry_skipped",
				"slug", entry.ID,
				"status", result.Status.String(),
				"reason", result.Reason,
			)
			continue
		}
		summaries = append(summaries, Summarize(*result.Post, c.defaults))
	}
	return summaries, nil
}

func indexOfEntry(entries []SourceEntry, id string) int {
	for i, entry := range entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}
