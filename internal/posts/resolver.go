package posts

import (
	"context"
	"fmt"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Resolver maps a requested identifier to its parsed content. It holds no
// per-request state, so one instance can serve concurrent resolutions.
type Resolver struct {
	parser FrontMatterParser
	logger interfaces.Logger
}

// ResolverOption configures a Resolver at construction time.
type ResolverOption func(*Resolver)

// WithResolverParser overrides the front matter parser (LineParser by default).
func WithResolverParser(parser FrontMatterParser) ResolverOption {
	return func(r *Resolver) {
		if parser != nil {
			r.parser = parser
		}
	}
}

// WithResolverLogger injects the logger used to report load failures.
func WithResolverLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		parser: LineParser{},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// Resolve resolves id against entries using the line front matter parser and
// no logging.
func Resolve(ctx context.Context, entries []SourceEntry, id string) Result {
	return defaultResolver.Resolve(ctx, entries, id)
}

// Resolve scans entries for the first identifier equal to id. Without a match
// it returns NotFound and no loader runs. A matching entry is loaded and split
// into metadata and body; a loader failure becomes a LoadError result.
//
// A matching entry without a loader is a programming error and panics.
func (r *Resolver) Resolve(ctx context.Context, entries []SourceEntry, id string) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithFields(r.logger.WithContext(ctx), map[string]any{"slug": id})

	entry, ok := findEntry(entries, id)
	if !ok {
		logger.Debug("posts.resolve.not_found")
		return NotFound()
	}
	if entry.Load == nil {
		panic(fmt.Sprintf("posts: source entry %q has no loader", id))
	}

	if err := ctx.Err(); err != nil {
		logger.Debug("posts.resolve.cancelled", "error", err)
		return LoadFailed(loadReason(id, err))
	}

	raw, err := entry.Load(ctx)
	if err != nil {
		logger.Error("posts.resolve.load_failed", "error", wrapLoadError(err, id))
		return LoadFailed(loadReason(id, err))
	}

	meta, body := r.parser.Parse(raw)
	logger.Debug("posts.resolve.found", "metadata_keys", len(meta))
	return Found(Post{
		ID:       id,
		Metadata: meta,
		Body:     body,
	})
}
