package posts

import (
	"context"
	"fmt"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Service composes a Source with the resolver, catalog and renderer used by
// the page shell and CLI.
type Service struct {
	source   Source
	parser   FrontMatterParser
	renderer Renderer
	defaults Defaults
	logger   interfaces.Logger

	resolver *Resolver
	catalog  *Catalog
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithParser selects the front matter parser.
func WithParser(parser FrontMatterParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithRenderer overrides the markdown renderer.
func WithRenderer(renderer Renderer) ServiceOption {
	return func(s *Service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaults sets the listing fallbacks.
func WithDefaults(defaults Defaults) ServiceOption {
	return func(s *Service) {
		s.defaults = defaults
	}
}

// NewService builds a Service over source. A nil source panics with
// ErrSourceRequired.
func NewService(source Source, opts ...ServiceOption) *Service {
	if source == nil {
		panic(ErrSourceRequired)
	}
	s := &Service{
		source:   source,
		parser:   LineParser{},
		defaults: DefaultDefaults(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderer == nil {
		s.renderer = NewGoldmarkRenderer(RenderOptions{})
	}
	s.resolver = NewResolver(WithResolverParser(s.parser), WithResolverLogger(s.logger))
	s.catalog = NewCatalog(s.resolver, s.defaults, s.logger)
	return s
}

// Entries enumerates the underlying source.
func (s *Service) Entries(ctx context.Context) ([]SourceEntry, error) {
	return s.source.Entries(ctx)
}

// Resolver exposes the resolver shared by Get and List.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// Get enumerates the source and resolves slug. An enumeration failure is
// reported as a LoadError.
func (s *Service) Get(ctx context.Context, slug string) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error("posts.get.enumerate_failed",
			"slug", slug,
			"error", wrapEnumerateError(err),
		)
		return LoadFailed(fmt.Sprintf("Unable to list posts: %v", err))
	}
	return s.resolver.Resolve(ctx, entries, slug)
}

// List returns the summaries of every loadable post in enumeration order.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return nil, wrapEnumerateError(err)
	}
	return s.catalog.Summaries(ctx, entries)
}

// Render converts the post body to HTML.
func (s *Service) Render(ctx context.Context, post Post) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	html, err := s.renderer.Render(post.Body)
	if err != nil {
		return nil, wrapRenderError(err, post.ID)
	}
	return []byte(html), nil
}

// Defaults returns the listing fallbacks in effect.
func (s *Service) Defaults() Defaults {
	return s.defaults.withFallbacks()
}
