package di

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"

	postscmd "github.com/goliatone/go-folio/internal/commands/posts"
	folhttp "github.com/goliatone/go-folio/internal/http"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/logging/console"
	"github.com/goliatone/go-folio/internal/logging/gologger"
	"github.com/goliatone/go-folio/internal/posts"
	"github.com/goliatone/go-folio/internal/posts/bunsource"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/internal/site"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Container wires the site's collaborators from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logOutput      io.Writer

	dbMu     sync.Mutex
	bunDB    *bun.DB
	ownsDB   bool
	dbSource *bunsource.Source

	source      posts.Source
	deferSource bool
	renderer    posts.Renderer
	postsSvc    *posts.Service

	profile    *site.Profile
	routerOnce sync.Once
	router     *gin.Engine
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogOutput redirects the console provider.
func WithLogOutput(w io.Writer) Option {
	return func(c *Container) {
		c.logOutput = w
	}
}

// WithBunDB supplies the database used by the database source and the
// import command. The caller keeps ownership.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithPostsSource bypasses the configured fs or database source.
func WithPostsSource(source posts.Source) Option {
	return func(c *Container) {
		c.source = source
	}
}

// WithDeferredPostsSource postpones opening the configured posts source
// until posts are first listed. Commands that never read the configured
// source, such as imports, use it to start without a content directory or
// database.
func WithDeferredPostsSource() Option {
	return func(c *Container) {
		c.deferSource = true
	}
}

// WithRenderer overrides the goldmark renderer.
func WithRenderer(renderer posts.Renderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithProfile overrides the profile loaded from Site.ProfilePath.
func WithProfile(profile site.Profile) Option {
	return func(c *Container) {
		c.profile = &profile
	}
}

// NewContainer validates cfg and builds every service it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	for _, configure := range []func() error{c.configureSource, c.configurePosts, c.configureProfile} {
		if err := configure(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.Logger(logging.RootModule).Debug("container.configured",
		"posts_source", c.sourceName(),
		"front_matter", cfg.Posts.FrontMatter,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.LevelInfo
		if strings.TrimSpace(logCfg.Level) != "" {
			parsed, err := console.ParseLevel(logCfg.Level)
			if err != nil {
				return err
			}
			level = parsed
		}
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logOutput,
			MinLevel: level,
		})
	}
	return nil
}

func (c *Container) configureSource() error {
	if c.source != nil {
		return nil
	}
	if c.deferSource {
		c.source = &deferredSource{open: c.openSource}
		return nil
	}
	source, err := c.openSource(context.Background())
	if err != nil {
		return err
	}
	c.source = source
	return nil
}

func (c *Container) openSource(ctx context.Context) (posts.Source, error) {
	postsCfg := c.Config.Posts
	if strings.EqualFold(strings.TrimSpace(postsCfg.Source), runtimeconfig.SourceDatabase) {
		return c.DatabaseSource(ctx)
	}
	return posts.NewDirSource(postsCfg.ContentDir, posts.FSConfig{
		Pattern:   postsCfg.Pattern,
		Recursive: postsCfg.Recursive,
	})
}

// deferredSource opens the configured source on the first successful
// Entries call and reuses it afterwards.
type deferredSource struct {
	mu     sync.Mutex
	open   func(context.Context) (posts.Source, error)
	source posts.Source
}

func (d *deferredSource) Entries(ctx context.Context) ([]posts.SourceEntry, error) {
	d.mu.Lock()
	if d.source == nil {
		source, err := d.open(ctx)
		if err != nil {
			d.mu.Unlock()
			return nil, err
		}
		d.source = source
	}
	source := d.source
	d.mu.Unlock()
	return source.Entries(ctx)
}

func (c *Container) configurePosts() error {
	parser, err := posts.ParserFor(c.Config.Posts.FrontMatter)
	if err != nil {
		return err
	}

	if c.renderer == nil {
		rendererCfg := c.Config.Renderer
		c.renderer = posts.NewGoldmarkRenderer(posts.RenderOptions{
			Extensions: rendererCfg.Extensions,
			HardWraps:  rendererCfg.HardWraps,
			SafeMode:   rendererCfg.SafeMode,
		})
	}

	c.postsSvc = posts.NewService(c.source,
		posts.WithParser(parser),
		posts.WithRenderer(c.renderer),
		posts.WithLogger(logging.PostsLogger(c.loggerProvider)),
		posts.WithDefaults(posts.Defaults{
			Title:   c.Config.Posts.DefaultTitle,
			Excerpt: c.Config.Posts.DefaultExcerpt,
		}),
	)
	return nil
}

func (c *Container) configureProfile() error {
	if c.profile != nil {
		return nil
	}
	profile, err := site.LoadFile(c.Config.Site.ProfilePath)
	if err != nil {
		return err
	}
	c.profile = &profile
	return nil
}

func (c *Container) sourceName() string {
	switch c.source.(type) {
	case *posts.FSSource:
		return runtimeconfig.SourceFS
	case *bunsource.Source:
		return runtimeconfig.SourceDatabase
	case *deferredSource:
		return "deferred"
	default:
		return "custom"
	}
}

// DatabaseSource opens the configured database on first use and makes sure
// the posts table exists.
func (c *Container) DatabaseSource(ctx context.Context) (*bunsource.Source, error) {
	c.dbMu.Lock()
	defer c.dbMu.Unlock()

	if c.dbSource != nil {
		return c.dbSource, nil
	}
	if c.bunDB == nil {
		db, err := bunsource.Open(c.Config.Database.Driver, c.Config.Database.DSN)
		if err != nil {
			return nil, err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	source := bunsource.New(c.bunDB)
	if err := source.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	c.dbSource = source
	return source, nil
}

// LoggerProvider exposes the configured provider. It is nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the logger for a module name.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// PostsService returns the configured posts service.
func (c *Container) PostsService() *posts.Service {
	return c.postsSvc
}

// Profile returns the portfolio profile.
func (c *Container) Profile() site.Profile {
	return *c.profile
}

// Router builds the gin engine once.
func (c *Container) Router() *gin.Engine {
	c.routerOnce.Do(func() {
		c.router = folhttp.NewRouter(folhttp.Deps{
			Posts:   c.postsSvc,
			Profile: *c.profile,
			Logger:  logging.HTTPLogger(c.loggerProvider),
		})
	})
	return c.router
}

// PostsCommands builds the check and import handlers. The database source is
// opened and handed to the import handler only when withStore is set, so
// dry-run imports never touch the database.
func (c *Container) PostsCommands(ctx context.Context, withStore bool, opts ...postscmd.Option) (*postscmd.HandlerSet, error) {
	if withStore {
		store, err := c.DatabaseSource(ctx)
		if err != nil {
			return nil, err
		}
		opts = append([]postscmd.Option{postscmd.WithStore(store)}, opts...)
	}
	return postscmd.RegisterPostsCommands(nil, c.postsSvc, c.loggerProvider, opts...)
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	c.dbMu.Lock()
	defer c.dbMu.Unlock()

	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.dbSource = nil
	return err
}
