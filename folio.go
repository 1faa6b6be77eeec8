package folio

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	postscmd "github.com/goliatone/go-folio/internal/commands/posts"
	"github.com/goliatone/go-folio/internal/di"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/posts"
	"github.com/goliatone/go-folio/internal/site"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// PostsService exports the post resolution service.
type PostsService = *posts.Service

// Result exports the outcome of resolving a post.
type Result = posts.Result

// Summary exports a blog index card.
type Summary = posts.Summary

// Profile exports the portfolio profile.
type Profile = site.Profile

// CommandHandlers exports the posts command handlers.
type CommandHandlers = postscmd.HandlerSet

// Module is the top level site runtime.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg with optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Posts returns the post resolution service.
func (m *Module) Posts() PostsService {
	return m.container.PostsService()
}

// Profile returns the portfolio profile.
func (m *Module) Profile() Profile {
	return m.container.Profile()
}

// Router returns the gin engine serving the site.
func (m *Module) Router() *gin.Engine {
	return m.container.Router()
}

// Logger returns the logger for module.
func (m *Module) Logger(module string) interfaces.Logger {
	return m.container.Logger(module)
}

// Commands builds the posts command handlers. The database store behind the
// import handler is only opened when withStore is set.
func (m *Module) Commands(ctx context.Context, withStore bool, opts ...postscmd.Option) (*CommandHandlers, error) {
	return m.container.PostsCommands(ctx, withStore, opts...)
}

// Serve runs the HTTP server on Server.Addr until ctx is done, then shuts
// it down gracefully.
func (m *Module) Serve(ctx context.Context) error {
	logger := m.container.Logger(logging.HTTPModule)
	server := &http.Server{
		Addr:              m.container.Config.Server.Addr,
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http.server.listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("http.server.shutdown")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	return m.container.Close()
}
