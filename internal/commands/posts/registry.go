package postscmd

import (
	"errors"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterPostsCommands.
type HandlerSet struct {
	Check  *CheckPostsHandler
	Import *ImportDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	store        Store
	checkReport  func(CheckReport)
	importReport func(ImportReport)
	checkOpts    []commands.HandlerOption[CheckPostsCommand]
	importOpts   []commands.HandlerOption[ImportDirectoryCommand]
}

// WithStore sets the Store written by the import handler. Without one the
// import handler only accepts dry runs.
func WithStore(store Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCheckReport receives every check report.
func WithCheckReport(fn func(CheckReport)) Option {
	return func(o *options) {
		o.checkReport = fn
	}
}

// WithImportReport receives every import report.
func WithImportReport(fn func(ImportReport)) Option {
	return func(o *options) {
		o.importReport = fn
	}
}

// WithCheckHandlerOptions forwards options to the check handler.
func WithCheckHandlerOptions(opts ...commands.HandlerOption[CheckPostsCommand]) Option {
	return func(o *options) {
		o.checkOpts = append(o.checkOpts, opts...)
	}
}

// WithImportHandlerOptions forwards options to the import handler.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) Option {
	return func(o *options) {
		o.importOpts = append(o.importOpts, opts...)
	}
}

// RegisterPostsCommands builds the posts handlers and registers them with reg
// when it is non-nil.
func RegisterPostsCommands(reg CommandRegistry, checker Checker, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if checker == nil {
		return nil, errors.New("posts command registration: checker is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "posts")
	set := &HandlerSet{
		Check:  NewCheckPostsHandler(checker, logger, cfg.checkReport, cfg.checkOpts...),
		Import: NewImportDirectoryHandler(cfg.store, logger, cfg.importReport, cfg.importOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Check); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Import); err != nil {
			return nil, err
		}
	}
	return set, nil
}
