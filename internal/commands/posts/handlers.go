package postscmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/posts"
	"github.com/goliatone/go-folio/internal/posts/bunsource"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	checkOperation  = "posts.check"
	importOperation = "posts.import_directory"
)

var (
	// ErrCheckFailed is returned when at least one post has a problem.
	ErrCheckFailed = errors.New("posts check: problems found")
	// ErrStoreRequired is returned when an import that writes has no Store.
	ErrStoreRequired = errors.New("posts import: database store is not configured")
)

var (
	_ command.Commander[CheckPostsCommand]      = (*CheckPostsHandler)(nil)
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
)

// Checker is the part of posts.Service the check command needs.
type Checker interface {
	Entries(ctx context.Context) ([]posts.SourceEntry, error)
	Resolver() *posts.Resolver
}

// Store persists imported posts.
type Store interface {
	Upsert(ctx context.Context, slug, body string, position int) (*bunsource.Record, bool, error)
}

// Problem names a post and what is wrong with it.
type Problem struct {
	Slug   string `json:"slug"`
	Reason string `json:"reason"`
}

// CheckReport summarises a check run.
type CheckReport struct {
	Checked       int       `json:"checked"`
	LoadErrors    []Problem `json:"load_errors,omitempty"`
	MissingTitles []string  `json:"missing_titles,omitempty"`
}

// Problems counts every reported issue.
func (r CheckReport) Problems() int {
	return len(r.LoadErrors) + len(r.MissingTitles)
}

// CheckPostsHandler resolves every entry of a Checker.
type CheckPostsHandler struct {
	inner *commands.Handler[CheckPostsCommand]
}

// NewCheckPostsHandler builds the check handler. report, when set, receives
// the report of each run before the outcome is returned.
func NewCheckPostsHandler(checker Checker, logger interfaces.Logger, report func(CheckReport), opts ...commands.HandlerOption[CheckPostsCommand]) *CheckPostsHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CheckPostsCommand) error {
		result, err := checkPosts(ctx, checker, msg)
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"checked":        result.Checked,
			"load_errors":    len(result.LoadErrors),
			"missing_titles": len(result.MissingTitles),
			"strict":         msg.Strict,
		}).Info("posts.command.check.completed")
		if report != nil {
			report(result)
		}
		if result.Problems() > 0 {
			return fmt.Errorf("%w: %d of %d posts", ErrCheckFailed, result.Problems(), result.Checked)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckPostsCommand]{
		commands.WithLogger[CheckPostsCommand](logger),
		commands.WithOperation[CheckPostsCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckPostsCommand) map[string]any {
			return map[string]any{"strict": msg.Strict}
		}),
		commands.WithTelemetry(commands.DurationTelemetry[CheckPostsCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckPostsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CheckPostsCommand].
func (h *CheckPostsHandler) Execute(ctx context.Context, msg CheckPostsCommand) error {
	return h.inner.Execute(ctx, msg)
}

func checkPosts(ctx context.Context, checker Checker, msg CheckPostsCommand) (CheckReport, error) {
	entries, err := checker.Entries(ctx)
	if err != nil {
		return CheckReport{}, err
	}

	resolver := checker.Resolver()
	var report CheckReport
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return CheckReport{}, err
		}
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}
		report.Checked++

		result := resolver.Resolve(ctx, entries, entry.ID)
		switch {
		case result.IsLoadError():
			report.LoadErrors = append(report.LoadErrors, Problem{Slug: entry.ID, Reason: result.Reason})
		case result.IsFound() && msg.Strict:
			if strings.TrimSpace(result.Post.Metadata.Get("title", "")) == "" {
				report.MissingTitles = append(report.MissingTitles, entry.ID)
			}
		}
	}
	return report, nil
}

// ImportReport summarises an import run.
type ImportReport struct {
	Directory string   `json:"directory"`
	Created   []string `json:"created,omitempty"`
	Updated   []string `json:"updated,omitempty"`
	DryRun    bool     `json:"dry_run,omitempty"`
}

// ImportDirectoryHandler copies markdown files from disk into a Store.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler builds the import handler. report, when set,
// receives the report of each successful run. A nil store only supports dry
// runs.
func NewImportDirectoryHandler(store Store, logger interfaces.Logger, report func(ImportReport), opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		result, err := importDirectory(ctx, store, msg)
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"directory":     result.Directory,
			"created_count": len(result.Created),
			"updated_count": len(result.Updated),
			"dry_run":       result.DryRun,
		}).Info("posts.command.import_directory.completed")
		if report != nil {
			report(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](logger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DurationTelemetry[ImportDirectoryCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

func importDirectory(ctx context.Context, store Store, msg ImportDirectoryCommand) (ImportReport, error) {
	if store == nil && !msg.DryRun {
		return ImportReport{}, ErrStoreRequired
	}
	source, err := posts.NewDirSource(msg.Directory, posts.FSConfig{Pattern: msg.Pattern})
	if err != nil {
		return ImportReport{}, err
	}
	entries, err := source.Entries(ctx)
	if err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{Directory: msg.Directory, DryRun: msg.DryRun}
	for position, entry := range entries {
		body, err := entry.Load(ctx)
		if err != nil {
			return report, fmt.Errorf("read %s: %w", entry.ID, err)
		}
		if msg.DryRun {
			report.Created = append(report.Created, entry.ID)
			continue
		}
		_, created, err := store.Upsert(ctx, entry.ID, body, position)
		if err != nil {
			return report, err
		}
		if created {
			report.Created = append(report.Created, entry.ID)
		} else {
			report.Updated = append(report.Updated, entry.ID)
		}
	}
	return report, nil
}
