package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	folio "github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/di"
)

var moduleBuilder = folio.New

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

func exitCode(err error, errOut io.Writer) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(errOut, "folio: %v\n", err)
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 1
}

type rootOptions struct {
	configEnv  string
	contentDir string
	source     string
	logLevel   string
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Portfolio site and markdown blog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configEnv, "config-env", ".env", "dotenv file applied before FOLIO_* variables are read")
	flags.StringVar(&opts.contentDir, "content-dir", "", "directory holding markdown posts")
	flags.StringVar(&opts.source, "source", "", "posts source: fs or database")
	flags.StringVar(&opts.logLevel, "log-level", "", "minimum log level")

	root.AddCommand(
		newServeCommand(opts),
		newResolveCommand(opts),
		newListCommand(opts),
		newCheckCommand(opts),
		newImportCommand(opts),
		newVersionCommand(),
	)
	return root
}

func (o *rootOptions) config() (folio.Config, error) {
	cfg, err := folio.ConfigFromEnv(o.configEnv)
	if err != nil {
		return folio.Config{}, err
	}
	if dir := strings.TrimSpace(o.contentDir); dir != "" {
		cfg.Posts.ContentDir = dir
	}
	if source := strings.TrimSpace(o.source); source != "" {
		cfg.Posts.Source = source
	}
	if level := strings.TrimSpace(o.logLevel); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// applyGinMode sets the process wide gin mode. Only serve calls it.
func applyGinMode(mode string) {
	gin.SetMode(strings.ToLower(strings.TrimSpace(mode)))
}

// module builds the runtime with logs routed to the command's stderr.
func (o *rootOptions) module(cmd *cobra.Command, extra ...di.Option) (*folio.Module, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	module, err := moduleBuilder(cfg, append([]di.Option{di.WithLogOutput(cmd.ErrOrStderr())}, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return module, nil
}
