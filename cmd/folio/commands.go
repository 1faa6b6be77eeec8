package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	folio "github.com/goliatone/go-folio"
	postscmd "github.com/goliatone/go-folio/internal/commands/posts"
	"github.com/goliatone/go-folio/internal/di"
)

const (
	exitNotFound  = 1
	exitLoadError = 2
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			module, err := moduleBuilder(cfg)
			if err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}
			defer module.Close()
			applyGinMode(cfg.Server.Mode)
			return module.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides FOLIO_ADDR and PORT")
	return cmd
}

func newResolveCommand(opts *rootOptions) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "resolve <slug>",
		Short: "Print the front matter and body of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := opts.module(cmd)
			if err != nil {
				return err
			}
			defer module.Close()

			ctx := cmd.Context()
			result := module.Posts().Get(ctx, args[0])
			switch {
			case result.IsNotFound():
				return &exitError{code: exitNotFound, err: fmt.Errorf("post %q not found", args[0])}
			case result.IsLoadError():
				return &exitError{code: exitLoadError, err: fmt.Errorf("%s", result.Reason)}
			}

			post := *result.Post
			body := post.Body
			if asHTML {
				html, err := module.Posts().Render(ctx, post)
				if err != nil {
					return &exitError{code: exitLoadError, err: err}
				}
				body = string(html)
			}

			out := cmd.OutOrStdout()
			if err := writeJSON(out, post.Metadata); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, body)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the body rendered to HTML")
	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the blog index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.module(cmd)
			if err != nil {
				return err
			}
			defer module.Close()

			summaries, err := module.Posts().List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}
			return writeSummaries(cmd.OutOrStdout(), summaries)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print summaries as JSON")
	return cmd
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve every post and report the ones that fail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := opts.module(cmd)
			if err != nil {
				return err
			}
			defer module.Close()

			out := cmd.OutOrStdout()
			set, err := module.Commands(cmd.Context(), false, postscmd.WithCheckReport(func(report postscmd.CheckReport) {
				writeCheckReport(out, report)
			}))
			if err != nil {
				return err
			}
			return set.Check.Execute(cmd.Context(), postscmd.CheckPostsCommand{Strict: strict})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "also flag posts without a title")
	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	var (
		dryRun  bool
		pattern string
	)
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Copy markdown files into the database source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Imports read from args[0], never from the configured source.
			module, err := opts.module(cmd, di.WithDeferredPostsSource())
			if err != nil {
				return err
			}
			defer module.Close()

			out := cmd.OutOrStdout()
			set, err := module.Commands(cmd.Context(), !dryRun, postscmd.WithImportReport(func(report postscmd.ImportReport) {
				writeImportReport(out, report)
			}))
			if err != nil {
				return err
			}
			return set.Import.Execute(cmd.Context(), postscmd.ImportDirectoryCommand{
				Directory: args[0],
				Pattern:   pattern,
				DryRun:    dryRun,
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().StringVar(&pattern, "pattern", "", "glob for markdown files, *.md by default")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), folio.Version)
		},
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeSummaries(w io.Writer, summaries []folio.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Title, s.Excerpt)
	}
	return tw.Flush()
}

func writeCheckReport(w io.Writer, report postscmd.CheckReport) {
	for _, problem := range report.LoadErrors {
		fmt.Fprintf(w, "load error\t%s\t%s\n", problem.Slug, problem.Reason)
	}
	for _, slug := range report.MissingTitles {
		fmt.Fprintf(w, "missing title\t%s\n", slug)
	}
	fmt.Fprintf(w, "checked %d posts, %d problems\n", report.Checked, report.Problems())
}

func writeImportReport(w io.Writer, report postscmd.ImportReport) {
	for _, slug := range report.Created {
		fmt.Fprintf(w, "created\t%s\n", slug)
	}
	for _, slug := range report.Updated {
		fmt.Fprintf(w, "updated\t%s\n", slug)
	}
	if report.DryRun {
		fmt.Fprintln(w, "dry run, nothing written")
	}
}
