package main

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/linkcheck"
	"github.com/nikbrunner/pouch/internal/storage"
)

type checkOptions struct {
	concurrency int
	timeout     time.Duration
	private     []string
	tagDead     bool
}

func newCheckCmd(opts *options) *cobra.Command {
	co := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find bookmarks whose links are dead",
		Long: heredoc.Doc(`
			Probe every bookmark URL and report dead (404/410) and unreachable links.

			With --tag-dead, dead bookmarks get the "dead" tag so "pouch search #dead"
			lists them.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, co)
		},
	}
	cmd.Flags().IntVarP(&co.concurrency, "concurrency", "c", 8, "parallel requests")
	cmd.Flags().DurationVar(&co.timeout, "timeout", 10*time.Second, "per-request timeout")
	cmd.Flags().StringSliceVar(&co.private, "private", nil, "domains whose 404s mean auth required")
	cmd.Flags().BoolVar(&co.tagDead, "tag-dead", false, `tag dead bookmarks with "dead"`)
	return cmd
}

func runCheck(cmd *cobra.Command, opts *options, co *checkOptions) error {
	cfg, logger, err := opts.load("")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = storage.Close(backend) }()

	store, err := backend.Load()
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}

	checker := linkcheck.New(linkcheck.Options{
		Concurrency:    co.concurrency,
		Timeout:        co.timeout,
		PrivateDomains: co.private,
		Logger:         logger,
	})
	errOut := cmd.ErrOrStderr()
	results := checker.Check(cmd.Context(), store.Bookmarks, func(done, total int) {
		fmt.Fprintf(errOut, "\rchecked %d/%d", done, total)
	})
	if len(results) > 0 {
		fmt.Fprintln(errOut)
	}

	out := cmd.OutOrStdout()
	var dead, unreachable int
	for _, r := range results {
		switch r.Status {
		case linkcheck.Dead:
			dead++
			fmt.Fprintf(out, "dead         %d  %s  %s\n", r.StatusCode, r.Title, r.URL)
		case linkcheck.Unreachable:
			unreachable++
			fmt.Fprintf(out, "unreachable  %s  %s  %s\n", r.Reason, r.Title, r.URL)
		}
	}
	fmt.Fprintf(out, "%d checked, %d dead, %d unreachable\n", len(results), dead, unreachable)

	if !co.tagDead || dead == 0 {
		return nil
	}
	changed := linkcheck.TagDead(store, linkcheck.DeadIDs(results))
	if changed == 0 {
		return nil
	}
	if err := backend.Save(store); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	logger.Info("tagged dead bookmarks", zap.Int("count", changed))
	fmt.Fprintf(out, "tagged %d bookmarks #%s\n", changed, linkcheck.DeadTag)
	return nil
}
