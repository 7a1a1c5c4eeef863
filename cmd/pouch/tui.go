package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/client"
	"github.com/nikbrunner/pouch/internal/complete"
	"github.com/nikbrunner/pouch/internal/search"
	"github.com/nikbrunner/pouch/internal/storage"
	"github.com/nikbrunner/pouch/internal/tui"
)

// tuiLogFile receives logs while the TUI owns the terminal.
const tuiLogFile = "pouch.log"

// healthTimeout bounds the health check that decides between the server
// and the local store.
const healthTimeout = 300 * time.Millisecond

type tuiOptions struct {
	local bool
}

func newTUICmd(opts *options) *cobra.Command {
	to := &tuiOptions{}
	cmd := &cobra.Command{
		Use:   "tui [query]",
		Short: "Open the interactive search screen",
		Long: `Open the interactive search screen.

Tag suggestions and searches go to a running "pouch serve" when one answers
on the configured address, and to the local store otherwise.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUIWith(cmd, opts, to, strings.Join(args, " "))
		},
	}
	cmd.Flags().BoolVar(&to.local, "local", false, "always search the local store")
	return cmd
}

func runTUI(cmd *cobra.Command, opts *options, initial string) error {
	return runTUIWith(cmd, opts, &tuiOptions{}, initial)
}

func runTUIWith(cmd *cobra.Command, opts *options, to *tuiOptions, initial string) error {
	cfg, logger, err := opts.load(tuiLogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	backend, closeBackend, err := tuiBackend(ctx, cfg, to.local, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	app := tui.NewApp(tui.AppParams{
		Context: ctx,
		Backend: backend,
		Options: complete.Options{
			Debounce:   cfg.Search.Debounce,
			ErrorFlash: cfg.Search.ErrorFlash,
			BlurGrace:  cfg.Search.BlurGrace,
		},
		Logger: logger,
		Query:  initial,
	})

	final, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	chosen := final.(tui.App).Selected()
	if chosen == nil {
		return nil
	}
	return openURL(chosen.URL)
}

// tuiBackend prefers a running server and falls back to an in-process
// engine over the configured store.
func tuiBackend(ctx context.Context, cfg *storage.Config, local bool, logger *zap.Logger) (complete.Backend, func(), error) {
	if !local {
		c := client.New(cfg.Server.URL(), cfg.Server.Timeout)
		healthCtx, cancel := context.WithTimeout(ctx, healthTimeout)
		err := c.Health(healthCtx)
		cancel()
		if err == nil {
			logger.Info("using server", zap.String("url", cfg.Server.URL()))
			return c, func() {}, nil
		}
		logger.Debug("server unavailable, using local store", zap.Error(err))
	}

	store, cache, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	watchCtx, stopWatch := context.WithCancel(ctx)
	if _, err := storage.WatchCache(watchCtx, cache, cfg.Storage.Path, logger); err != nil {
		logger.Warn("store watch disabled", zap.Error(err))
	}
	closeFn := func() {
		stopWatch()
		_ = storage.Close(store)
	}
	return search.NewEngine(cache, cfg.Search.SuggestionLimit), closeFn, nil
}
