package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/server"
	"github.com/nikbrunner/pouch/internal/storage"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: heredoc.Doc(`
			Serve tag autocomplete and bookmark search over HTTP.

			The store is reloaded whenever its file changes on disk, so edits
			made by "pouch import" show up without a restart.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func runServe(opts *options) error {
	cfg, logger, err := opts.load("")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	backend, cache, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = storage.Close(backend) }()
	logger.Info("store loaded",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("path", cfg.Storage.Path),
		zap.Int("bookmarks", cache.Len()))

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if w, err := storage.WatchCache(watchCtx, cache, cfg.Storage.Path, logger); err != nil {
		logger.Warn("store watch disabled", zap.Error(err))
	} else {
		defer w.Stop()
	}

	srv := server.NewServer(cache, cfg.Server, cfg.Search, logger)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		logger.Error("server failed", zap.Error(err))
		return err
	case <-sigChan:
	}

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}
