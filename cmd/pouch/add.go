package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/importer"
	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/storage"
)

type addOptions struct {
	title       string
	description string
	folder      string
	tags        []string
	noFetch     bool
}

func newAddCmd(opts *options) *cobra.Command {
	ao := &addOptions{}
	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Bookmark a URL",
		Long: heredoc.Doc(`
			Store a new bookmark. Without --title the page is fetched and its
			<title> is used, falling back to the URL itself.

			  pouch add https://go.dev -t go -t "web dev" --folder "Dev / Lang"
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, ao, args[0])
		},
	}
	cmd.Flags().StringVarP(&ao.title, "title", "T", "", "title instead of the page's own")
	cmd.Flags().StringVarP(&ao.description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&ao.folder, "folder", "f", "", `folder path such as "Dev / Go", created if missing`)
	cmd.Flags().StringArrayVarP(&ao.tags, "tag", "t", nil, "tag (repeatable)")
	cmd.Flags().BoolVar(&ao.noFetch, "no-fetch", false, "do not fetch the page title")
	return cmd
}

func runAdd(cmd *cobra.Command, opts *options, ao *addOptions, rawURL string) error {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid URL %q", rawURL)
	}

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
	if store.HasBookmarkURL(rawURL) {
		return fmt.Errorf("%s: %w", rawURL, model.ErrDuplicateURL)
	}

	title := ao.title
	if title == "" && !ao.noFetch {
		title = fetchTitle(cmd.Context(), logger, rawURL)
	}

	b, err := store.Insert(model.NewBookmarkParams{
		Title:       title,
		URL:         rawURL,
		Description: ao.description,
		Tags:        ao.tags,
	}, ao.folder)
	if err != nil {
		return err
	}
	if err := backend.Save(store); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	logger.Info("bookmark added", zap.String("id", b.ID), zap.String("url", b.URL))

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s\n", b.ID, b.Title)
	return nil
}

// fetchTitle returns the page title or "" when the page cannot be read.
func fetchTitle(ctx context.Context, logger *zap.Logger, rawURL string) string {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	title, err := importer.FetchTitle(ctx, &http.Client{}, rawURL)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Warn("title fetch failed", zap.String("url", rawURL), zap.Error(err))
		}
		return ""
	}
	return title
}
