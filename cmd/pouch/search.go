package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/nikbrunner/pouch/internal/api"
	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/picker"
	"github.com/nikbrunner/pouch/internal/query"
	"github.com/nikbrunner/pouch/internal/search"
	"github.com/nikbrunner/pouch/internal/storage"
)

var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

type searchOptions struct {
	tags  []string
	print bool
}

func newSearchCmd(opts *options) *cobra.Command {
	so := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search bookmarks and open the match",
		Example: `  pouch search axum
  pouch search '#rust "error handling"'
  pouch search --tag "web dev" --print react`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearchWith(cmd, opts, so, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringSliceVarP(&so.tags, "tag", "t", nil, "require tag (repeatable, comma separated)")
	cmd.Flags().BoolVarP(&so.print, "print", "p", false, "list matches instead of opening one")
	return cmd
}

func runSearchWith(cmd *cobra.Command, opts *options, so *searchOptions, raw string) error {
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

	// Tags typed inline ("#rust axum") join the --tag flags.
	tags := append(query.Parse(raw).TagFilters, api.NormalizeNames(so.tags)...)
	engine := search.NewEngine(cache, cfg.Search.SuggestionLimit)
	resp, err := engine.Search(cmd.Context(), api.NewSearchRequest(raw, tags))
	if err != nil {
		return err
	}
	logger.Debug("search", zap.String("query", resp.Query), zap.Int("results", len(resp.Bookmarks)))

	out := cmd.OutOrStdout()
	if len(resp.Bookmarks) == 0 {
		fmt.Fprintf(out, "No bookmarks found for '%s'\n", resp.Query)
		return nil
	}
	// Piped output gets the list; a picker needs a terminal.
	if so.print || !stdoutIsTerminal() {
		printBookmarks(out, resp.Bookmarks, cache.FolderPath)
		return nil
	}

	var chosen *model.Bookmark
	if len(resp.Bookmarks) == 1 {
		chosen = &resp.Bookmarks[0]
		fmt.Fprintf(out, "Opening: %s\n", chosen.Title)
	} else {
		final, err := tea.NewProgram(picker.New(resp.Bookmarks, resp.Query)).Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		p := final.(picker.Picker)
		if p.Cancelled() {
			return nil
		}
		chosen = p.SelectedBookmark()
	}
	if chosen == nil {
		return nil
	}

	if err := markVisited(backend, chosen.ID); err != nil {
		logger.Warn("update visitedAt failed", zap.String("id", chosen.ID), zap.Error(err))
	}
	return openURL(chosen.URL)
}

func printBookmarks(w io.Writer, bookmarks []model.Bookmark, folderPath func(*string) string) {
	for _, b := range bookmarks {
		if path := folderPath(b.FolderID); path != "" {
			fmt.Fprintf(w, "%s  [%s]\n", b.Title, path)
		} else {
			fmt.Fprintln(w, b.Title)
		}
		fmt.Fprintf(w, "  %s", b.URL)
		if len(b.Tags) > 0 {
			tags := make([]string, len(b.Tags))
			for i, t := range b.Tags {
				tags[i] = query.FormatTag(t)
			}
			fmt.Fprintf(w, "  %s", strings.Join(tags, " "))
		}
		fmt.Fprintln(w)
	}
}

// markVisited stamps VisitedAt on the stored bookmark.
func markVisited(backend storage.Storage, id string) error {
	store, err := backend.Load()
	if err != nil {
		return err
	}
	b := store.GetBookmarkByID(id)
	if b == nil {
		return storage.ErrNotFound
	}
	now := time.Now()
	b.VisitedAt = &now
	return backend.Save(store)
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

