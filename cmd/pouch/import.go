package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/importer"
	"github.com/nikbrunner/pouch/internal/storage"
)

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a browser HTML export",
		Long: `Import bookmarks from a Netscape bookmark file.

Folders are merged by name, bookmarks whose URL is already stored are
skipped, and TAGS attributes become pouch tags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args[0])
		},
	}
}

func runImport(cmd *cobra.Command, opts *options, path string) error {
	cfg, logger, err := opts.load("")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer file.Close()

	folders, bookmarks, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		return fmt.Errorf("parse HTML: %w", err)
	}

	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = storage.Close(backend) }()

	store, err := backend.Load()
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	added, skipped := store.ImportMerge(folders, bookmarks)
	if err := backend.Save(store); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	logger.Info("import finished",
		zap.String("file", path),
		zap.Int("added", added),
		zap.Int("skipped", skipped))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d bookmarks, %d folders", added, len(folders))
	if skipped > 0 {
		fmt.Fprintf(out, " (%d duplicates skipped)", skipped)
	}
	fmt.Fprintln(out)
	return nil
}
