package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/pouch/internal/exporter"
	"github.com/nikbrunner/pouch/internal/storage"
)

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks to a browser HTML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runExport(cmd, opts, path)
		},
	}
}

func runExport(cmd *cobra.Command, opts *options, path string) error {
	if path == "" {
		var err error
		if path, err = exporter.DefaultExportPath(); err != nil {
			return fmt.Errorf("default export path: %w", err)
		}
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
	if err := os.WriteFile(path, []byte(exporter.ExportHTML(store)), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks, %d folders to %s\n",
		len(store.Bookmarks), len(store.Folders), path)
	return nil
}
