package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/storage"
)

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete bookmarks by ID",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			// resolve every ID before touching the store
			titles := make([]string, len(args))
			for i, id := range args {
				b := store.GetBookmarkByID(id)
				if b == nil {
					return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
				}
				titles[i] = b.Title
			}
			for _, id := range args {
				if err := store.RemoveBookmark(id); err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
			}
			if err := backend.Save(store); err != nil {
				return fmt.Errorf("save bookmarks: %w", err)
			}
			logger.Info("bookmarks removed", zap.Strings("ids", args))

			out := cmd.OutOrStdout()
			for _, title := range titles {
				fmt.Fprintf(out, "Removed %s\n", title)
			}
			return nil
		},
	}
}
