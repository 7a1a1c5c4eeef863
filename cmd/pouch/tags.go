package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/query"
	"github.com/nikbrunner/pouch/internal/search"
	"github.com/nikbrunner/pouch/internal/storage"
)

func newTagsCmd(opts *options) *cobra.Command {
	var suggest string
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags with their bookmark counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			out := cmd.OutOrStdout()
			if suggest != "" {
				engine := search.NewEngine(cache, cfg.Search.SuggestionLimit)
				names, err := engine.Suggest(cmd.Context(), suggest, nil)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			counts, err := cache.TagCounts()
			if err != nil {
				return err
			}
			for _, tc := range counts {
				fmt.Fprintf(out, "%4d  %s\n", tc.Count, tc.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&suggest, "suggest", "s", "", "rank tags against a fragment instead of listing all")
	cmd.AddCommand(newTagsRenameCmd(opts))
	return cmd
}

func newTagsRenameCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a tag on every bookmark, merging into an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := query.NormalizeTag(args[0]), query.NormalizeTag(args[1])
			if from == "" || to == "" {
				return errors.New("tag names must not be empty")
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
			changed := store.RenameTag(from, to)
			if changed > 0 {
				if err := backend.Save(store); err != nil {
					return fmt.Errorf("save bookmarks: %w", err)
				}
			}
			logger.Info("tag renamed", zap.String("from", from), zap.String("to", to), zap.Int("bookmarks", changed))

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s on %d bookmarks\n", query.FormatTag(from), query.FormatTag(to), changed)
			return nil
		},
	}
}
