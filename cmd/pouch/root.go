package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/logging"
	"github.com/nikbrunner/pouch/internal/storage"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pouch [query]",
		Short: "Tag-first bookmark search",
		Long: heredoc.Doc(`
			pouch keeps bookmarks with tags and finds them with a small query language.

			Queries mix free-text terms with tag filters:
			  rust "best practices"     terms, quoted phrases kept together
			  #rust #"web dev"          tags, quoted when they contain spaces

			Run without arguments to open the interactive search screen.
			With arguments, pouch runs the query and opens the match.
		`),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTUI(cmd, opts, "")
			}
			return runSearchWith(cmd, opts, &searchOptions{}, strings.Join(args, " "))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/pouch/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "verbose development logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newTUICmd(opts),
		newAddCmd(opts),
		newRmCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newTagsCmd(opts),
		newCheckCmd(opts),
	)
	return cmd
}

// resolveConfigPath returns the --config value or the default location.
func (o *options) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return storage.DefaultConfigFilePath()
}

// load reads the config and builds the logger. logFile overrides the
// configured log file when the config leaves it empty.
func (o *options) load(logFile string) (*storage.Config, *zap.Logger, error) {
	path, err := o.resolveConfigPath()
	if err != nil {
		return nil, nil, fmt.Errorf("config path: %w", err)
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if o.debug {
		cfg.Log.Debug = true
	}
	if cfg.Log.File == "" && logFile != "" {
		cfg.Log.File = filepath.Join(filepath.Dir(path), logFile)
	}

	logger, err := logging.NewLogger(cfg.Log.Debug, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openStore opens the configured backend and loads it into a cache.
func openStore(cfg *storage.Config) (storage.Storage, *storage.Cache, error) {
	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	cache, err := storage.NewCache(backend)
	if err != nil {
		_ = storage.Close(backend)
		return nil, nil, fmt.Errorf("load bookmarks: %w", err)
	}
	return backend, cache, nil
}
