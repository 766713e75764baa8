package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/internal/config"
	"github.com/aretw0/notes/internal/locale"
	"github.com/aretw0/notes/pkg/core"
)

var (
	cfgFile string
	verbose bool
	adapter string
	path    string
	key     string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "A small notes widget for the terminal",
	Long: `Notes keeps short titled notes in a single JSON collection.
Notes can be pinned, marked as priority, searched and sorted, from the
command line or from the full-screen UI (notes ui).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("adapter") {
			cfg.Storage.Adapter = adapter
		}
		if flags.Changed("path") {
			cfg.Storage.Path = path
		}
		if flags.Changed("key") {
			cfg.Storage.Key = key
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("checking flags: %w", err)
		}

		level := cfg.Log.SlogLevel()
		if verbose {
			level = slog.LevelDebug
		}

		out, err := logOutput(cmd)
		if err != nil {
			return err
		}
		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(out, opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("Error", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./notes.yaml or $HOME/.config/notes/notes.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&path, "path", "", "Storage directory or database file")
	rootCmd.PersistentFlags().StringVar(&key, "key", "", "Storage key holding the notes")
}

// logOutput sends logs to log.file when set. The UI owns the terminal, so
// without a file its logs are dropped.
func logOutput(cmd *cobra.Command) (io.Writer, error) {
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		return f, nil
	}
	if cmd == uiCmd {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

// serviceOptions are appended to the options of every service opened by a
// command. Tests inject their storage here.
var serviceOptions []notes.Option

// openService builds the notes service from the loaded configuration.
// Callers close it.
func openService(opts ...notes.Option) (*notes.Service, error) {
	format, err := locale.Formatter(cfg.Display.Locale, cfg.Display.DateLayout)
	if err != nil {
		return nil, fmt.Errorf("configuring locale: %w", err)
	}
	mode, _ := core.ParseSortMode(cfg.Display.Sort)

	all := []notes.Option{
		notes.WithAdapter(cfg.Storage.Adapter),
		notes.WithKey(cfg.Storage.Key),
		notes.WithLogger(slog.Default()),
		notes.WithSort(mode),
		notes.WithView(core.ViewOptions{
			FormatDate: format,
			Untitled:   cfg.Display.Untitled,
		}),
	}
	all = append(all, opts...)
	all = append(all, serviceOptions...)

	service, err := notes.New(cfg.Storage.Path, all...)
	if err != nil {
		return nil, fmt.Errorf("initializing notes: %w", err)
	}
	return service, nil
}

// findNote returns the stored note with id.
func findNote(ctx context.Context, service *core.Service, id string) (core.Note, error) {
	all, err := service.Load(ctx)
	if err != nil {
		return core.Note{}, fmt.Errorf("loading notes: %w", err)
	}
	for _, n := range all {
		if n.ID == id {
			return n, nil
		}
	}
	return core.Note{}, fmt.Errorf("no note with id %s", id)
}
