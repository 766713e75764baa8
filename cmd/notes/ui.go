package main

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/internal/host"
	"github.com/aretw0/notes/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the full-screen notes UI",
	Long: `UI opens the interactive notes screen: add, edit, pin, prioritize,
search, sort and delete notes with the keyboard. Set log.file to keep logs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := lifecycle.Context()
		defer ctx.Stop()

		service, err := openService()
		if err != nil {
			return err
		}
		defer service.Close()

		logger := slog.Default()
		opts := tui.Options{
			Logger: logger,
			Host:   host.Detect(cfg.Host, logger),
		}
		if err := tui.Run(ctx, service, opts); err != nil {
			return fmt.Errorf("running UI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
