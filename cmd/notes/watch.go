package main

import (
	"fmt"

	"github.com/aretw0/lifecycle"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	watchsource "github.com/aretw0/notes/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the notes again whenever they change",
	Long: `Watch prints the list and reprints it every time the collection changes
on disk, including changes made by other processes. Requires a watchable
storage (the fs adapter).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := lifecycle.Context()
		defer ctx.Stop()

		service, err := openService()
		if err != nil {
			return err
		}
		defer service.Close()

		events, err := service.Watch(ctx)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		src := watchsource.NewSource(events)
		if err := src.Start(ctx); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}

		out := cmd.OutOrStdout()
		show := func() error {
			view, err := service.Render(ctx)
			if err != nil {
				return fmt.Errorf("listing notes: %w", err)
			}
			printView(out, view)
			return nil
		}

		if err := show(); err != nil {
			return err
		}
		header := color.New(color.FgCyan)
		for e := range lifecycle.Receive(ctx, src.Events()) {
			header.Fprintf(out, "\n--- %s ---\n", e)
			if err := show(); err != nil {
				return err
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
