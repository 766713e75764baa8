package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
)

var (
	listSearch string
	listSort   string
	listOutput string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List prints the notes matching --search (title or text, case-insensitive)
in the order given by --sort: date-desc, date-asc, priority or pinned.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("sort") {
			if _, ok := core.ParseSortMode(listSort); !ok {
				return errUnknownSort(listSort)
			}
			cfg.Display.Sort = listSort
		}

		service, err := openService()
		if err != nil {
			return err
		}
		defer service.Close()

		ctx := context.Background()
		if err := service.SetSearch(ctx, listSearch); err != nil {
			return fmt.Errorf("searching notes: %w", err)
		}
		view, err := service.Render(ctx)
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}

		out := cmd.OutOrStdout()
		if listOutput == "text" {
			printView(out, view)
			return nil
		}

		all, err := service.Load(ctx)
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}
		if err := encode(out, listOutput, newListing(view, all)); err != nil {
			return fmt.Errorf("encoding notes: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show notes containing this text")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: date-desc, date-asc, priority, pinned")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format: text, json or yaml")
}

func errUnknownSort(s string) error {
	return fmt.Errorf("unknown sort %q (want one of %v)", s, core.SortModes)
}
