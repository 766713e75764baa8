package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/pkg/core"
)

var assumeYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long:  `Delete permanently removes a note after asking for confirmation.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		service, err := openService(notes.WithConfirmer(promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())))
		if err != nil {
			return err
		}
		defer service.Close()

		ctx := confirmed(context.Background())
		if _, err := findNote(ctx, service, id); err != nil {
			return err
		}

		deleted, err := service.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("deleting note: %w", err)
		}
		if !deleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}

		success("Note deleted: %s", id)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all notes",
	Long:  `Clear removes the whole collection from the storage after asking for confirmation.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService(notes.WithConfirmer(promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())))
		if err != nil {
			return err
		}
		defer service.Close()

		cleared, err := service.ClearAll(confirmed(context.Background()))
		if err != nil {
			return fmt.Errorf("clearing notes: %w", err)
		}
		if !cleared {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}

		success("All notes deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	clearCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
}

func confirmed(ctx context.Context) context.Context {
	if assumeYes {
		return core.WithConfirmed(ctx)
	}
	return ctx
}

// promptConfirmer asks on out and reads a y/N answer from in.
func promptConfirmer(in io.Reader, out io.Writer) core.Confirmer {
	reader := bufio.NewReader(in)
	return core.ConfirmerFunc(func(_ context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
