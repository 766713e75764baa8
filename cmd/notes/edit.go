package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
)

var (
	editTitle string
	editText  string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the title or text of a note",
	Long: `Edit replaces the title and/or text of a note. Fields whose flag is not
given keep their value. A blank title removes the title.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		flags := cmd.Flags()
		if !flags.Changed("title") && !flags.Changed("text") {
			return errors.New("nothing to edit: give --title and/or --text")
		}

		service, err := openService()
		if err != nil {
			return err
		}
		defer service.Close()

		ctx := context.Background()
		note, err := findNote(ctx, service, id)
		if err != nil {
			return err
		}

		e := core.Edit{Title: &note.Title}
		if flags.Changed("title") {
			e.Title = &editTitle
		}
		if flags.Changed("text") {
			e.Text = &editText
		}

		changed, err := service.Edit(ctx, id, e)
		if err != nil {
			return fmt.Errorf("editing note: %w", err)
		}
		if !changed {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed")
			return nil
		}

		success("Note updated: %s", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVar(&editText, "text", "", "New text")
}
