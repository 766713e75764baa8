package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addTitle string

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a note",
	Long: `Add creates a note from the given text and an optional title.
The note is placed first in the collection. A note needs a title or text.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return err
		}
		defer service.Close()

		note, err := service.Add(context.Background(), addTitle, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("adding note: %w", err)
		}

		success("Note added: %s", note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Title of the note")
}
