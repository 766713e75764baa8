package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
)

var pinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Pin or unpin a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(args[0], "pin", (*core.Service).TogglePin, func(n core.Note) bool { return n.IsPinned })
	},
}

var priorityCmd = &cobra.Command{
	Use:   "priority [id]",
	Short: "Mark or unmark a note as high priority",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(args[0], "priority", (*core.Service).TogglePriority, func(n core.Note) bool { return n.Priority })
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(priorityCmd)
}

func toggle(id, flag string, fn func(*core.Service, context.Context, string) (bool, error), get func(core.Note) bool) error {
	service, err := openService()
	if err != nil {
		return err
	}
	defer service.Close()

	ctx := context.Background()
	found, err := fn(service, ctx, id)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	if !found {
		return fmt.Errorf("no note with id %s", id)
	}

	note, err := findNote(ctx, service, id)
	if err != nil {
		return err
	}
	state := "off"
	if get(note) {
		state = "on"
	}
	success("%s %s: %s", flag, state, id)
	return nil
}
