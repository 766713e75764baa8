package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
)

var statusOutput string

// statusReport is the introspection snapshot printed by `notes status`.
type statusReport struct {
	Version     string `json:"version" yaml:"version"`
	Notes       int    `json:"notes" yaml:"notes"`
	Service     any    `json:"service" yaml:"service"`
	StorageType string `json:"storage_type,omitempty" yaml:"storage_type,omitempty"`
	Storage     any    `json:"storage,omitempty" yaml:"storage,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the service and its storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return err
		}
		defer service.Close()

		all, err := service.Load(context.Background())
		if err != nil {
			return fmt.Errorf("loading notes: %w", err)
		}

		report := statusReport{
			Version: strings.TrimSpace(notes.Version),
			Notes:   len(all),
			Service: service.State(),
		}
		storage := service.Store().Storage()
		if comp, ok := storage.(introspection.Component); ok {
			report.StorageType = comp.ComponentType()
		}
		if intro, ok := storage.(introspection.Introspectable); ok {
			report.Storage = intro.State()
		}

		if err := encode(cmd.OutOrStdout(), statusOutput, report); err != nil {
			return fmt.Errorf("encoding status: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "json", "Output format: json or yaml")
}
