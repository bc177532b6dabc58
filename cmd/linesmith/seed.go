package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog into the sandbox database",
		Long: `Create a demo product catalog, two price books, the metadata field
sets and one parent record of each kind. Seeding is idempotent.`,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	result, err := store.Seed(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	cmd.Println()
	cmd.Println("Price books:")
	for name, id := range result.Pricebooks {
		cmd.Printf("  %-22s %s\n", name, id)
	}
	cmd.Println("Parent records:")
	for kind, id := range result.Parents {
		cmd.Printf("  %-22s %s\n", kind, id)
	}
	cmd.Println()
	cmd.Println("Try: linesmith pricebook --record opp-0001")
	return nil
}
