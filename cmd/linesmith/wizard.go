package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollisb/linesmith/internal/tui"
	"github.com/hollisb/linesmith/internal/wizard"
)

func wizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Run the product selection wizard for a parent record",
		Long: `Browse the catalog priced by a specific price book, select products,
configure quantities and prices in a grid, and commit the selection as
line items on the parent record. Partial failures roll the whole batch
back.`,
		RunE: runWizard,
	}

	cmd.Flags().String("record", "", "parent record id (Opportunity, Quote or Order)")
	cmd.Flags().String("pricebook", "", "price book id to price the catalog with")
	_ = cmd.MarkFlagRequired("record")
	_ = cmd.MarkFlagRequired("pricebook")

	return cmd
}

func runWizard(cmd *cobra.Command, _ []string) error {
	recordID, _ := cmd.Flags().GetString("record")
	pricebookID, _ := cmd.Flags().GetString("pricebook")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return tui.RunWizard(cmd.Context(), wizard.Config{
		Source:      store,
		Records:     store,
		RecordID:    recordID,
		PricebookID: pricebookID,
	})
}
