package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollisb/linesmith/internal/tui"
	"github.com/hollisb/linesmith/internal/wizard"
)

func pricebookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pricebook",
		Short: "Resolve the active price book for a parent record",
		Long: `Pick or change the price book associated with a parent record.
Changing an existing association deletes the record's current line items
after confirmation, then hands off into the selection wizard.`,
		RunE: runPricebook,
	}

	cmd.Flags().String("record", "", "parent record id (Opportunity, Quote or Order)")
	_ = cmd.MarkFlagRequired("record")

	return cmd
}

func runPricebook(cmd *cobra.Command, _ []string) error {
	recordID, _ := cmd.Flags().GetString("record")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	handOffRecord, handOffPricebook, err := tui.RunPricebook(cmd.Context(), store, recordID)
	if err != nil {
		return err
	}
	if handOffRecord == "" {
		return nil
	}

	// chain straight into the wizard with the resolved price book
	return tui.RunWizard(cmd.Context(), wizard.Config{
		Source:      store,
		Records:     store,
		RecordID:    handOffRecord,
		PricebookID: handOffPricebook,
	})
}
