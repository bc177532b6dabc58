// Package pricebook implements the price book resolution flow: choosing
// or changing the active price list for a parent record before the
// product selection wizard is entered.
package pricebook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hollisb/linesmith/internal/model"
	"github.com/hollisb/linesmith/internal/wizard"
)

// Store defines the persistence contract for price book resolution.
type Store interface {
	ListPricebooks(ctx context.Context) ([]model.Pricebook, error)
	GetParentPricebook(ctx context.Context, recordID string) (string, error)
	UpdateParentPricebook(ctx context.Context, recordID, pricebookID string) error
	DeleteChildLineItems(ctx context.Context, recordID string) error
}

// ModalPrompter asks the user to confirm a destructive change.
type ModalPrompter interface {
	Confirm(ctx context.Context, title, body string) (bool, error)
}

// Resolver runs the price book resolution flow for one parent record.
type Resolver struct {
	store    Store
	modal    ModalPrompter
	notifier wizard.Notifier
	nav      wizard.Navigator
}

// New creates a resolver with the given collaborators.
func New(store Store, modal ModalPrompter, notifier wizard.Notifier, nav wizard.Navigator) *Resolver {
	return &Resolver{store: store, modal: modal, notifier: notifier, nav: nav}
}

// Pricebooks lists the selectable price books.
func (r *Resolver) Pricebooks(ctx context.Context) ([]model.Pricebook, error) {
	return r.store.ListPricebooks(ctx)
}

// Existing returns the price book currently associated with the record,
// or empty if none is.
func (r *Resolver) Existing(ctx context.Context, recordID string) (string, error) {
	return r.store.GetParentPricebook(ctx, recordID)
}

// Resolve applies the user's price book choice and hands off to the
// wizard. Re-picking the already-associated book skips the write. Picking
// a different one prompts for confirmation and, if confirmed, deletes the
// record's existing line items before persisting the new association.
// Hand-off never happens on error.
func (r *Resolver) Resolve(ctx context.Context, recordID, selectedID string) error {
	if selectedID == "" {
		return fmt.Errorf("no price book selected for record %s", recordID)
	}

	existing, err := r.store.GetParentPricebook(ctx, recordID)
	if err != nil {
		return fmt.Errorf("failed to look up price book for record %s: %w", recordID, err)
	}

	switch {
	case existing == selectedID:
		r.nav.OpenWizard(recordID, selectedID)
		return nil

	case existing == "":
		return r.persistAndHandOff(ctx, recordID, selectedID)

	default:
		ok, err := r.modal.Confirm(ctx, "Confirm Price Book Change",
			"Changing the price book deletes all line items already added to this record. Continue?")
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			slog.Info("Price book change canceled", "record_id", recordID)
			return nil
		}
		if err := r.store.DeleteChildLineItems(ctx, recordID); err != nil {
			slog.Error("Failed to delete existing line items", "record_id", recordID, "error", err)
			r.notifier.Notify("Error", model.UserMessageOf(err), wizard.SeverityError, true)
			return fmt.Errorf("failed to delete line items for record %s: %w", recordID, err)
		}
		return r.persistAndHandOff(ctx, recordID, selectedID)
	}
}

func (r *Resolver) persistAndHandOff(ctx context.Context, recordID, selectedID string) error {
	if err := r.store.UpdateParentPricebook(ctx, recordID, selectedID); err != nil {
		slog.Error("Failed to update price book", "record_id", recordID, "pricebook_id", selectedID, "error", err)
		r.notifier.Notify("Error", model.UserMessageOf(err), wizard.SeverityError, false)
		return fmt.Errorf("failed to update price book for record %s: %w", recordID, err)
	}
	r.notifier.Notify("Success", "Price book updated successfully", wizard.SeveritySuccess, false)
	r.nav.OpenWizard(recordID, selectedID)
	return nil
}
