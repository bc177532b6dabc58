package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollisb/linesmith/internal/pricebook"
	"github.com/hollisb/linesmith/internal/wizard"
)

// RunWizard runs the product selection wizard until the user commits or
// cancels.
func RunWizard(ctx context.Context, cfg wizard.Config) error {
	session := NewSession()
	cfg.Notifier = session
	cfg.Navigator = session
	ctrl := wizard.New(cfg)

	program := tea.NewProgram(NewWizardModel(ctx, ctrl, session), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("wizard UI failed: %w", err)
	}

	if m, ok := final.(WizardModel); ok && m.finished != "" {
		fmt.Println(m.finished)
	}
	return nil
}

// RunPricebook runs the price book picker and, when resolution hands off,
// reports the wizard destination for the caller to chain into.
func RunPricebook(ctx context.Context, store pricebook.Store, recordID string) (recordOut, pricebookOut string, err error) {
	session := NewSession()
	modal := NewChannelModal()
	resolver := pricebook.New(store, modal, session, session)

	program := tea.NewProgram(NewPricebookModel(ctx, resolver, session, recordID), tea.WithContext(ctx))
	modal.Attach(program)

	if _, err := program.Run(); err != nil {
		return "", "", fmt.Errorf("price book UI failed: %w", err)
	}

	if target, done := session.Target(); done {
		fmt.Println("Resolved: " + target)
		recordOut, pricebookOut = session.HandOff()
	}
	return recordOut, pricebookOut, nil
}
