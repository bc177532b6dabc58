package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollisb/linesmith/internal/common"
	"github.com/hollisb/linesmith/internal/model"
	"github.com/hollisb/linesmith/internal/wizard"
)

func testWizardModel(t *testing.T) (WizardModel, *wizard.Controller, *Session) {
	t.Helper()

	products := []model.CatalogRow{
		{ID: "p1", Name: "Widget", Fields: map[string]string{"Family": "Hardware"}},
		{ID: "p2", Name: "Anvil", Fields: map[string]string{"Family": "Hardware"}},
	}
	source := &wizard.MockSource{
		Payload: &wizard.CatalogPayload{
			Columns:    []model.TableColumn{{APIName: model.FieldName, Label: "Product Name", Sortable: true}},
			ParentKind: model.ParentOpportunity,
			Products:   products,
			PriceEntries: []model.PriceEntry{
				{ID: "pbe-1", Product2ID: "p1", UnitPrice: "100.00"},
				{ID: "pbe-2", Product2ID: "p2", UnitPrice: "45.00"},
			},
		},
		ConfigColumns: []model.ConfigColumn{
			{APIName: model.FieldProduct2ID, Label: "Product", DisplayReadOnlyIcon: true},
			{APIName: model.FieldQuantity, Label: "Quantity", Type: "number", Editable: true},
			{APIName: model.FieldUnitPrice, Label: "Sales Price", Type: "number", Editable: true},
			{APIName: model.FieldListPrice, Label: "List Price", DisplayReadOnlyIcon: true},
		},
		FilterFields: []model.FilterField{{APIName: model.FieldName, Label: "Product Name", Type: "STRING"}},
		Candidates:   products,
	}

	session := NewSession()
	ctrl := wizard.New(wizard.Config{
		Source:    source,
		Records:   wizard.NewMockRecordAPI(),
		Notifier:  session,
		Navigator: session,
		RecordID:  "opp-1",
		Retry:     common.RetryOptions{MaxAttempts: 1},
	})
	ctrl.Load(context.Background())

	m := NewWizardModel(context.Background(), ctrl, session)
	next, _ := m.Update(catalogLoadedMsg{})
	return next.(WizardModel), ctrl, session
}

func TestCatalogLoadedBuildsTable(t *testing.T) {
	m, _, _ := testWizardModel(t)

	assert.True(t, m.loaded)
	require.Len(t, m.filterInputs, 1)
	assert.Equal(t, "Product Name", m.filterInputs[0].Placeholder)
	assert.Len(t, m.table.Rows(), 2)
}

func TestDraftEdits(t *testing.T) {
	m, ctrl, _ := testWizardModel(t)
	ctrl.SelectRows(ctrl.Visible())
	require.NoError(t, ctrl.Advance())

	m.setDraft(0, model.FieldQuantity, "3")
	m.setDraft(0, model.FieldUnitPrice, "90.00")
	m.setDraft(1, model.FieldQuantity, "1")

	edits := m.draftEdits()
	require.Len(t, edits, 2)

	byRow := make(map[string]map[string]string, len(edits))
	for _, e := range edits {
		byRow[e.RowID] = e.Fields
	}
	assert.Equal(t, "3", byRow["row-0"][model.FieldQuantity])
	assert.Equal(t, "90.00", byRow["row-0"][model.FieldUnitPrice])
	assert.Equal(t, "1", byRow["row-1"][model.FieldQuantity])
}

func TestCellValuePrefersDraft(t *testing.T) {
	m, ctrl, _ := testWizardModel(t)
	ctrl.SelectRows(ctrl.Visible())
	require.NoError(t, ctrl.Advance())

	// entry value before any edit
	assert.Equal(t, "45.00", m.cellValue(0, model.FieldUnitPrice))

	m.setDraft(0, model.FieldUnitPrice, "40.00")
	assert.Equal(t, "40.00", m.cellValue(0, model.FieldUnitPrice))

	// untouched cells still read from the entry
	assert.Equal(t, "45.00", m.cellValue(0, model.FieldListPrice))
	assert.Empty(t, m.cellValue(9, model.FieldUnitPrice))
}

func TestSelectKeyTogglesRow(t *testing.T) {
	m, ctrl, _ := testWizardModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(WizardModel)
	require.Len(t, ctrl.Selection(), 1)
	assert.Equal(t, "Anvil", ctrl.Selection()[0].Label)

	// selecting the same row again is a no-op
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(WizardModel)
	assert.False(t, m.quitting)
	assert.Len(t, ctrl.Selection(), 1)
}

func TestSessionRecordsHandOff(t *testing.T) {
	s := NewSession()

	_, done := s.Target()
	assert.False(t, done)

	s.Notify("Success", "Price book updated successfully", wizard.SeveritySuccess, false)
	notice, ok := s.LastNotice()
	require.True(t, ok)
	assert.Equal(t, "Price book updated successfully", notice.Message)

	s.OpenWizard("opp-1", "pb-premium")
	target, done := s.Target()
	assert.True(t, done)
	assert.Contains(t, target, "opp-1")

	recordID, pricebookID := s.HandOff()
	assert.Equal(t, "opp-1", recordID)
	assert.Equal(t, "pb-premium", pricebookID)
}

func TestSessionRecordsRecordTarget(t *testing.T) {
	s := NewSession()
	s.OpenRecord(model.ParentQuote, "quo-1")
	target, done := s.Target()
	assert.True(t, done)
	assert.Equal(t, "Quote quo-1", target)
}
