package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollisb/linesmith/internal/common"
	"github.com/hollisb/linesmith/internal/model"
)

func testProducts() []model.CatalogRow {
	return []model.CatalogRow{
		{ID: "p1", Name: "Widget", Fields: map[string]string{"ProductCode": "W-1", "Family": "Hardware"}},
		{ID: "p2", Name: "Anvil", Fields: map[string]string{"ProductCode": "A-1", "Family": "Hardware"}},
		{ID: "p3", Name: "Manual", Fields: map[string]string{"ProductCode": "M-1", "Family": "Docs"}},
	}
}

func testSource(kind model.ParentKind) *MockSource {
	products := testProducts()
	return &MockSource{
		Payload: &CatalogPayload{
			Columns: []model.TableColumn{
				{APIName: model.FieldName, Label: "Product Name", Sortable: true},
				{APIName: "ProductCode", Label: "Product Code"},
				{APIName: "Family", Label: "Product Family"},
			},
			ParentKind: kind,
			Products:   products,
			PriceEntries: []model.PriceEntry{
				{ID: "pbe-1", Product2ID: "p1", UnitPrice: "100.00"},
				{ID: "pbe-2", Product2ID: "p2", UnitPrice: "45.00"},
				{ID: "pbe-3", Product2ID: "p3", UnitPrice: "9.99"},
			},
		},
		ConfigColumns: []model.ConfigColumn{
			{APIName: model.FieldProduct2ID, Label: "Product", DisplayReadOnlyIcon: true},
			{APIName: model.FieldQuantity, Label: "Quantity", Type: "number", Editable: true},
			{APIName: model.FieldUnitPrice, Label: "Sales Price", Type: "number", Editable: true},
			{APIName: model.FieldListPrice, Label: "List Price", DisplayReadOnlyIcon: true},
		},
		FilterFields: []model.FilterField{
			{APIName: model.FieldName, Label: "Product Name", Type: "STRING"},
			{APIName: "Family", Label: "Product Family", Type: "STRING"},
		},
		Candidates: products,
	}
}

func testController(t *testing.T, kind model.ParentKind) (*Controller, *MockSource, *MockRecordAPI, *MockNotifier, *MockNav) {
	t.Helper()

	source := testSource(kind)
	records := NewMockRecordAPI()
	notifier := &MockNotifier{}
	nav := &MockNav{}

	c := New(Config{
		Source:      source,
		Records:     records,
		Notifier:    notifier,
		Navigator:   nav,
		RecordID:    "parent-1",
		PricebookID: "pb-1",
		Retry:       common.RetryOptions{MaxAttempts: 1},
	})
	c.Load(context.Background())
	return c, source, records, notifier, nav
}

func visibleNames(c *Controller) []string {
	names := make([]string, 0, len(c.Visible()))
	for _, row := range c.Visible() {
		names = append(names, row.Name)
	}
	return names
}

func TestLoad(t *testing.T) {
	c, source, _, _, _ := testController(t, model.ParentOpportunity)

	assert.Equal(t, 1, source.CatalogCalls)
	assert.Equal(t, model.ParentOpportunity, c.Kind())
	assert.Equal(t, PhaseBrowsing, c.Phase())

	// schema columns plus the appended list price column
	cols := c.Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, model.FieldListPrice, cols[3].APIName)
	assert.Equal(t, "List Price", cols[3].Label)

	// initial view sorted ascending by name, prices joined
	assert.Equal(t, []string{"Anvil", "Manual", "Widget"}, visibleNames(c))
	for _, row := range c.Visible() {
		assert.True(t, row.Priced())
		assert.Equal(t, row.UnitPrice, row.ListPrice)
	}
}

func TestLoadDegradesOnFetchErrors(t *testing.T) {
	source := testSource(model.ParentOpportunity)
	source.CatalogErr = errors.New("backend down")
	source.ConfigErr = errors.New("no config")

	c := New(Config{
		Source:    source,
		Records:   NewMockRecordAPI(),
		Notifier:  &MockNotifier{},
		Navigator: &MockNav{},
		RecordID:  "parent-1",
		Retry:     common.RetryOptions{MaxAttempts: 1},
	})
	c.Load(context.Background())

	assert.Empty(t, c.Visible())
	assert.Empty(t, c.ConfigColumns())
	// the independent fetches still populate
	assert.NotEmpty(t, c.FilterFields())
}

func TestFilterLifecycle(t *testing.T) {
	c, _, _, _, _ := testController(t, model.ParentOpportunity)

	c.OpenFilter()
	assert.True(t, c.FilterOpen())

	c.SetFilterValue("Family", "hardware")
	require.NoError(t, c.ApplyFilter())
	assert.Equal(t, []string{"Anvil", "Widget"}, visibleNames(c))
	assert.True(t, c.FilterOpen(), "applying keeps the overlay open")

	c.SetFilterValue(model.FieldName, "anv")
	require.NoError(t, c.ApplyFilter())
	assert.Equal(t, []string{"Anvil"}, visibleNames(c))

	// clearing one constraint re-widens
	c.SetFilterValue(model.FieldName, "")
	require.NoError(t, c.ApplyFilter())
	assert.Equal(t, []string{"Anvil", "Widget"}, visibleNames(c))

	require.NoError(t, c.ClearFilter())
	assert.Equal(t, []string{"Anvil", "Manual", "Widget"}, visibleNames(c))

	c.CloseFilter()
	assert.False(t, c.FilterOpen())
}

func TestFilterResultsKeepCatalogOrder(t *testing.T) {
	c, _, _, _, _ := testController(t, model.ParentOpportunity)

	c.Sort(model.FieldListPrice, -1)
	c.SetFilterValue("Family", "hardware")
	require.NoError(t, c.ApplyFilter())
	// matches come back in the initial view's order, not the sorted order
	assert.Equal(t, []string{"Anvil", "Widget"}, visibleNames(c))
}

func TestSort(t *testing.T) {
	c, _, _, _, _ := testController(t, model.ParentOpportunity)

	c.Sort(model.FieldListPrice, -1)
	assert.Equal(t, []string{"Widget", "Anvil", "Manual"}, visibleNames(c))

	field, dir := c.SortState()
	assert.Equal(t, model.FieldListPrice, field)
	assert.Equal(t, -1, dir)
}

func TestSelectRows(t *testing.T) {
	c, _, _, _, _ := testController(t, model.ParentOpportunity)

	rows := c.Visible()
	c.SelectRows([]model.CatalogRow{rows[0], rows[1]})
	require.Len(t, c.Selection(), 2)
	assert.True(t, c.CanAdvance())

	// re-selecting the same rows is a no-op
	c.SelectRows([]model.CatalogRow{rows[0], rows[1]})
	assert.Len(t, c.Selection(), 2)

	// selection entries carry the grid projection
	entry := c.Selection()[0]
	assert.Equal(t, "Anvil", entry.Label)
	assert.Equal(t, "Anvil", entry.Fields[model.FieldProduct2ID])
	assert.Equal(t, "45.00", entry.Fields[model.FieldUnitPrice])
	assert.Equal(t, model.SelectionIcon, entry.IconName)
}

func TestRemoveSelection(t *testing.T) {
	c, _, _, _, _ := testController(t, model.ParentOpportunity)
	rows := c.Visible()
	c.SelectRows(rows)
	require.Len(t, c.Selection(), 3)

	removed := c.Selection()[1]
	c.RemoveSelection(1)
	require.Len(t, c.Selection(), 2)
	assert.Equal(t, "Anvil", c.Selection()[0].Label)
	assert.Equal(t, "Widget", c.Selection()[1].Label)

	// out of range removals are ignored
	c.RemoveSelection(-1)
	c.RemoveSelection(10)
	assert.Len(t, c.Selection(), 2)

	// re-adding the removed row yields an entry equal to the original
	c.SelectRows([]model.CatalogRow{rows[1]})
	require.Len(t, c.Selection(), 3)
	readded := c.Selection()[2]
	assert.Equal(t, removed.Label, readded.Label)
	assert.Equal(t, removed.PricebookEntryID, readded.PricebookEntryID)
	assert.Equal(t, removed.Fields, readded.Fields)
}

func TestAdvanceAndRetreat(t *testing.T) {
	c, _, _, _, _ := testController(t, model.ParentOrder)

	assert.ErrorIs(t, c.Advance(), common.ErrEmptySelection)

	c.SetFilterValue("Family", "docs")
	require.NoError(t, c.ApplyFilter())
	c.OpenFilter()
	c.SelectRows(c.Visible())

	require.NoError(t, c.Advance())
	assert.Equal(t, PhaseConfiguring, c.Phase())
	assert.False(t, c.FilterOpen())
	assert.Equal(t, "Note: Quantity and Unit Price are required fields.", c.Note())
	// the view resets to the full catalog for the next browse
	assert.Equal(t, []string{"Anvil", "Manual", "Widget"}, visibleNames(c))

	// browsing-only operations are rejected while configuring
	assert.ErrorIs(t, c.ApplyFilter(), common.ErrWrongPhase)
	assert.ErrorIs(t, c.ClearFilter(), common.ErrWrongPhase)
	assert.ErrorIs(t, c.Advance(), common.ErrWrongPhase)

	require.NoError(t, c.Retreat())
	assert.Equal(t, PhaseBrowsing, c.Phase())
	assert.Len(t, c.Selection(), 1, "selection survives going back")

	assert.ErrorIs(t, c.Retreat(), common.ErrWrongPhase)
}

func TestAdvanceNoteByParentKind(t *testing.T) {
	tests := []struct {
		kind model.ParentKind
		note string
	}{
		{model.ParentOpportunity, "Note: Quantity and Sales Price are required fields."},
		{model.ParentQuote, "Note: Quantity and Sales Price are required fields."},
		{model.ParentOrder, "Note: Quantity and Unit Price are required fields."},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			c, _, _, _, _ := testController(t, tt.kind)
			c.SelectRows(c.Visible()[:1])
			require.NoError(t, c.Advance())
			assert.Equal(t, tt.note, c.Note())
		})
	}
}

func TestMergeDrafts(t *testing.T) {
	c, _, _, _, _ := testController(t, model.ParentOpportunity)
	c.SelectRows(c.Visible()[:2])
	require.NoError(t, c.Advance())

	c.MergeDrafts([]DraftEdit{
		{RowID: "row-0", Fields: map[string]string{model.FieldQuantity: "5"}},
		{RowID: "row-1", Fields: map[string]string{model.FieldQuantity: "2", model.FieldUnitPrice: "40.00"}},
		{RowID: "row-7", Fields: map[string]string{model.FieldQuantity: "9"}},
		{RowID: "bogus", Fields: map[string]string{model.FieldQuantity: "9"}},
	})

	entries := c.Selection()
	assert.Equal(t, "5", entries[0].Fields[model.FieldQuantity])
	assert.Equal(t, "2", entries[1].Fields[model.FieldQuantity])
	assert.Equal(t, "40.00", entries[1].Fields[model.FieldUnitPrice], "edit overrides the joined price")
	for _, e := range entries {
		assert.NotEqual(t, "9", e.Fields[model.FieldQuantity], "out-of-range edits are dropped")
	}
}

func TestCancel(t *testing.T) {
	c, _, _, _, nav := testController(t, model.ParentQuote)
	c.Cancel()
	require.Len(t, nav.RecordOpens, 1)
	assert.Equal(t, "Quote/parent-1", nav.RecordOpens[0])
}
