package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollisb/linesmith/internal/model"
)

func row(id, name string, fields map[string]string) model.CatalogRow {
	return model.CatalogRow{ID: id, Name: name, Fields: fields}
}

func TestJoinPrices(t *testing.T) {
	products := []model.CatalogRow{
		row("p1", "Alpha", nil),
		row("p2", "Beta", nil),
		row("p3", "Gamma", nil),
	}
	entries := []model.PriceEntry{
		{ID: "e1", Product2ID: "p1", UnitPrice: "100.00"},
		{ID: "e3", Product2ID: "p3", UnitPrice: "250.50"},
	}

	joined := JoinPrices(products, entries)
	require.Len(t, joined, 3)

	assert.Equal(t, "100.00", joined[0].UnitPrice)
	assert.Equal(t, "100.00", joined[0].ListPrice)
	assert.Equal(t, "e1", joined[0].PricebookEntryID)
	assert.True(t, joined[0].Priced())

	// unmatched product passes through unpriced
	assert.Empty(t, joined[1].UnitPrice)
	assert.Empty(t, joined[1].PricebookEntryID)
	assert.False(t, joined[1].Priced())

	assert.Equal(t, "250.50", joined[2].UnitPrice)
	assert.Equal(t, "e3", joined[2].PricebookEntryID)
}

func TestJoinPricesDoesNotAliasInput(t *testing.T) {
	products := []model.CatalogRow{
		row("p1", "Alpha", map[string]string{"Family": "Power"}),
	}
	joined := JoinPrices(products, nil)

	joined[0].Fields["Family"] = "Changed"
	assert.Equal(t, "Power", products[0].Fields["Family"])
}

func TestSortByStability(t *testing.T) {
	rows := []model.CatalogRow{
		row("a", "Widget", map[string]string{"Family": "Tools"}),
		row("b", "Widget", map[string]string{"Family": "Tools"}),
		row("c", "Anvil", map[string]string{"Family": "Tools"}),
		row("d", "Widget", map[string]string{"Family": "Tools"}),
	}

	asc := Sorted(rows, SortBy("Name", Ascending, nil))
	require.Len(t, asc, 4)
	assert.Equal(t, "c", asc[0].ID)
	// equal keys keep input order
	assert.Equal(t, []string{"a", "b", "d"}, []string{asc[1].ID, asc[2].ID, asc[3].ID})

	desc := Sorted(rows, SortBy("Name", Descending, nil))
	assert.Equal(t, []string{"a", "b", "d"}, []string{desc[0].ID, desc[1].ID, desc[2].ID})
	assert.Equal(t, "c", desc[3].ID)
}

func TestSortByNormalizer(t *testing.T) {
	rows := []model.CatalogRow{
		row("a", "banana", nil),
		row("b", "Apple", nil),
		row("c", "cherry", nil),
	}

	sorted := Sorted(rows, SortBy("Name", Ascending, strings.ToLower))
	assert.Equal(t, []string{"b", "a", "c"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSortByNumericField(t *testing.T) {
	rows := []model.CatalogRow{
		row("a", "A", nil),
		row("b", "B", nil),
		row("c", "C", nil),
	}
	rows[0].ListPrice = "900.00"
	rows[1].ListPrice = "25.00"
	rows[2].ListPrice = "100.00"

	sorted := Sorted(rows, SortBy(model.FieldListPrice, Ascending, nil))
	assert.Equal(t, []string{"b", "c", "a"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSortByDoesNotMutateInput(t *testing.T) {
	rows := []model.CatalogRow{
		row("a", "Zed", nil),
		row("b", "Alpha", nil),
	}
	_ = Sorted(rows, SortBy("Name", Ascending, nil))
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "b", rows[1].ID)
}

func TestMatches(t *testing.T) {
	candidate := row("p1", "GenWatt Diesel", map[string]string{
		"Family":      "Power",
		"Description": "  Industrial diesel generator ",
	})

	tests := []struct {
		state model.FilterState
		name  string
		want  bool
	}{
		{name: "empty state matches", state: model.FilterState{}, want: true},
		{name: "substring match", state: model.FilterState{"Name": "diesel"}, want: true},
		{name: "case insensitive", state: model.FilterState{"Family": "POWER"}, want: true},
		{name: "trimmed values", state: model.FilterState{"Description": "industrial diesel"}, want: true},
		{name: "all keys must match", state: model.FilterState{"Name": "diesel", "Family": "support"}, want: false},
		{name: "missing field never matches", state: model.FilterState{"ProductCode": "gc"}, want: false},
		{name: "no substring", state: model.FilterState{"Name": "propane"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(candidate, tt.state))
		})
	}
}

func TestApplyFilter(t *testing.T) {
	initial := []model.CatalogRow{
		row("p1", "Zeta", map[string]string{"Family": "Power"}),
		row("p2", "Alpha", map[string]string{"Family": "Support"}),
		row("p3", "Mid", map[string]string{"Family": "Power"}),
	}
	candidates := initial

	t.Run("empty state returns all rows in original order", func(t *testing.T) {
		got := ApplyFilter(candidates, initial, model.FilterState{})
		require.Len(t, got, 3)
		assert.Equal(t, []string{"p1", "p2", "p3"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("impossible constraints return empty", func(t *testing.T) {
		got := ApplyFilter(candidates, initial, model.FilterState{"Name": "nothing-matches-this"})
		assert.Empty(t, got)
	})

	t.Run("result preserves initial order, not candidate order", func(t *testing.T) {
		reversed := []model.CatalogRow{candidates[2], candidates[1], candidates[0]}
		got := ApplyFilter(reversed, initial, model.FilterState{"Family": "power"})
		require.Len(t, got, 2)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p3", got[1].ID)
	})

	t.Run("never mutates the initial view", func(t *testing.T) {
		_ = ApplyFilter(candidates, initial, model.FilterState{"Family": "support"})
		assert.Equal(t, []string{"p1", "p2", "p3"}, []string{initial[0].ID, initial[1].ID, initial[2].ID})
	})
}
