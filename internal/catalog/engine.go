// Package catalog implements the product catalog engine: the price book
// join, sort comparators and filter evaluation. All operations derive new
// views; the initial joined list is never mutated.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hollisb/linesmith/internal/model"
)

// JoinPrices merges price book entries onto products by Product2Id. A
// matched product carries the entry's unit price as both UnitPrice and
// ListPrice plus the entry identity; unmatched products pass through
// unpriced. The join is a linear scan per product, which is fine at
// platform record-limit scale. The result is a deep copy and serves as the
// immutable initial view.
func JoinPrices(products []model.CatalogRow, entries []model.PriceEntry) []model.CatalogRow {
	joined := make([]model.CatalogRow, 0, len(products))
	for _, p := range products {
		row := p.Clone()
		for _, e := range entries {
			if e.Product2ID == p.ID {
				row.UnitPrice = e.UnitPrice
				row.ListPrice = e.UnitPrice
				row.PricebookEntryID = e.ID
				break
			}
		}
		joined = append(joined, row)
	}
	return joined
}

// Normalizer preprocesses a field value before comparison.
type Normalizer func(string) string

// Ascending and Descending are the two sort directions.
const (
	Ascending  = 1
	Descending = -1
)

// SortBy returns a comparator for the given field and direction. Values
// that both parse as numbers compare numerically; everything else compares
// as strings. The optional normalizer runs first.
func SortBy(field string, direction int, normalizer Normalizer) func(a, b model.CatalogRow) int {
	key := func(r model.CatalogRow) string {
		v, _ := r.Field(field)
		if normalizer != nil {
			v = normalizer(v)
		}
		return v
	}

	return func(a, b model.CatalogRow) int {
		av, bv := key(a), key(b)
		if af, aerr := strconv.ParseFloat(av, 64); aerr == nil {
			if bf, berr := strconv.ParseFloat(bv, 64); berr == nil {
				switch {
				case af < bf:
					return -direction
				case af > bf:
					return direction
				}
				return 0
			}
		}
		return direction * strings.Compare(av, bv)
	}
}

// Sorted returns a new view of rows ordered by the comparator. The sort is
// stable: rows with equal keys keep their input order.
func Sorted(rows []model.CatalogRow, cmp func(a, b model.CatalogRow) int) []model.CatalogRow {
	out := make([]model.CatalogRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// Matches reports whether a candidate row satisfies every constraint in
// the filter state. Comparison is case-insensitive substring containment
// on trimmed values; a row with a missing or empty target field never
// matches a non-empty constraint.
func Matches(row model.CatalogRow, state model.FilterState) bool {
	for key, want := range state {
		want = strings.TrimSpace(strings.ToLower(want))
		if want == "" {
			continue
		}
		raw, _ := row.Field(key)
		got := strings.TrimSpace(strings.ToLower(raw))
		if got == "" || !strings.Contains(got, want) {
			return false
		}
	}
	return true
}

// ApplyFilter evaluates the filter state against the flat candidate rows
// and returns the matching subset of the initial view, in the initial
// view's order. Filtering always runs against the original ordering so
// that clearing a filter restores exactly the original presentation. An
// empty state matches everything.
func ApplyFilter(candidates, initial []model.CatalogRow, state model.FilterState) []model.CatalogRow {
	if state.Empty() {
		out := make([]model.CatalogRow, len(initial))
		copy(out, initial)
		return out
	}

	matched := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if Matches(c, state) {
			matched[c.ID] = true
		}
	}

	out := make([]model.CatalogRow, 0, len(matched))
	for _, row := range initial {
		if matched[row.ID] {
			out = append(out, row)
		}
	}
	return out
}
