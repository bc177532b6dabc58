// Package wizard implements the selection-and-commit workflow engine: the
// phase machine over the product catalog, the selection set, inline draft
// merging and the transactional line-item commit with compensating deletes.
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hollisb/linesmith/internal/catalog"
	"github.com/hollisb/linesmith/internal/common"
	"github.com/hollisb/linesmith/internal/model"
)

// Phase is the wizard's current step. Exactly one phase is active at a
// time; the filter overlay is an orthogonal flag within Browsing.
type Phase int

// Wizard phases.
const (
	PhaseBrowsing Phase = iota
	PhaseConfiguring
)

func (p Phase) String() string {
	switch p {
	case PhaseBrowsing:
		return "browsing"
	case PhaseConfiguring:
		return "configuring"
	}
	return "unknown"
}

// Controller orchestrates the product selection workflow for one parent
// record. It is not safe for concurrent use; all transitions run to
// completion on a single goroutine, and concurrency exists only among the
// outbound record requests inside Commit.
type Controller struct {
	source   CatalogSource
	records  RecordAPI
	notifier Notifier
	nav      Navigator

	recordID    string
	pricebookID string
	kind        model.ParentKind

	phase      Phase
	filterOpen bool

	columns       []model.TableColumn
	configColumns []model.ConfigColumn
	filterFields  []model.FilterField
	filterState   model.FilterState
	candidates    []model.CatalogRow

	initial  []model.CatalogRow
	visible  []model.CatalogRow
	selected []model.CatalogRow
	entries  []model.SelectionEntry

	sortField     string
	sortDirection int
	note          string
	retry         common.RetryOptions
}

// Config holds the collaborators and identities for a controller.
type Config struct {
	Source      CatalogSource
	Records     RecordAPI
	Notifier    Notifier
	Navigator   Navigator
	RecordID    string
	PricebookID string
	Retry       common.RetryOptions
}

// New creates a wizard controller for one parent record.
func New(cfg Config) *Controller {
	return &Controller{
		source:      cfg.Source,
		records:     cfg.Records,
		notifier:    cfg.Notifier,
		nav:         cfg.Navigator,
		recordID:    cfg.RecordID,
		pricebookID: cfg.PricebookID,
		filterState: make(model.FilterState),
		retry:       cfg.Retry,
		phase:       PhaseBrowsing,
	}
}

// Load fetches the catalog, schemas and filter candidates, joins prices
// and builds the initial view sorted ascending by name. Each fetch error
// degrades to an empty list: the wizard stays usable, it just has nothing
// to show.
func (c *Controller) Load(ctx context.Context) {
	err := common.WithRetry(ctx, func() error {
		payload, fetchErr := c.source.FetchCatalog(ctx, c.pricebookID, c.recordID)
		if fetchErr != nil {
			return fetchErr
		}
		c.columns = append([]model.TableColumn{}, payload.Columns...)
		c.columns = append(c.columns, model.TableColumn{
			APIName:  model.FieldListPrice,
			Label:    "List Price",
			Sortable: true,
		})
		c.kind = payload.ParentKind
		joined := catalog.JoinPrices(payload.Products, payload.PriceEntries)
		c.initial = catalog.Sorted(joined, catalog.SortBy(model.FieldName, catalog.Ascending, nil))
		c.visible = c.initial
		c.sortField = model.FieldName
		c.sortDirection = catalog.Ascending
		return nil
	}, c.retry)
	if err != nil {
		slog.Error("Failed to fetch catalog", "record_id", c.recordID, "pricebook_id", c.pricebookID, "error", err)
	}

	if cols, err := c.source.FetchConfigColumns(ctx, c.recordID); err != nil {
		slog.Error("Failed to fetch configuration columns", "record_id", c.recordID, "error", err)
	} else {
		c.configColumns = cols
	}

	if fields, err := c.source.FetchFilterFields(ctx); err != nil {
		slog.Error("Failed to fetch filter fields", "error", err)
	} else {
		c.filterFields = fields
	}

	if rows, err := c.source.FetchFilterCandidates(ctx, c.pricebookID); err != nil {
		slog.Error("Failed to fetch filter candidates", "pricebook_id", c.pricebookID, "error", err)
	} else {
		c.candidates = rows
	}
}

// Phase returns the active wizard phase.
func (c *Controller) Phase() Phase { return c.phase }

// FilterOpen reports whether the filter overlay is showing.
func (c *Controller) FilterOpen() bool { return c.filterOpen }

// Kind returns the parent record's kind.
func (c *Controller) Kind() model.ParentKind { return c.kind }

// RecordID returns the parent record identity.
func (c *Controller) RecordID() string { return c.recordID }

// Columns returns the product table schema.
func (c *Controller) Columns() []model.TableColumn { return c.columns }

// ConfigColumns returns the configuration grid schema.
func (c *Controller) ConfigColumns() []model.ConfigColumn { return c.configColumns }

// FilterFields returns the filterable attributes.
func (c *Controller) FilterFields() []model.FilterField { return c.filterFields }

// Visible returns the rows currently shown in the product table.
func (c *Controller) Visible() []model.CatalogRow { return c.visible }

// Selection returns the current selection entries in pick order.
func (c *Controller) Selection() []model.SelectionEntry { return c.entries }

// Note returns the required-fields note for the configuration grid.
func (c *Controller) Note() string { return c.note }

// CanAdvance reports whether the selection set allows moving to the
// configuration phase.
func (c *Controller) CanAdvance() bool { return len(c.entries) > 0 }

// OpenFilter shows the filter overlay. Browsing only.
func (c *Controller) OpenFilter() {
	if c.phase == PhaseBrowsing {
		c.filterOpen = true
	}
}

// CloseFilter hides the filter overlay without clearing its state.
func (c *Controller) CloseFilter() {
	c.filterOpen = false
}

// SetFilterValue records one filter constraint; an empty value removes it.
func (c *Controller) SetFilterValue(apiName, value string) {
	c.filterState.Set(apiName, value)
}

// ApplyFilter recomputes the visible rows from the current filter state.
// The overlay and its inputs stay open so the user can refine.
func (c *Controller) ApplyFilter() error {
	if c.phase != PhaseBrowsing {
		return common.ErrWrongPhase
	}
	c.visible = catalog.ApplyFilter(c.candidates, c.initial, c.filterState)
	return nil
}

// ClearFilter resets the filter state and restores the original view.
func (c *Controller) ClearFilter() error {
	if c.phase != PhaseBrowsing {
		return common.ErrWrongPhase
	}
	c.filterState = make(model.FilterState)
	c.visible = catalog.ApplyFilter(c.candidates, c.initial, c.filterState)
	return nil
}

// Sort reorders the visible rows by the given field and direction.
func (c *Controller) Sort(field string, direction int) {
	c.visible = catalog.Sorted(c.visible, catalog.SortBy(field, direction, nil))
	c.sortField = field
	c.sortDirection = direction
}

// SortState returns the current sort field and direction.
func (c *Controller) SortState() (string, int) {
	return c.sortField, c.sortDirection
}

// SelectRows merges newly selected rows into the selection set by row
// identity; rows already selected are ignored. The selection entry list is
// rebuilt from the configuration schema so it always mirrors the set 1:1.
func (c *Controller) SelectRows(rows []model.CatalogRow) {
	for _, row := range rows {
		dup := false
		for _, have := range c.selected {
			if have.ID == row.ID {
				dup = true
				break
			}
		}
		if !dup {
			c.selected = append(c.selected, row)
		}
	}
	c.rebuildEntries()
}

// RemoveSelection drops one selection entry by position, along with the
// matching underlying row by its price book entry identity.
func (c *Controller) RemoveSelection(index int) {
	if index < 0 || index >= len(c.entries) {
		return
	}
	entryID := c.entries[index].PricebookEntryID
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	for i, row := range c.selected {
		if row.PricebookEntryID == entryID {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			break
		}
	}
}

func (c *Controller) rebuildEntries() {
	c.entries = make([]model.SelectionEntry, 0, len(c.selected))
	for _, row := range c.selected {
		c.entries = append(c.entries, model.NewSelectionEntry(row, c.configColumns))
	}
}

// Advance moves Browsing into Configuring. The visible view resets to the
// unfiltered initial list so prices reflect the canonical price book join,
// and the required-fields note is set for the parent kind.
func (c *Controller) Advance() error {
	if c.phase != PhaseBrowsing {
		return common.ErrWrongPhase
	}
	if len(c.entries) == 0 {
		return common.ErrEmptySelection
	}
	c.phase = PhaseConfiguring
	c.filterOpen = false
	c.visible = catalog.ApplyFilter(c.candidates, c.initial, nil)
	c.note = fmt.Sprintf("Note: Quantity and %s are required fields.", c.kind.PriceLabel())
	return nil
}

// Retreat moves Configuring back to Browsing. The selection set survives.
func (c *Controller) Retreat() error {
	if c.phase != PhaseConfiguring {
		return common.ErrWrongPhase
	}
	c.phase = PhaseBrowsing
	return nil
}

// DraftEdit is one batch of inline grid edits for a single row, keyed by
// the grid's positional row identifier ("row-0", "row-1", ...).
type DraftEdit struct {
	Fields map[string]string
	RowID  string
}

// MergeDrafts merges grid edits onto the selection entries in place.
// Edits addressing positions beyond the current selection are dropped,
// which defends against a stale grid after removals.
func (c *Controller) MergeDrafts(edits []DraftEdit) {
	for _, edit := range edits {
		idx, ok := parseRowID(edit.RowID)
		if !ok || idx >= len(c.entries) {
			continue
		}
		for k, v := range edit.Fields {
			c.entries[idx].Fields[k] = v
		}
	}
}

func parseRowID(id string) (int, bool) {
	_, num, found := strings.Cut(id, "-")
	if !found {
		return 0, false
	}
	idx, err := strconv.Atoi(num)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// Cancel leaves the wizard and returns to the parent record view.
func (c *Controller) Cancel() {
	c.nav.OpenRecord(c.kind, c.recordID)
}
