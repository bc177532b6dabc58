package model

import "strings"

// SelectionIcon is the pill affordance attached to every selection entry.
const SelectionIcon = "utility:checkout"

// SelectionEntry is a user-chosen catalog row projected into the editable
// configuration-grid fields. Fields holds the projection of the configured
// columns; Label, IconName and EntryType exist only for the removable pill
// and are stripped before commit.
type SelectionEntry struct {
	Fields           map[string]string
	PricebookEntryID string
	Label            string
	IconName         string
	EntryType        string
}

// NewSelectionEntry projects a catalog row through the configuration
// schema. Each configured column copies the matching field from the row;
// the column bound to Product2Id instead carries the row's display name so
// the grid shows a human label rather than a raw identity. Fields the row
// does not have come through empty and stay user-editable.
func NewSelectionEntry(row CatalogRow, columns []ConfigColumn) SelectionEntry {
	fields := make(map[string]string, len(columns))
	for _, col := range columns {
		if col.APIName == FieldProduct2ID {
			fields[col.APIName] = row.Name
			continue
		}
		if v, ok := row.Field(col.APIName); ok {
			fields[col.APIName] = v
		} else {
			fields[col.APIName] = ""
		}
	}
	return SelectionEntry{
		Fields:           fields,
		PricebookEntryID: row.PricebookEntryID,
		Label:            row.Name,
		IconName:         SelectionIcon,
		EntryType:        "icon",
	}
}

// HasRequired reports whether the entry carries a non-blank quantity and
// unit price. The grid stores everything as strings, so "required" means
// non-empty after trimming.
func (e SelectionEntry) HasRequired() bool {
	return strings.TrimSpace(e.Fields[FieldQuantity]) != "" &&
		strings.TrimSpace(e.Fields[FieldUnitPrice]) != ""
}

// CommitFields returns the fields to persist for this entry: the projection
// minus the UI-only fields, plus the price book entry reference and the
// parent linkage.
func (e SelectionEntry) CommitFields(kind ParentKind, parentID string) map[string]string {
	out := make(map[string]string, len(e.Fields)+2)
	for k, v := range e.Fields {
		if k == FieldListPrice || k == FieldProduct2ID {
			continue
		}
		out[k] = v
	}
	out[FieldPricebookEntry] = e.PricebookEntryID
	out[kind.LinkageField()] = parentID
	return out
}
