// Package model defines the core data types shared across the wizard.
package model

// Well-known field API names. The catalog and configuration schemas are
// metadata-driven, but a handful of fields have special handling in the
// selection and commit paths.
const (
	FieldName           = "Name"
	FieldQuantity       = "Quantity"
	FieldUnitPrice      = "UnitPrice"
	FieldListPrice      = "ListPrice"
	FieldProduct2ID     = "Product2Id"
	FieldPricebookEntry = "PricebookEntryId"
)

// CatalogRow is one sellable product candidate. Price fields stay empty
// until the price book join runs; everything else is immutable after fetch.
// Values are kept as display strings because the grid edits, validation and
// filtering all operate on the rendered representation.
type CatalogRow struct {
	Fields           map[string]string
	ID               string
	Name             string
	UnitPrice        string
	ListPrice        string
	PricebookEntryID string
}

// Field resolves an API name against the row, covering both the fixed
// fields and the metadata-driven extras.
func (r CatalogRow) Field(apiName string) (string, bool) {
	switch apiName {
	case "Id":
		return r.ID, true
	case FieldName:
		return r.Name, true
	case FieldUnitPrice:
		return r.UnitPrice, r.UnitPrice != ""
	case FieldListPrice:
		return r.ListPrice, r.ListPrice != ""
	case FieldPricebookEntry:
		return r.PricebookEntryID, r.PricebookEntryID != ""
	}
	v, ok := r.Fields[apiName]
	return v, ok
}

// Priced reports whether the row matched a price book entry.
func (r CatalogRow) Priced() bool {
	return r.PricebookEntryID != ""
}

// Clone returns a deep copy so derived views never alias the source maps.
func (r CatalogRow) Clone() CatalogRow {
	c := r
	if r.Fields != nil {
		c.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			c.Fields[k] = v
		}
	}
	return c
}

// PriceEntry is one price book binding for a product.
type PriceEntry struct {
	ID         string
	Product2ID string
	UnitPrice  string
}

// FilterField describes one filterable catalog attribute.
type FilterField struct {
	APIName string
	Label   string
	Type    string
}

// ConfigColumn describes one attribute of a selected row in the
// configuration grid. Type maps to an input widget and is purely
// presentational.
type ConfigColumn struct {
	APIName             string
	Label               string
	Type                string
	Editable            bool
	DisplayReadOnlyIcon bool
}

// TableColumn describes one column of the browsable product table.
type TableColumn struct {
	APIName  string
	Label    string
	Sortable bool
}

// Pricebook is a named price list selectable for a parent record.
type Pricebook struct {
	ID   string
	Name string
}
