package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/hollisb/linesmith/internal/common"
	"github.com/hollisb/linesmith/internal/model"
	"github.com/hollisb/linesmith/internal/wizard"
)

// Names of the field sets driving the metadata-driven schemas.
const (
	fieldSetProductTable  = "product_table"
	fieldSetFilter        = "filter"
	fieldSetConfiguration = "configuration"
)

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FetchCatalog returns the product table schema, the parent's kind, the
// active products and the price book's entries.
func (s *SQLiteStore) FetchCatalog(ctx context.Context, pricebookID, recordID string) (*wizard.CatalogPayload, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(pricebookID, "pricebookID"); err != nil {
		return nil, err
	}

	kind, err := s.parentKind(ctx, recordID)
	if err != nil {
		return nil, err
	}

	columns, err := s.tableColumns(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.priceEntries(ctx, pricebookID)
	if err != nil {
		return nil, err
	}

	return &wizard.CatalogPayload{
		Columns:      columns,
		ParentKind:   kind,
		Products:     products,
		PriceEntries: entries,
	}, nil
}

func (s *SQLiteStore) parentKind(ctx context.Context, recordID string) (model.ParentKind, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT kind FROM parent_records WHERE id = ?", recordID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("parent record %s: %w", recordID, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load parent record %s: %w", recordID, err)
	}
	return model.ParseParentKind(raw)
}

func (s *SQLiteStore) tableColumns(ctx context.Context) ([]model.TableColumn, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT api_name, label FROM field_sets WHERE set_name = ? ORDER BY position",
		fieldSetProductTable)
	if err != nil {
		return nil, fmt.Errorf("failed to load product table columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []model.TableColumn
	for rows.Next() {
		var col model.TableColumn
		if err := rows.Scan(&col.APIName, &col.Label); err != nil {
			return nil, fmt.Errorf("failed to scan table column: %w", err)
		}
		// only the name column sorts from the table header
		col.Sortable = col.APIName == model.FieldName
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (s *SQLiteStore) products(ctx context.Context) ([]model.CatalogRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(product_code, ''), COALESCE(description, ''), COALESCE(family, '')
		FROM products WHERE is_active = 1 ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []model.CatalogRow
	for rows.Next() {
		var row model.CatalogRow
		var code, desc, family string
		if err := rows.Scan(&row.ID, &row.Name, &code, &desc, &family); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		row.Fields = map[string]string{
			"ProductCode": code,
			"Description": desc,
			"Family":      family,
		}
		products = append(products, row)
	}
	return products, rows.Err()
}

func (s *SQLiteStore) priceEntries(ctx context.Context, pricebookID string) ([]model.PriceEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, product_id, unit_price FROM pricebook_entries WHERE pricebook_id = ?",
		pricebookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load price book entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.PriceEntry
	for rows.Next() {
		var e model.PriceEntry
		var price float64
		if err := rows.Scan(&e.ID, &e.Product2ID, &price); err != nil {
			return nil, fmt.Errorf("failed to scan price book entry: %w", err)
		}
		e.UnitPrice = formatPrice(price)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FetchConfigColumns returns the configuration grid schema. The mapping
// mirrors the platform widget rules: the product reference and list price
// are read-only, date fields get a date widget, numeric fields a number
// widget, everything else free text.
func (s *SQLiteStore) FetchConfigColumns(ctx context.Context, _ string) ([]model.ConfigColumn, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT api_name, label, field_type FROM field_sets WHERE set_name = ? ORDER BY position",
		fieldSetConfiguration)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []model.ConfigColumn
	for rows.Next() {
		var apiName, label, fieldType string
		if err := rows.Scan(&apiName, &label, &fieldType); err != nil {
			return nil, fmt.Errorf("failed to scan configuration column: %w", err)
		}
		columns = append(columns, configColumn(apiName, label, fieldType))
	}
	return columns, rows.Err()
}

func configColumn(apiName, label, fieldType string) model.ConfigColumn {
	switch {
	case apiName == model.FieldProduct2ID || apiName == model.FieldListPrice:
		return model.ConfigColumn{APIName: apiName, Label: label, DisplayReadOnlyIcon: true}
	case fieldType == "DATE":
		return model.ConfigColumn{APIName: apiName, Label: label, Editable: true, Type: "date"}
	case fieldType == "DOUBLE" || fieldType == "PERCENT" || fieldType == "CURRENCY":
		return model.ConfigColumn{APIName: apiName, Label: label, Editable: true, Type: "number"}
	default:
		return model.ConfigColumn{APIName: apiName, Label: label, Editable: true, Type: "text"}
	}
}

// FetchFilterFields returns the filterable product attributes.
func (s *SQLiteStore) FetchFilterFields(ctx context.Context) ([]model.FilterField, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT api_name, label, field_type FROM field_sets WHERE set_name = ? ORDER BY position",
		fieldSetFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter fields: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var fields []model.FilterField
	for rows.Next() {
		var f model.FilterField
		if err := rows.Scan(&f.APIName, &f.Label, &f.Type); err != nil {
			return nil, fmt.Errorf("failed to scan filter field: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// FetchFilterCandidates returns the flat product projection the filter
// matches against.
func (s *SQLiteStore) FetchFilterCandidates(ctx context.Context, pricebookID string) ([]model.CatalogRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(pricebookID, "pricebookID"); err != nil {
		return nil, err
	}
	return s.products(ctx)
}
