package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hollisb/linesmith/internal/model"
)

// Error codes carried on structured record errors.
const (
	codeRequiredMissing = "REQUIRED_FIELD_MISSING"
	codeInvalidType     = "INVALID_TYPE"
	codeInvalidParent   = "INVALID_CROSS_REFERENCE_KEY"
	codeDuplicateValue  = "DUPLICATE_VALUE"
)

var childLinkage = map[string]string{
	"OpportunityLineItem": "OpportunityId",
	"QuoteLineItem":       "QuoteId",
	"OrderItem":           "OrderId",
}

// CreateChildRecord inserts one line item. Constraint violations come back
// as structured *model.RecordError values so callers can surface the most
// specific message and drive rollback decisions.
func (s *SQLiteStore) CreateChildRecord(ctx context.Context, childType string, fields map[string]string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	linkage, ok := childLinkage[childType]
	if !ok {
		return "", fmt.Errorf("unsupported child record type %q", childType)
	}

	parentID := fields[linkage]
	if parentID == "" {
		return "", fieldError(childType, linkage, codeRequiredMissing, "Parent reference is required")
	}
	entryID := fields[model.FieldPricebookEntry]
	if entryID == "" {
		return "", fieldError(childType, model.FieldPricebookEntry, codeRequiredMissing, "Price book entry is required")
	}

	quantity, err := requiredNumber(childType, fields, model.FieldQuantity)
	if err != nil {
		return "", err
	}
	unitPrice, err := requiredNumber(childType, fields, model.FieldUnitPrice)
	if err != nil {
		return "", err
	}

	var exists int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM parent_records WHERE id = ?", parentID).Scan(&exists); err != nil {
		return "", fmt.Errorf("failed to check parent record: %w", err)
	}
	if exists == 0 {
		return "", &model.RecordError{
			Op:        "create " + childType,
			RowErrors: []model.ErrorDetail{{Code: codeInvalidParent, Message: "Parent record does not exist: " + parentID}},
		}
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO line_items (id, parent_id, child_type, pricebook_entry_id, quantity, unit_price, service_date, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, parentID, childType, entryID, quantity, unitPrice,
		nullable(fields["ServiceDate"]), nullable(fields["Description"]))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", &model.RecordError{
				Op:        "create " + childType,
				RowErrors: []model.ErrorDetail{{Code: codeDuplicateValue, Message: "This product is already added to the record"}},
			}
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return "", &model.RecordError{
				Op:        "create " + childType,
				RowErrors: []model.ErrorDetail{{Code: codeInvalidParent, Message: "Price book entry does not exist: " + entryID}},
			}
		}
		return "", fmt.Errorf("failed to insert %s: %w", childType, err)
	}
	return id, nil
}

// DeleteRecord removes a line item. Deleting a record that no longer
// exists returns an entity-is-deleted record error, which rollback treats
// as success.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM line_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return &model.RecordError{
			Op:        "delete " + id,
			RowErrors: []model.ErrorDetail{{Code: model.CodeEntityDeleted, Message: "entity is deleted"}},
		}
	}
	return nil
}

func fieldError(childType, field, code, message string) *model.RecordError {
	return &model.RecordError{
		Op:          "create " + childType,
		FieldErrors: map[string][]model.ErrorDetail{field: {{Code: code, Message: message}}},
	}
}

func requiredNumber(childType string, fields map[string]string, field string) (float64, error) {
	raw := strings.TrimSpace(fields[field])
	if raw == "" {
		return 0, fieldError(childType, field, codeRequiredMissing, field+" is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fieldError(childType, field, codeInvalidType, "Invalid number: "+raw)
	}
	return v, nil
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// lineItemCount reports how many line items a parent currently has. Used
// by tests to assert all-or-nothing outcomes.
func (s *SQLiteStore) lineItemCount(ctx context.Context, parentID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM line_items WHERE parent_id = ?", parentID).Scan(&n)
	return n, err
}
