package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollisb/linesmith/internal/common"
	"github.com/hollisb/linesmith/internal/model"
)

// ListPricebooks returns every price book, standard first.
func (s *SQLiteStore) ListPricebooks(ctx context.Context) ([]model.Pricebook, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM pricebooks ORDER BY is_standard DESC, name")
	if err != nil {
		return nil, fmt.Errorf("failed to load price books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var books []model.Pricebook
	for rows.Next() {
		var b model.Pricebook
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan price book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// GetParentPricebook returns the price book associated with a parent
// record, or empty when none is set.
func (s *SQLiteStore) GetParentPricebook(ctx context.Context, recordID string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return "", err
	}

	var pricebookID sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT pricebook_id FROM parent_records WHERE id = ?", recordID).Scan(&pricebookID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("parent record %s: %w", recordID, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load parent record %s: %w", recordID, err)
	}
	return pricebookID.String, nil
}

// UpdateParentPricebook persists the price book association.
func (s *SQLiteStore) UpdateParentPricebook(ctx context.Context, recordID, pricebookID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return err
	}
	if err := validateString(pricebookID, "pricebookID"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE parent_records SET pricebook_id = ? WHERE id = ?", pricebookID, recordID)
	if err != nil {
		return fmt.Errorf("failed to update price book for %s: %w", recordID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("parent record %s: %w", recordID, common.ErrNotFound)
	}
	return nil
}

// DeleteChildLineItems removes every line item tied to a parent record.
func (s *SQLiteStore) DeleteChildLineItems(ctx context.Context, recordID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, "DELETE FROM line_items WHERE parent_id = ?", recordID)
	if err != nil {
		return fmt.Errorf("failed to delete line items for %s: %w", recordID, err)
	}
	return nil
}
