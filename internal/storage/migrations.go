package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS products (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					product_code TEXT,
					description TEXT,
					family TEXT,
					is_active INTEGER NOT NULL DEFAULT 1
				)`,
				`CREATE INDEX idx_products_name ON products(name)`,

				`CREATE TABLE IF NOT EXISTS pricebooks (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					is_standard INTEGER NOT NULL DEFAULT 0
				)`,

				`CREATE TABLE IF NOT EXISTS pricebook_entries (
					id TEXT PRIMARY KEY,
					pricebook_id TEXT NOT NULL REFERENCES pricebooks(id),
					product_id TEXT NOT NULL REFERENCES products(id),
					unit_price REAL NOT NULL,
					UNIQUE(pricebook_id, product_id)
				)`,
				`CREATE INDEX idx_entries_pricebook ON pricebook_entries(pricebook_id)`,

				`CREATE TABLE IF NOT EXISTS parent_records (
					id TEXT PRIMARY KEY,
					kind TEXT NOT NULL,
					name TEXT NOT NULL,
					pricebook_id TEXT REFERENCES pricebooks(id)
				)`,

				`CREATE TABLE IF NOT EXISTS line_items (
					id TEXT PRIMARY KEY,
					parent_id TEXT NOT NULL REFERENCES parent_records(id),
					child_type TEXT NOT NULL,
					pricebook_entry_id TEXT NOT NULL REFERENCES pricebook_entries(id),
					quantity REAL NOT NULL,
					unit_price REAL NOT NULL,
					service_date TEXT,
					description TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(parent_id, pricebook_entry_id)
				)`,
				`CREATE INDEX idx_line_items_parent ON line_items(parent_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Field set metadata for table, filter and configuration schemas",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS field_sets (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					set_name TEXT NOT NULL,
					api_name TEXT NOT NULL,
					label TEXT NOT NULL,
					field_type TEXT NOT NULL,
					position INTEGER NOT NULL,
					UNIQUE(set_name, api_name)
				)
			`)
			return err
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
