package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
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
				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					hash TEXT NOT NULL,
					date DATETIME NOT NULL,
					vendor TEXT NOT NULL,
					amount REAL NOT NULL,
					type TEXT NOT NULL,
					category TEXT NOT NULL,
					description TEXT,
					tags TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category)`,
				`CREATE INDEX idx_transactions_hash ON transactions(hash)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration 1: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed fixed spending categories",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS categories (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT UNIQUE NOT NULL,
				description TEXT
			)`); err != nil {
				return fmt.Errorf("migration 2: %w", err)
			}
			seed := []struct{ name, description string }{
				{"food", "Restaurants, cafes and food delivery"},
				{"transportation", "Cabs, fuel, transit and tolls"},
				{"shopping", "Online and offline retail"},
				{"entertainment", "Streaming, movies and games"},
				{"utilities", "Bills, recharges and connectivity"},
				{"healthcare", "Hospitals, pharmacies and diagnostics"},
				{"education", "Courses, tuition and fees"},
				{"groceries", "Grocery and household supplies"},
				{"other", "Everything uncategorized"},
			}
			for _, c := range seed {
				if _, err := tx.Exec(
					`INSERT OR IGNORE INTO categories (name, description) VALUES (?, ?)`,
					c.name, c.description,
				); err != nil {
					return fmt.Errorf("migration 2: seed %s: %w", c.name, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending migrations, tracking progress via the
// SQLite user_version pragma.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		// PRAGMA does not support placeholders.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Debug("Applied migration", "version", m.Version, "description", m.Description)
	}

	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to re-read schema version: %w", err)
	}
	if current != ExpectedSchemaVersion {
		return fmt.Errorf("database is at schema version %d, expected %d", current, ExpectedSchemaVersion)
	}

	return nil
}
