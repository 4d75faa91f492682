package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
func InitSchema(db *sql.DB) error {
	return createSalariesTable(db)
}

func createSalariesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS salaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		name_normalized TEXT NOT NULL,
		title TEXT,
		department TEXT,
		campus TEXT,
		base_pay TEXT,
		gross_pay TEXT,
		hire_date TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_salaries_name_normalized ON salaries(name_normalized);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create salaries table: %w", err)
	}

	return nil
}
