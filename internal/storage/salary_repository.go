package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rusoc/rusoc-go/internal/stringutil"
)

// ReplaceSalaries swaps the full salary table contents in one
// transaction. Loads are wholesale; there is no incremental update.
func (db *DB) ReplaceSalaries(ctx context.Context, records []SalaryRecord) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM salaries"); err != nil {
		return fmt.Errorf("failed to clear salaries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO salaries (name, name_normalized, title, department, campus, base_pay, gross_pay, hire_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.Name, stringutil.NormalizeLower(r.Name),
			r.Title, r.Department, r.Campus, r.BasePay, r.GrossPay, r.HireDate)
		if err != nil {
			return fmt.Errorf("failed to insert salary for %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit salaries: %w", err)
	}
	return nil
}

// CountSalaries returns the number of stored salary records.
func (db *DB) CountSalaries(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM salaries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count salaries: %w", err)
	}
	return count, nil
}

// SalariesByExactName returns records whose normalized name equals any
// of the given normalized candidates, in insertion order.
func (db *DB) SalariesByExactName(ctx context.Context, normalized ...string) ([]SalaryRecord, error) {
	if len(normalized) == 0 {
		return nil, nil
	}

	query := "SELECT name, title, department, campus, base_pay, gross_pay, hire_date FROM salaries WHERE name_normalized IN (?"
	args := []any{normalized[0]}
	for _, n := range normalized[1:] {
		query += ", ?"
		args = append(args, n)
	}
	query += ") ORDER BY id"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries by name: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSalaries(rows)
}

// AllSalaries returns every stored record in insertion order.
func (db *DB) AllSalaries(ctx context.Context) ([]SalaryRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT name, title, department, campus, base_pay, gross_pay, hire_date FROM salaries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSalaries(rows)
}

func scanSalaries(rows *sql.Rows) ([]SalaryRecord, error) {
	var records []SalaryRecord
	for rows.Next() {
		var r SalaryRecord
		if err := rows.Scan(&r.Name, &r.Title, &r.Department, &r.Campus, &r.BasePay, &r.GrossPay, &r.HireDate); err != nil {
			return nil, fmt.Errorf("failed to scan salary row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read salary rows: %w", err)
	}
	return records, nil
}
