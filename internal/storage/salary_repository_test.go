package storage

import (
	"context"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleSalaries() []SalaryRecord {
	return []SalaryRecord{
		{
			Name:       "Smith, John",
			Title:      "Professor",
			Department: "Computer Science",
			Campus:     "New Brunswick",
			BasePay:    "$145,000.00",
			GrossPay:   "$152,340.10",
			HireDate:   "2010-09-01",
		},
		{
			Name:       "Doe, Jane",
			Title:      "Associate Professor",
			Department: "Mathematics",
			Campus:     "New Brunswick",
			BasePay:    "$120,000.00",
			GrossPay:   "$121,500.00",
			HireDate:   "2015-01-15",
		},
	}
}

func TestReplaceSalaries(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	ctx := context.Background()

	if err := db.ReplaceSalaries(ctx, sampleSalaries()); err != nil {
		t.Fatalf("ReplaceSalaries() error = %v", err)
	}

	count, err := db.CountSalaries(ctx)
	if err != nil {
		t.Fatalf("CountSalaries() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	// Replacement is wholesale
	if err := db.ReplaceSalaries(ctx, sampleSalaries()[:1]); err != nil {
		t.Fatalf("second ReplaceSalaries() error = %v", err)
	}
	count, err = db.CountSalaries(ctx)
	if err != nil {
		t.Fatalf("CountSalaries() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count after replace = %d, want 1", count)
	}
}

func TestSalariesByExactName(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	ctx := context.Background()
	if err := db.ReplaceSalaries(ctx, sampleSalaries()); err != nil {
		t.Fatalf("ReplaceSalaries() error = %v", err)
	}

	got, err := db.SalariesByExactName(ctx, "smith, john")
	if err != nil {
		t.Fatalf("SalariesByExactName() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Smith, John" {
		t.Fatalf("got %+v, want Smith, John", got)
	}
	if got[0].BasePay != "$145,000.00" {
		t.Errorf("BasePay = %q", got[0].BasePay)
	}

	// Multiple candidate spellings in one query
	got, err = db.SalariesByExactName(ctx, "john smith", "smith, john")
	if err != nil {
		t.Fatalf("SalariesByExactName() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d records, want 1", len(got))
	}

	// Unknown name is an empty success
	got, err = db.SalariesByExactName(ctx, "nobody here")
	if err != nil {
		t.Fatalf("SalariesByExactName() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}

	// No candidates at all
	got, err = db.SalariesByExactName(ctx)
	if err != nil {
		t.Fatalf("SalariesByExactName() error = %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestAllSalaries(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	ctx := context.Background()
	if err := db.ReplaceSalaries(ctx, sampleSalaries()); err != nil {
		t.Fatalf("ReplaceSalaries() error = %v", err)
	}

	got, err := db.AllSalaries(ctx)
	if err != nil {
		t.Fatalf("AllSalaries() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "Smith, John" || got[1].Name != "Doe, Jane" {
		t.Errorf("got %+v, want insertion order preserved", got)
	}
}
