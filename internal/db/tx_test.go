package db

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE rows (id INTEGER PRIMARY KEY, position INTEGER NOT NULL)`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	return db
}

func rowCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM rows`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count
}

func TestWithTx_Success(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO rows (position) VALUES (0)`)
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	if got := rowCount(t, db); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)

	testErr := errors.New("shift collision")
	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO rows (position) VALUES (0)`); err != nil {
			return err
		}
		return testErr
	})
	if !errors.Is(err, testErr) {
		t.Fatalf("WithTx error = %v, want %v", err, testErr)
	}

	if got := rowCount(t, db); got != 0 {
		t.Errorf("count = %d, want 0 (rolled back)", got)
	}
}

func TestWithTx_MultipleStatements(t *testing.T) {
	db := setupTestDB(t)

	// A position rewrite touches every row; all of it lands or none.
	err := WithTx(db, func(tx *sql.Tx) error {
		for pos := 0; pos < 3; pos++ {
			if _, err := tx.Exec(`INSERT INTO rows (position) VALUES (?)`, pos); err != nil {
				return err
			}
		}
		_, err := tx.Exec(`UPDATE rows SET position = position + 1`)
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	if got := rowCount(t, db); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
	var min int
	if err := db.QueryRow(`SELECT MIN(position) FROM rows`).Scan(&min); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if min != 1 {
		t.Errorf("min position = %d, want 1", min)
	}
}

func TestNullInt64ToPtr(t *testing.T) {
	if ptr := NullInt64ToPtr(sql.NullInt64{Int64: 42, Valid: true}); ptr == nil || *ptr != 42 {
		t.Errorf("NullInt64ToPtr(valid 42) = %v, want 42", ptr)
	}
	if ptr := NullInt64ToPtr(sql.NullInt64{Int64: 42, Valid: false}); ptr != nil {
		t.Errorf("NullInt64ToPtr(invalid) = %d, want nil", *ptr)
	}
	if ptr := NullInt64ToPtr(sql.NullInt64{Int64: 0, Valid: true}); ptr == nil || *ptr != 0 {
		t.Error("NullInt64ToPtr(valid 0) should be a non-nil pointer to 0")
	}
}

func TestNullInt64Value(t *testing.T) {
	tests := []struct {
		n    sql.NullInt64
		want int64
	}{
		{sql.NullInt64{Int64: 123, Valid: true}, 123},
		{sql.NullInt64{Int64: 123, Valid: false}, 0},
		{sql.NullInt64{Int64: 0, Valid: true}, 0},
	}

	for _, tt := range tests {
		if got := NullInt64Value(tt.n); got != tt.want {
			t.Errorf("NullInt64Value(%+v) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
