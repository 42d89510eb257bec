package store

import (
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMemory(t *testing.T) {
	db := testDB(t)
	if db.Path != ":memory:" {
		t.Errorf("Path = %q, want :memory:", db.Path)
	}
}

func TestSchemaVersion(t *testing.T) {
	db := testDB(t)

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 2 {
		t.Errorf("SchemaVersion = %d, want 2", v)
	}
}

func TestTablesExist(t *testing.T) {
	db := testDB(t)

	tables := []string{"schema_versions", "subjects", "topics"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db := testDB(t)

	// Running migrate again should be a no-op
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 2 {
		t.Errorf("SchemaVersion after re-migrate = %d, want 2", v)
	}
}

func TestValidID(t *testing.T) {
	db := testDB(t)

	s, err := db.InsertSubject("Math", nowUTC())
	if err != nil {
		t.Fatalf("InsertSubject: %v", err)
	}
	if !ValidID(s.ID) {
		t.Errorf("ValidID(%q) = false, want true", s.ID)
	}
	if ValidID("not-a-uuid") {
		t.Error("ValidID(not-a-uuid) = true, want false")
	}
	if ValidID("") {
		t.Error("ValidID(empty) = true, want false")
	}
}
