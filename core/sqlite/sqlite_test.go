package sqlite

import (
	"path/filepath"
	"testing"
)

func TestDriverInfo(t *testing.T) {
	info := GetInfo()
	if info.DriverName != DriverName() {
		t.Errorf("info.DriverName = %q, want %q", info.DriverName, DriverName())
	}
	if info.DriverType != "purego" && info.DriverType != "cgo" {
		t.Errorf("unexpected driver type %q", info.DriverType)
	}
	if info.IsCGO != IsCGO() {
		t.Error("info.IsCGO disagrees with IsCGO()")
	}
	if info.Package == "" {
		t.Error("empty driver package")
	}
}

func TestOpenCreateQuery(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (k, v) VALUES (?, ?)`, "key", "value"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var v string
	if err := db.QueryRow(`SELECT v FROM kv WHERE k = ?`, "key").Scan(&v); err != nil {
		t.Fatalf("select: %v", err)
	}
	if v != "value" {
		t.Errorf("v = %q, want %q", v, "value")
	}
}

func TestMustOpen(t *testing.T) {
	db := MustOpen(filepath.Join(t.TempDir(), "must.db"))
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
