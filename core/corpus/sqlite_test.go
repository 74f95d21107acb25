package corpus

import (
	"path/filepath"
	"testing"

	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/sqlite"
	"github.com/tartil-labs/sanad/internal/corpustest"
)

func TestSQLiteRoundTrip(t *testing.T) {
	want := corpustest.Fixture()
	path := filepath.Join(t.TempDir(), "quran.db")

	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := WriteDB(db, want); err != nil {
		t.Fatalf("WriteDB: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSQLite(path)
	if err != nil {
		t.Fatalf("LoadSQLite: %v", err)
	}
	assertFixture(t, got, want)

	for i, s := range got.Surahs {
		if *s != *want.Surahs[i] {
			t.Errorf("surah %d: %+v != %+v", i, s, want.Surahs[i])
		}
	}
}

func TestReadDBRejectsInconsistentData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		t.Fatal(err)
	}
	// A verse pointing at a surah the metadata table does not carry.
	if _, err := db.Exec(`INSERT INTO surahs VALUES (1, 'الفاتحة', 'Al-Fatiha', 7, 'Meccan')`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO verses (id, surah, ayah, text) VALUES (1, 2, 1, 'نص')`); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadDB(db); !errors.Is(err, errors.ErrCorruptCorpus) {
		t.Errorf("err = %v, want ErrCorruptCorpus", err)
	}
}
