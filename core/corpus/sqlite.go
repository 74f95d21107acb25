package corpus

import (
	"database/sql"

	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/quran"
	"github.com/tartil-labs/sanad/core/sqlite"
)

// Schema is the table layout of a SQLite corpus export. Exports produced
// by the processing scripts follow it; LoadSQLite expects it.
const Schema = `
CREATE TABLE IF NOT EXISTS surahs (
	number          INTEGER PRIMARY KEY,
	name            TEXT NOT NULL,
	english_name    TEXT NOT NULL,
	verses_count    INTEGER NOT NULL,
	revelation_type TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS verses (
	id          INTEGER PRIMARY KEY,
	surah       INTEGER NOT NULL REFERENCES surahs(number),
	ayah        INTEGER NOT NULL,
	text        TEXT NOT NULL,
	text_simple TEXT NOT NULL DEFAULT '',
	page        INTEGER NOT NULL DEFAULT 0,
	juz         INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS verses_ref ON verses(surah, ayah);
`

// LoadSQLite loads a corpus from a SQLite export at path. The database is
// opened read-only; verses are read in canonical order.
func LoadSQLite(path string) (*quran.Corpus, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open corpus database %s", path)
	}
	defer db.Close()
	return ReadDB(db)
}

// ReadDB reads a full corpus from an already-open database.
func ReadDB(db *sql.DB) (*quran.Corpus, error) {
	surahs, err := readSurahs(db)
	if err != nil {
		return nil, err
	}
	verses, err := readVerses(db)
	if err != nil {
		return nil, err
	}

	c := &quran.Corpus{Verses: verses, Surahs: surahs}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// WriteDB stores a corpus into an open database, creating the schema if
// needed. Used by export tooling and tests.
func WriteDB(db *sql.DB, c *quran.Corpus) error {
	if _, err := db.Exec(Schema); err != nil {
		return errors.Wrap(err, "create corpus schema")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range c.Surahs {
		_, err := tx.Exec(
			`INSERT INTO surahs (number, name, english_name, verses_count, revelation_type) VALUES (?, ?, ?, ?, ?)`,
			s.Number, s.Name, s.EnglishName, s.VerseCount, string(s.RevelationType),
		)
		if err != nil {
			return errors.Wrapf(err, "insert surah %d", s.Number)
		}
	}
	for _, v := range c.Verses {
		_, err := tx.Exec(
			`INSERT INTO verses (id, surah, ayah, text, text_simple, page, juz) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.Surah, v.Ayah, v.Text, v.TextSimple, v.Page, v.Juz,
		)
		if err != nil {
			return errors.Wrapf(err, "insert verse %d", v.ID)
		}
	}
	return tx.Commit()
}

func readSurahs(db *sql.DB) ([]*quran.Surah, error) {
	rows, err := db.Query(`SELECT number, name, english_name, verses_count, revelation_type FROM surahs ORDER BY number`)
	if err != nil {
		return nil, errors.Wrap(err, "query surahs")
	}
	defer rows.Close()

	var surahs []*quran.Surah
	for rows.Next() {
		var s quran.Surah
		var rev string
		if err := rows.Scan(&s.Number, &s.Name, &s.EnglishName, &s.VerseCount, &rev); err != nil {
			return nil, errors.Wrap(err, "scan surah")
		}
		s.RevelationType = quran.RevelationType(rev)
		surahs = append(surahs, &s)
	}
	return surahs, rows.Err()
}

func readVerses(db *sql.DB) ([]*quran.Verse, error) {
	rows, err := db.Query(`SELECT id, surah, ayah, text, text_simple, page, juz FROM verses ORDER BY surah, ayah`)
	if err != nil {
		return nil, errors.Wrap(err, "query verses")
	}
	defer rows.Close()

	var verses []*quran.Verse
	for rows.Next() {
		var v quran.Verse
		if err := rows.Scan(&v.ID, &v.Surah, &v.Ayah, &v.Text, &v.TextSimple, &v.Page, &v.Juz); err != nil {
			return nil, errors.Wrap(err, "scan verse")
		}
		verses = append(verses, &v)
	}
	return verses, rows.Err()
}
