// Package quran defines the immutable verse and surah data model shared by
// the index, matcher, and processor. A Corpus is loaded once per session and
// treated as read-only for the remainder of the process.
package quran

import (
	"fmt"

	"github.com/tartil-labs/sanad/core/errors"
)

// SurahCount is the number of surahs in the Quran.
const SurahCount = 114

// RevelationType indicates where a surah was revealed.
type RevelationType string

// Revelation type constants.
const (
	Meccan  RevelationType = "Meccan"
	Medinan RevelationType = "Medinan"
)

// IsValid returns true if the revelation type is valid.
func (r RevelationType) IsValid() bool {
	return r == Meccan || r == Medinan
}

// Verse is a single ayah. Identity is (Surah, Ayah); ID is the globally
// unique sequential number across the whole corpus. Never mutated after load.
type Verse struct {
	// ID is the sequential verse number across the corpus (1-6236).
	ID int `json:"id"`

	// Surah is the chapter number (1-114).
	Surah int `json:"surah"`

	// Ayah is the verse number within the surah.
	Ayah int `json:"ayah"`

	// Text is the full Uthmani text with diacritics and variant marks.
	Text string `json:"text"`

	// TextSimple is the bare consonantal rendering.
	TextSimple string `json:"textSimple"`

	// Page is the page number in the standard Uthmani mushaf (optional).
	Page int `json:"page,omitempty"`

	// Juz is the part number, 1-30 (optional).
	Juz int `json:"juz,omitempty"`
}

// Ref returns the verse's reference.
func (v *Verse) Ref() Ref {
	return Ref{Surah: v.Surah, Ayah: v.Ayah}
}

// Key returns the "surah:ayah" form of the verse's identity.
func (v *Verse) Key() string {
	return fmt.Sprintf("%d:%d", v.Surah, v.Ayah)
}

// Surah is a chapter of the Quran. Never mutated after load.
type Surah struct {
	// Number is the surah number (1-114).
	Number int `json:"number"`

	// Name is the Arabic name.
	Name string `json:"name"`

	// EnglishName is the transliterated or English name.
	EnglishName string `json:"englishName"`

	// VerseCount is the number of ayat in this surah.
	VerseCount int `json:"versesCount"`

	// RevelationType is Meccan or Medinan.
	RevelationType RevelationType `json:"revelationType"`
}

// Corpus is the full verse and surah collection in canonical Quranic order
// (surah ascending, ayah ascending within surah). It is built once by a
// loader and then shared read-only; callers pass it explicitly rather than
// reading ambient state.
type Corpus struct {
	Verses []*Verse `json:"verses"`
	Surahs []*Surah `json:"surahs"`
}

// Validate checks internal consistency before the corpus is served.
// A failure here is fatal at startup: duplicate ids, missing fields, or
// verses out of canonical order mean the data cannot be trusted.
func (c *Corpus) Validate() error {
	if len(c.Verses) == 0 {
		return errors.NewCorpus("verses", 0, "corpus contains no verses")
	}
	if len(c.Surahs) == 0 {
		return errors.NewCorpus("surahs", 0, "corpus contains no surahs")
	}

	surahs := make(map[int]*Surah, len(c.Surahs))
	for _, s := range c.Surahs {
		if s.Number < 1 || s.Number > SurahCount {
			return errors.NewCorpus("surah", 0, fmt.Sprintf("surah number %d out of range", s.Number))
		}
		if _, dup := surahs[s.Number]; dup {
			return errors.NewCorpus("surah", 0, fmt.Sprintf("duplicate surah number %d", s.Number))
		}
		if !s.RevelationType.IsValid() {
			return errors.NewCorpus("surah", 0, fmt.Sprintf("surah %d: invalid revelation type %q", s.Number, s.RevelationType))
		}
		if s.VerseCount < 1 {
			return errors.NewCorpus("surah", 0, fmt.Sprintf("surah %d: invalid verse count %d", s.Number, s.VerseCount))
		}
		surahs[s.Number] = s
	}

	seen := make(map[int]bool, len(c.Verses))
	var prev *Verse
	for _, v := range c.Verses {
		if v.ID < 1 {
			return errors.NewCorpus("id", v.ID, "verse id must be positive")
		}
		if seen[v.ID] {
			return errors.NewCorpus("id", v.ID, "duplicate verse id")
		}
		seen[v.ID] = true

		if v.Text == "" {
			return errors.NewCorpus("text", v.ID, "verse text is empty")
		}
		s, ok := surahs[v.Surah]
		if !ok {
			return errors.NewCorpus("surah", v.ID, fmt.Sprintf("verse references unknown surah %d", v.Surah))
		}
		if v.Ayah < 1 || v.Ayah > s.VerseCount {
			return errors.NewCorpus("ayah", v.ID, fmt.Sprintf("ayah %d outside surah %d (1-%d)", v.Ayah, v.Surah, s.VerseCount))
		}

		if prev != nil {
			if v.Surah < prev.Surah || (v.Surah == prev.Surah && v.Ayah <= prev.Ayah) {
				return errors.NewCorpus("ordering", v.ID, "verses out of canonical order")
			}
		}
		prev = v
	}
	return nil
}

// Surah returns the surah with the given number, or nil if absent.
func (c *Corpus) Surah(number int) *Surah {
	for _, s := range c.Surahs {
		if s.Number == number {
			return s
		}
	}
	return nil
}
