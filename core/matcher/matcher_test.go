package matcher

import (
	"testing"

	"github.com/tartil-labs/sanad/core/arabic"
	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/index"
	"github.com/tartil-labs/sanad/internal/corpustest"
)

func newFixtureMatcher(t *testing.T) *Matcher {
	t.Helper()
	ix, err := index.Build(corpustest.Fixture())
	if err != nil {
		t.Fatalf("index.Build: %v", err)
	}
	m, err := New(ix, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNewRejectsBadConfig(t *testing.T) {
	ix, err := index.Build(corpustest.Fixture())
	if err != nil {
		t.Fatalf("index.Build: %v", err)
	}

	bad := []Config{
		{FuzzyThreshold: 1.5, MaxSuggestions: 5, MaxCandidates: 50},
		{FuzzyThreshold: -0.1, MaxSuggestions: 5, MaxCandidates: 50},
		{FuzzyThreshold: 0.85, MaxSuggestions: -1, MaxCandidates: 50},
		{FuzzyThreshold: 0.85, PartialFloor: 2, MaxSuggestions: 5, MaxCandidates: 50},
		{FuzzyThreshold: 0.85, MaxSuggestions: 5, MaxCandidates: 0},
	}
	for _, cfg := range bad {
		if _, err := New(ix, cfg); !errors.Is(err, errors.ErrInvalidConfig) {
			t.Errorf("New(%+v) err = %v, want ErrInvalidConfig", cfg, err)
		}
	}
}

// Every corpus verse must resolve to itself through the exact tier.
func TestExactMatchProperty(t *testing.T) {
	m := newFixtureMatcher(t)

	for _, v := range m.Index().Verses() {
		res := m.Validate(v.Text)
		if res.MatchType != MatchExact {
			t.Errorf("%s: match_type = %s, want exact", v.Key(), res.MatchType)
			continue
		}
		if res.Confidence != 1.0 {
			t.Errorf("%s: confidence = %f, want 1.0", v.Key(), res.Confidence)
		}
		if res.MatchedVerse.ID != v.ID {
			t.Errorf("%s: matched verse %d, want %d", v.Key(), res.MatchedVerse.ID, v.ID)
		}
	}
}

func TestValidateBasmala(t *testing.T) {
	m := newFixtureMatcher(t)

	res := m.Validate("بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ")
	if !res.IsValid {
		t.Fatal("basmala reported invalid")
	}
	if res.MatchType != MatchExact {
		t.Errorf("match_type = %s, want exact", res.MatchType)
	}
	if res.Reference() != "1:1" {
		t.Errorf("reference = %q, want 1:1", res.Reference())
	}
}

// Stripping diacritics must still land on the same verse with confidence 1.0.
func TestNormalizationInvariance(t *testing.T) {
	m := newFixtureMatcher(t)

	for _, v := range m.Index().Verses() {
		perturbed := arabic.RemoveDiacritics(v.Text)
		res := m.Validate(perturbed)
		if res.MatchType != MatchExact && res.MatchType != MatchNormalized {
			t.Errorf("%s: match_type = %s, want exact or normalized", v.Key(), res.MatchType)
			continue
		}
		if res.Confidence != 1.0 {
			t.Errorf("%s: confidence = %f, want 1.0", v.Key(), res.Confidence)
		}
		if !res.Ref.Contains(v.Surah, v.Ayah) {
			t.Errorf("%s: resolved to %s", v.Key(), res.Reference())
		}
	}
}

// 2:1 and 3:1 collide on the normalized form; raw edit distance picks the
// closer one.
func TestNormalizedCollisionResolution(t *testing.T) {
	m := newFixtureMatcher(t)

	res := m.Validate("الم")
	if res.MatchType != MatchNormalized {
		t.Fatalf("match_type = %s, want normalized", res.MatchType)
	}
	if res.Reference() != "2:1" {
		t.Errorf("collision resolved to %s, want 2:1 (smaller edit distance)", res.Reference())
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", res.Confidence)
	}
}

func TestPartialMatchWithinVerse(t *testing.T) {
	m := newFixtureMatcher(t)

	// First three of the basmala's four words.
	res := m.Validate("بسم الله الرحمن")
	if res.MatchType != MatchPartial {
		t.Fatalf("match_type = %s, want partial", res.MatchType)
	}
	if res.Reference() != "1:1" {
		t.Errorf("reference = %q, want 1:1", res.Reference())
	}
	if res.Confidence != 0.75 {
		t.Errorf("confidence = %f, want 0.75 coverage", res.Confidence)
	}
}

func TestPartialMatchBelowFloorRejected(t *testing.T) {
	m := newFixtureMatcher(t)

	// One word out of 1:7's ten: coverage 0.1, far below the floor, and
	// too distant for fuzzy.
	res := m.Validate("ٱلْمَغْضُوبِ")
	if res.MatchType == MatchPartial {
		t.Errorf("coverage below floor still matched partial (confidence %f)", res.Confidence)
	}
}

// A span concatenating consecutive verses resolves to a range reference.
func TestPartialMatchSpansVerseRange(t *testing.T) {
	m := newFixtureMatcher(t)

	v1, err := m.GetVerse(112, 1)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := m.GetVerse(112, 2)
	if err != nil {
		t.Fatal(err)
	}

	res := m.Validate(v1.Text + " " + v2.Text)
	if res.MatchType != MatchPartial {
		t.Fatalf("match_type = %s, want partial", res.MatchType)
	}
	if res.Reference() != "112:1-2" {
		t.Errorf("reference = %q, want 112:1-2", res.Reference())
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %f, want full coverage", res.Confidence)
	}
	if res.MatchedVerse.Ayah != 1 {
		t.Errorf("matched verse should be the range start, got ayah %d", res.MatchedVerse.Ayah)
	}
}

func TestFuzzyMatchSubstitutedWord(t *testing.T) {
	m := newFixtureMatcher(t)

	// 1:1 with الرحمن replaced by a second الرحيم.
	res := m.Validate("بِسْمِ ٱللَّهِ ٱلرَّحِيمِ ٱلرَّحِيمِ")
	if res.MatchType != MatchFuzzy {
		t.Fatalf("match_type = %s, want fuzzy", res.MatchType)
	}
	if res.Reference() != "1:1" {
		t.Errorf("reference = %q, want 1:1", res.Reference())
	}
	if res.Confidence < 0.85 || res.Confidence >= 1.0 {
		t.Errorf("confidence = %f, want within [0.85,1)", res.Confidence)
	}
	if len(res.Differences) == 0 {
		t.Error("fuzzy match should report differences")
	}
}

func TestNoMatchCarriesSuggestions(t *testing.T) {
	m := newFixtureMatcher(t)

	// Shares tokens with 1:1 but too different for any tier.
	res := m.Validate("بسم الطيب العظيم الكريم")
	if res.MatchType != MatchNone {
		t.Fatalf("match_type = %s, want none", res.MatchType)
	}
	if res.IsValid {
		t.Error("none result reported valid")
	}
	if res.Confidence != 0 {
		t.Errorf("confidence = %f, want 0", res.Confidence)
	}
	if len(res.Suggestions) == 0 {
		t.Error("none result should carry best-effort suggestions")
	}
	for i := 1; i < len(res.Suggestions); i++ {
		if res.Suggestions[i].Confidence > res.Suggestions[i-1].Confidence {
			t.Error("suggestions not sorted by descending confidence")
		}
	}
}

func TestValidateNonArabic(t *testing.T) {
	m := newFixtureMatcher(t)

	for _, text := range []string{"", "   ", "hello world", "123"} {
		res := m.Validate(text)
		if res.MatchType != MatchNone || res.IsValid {
			t.Errorf("Validate(%q) = %+v, want none", text, res)
		}
	}
}

func TestGetVerse(t *testing.T) {
	m := newFixtureMatcher(t)

	v, err := m.GetVerse(2, 255)
	if err != nil {
		t.Fatalf("GetVerse(2,255): %v", err)
	}
	if v.ID != 262 {
		t.Errorf("GetVerse(2,255).ID = %d", v.ID)
	}

	if _, err := m.GetVerse(99, 1); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("unknown surah err = %v, want ErrInvalidInput", err)
	}
	if _, err := m.GetVerse(1, 8); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("ayah out of bounds err = %v, want ErrInvalidInput", err)
	}
	// Within bounds but absent from this corpus.
	if _, err := m.GetVerse(2, 2); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing verse err = %v, want ErrNotFound", err)
	}
}

func TestGetVerseRange(t *testing.T) {
	m := newFixtureMatcher(t)

	verses, err := m.GetVerseRange(112, 1, 4)
	if err != nil {
		t.Fatalf("GetVerseRange(112,1,4): %v", err)
	}
	if len(verses) != 4 {
		t.Fatalf("got %d verses, want 4", len(verses))
	}
	for i, v := range verses {
		if v.Ayah != i+1 {
			t.Errorf("verse %d has ayah %d, want %d", i, v.Ayah, i+1)
		}
	}

	if _, err := m.GetVerseRange(112, 4, 1); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("inverted range err = %v, want ErrInvalidInput", err)
	}
	if _, err := m.GetVerseRange(112, 1, 5); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("range past surah end err = %v, want ErrInvalidInput", err)
	}
	if _, err := m.GetVerseRange(112, 0, 2); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("zero start err = %v, want ErrInvalidInput", err)
	}
}

func TestRangeText(t *testing.T) {
	m := newFixtureMatcher(t)
	verses, err := m.GetVerseRange(112, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := verses[0].Text + " " + verses[1].Text
	if got := RangeText(verses); got != want {
		t.Errorf("RangeText = %q, want %q", got, want)
	}
}

func TestSearch(t *testing.T) {
	m := newFixtureMatcher(t)

	results := m.Search("الله", 10)
	if len(results) == 0 {
		t.Fatal("no results for الله")
	}
	if len(results) > 10 {
		t.Errorf("limit exceeded: %d results", len(results))
	}
	for i := 1; i < len(results); i++ {
		a, b := results[i-1], results[i]
		if b.Score > a.Score || (b.Score == a.Score && b.Verse.ID < a.Verse.ID) {
			t.Errorf("results out of order at %d", i)
		}
	}

	if got := m.Search("الله", 2); len(got) != 2 {
		t.Errorf("Search limit=2 returned %d", len(got))
	}
	if got := m.Search("الله", 0); got != nil {
		t.Errorf("Search limit=0 returned %v", got)
	}
	if got := m.Search("nothing arabic", 10); len(got) != 0 {
		t.Errorf("non-Arabic query returned %d results", len(got))
	}
}

func TestSurahAccessors(t *testing.T) {
	m := newFixtureMatcher(t)

	s, err := m.Surah(112)
	if err != nil || s.EnglishName != "Al-Ikhlas" {
		t.Errorf("Surah(112) = %+v, %v", s, err)
	}
	if _, err := m.Surah(99); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Surah(99) err = %v", err)
	}
	if got := m.Surahs(); len(got) != 6 {
		t.Errorf("Surahs() = %d, want 6", len(got))
	}
	if got := m.SurahVerses(1); len(got) != 7 {
		t.Errorf("SurahVerses(1) = %d, want 7", len(got))
	}
}
