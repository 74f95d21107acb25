package quran

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Ref is a verse reference: a single ayah ("2:255") or a contiguous range
// within one surah ("2:255-257").
type Ref struct {
	// Surah is the chapter number (1-114).
	Surah int `json:"surah"`

	// Ayah is the first (or only) verse number.
	Ayah int `json:"ayah"`

	// AyahEnd is the last verse of a range (0 for single-verse references).
	AyahEnd int `json:"ayahEnd,omitempty"`
}

// refGrammar is the participle grammar for verse references.
// Examples: "1:1", "2:255", "112:1-4"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Surah int  `parser:"@Int"`
	Ayah  int  `parser:"':' @Int"`
	End   *int `parser:"( '-' @Int )?"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseRef parses a verse reference string.
// Supported formats:
//   - "1:1" (single verse)
//   - "2:255-257" (range within one surah)
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid reference format: %q: %w", s, err)
	}

	ref := Ref{Surah: parsed.Surah, Ayah: parsed.Ayah}
	if parsed.End != nil {
		ref.AyahEnd = *parsed.End
	}

	if ref.Surah < 1 || ref.Surah > SurahCount {
		return Ref{}, fmt.Errorf("surah %d out of range 1-%d", ref.Surah, SurahCount)
	}
	if ref.Ayah < 1 {
		return Ref{}, fmt.Errorf("ayah must be positive in %q", s)
	}
	if ref.AyahEnd != 0 && ref.AyahEnd < ref.Ayah {
		return Ref{}, fmt.Errorf("range end %d before start %d in %q", ref.AyahEnd, ref.Ayah, s)
	}
	return ref, nil
}

// String returns the "surah:ayah" or "surah:start-end" form.
func (r Ref) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(r.Surah))
	sb.WriteString(":")
	sb.WriteString(strconv.Itoa(r.Ayah))
	if r.IsRange() {
		sb.WriteString("-")
		sb.WriteString(strconv.Itoa(r.AyahEnd))
	}
	return sb.String()
}

// IsRange returns true if this reference spans multiple verses.
func (r Ref) IsRange() bool {
	return r.AyahEnd > r.Ayah
}

// Contains returns true if this reference includes the given verse.
func (r Ref) Contains(surah, ayah int) bool {
	if r.Surah != surah {
		return false
	}
	if r.IsRange() {
		return ayah >= r.Ayah && ayah <= r.AyahEnd
	}
	return ayah == r.Ayah
}
