package matcher

import (
	"github.com/tartil-labs/sanad/core/arabic"
	"github.com/tartil-labs/sanad/core/quran"
)

// MatchType identifies which tier produced a match.
type MatchType string

// Match type constants, in tier order.
const (
	MatchExact      MatchType = "exact"
	MatchNormalized MatchType = "normalized"
	MatchPartial    MatchType = "partial"
	MatchFuzzy      MatchType = "fuzzy"
	MatchNone       MatchType = "none"
)

// validMatchTypes is the set of valid match types.
var validMatchTypes = map[MatchType]bool{
	MatchExact:      true,
	MatchNormalized: true,
	MatchPartial:    true,
	MatchFuzzy:      true,
	MatchNone:       true,
}

// IsValid returns true if the match type is valid.
func (m MatchType) IsValid() bool {
	return validMatchTypes[m]
}

// Suggestion is a candidate verse attached to a result, with the confidence
// the tier assigned it.
type Suggestion struct {
	Verse      *quran.Verse `json:"verse"`
	Confidence float64      `json:"confidence"`
}

// ValidationResult is the outcome of validating one candidate string.
// A "no match" outcome is expected and frequent; it is represented here with
// MatchType none rather than as an error.
type ValidationResult struct {
	// IsValid is true if some tier accepted a match.
	IsValid bool `json:"isValid"`

	// MatchType names the tier that matched, or "none".
	MatchType MatchType `json:"matchType"`

	// Confidence is in [0,1]: 1.0 for exact and normalized matches,
	// coverage-derived for partial, similarity-derived for fuzzy.
	Confidence float64 `json:"confidence"`

	// MatchedVerse is the matched verse, or the first verse of a range
	// match. Nil when MatchType is none.
	MatchedVerse *quran.Verse `json:"matchedVerse,omitempty"`

	// Ref is the matched reference, a range for multi-verse partial
	// matches. Nil when MatchType is none.
	Ref *quran.Ref `json:"reference,omitempty"`

	// Differences are the word-level edits between the input and the
	// matched verse, for surfacing what changed.
	Differences []arabic.Difference `json:"differences,omitempty"`

	// Suggestions are runner-up candidates ordered by descending
	// confidence, ties broken by ascending verse id. On a none result
	// they are best-effort correction hints from the fuzzy candidate set.
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Reference returns the "surah:ayah" form of the matched reference, or the
// empty string for a none result.
func (r ValidationResult) Reference() string {
	if r.Ref == nil {
		return ""
	}
	return r.Ref.String()
}
