// Package detect locates candidate Quranic quotations in free-form text
// that carries no explicit quote delimiters. It finds contiguous
// Arabic-script runs, merges runs split only by punctuation, and drops
// runs too short to plausibly be a quotation.
package detect

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tartil-labs/sanad/core/arabic"
	"github.com/tartil-labs/sanad/core/errors"
)

// DefaultMinWords is the smallest span, in whitespace-separated words,
// treated as a quote candidate. Single isolated Arabic words are skipped
// to avoid false positives on names and loanwords.
const DefaultMinWords = 2

// Config controls span detection.
type Config struct {
	// MinWords discards any detected span shorter than this many words.
	MinWords int `json:"minWords"`
}

// DefaultConfig returns the detection defaults.
func DefaultConfig() Config {
	return Config{MinWords: DefaultMinWords}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.MinWords < 1 {
		return errors.NewConfig("minWords", strconv.Itoa(c.MinWords), "must be at least 1")
	}
	return nil
}

// Span is one candidate quotation: a run of Arabic text with its byte
// offsets into the source document. End is exclusive.
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Words returns the span's length in whitespace-separated words.
func (s Span) Words() int {
	return len(strings.Fields(s.Text))
}

// Detector scans documents for candidate quotation spans.
type Detector struct {
	cfg Config
}

// New returns a Detector, rejecting an invalid configuration up front.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg}, nil
}

// Detect returns the candidate quotation spans in text, in source order.
// Adjacent Arabic runs separated only by punctuation and whitespace are
// merged into one span before the minimum-length filter is applied, since
// a genuine quotation may carry punctuation inserted by the surrounding
// prose.
func (d *Detector) Detect(text string) []Span {
	segments := arabic.ExtractSegments(text)
	if len(segments) == 0 {
		return nil
	}

	merged := mergeSegments(text, segments)

	var spans []Span
	for _, seg := range merged {
		s := Span{Text: seg.Text, Start: seg.Start, End: seg.End}
		if s.Words() < d.cfg.MinWords {
			continue
		}
		spans = append(spans, s)
	}
	return spans
}

// mergeSegments joins consecutive segments whose separating text contains
// only punctuation, symbols, and whitespace. The merged span covers the
// separator, so offsets still index the original document.
func mergeSegments(text string, segments []arabic.Segment) []arabic.Segment {
	merged := segments[:1:1]
	for _, seg := range segments[1:] {
		prev := &merged[len(merged)-1]
		if punctuationOnly(text[prev.End:seg.Start]) {
			prev.End = seg.End
			prev.Text = text[prev.Start:prev.End]
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

func punctuationOnly(gap string) bool {
	for i := 0; i < len(gap); {
		r, size := utf8.DecodeRuneInString(gap[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		i += size
	}
	return true
}
