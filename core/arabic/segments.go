package arabic

import (
	"unicode"
	"unicode/utf8"
)

// Segment is a maximal contiguous Arabic-script run inside mixed text.
// Start and End are byte offsets into the source string; End is exclusive
// and trailing non-Arabic characters are never included.
type Segment struct {
	Text  string
	Start int
	End   int
}

// Gap limits for joining Arabic runs. A run survives a gap of at most one
// whitespace character, or a short punctuation cluster (e.g. an inserted
// comma plus space) when Arabic resumes immediately after.
const (
	maxGapRunes      = 3
	maxGapWhitespace = 1
)

// ExtractSegments returns the maximal contiguous Arabic-script runs in text,
// in source order. Whitespace-only gaps of a single character do not break a
// run, and punctuation does not break a run when Arabic continues right
// after it; anything longer, or any gap containing non-Arabic letters or
// digits, ends the run.
func ExtractSegments(text string) []Segment {
	var segments []Segment

	start := -1 // byte offset of current run, -1 when outside a run
	last := 0   // byte offset just past the last Arabic rune seen

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if IsArabic(r) {
			if start < 0 {
				start = i
			}
			last = i + size
			i += size
			continue
		}
		if start < 0 {
			i += size
			continue
		}
		// Inside a run: scan the whole non-Arabic gap and decide whether
		// the run continues on the far side.
		gapEnd, ok := scanGap(text, i)
		if ok {
			i = gapEnd
			continue
		}
		segments = append(segments, Segment{Text: text[start:last], Start: start, End: last})
		start = -1
		i += size
	}
	if start >= 0 {
		segments = append(segments, Segment{Text: text[start:last], Start: start, End: last})
	}
	return segments
}

// scanGap inspects the non-Arabic stretch beginning at byte offset i.
// It returns the offset where the gap ends and whether the current run
// continues across it.
func scanGap(text string, i int) (int, bool) {
	runes := 0
	spaces := 0
	j := i
	for j < len(text) {
		r, size := utf8.DecodeRuneInString(text[j:])
		if IsArabic(r) {
			return j, runes <= maxGapRunes && spaces <= maxGapWhitespace
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return j, false
		}
		if unicode.IsSpace(r) {
			spaces++
		}
		runes++
		if runes > maxGapRunes || spaces > maxGapWhitespace {
			return j, false
		}
		j += size
	}
	return j, false
}
