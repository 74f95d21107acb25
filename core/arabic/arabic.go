// Package arabic provides Arabic text normalization for verse comparison.
//
// Normalization collapses the orthographic variation found in Quranic
// quotations: diacritical marks (tashkeel and recitation annotations) are
// stripped, hamza-bearing alef forms are folded to bare alef, alef maksura
// is folded to yaa, and the tatweel elongation character is removed.
// Taa marbuta is deliberately never merged with haa; the two distinguish
// lexically different verses.
//
// Normalize is pure, deterministic, and idempotent:
// Normalize(Normalize(s)) == Normalize(s) for all s.
//
// All functions are safe for concurrent use by multiple goroutines.
package arabic

import (
	"strings"
	"unicode"
)

// Arabic combining marks: tashkeel (U+064B..U+065F), the dagger alef
// (U+0670), and the Quranic annotation block (U+06D6..U+06ED).
func isDiacritic(r rune) bool {
	switch {
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670:
		return true
	case r >= 0x06D6 && r <= 0x06ED:
		return true
	}
	return false
}

// IsArabic reports whether r falls in an Arabic-script Unicode block,
// including the presentation form blocks produced by some PDF extractors.
func IsArabic(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF:
		return true
	case r >= 0x0750 && r <= 0x077F: // Arabic Supplement
		return true
	case r >= 0x08A0 && r <= 0x08FF: // Arabic Extended-A
		return true
	case r >= 0xFB50 && r <= 0xFDFF: // Presentation Forms-A
		return true
	case r >= 0xFE70 && r <= 0xFEFF: // Presentation Forms-B
		return true
	}
	return false
}

// ContainsArabic reports whether text contains at least one Arabic-script codepoint.
func ContainsArabic(text string) bool {
	for _, r := range text {
		if IsArabic(r) {
			return true
		}
	}
	return false
}

// Options controls which normalization steps are applied.
// The zero value disables everything; use DefaultOptions for the standard pipeline.
type Options struct {
	// RemoveDiacritics strips tashkeel and Quranic annotation marks.
	RemoveDiacritics bool
	// FoldAlef maps hamza-bearing and wasla alef forms to bare alef.
	FoldAlef bool
	// FoldAlefMaksura maps alef maksura to yaa.
	FoldAlefMaksura bool
	// FoldHamzaCarriers maps waw-hamza to waw and yaa-hamza to yaa.
	FoldHamzaCarriers bool
	// RemoveTatweel strips the elongation character.
	RemoveTatweel bool
	// CollapseWhitespace collapses whitespace runs to a single space and trims ends.
	CollapseWhitespace bool
}

// DefaultOptions returns the standard normalization pipeline.
func DefaultOptions() Options {
	return Options{
		RemoveDiacritics:   true,
		FoldAlef:           true,
		FoldAlefMaksura:    true,
		FoldHamzaCarriers:  true,
		RemoveTatweel:      true,
		CollapseWhitespace: true,
	}
}

const (
	alef        = 'ا' // ا
	alefMadda   = 'آ' // آ
	alefHamza   = 'أ' // أ
	alefHamzaB  = 'إ' // إ
	alefWasla   = 'ٱ' // ٱ
	alefMaksura = 'ى' // ى
	yaa         = 'ي' // ي
	waw         = 'و' // و
	wawHamza    = 'ؤ' // ؤ
	yaaHamza    = 'ئ' // ئ
	tatweel     = 'ـ' // ـ
)

// RemoveDiacritics strips combining diacritical marks, leaving base letters
// untouched. Usable standalone; Normalize applies it as its first step.
func RemoveDiacritics(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !isDiacritic(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize maps raw Arabic text to its canonical comparison form using
// DefaultOptions.
func Normalize(text string) string {
	return NormalizeWith(text, DefaultOptions())
}

// NormalizeWith maps raw Arabic text to a comparison form under opts.
// Diacritics are stripped before letter folding so that combining marks
// are never left attached to a substituted base letter.
func NormalizeWith(text string, opts Options) string {
	var b strings.Builder
	b.Grow(len(text))

	space := false   // pending collapsed whitespace
	written := false // a non-space rune has been emitted
	for _, r := range text {
		if opts.RemoveDiacritics && isDiacritic(r) {
			continue
		}
		if opts.RemoveTatweel && r == tatweel {
			continue
		}
		if opts.CollapseWhitespace && unicode.IsSpace(r) {
			space = true
			continue
		}
		if opts.FoldAlef {
			switch r {
			case alefMadda, alefHamza, alefHamzaB, alefWasla:
				r = alef
			}
		}
		if opts.FoldAlefMaksura && r == alefMaksura {
			r = yaa
		}
		if opts.FoldHamzaCarriers {
			switch r {
			case wawHamza:
				r = waw
			case yaaHamza:
				r = yaa
			}
		}
		if space && written {
			b.WriteByte(' ')
		}
		space = false
		written = true
		b.WriteRune(r)
	}
	return b.String()
}

// Words splits normalized text into its space-separated words.
// Returns nil for empty input.
func Words(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields
}
