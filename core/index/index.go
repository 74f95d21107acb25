// Package index builds the read-only lookup structures over a verse corpus:
// an exact map over raw Uthmani text, a normalized-form map, and a token
// index used to generate ranked candidates for partial and fuzzy matching
// without scanning the whole corpus per query.
//
// An Index is built once per session and never mutated afterwards, so it is
// safe for unbounded concurrent read access without synchronization.
package index

import (
	"fmt"
	"sort"

	"github.com/tartil-labs/sanad/core/arabic"
	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/quran"
)

type refKey struct {
	surah int
	ayah  int
}

// Index holds the lookup structures. All fields are read-only after Build.
type Index struct {
	opts arabic.Options

	order  []*quran.Verse
	byID   map[int]*quran.Verse
	byRef  map[refKey]*quran.Verse
	surahs map[int]*quran.Surah

	exact      map[string]int
	normalized map[string][]int
	tokens     map[string][]int
	normText   map[int]string
}

// Build constructs an Index over the corpus using the default normalization
// pipeline. The corpus is validated first; an inconsistent corpus aborts the
// build, it is never served partially.
func Build(c *quran.Corpus) (*Index, error) {
	return BuildWith(c, arabic.DefaultOptions())
}

// BuildWith constructs an Index with explicit normalization options.
func BuildWith(c *quran.Corpus, opts arabic.Options) (*Index, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ix := &Index{
		opts:       opts,
		order:      c.Verses,
		byID:       make(map[int]*quran.Verse, len(c.Verses)),
		byRef:      make(map[refKey]*quran.Verse, len(c.Verses)),
		surahs:     make(map[int]*quran.Surah, len(c.Surahs)),
		exact:      make(map[string]int, len(c.Verses)),
		normalized: make(map[string][]int, len(c.Verses)),
		tokens:     make(map[string][]int),
		normText:   make(map[int]string, len(c.Verses)),
	}
	for _, s := range c.Surahs {
		ix.surahs[s.Number] = s
	}

	for _, v := range c.Verses {
		ix.byID[v.ID] = v
		ix.byRef[refKey{v.Surah, v.Ayah}] = v

		// Raw Uthmani text is unique across the corpus; a collision means
		// the data is wrong, not that two verses legitimately coincide.
		if prev, dup := ix.exact[v.Text]; dup {
			return nil, errors.NewCorpus("text", v.ID,
				fmt.Sprintf("raw text collides with verse %d", prev))
		}
		ix.exact[v.Text] = v.ID

		norm := arabic.NormalizeWith(v.Text, opts)
		ix.normText[v.ID] = norm
		ix.normalized[norm] = append(ix.normalized[norm], v.ID)

		seen := make(map[string]bool)
		for _, w := range arabic.Words(norm) {
			if seen[w] {
				continue
			}
			seen[w] = true
			ix.tokens[w] = append(ix.tokens[w], v.ID)
		}
	}

	// Verses are inserted in canonical order but ids are not guaranteed to
	// be, so posting lists are sorted once here.
	for _, ids := range ix.normalized {
		sort.Ints(ids)
	}
	for _, ids := range ix.tokens {
		sort.Ints(ids)
	}
	return ix, nil
}

// Normalize maps text through the same pipeline the index was built with.
func (ix *Index) Normalize(text string) string {
	return arabic.NormalizeWith(text, ix.opts)
}

// ExactLookup returns the ids of verses whose raw Uthmani text equals text
// bitwise. At most one id; a slice keeps the contract uniform with the other
// lookups.
func (ix *Index) ExactLookup(text string) []int {
	if id, ok := ix.exact[text]; ok {
		return []int{id}
	}
	return nil
}

// NormalizedLookup returns the ids of verses whose normalized form equals
// the normalized form of text, in ascending id order. Very short verses
// legitimately collide here; disambiguation is the matcher's job.
func (ix *Index) NormalizedLookup(text string) []int {
	ids := ix.normalized[ix.Normalize(text)]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Candidate is a verse sharing tokens with a query.
type Candidate struct {
	VerseID int
	Shared  int
}

// CandidatesForTokens returns verses sharing at least one token with the
// query tokens, ranked by shared-token count descending, ties broken by
// ascending verse id. This bounded set is the fuzzy tier's search space.
func (ix *Index) CandidatesForTokens(tokens []string) []Candidate {
	counts := make(map[int]int)
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		for _, id := range ix.tokens[tok] {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	out := make([]Candidate, 0, len(counts))
	for id, n := range counts {
		out = append(out, Candidate{VerseID: id, Shared: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Shared != out[j].Shared {
			return out[i].Shared > out[j].Shared
		}
		return out[i].VerseID < out[j].VerseID
	})
	return out
}

// Verse returns the verse with the given id, or nil.
func (ix *Index) Verse(id int) *quran.Verse {
	return ix.byID[id]
}

// VerseByRef returns the verse at (surah, ayah), or nil.
func (ix *Index) VerseByRef(surah, ayah int) *quran.Verse {
	return ix.byRef[refKey{surah, ayah}]
}

// SurahInfo returns the surah metadata for the given number, or nil.
func (ix *Index) SurahInfo(number int) *quran.Surah {
	return ix.surahs[number]
}

// NormalizedText returns the cached normalized form of the verse with the
// given id. Empty string for unknown ids.
func (ix *Index) NormalizedText(id int) string {
	return ix.normText[id]
}

// Verses returns all verses in canonical order. Callers must not modify the
// returned slice.
func (ix *Index) Verses() []*quran.Verse {
	return ix.order
}

// Surahs returns all surah metadata sorted by surah number.
func (ix *Index) Surahs() []*quran.Surah {
	out := make([]*quran.Surah, 0, len(ix.surahs))
	for _, s := range ix.surahs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// SurahVerses returns the verses of one surah in ayah order.
func (ix *Index) SurahVerses(number int) []*quran.Verse {
	var out []*quran.Verse
	for _, v := range ix.order {
		if v.Surah == number {
			out = append(out, v)
		}
	}
	return out
}
