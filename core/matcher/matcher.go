// Package matcher resolves candidate strings against the verse index using
// a cascade of tiers: exact, normalized, partial (contiguous word
// subsequence, range-aware), and fuzzy (edit-distance over token-index
// candidates). The first tier that succeeds wins; each tier either returns a
// definite match or passes the query on.
//
// A Matcher only reads the index, so one Matcher may serve unbounded
// concurrent Validate calls without synchronization.
package matcher

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tartil-labs/sanad/core/arabic"
	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/index"
	"github.com/tartil-labs/sanad/core/quran"
)

// Matcher runs the tier cascade over one index.
type Matcher struct {
	ix  *index.Index
	cfg Config
}

// New creates a Matcher. The configuration is validated up front; matching
// never starts with out-of-range thresholds.
func New(ix *index.Index, cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{ix: ix, cfg: cfg}, nil
}

// Index returns the underlying verse index.
func (m *Matcher) Index() *index.Index {
	return m.ix
}

// Config returns the matcher's configuration.
func (m *Matcher) Config() Config {
	return m.cfg
}

// query carries the per-call state handed through the tiers.
type query struct {
	raw   string
	norm  string
	words []string

	// scored is filled by the fuzzy tier so a none result can reuse the
	// candidate scores as correction hints.
	scored []scoredCandidate
}

type scoredCandidate struct {
	id    int
	score float64
}

// tier is one matching strategy: a definite result, or "continue".
type tier func(*Matcher, *query) (ValidationResult, bool)

// tiers in strict attempt order; first success wins.
var tiers = []tier{
	(*Matcher).exactTier,
	(*Matcher).normalizedTier,
	(*Matcher).partialTier,
	(*Matcher).fuzzyTier,
}

// Validate resolves text against the corpus and reports the best match with
// its tier and confidence. "No match" is an expected outcome, returned as a
// result with MatchType none, never as an error.
func (m *Matcher) Validate(text string) ValidationResult {
	raw := strings.TrimSpace(text)
	if raw == "" || !arabic.ContainsArabic(raw) {
		return ValidationResult{MatchType: MatchNone}
	}

	q := &query{raw: raw, norm: m.ix.Normalize(raw)}
	q.words = arabic.Words(q.norm)

	for _, t := range tiers {
		if res, ok := t(m, q); ok {
			return res
		}
	}

	// Below-threshold fuzzy scores still make useful correction hints.
	res := ValidationResult{MatchType: MatchNone}
	for _, sc := range q.scored {
		if len(res.Suggestions) == m.cfg.MaxSuggestions {
			break
		}
		res.Suggestions = append(res.Suggestions, Suggestion{
			Verse:      m.ix.Verse(sc.id),
			Confidence: sc.score,
		})
	}
	return res
}

// exactTier matches the raw input bitwise against Uthmani text.
func (m *Matcher) exactTier(q *query) (ValidationResult, bool) {
	ids := m.ix.ExactLookup(q.raw)
	if len(ids) == 0 {
		return ValidationResult{}, false
	}
	v := m.ix.Verse(ids[0])
	ref := v.Ref()
	return ValidationResult{
		IsValid:      true,
		MatchType:    MatchExact,
		Confidence:   1.0,
		MatchedVerse: v,
		Ref:          &ref,
	}, true
}

// normalizedTier matches on canonical comparison forms. Orthographic
// variants of a verse are that verse, so confidence is 1.0. Collisions
// between very short verses are resolved by raw edit distance; remaining
// ties are all reported as suggestions with the lowest id on top.
func (m *Matcher) normalizedTier(q *query) (ValidationResult, bool) {
	ids := m.ix.NormalizedLookup(q.raw)
	if len(ids) == 0 {
		return ValidationResult{}, false
	}

	best := ids
	if len(ids) > 1 {
		bestDist := -1
		for _, id := range ids {
			d := arabic.Levenshtein(q.raw, m.ix.Verse(id).Text)
			switch {
			case bestDist < 0 || d < bestDist:
				bestDist = d
				best = []int{id}
			case d == bestDist:
				best = append(best, id)
			}
		}
	}

	v := m.ix.Verse(best[0])
	ref := v.Ref()
	res := ValidationResult{
		IsValid:      true,
		MatchType:    MatchNormalized,
		Confidence:   1.0,
		MatchedVerse: v,
		Ref:          &ref,
		Differences:  arabic.FindDifferences(q.raw, v.Text),
	}
	if len(best) > 1 {
		for _, id := range best {
			if len(res.Suggestions) == m.cfg.MaxSuggestions {
				break
			}
			res.Suggestions = append(res.Suggestions, Suggestion{Verse: m.ix.Verse(id), Confidence: 1.0})
		}
	}
	return res, true
}

// partialTier matches the input as a contiguous word-subsequence of a verse,
// or a verse (extended across consecutive following ayat) as a contiguous
// subsequence of the input. Confidence is the coverage ratio.
func (m *Matcher) partialTier(q *query) (ValidationResult, bool) {
	if !m.cfg.IncludePartial || len(q.words) == 0 {
		return ValidationResult{}, false
	}

	type partialMatch struct {
		verse    *quran.Verse
		ref      quran.Ref
		coverage float64
	}
	var best *partialMatch

	consider := func(pm partialMatch) {
		if pm.coverage < m.cfg.PartialFloor {
			return
		}
		if best == nil || pm.coverage > best.coverage ||
			(pm.coverage == best.coverage && pm.verse.ID < best.verse.ID) {
			best = &pm
		}
	}

	cands := m.ix.CandidatesForTokens(q.words)
	if len(cands) > m.cfg.MaxCandidates {
		cands = cands[:m.cfg.MaxCandidates]
	}
	for _, c := range cands {
		v := m.ix.Verse(c.VerseID)
		vwords := arabic.Words(m.ix.NormalizedText(c.VerseID))
		if len(vwords) == 0 {
			continue
		}

		if pos := indexOfSubsequence(vwords, q.words); pos >= 0 {
			// Input is contained in this verse.
			consider(partialMatch{
				verse:    v,
				ref:      v.Ref(),
				coverage: float64(len(q.words)) / float64(len(vwords)),
			})
			continue
		}

		if pos := indexOfSubsequence(q.words, vwords); pos >= 0 {
			// Verse is contained in the input: the span may concatenate
			// this verse with the ones that follow it.
			matched, endAyah := m.extendRange(q.words, pos+len(vwords), v)
			matched += len(vwords)
			cov := float64(matched) / float64(len(q.words))
			if cov > 1 {
				cov = 1
			}
			ref := quran.Ref{Surah: v.Surah, Ayah: v.Ayah}
			if endAyah > v.Ayah {
				ref.AyahEnd = endAyah
			}
			consider(partialMatch{verse: v, ref: ref, coverage: cov})
		}
	}

	if best == nil {
		return ValidationResult{}, false
	}
	ref := best.ref
	return ValidationResult{
		IsValid:      true,
		MatchType:    MatchPartial,
		Confidence:   best.coverage,
		MatchedVerse: best.verse,
		Ref:          &ref,
		Differences:  arabic.FindDifferences(q.raw, best.verse.Text),
	}, true
}

// extendRange walks forward from v through consecutive ayat of the same
// surah while their words continue the input at position pos. It returns the
// extra matched word count and the last ayah consumed.
func (m *Matcher) extendRange(words []string, pos int, v *quran.Verse) (int, int) {
	matched := 0
	ayah := v.Ayah
	for {
		next := m.ix.VerseByRef(v.Surah, ayah+1)
		if next == nil {
			break
		}
		nwords := arabic.Words(m.ix.NormalizedText(next.ID))
		if len(nwords) == 0 || pos+len(nwords) > len(words) {
			break
		}
		if !wordsEqual(words[pos:pos+len(nwords)], nwords) {
			break
		}
		matched += len(nwords)
		pos += len(nwords)
		ayah++
	}
	return matched, ayah
}

// fuzzyTier scores the token-index candidate set by normalized edit
// similarity and accepts the best candidate at or above the threshold.
func (m *Matcher) fuzzyTier(q *query) (ValidationResult, bool) {
	cands := m.ix.CandidatesForTokens(q.words)
	if len(cands) > m.cfg.MaxCandidates {
		cands = cands[:m.cfg.MaxCandidates]
	}
	if len(cands) == 0 {
		return ValidationResult{}, false
	}

	scored := make([]scoredCandidate, 0, len(cands))
	for _, c := range cands {
		scored = append(scored, scoredCandidate{
			id:    c.VerseID,
			score: arabic.Similarity(q.norm, m.ix.NormalizedText(c.VerseID)),
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].id < scored[j].id
	})
	q.scored = scored

	top := scored[0]
	if top.score < m.cfg.FuzzyThreshold {
		return ValidationResult{}, false
	}

	v := m.ix.Verse(top.id)
	ref := v.Ref()
	res := ValidationResult{
		IsValid:      true,
		MatchType:    MatchFuzzy,
		Confidence:   top.score,
		MatchedVerse: v,
		Ref:          &ref,
		Differences:  arabic.FindDifferences(q.raw, v.Text),
	}
	for _, sc := range scored[1:] {
		if len(res.Suggestions) == m.cfg.MaxSuggestions {
			break
		}
		res.Suggestions = append(res.Suggestions, Suggestion{Verse: m.ix.Verse(sc.id), Confidence: sc.score})
	}
	return res, true
}

// GetVerse returns the verse at (surah, ayah), bypassing all tiers.
func (m *Matcher) GetVerse(surah, ayah int) (*quran.Verse, error) {
	s := m.ix.SurahInfo(surah)
	if s == nil {
		return nil, errors.NewRange(surah, ayah, ayah, "unknown surah")
	}
	if ayah < 1 || ayah > s.VerseCount {
		return nil, errors.NewRange(surah, ayah, ayah, "ayah outside surah")
	}
	v := m.ix.VerseByRef(surah, ayah)
	if v == nil {
		return nil, errors.NewNotFound("verse", quran.Ref{Surah: surah, Ayah: ayah}.String())
	}
	return v, nil
}

// GetVerseRange returns the verses from start to end within one surah, in
// ayah order. The range is rejected before any lookup when start > end or
// either endpoint falls outside the surah's verse count.
func (m *Matcher) GetVerseRange(surah, start, end int) ([]*quran.Verse, error) {
	s := m.ix.SurahInfo(surah)
	if s == nil {
		return nil, errors.NewRange(surah, start, end, "unknown surah")
	}
	if start > end {
		return nil, errors.NewRange(surah, start, end, "start after end")
	}
	if start < 1 || end > s.VerseCount {
		return nil, errors.NewRange(surah, start, end, "outside surah verse count")
	}

	verses := make([]*quran.Verse, 0, end-start+1)
	for ayah := start; ayah <= end; ayah++ {
		v := m.ix.VerseByRef(surah, ayah)
		if v == nil {
			return nil, errors.NewNotFound("verse", quran.Ref{Surah: surah, Ayah: ayah}.String())
		}
		verses = append(verses, v)
	}
	return verses, nil
}

// RangeText concatenates the Uthmani text of a verse range with single
// spaces, the form a multi-verse quotation takes in running text.
func RangeText(verses []*quran.Verse) string {
	parts := make([]string, len(verses))
	for i, v := range verses {
		parts[i] = v.Text
	}
	return strings.Join(parts, " ")
}

// SearchResult is one ranked hit from Search.
type SearchResult struct {
	Verse *quran.Verse `json:"verse"`
	Score int          `json:"score"`
}

// Search ranks verses by how many normalized tokens they share with the
// query, ties broken by ascending verse id, truncated to limit.
func (m *Matcher) Search(query string, limit int) []SearchResult {
	if limit <= 0 {
		return nil
	}
	words := arabic.Words(m.ix.Normalize(query))
	cands := m.ix.CandidatesForTokens(words)
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]SearchResult, 0, len(cands))
	for _, c := range cands {
		out = append(out, SearchResult{Verse: m.ix.Verse(c.VerseID), Score: c.Shared})
	}
	return out
}

// Surah returns metadata for one surah.
func (m *Matcher) Surah(number int) (*quran.Surah, error) {
	s := m.ix.SurahInfo(number)
	if s == nil {
		return nil, errors.NewNotFound("surah", strconv.Itoa(number))
	}
	return s, nil
}

// Surahs returns all surah metadata in surah order.
func (m *Matcher) Surahs() []*quran.Surah {
	return m.ix.Surahs()
}

// SurahVerses returns the verses of one surah in ayah order.
func (m *Matcher) SurahVerses(number int) []*quran.Verse {
	return m.ix.SurahVerses(number)
}

// indexOfSubsequence returns the position of needle as a contiguous
// subsequence of haystack, or -1.
func indexOfSubsequence(haystack, needle []string) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if wordsEqual(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func wordsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
