// Package llm validates and corrects Quranic quotations inside
// LLM-generated text. Quotes are found either through explicit delimiter
// tags the model was prompted to emit, or by scanning undelimited text for
// Arabic runs, and each candidate is run through the matcher. With
// auto-correction enabled the document is rewritten with canonical verse
// text substituted for misquotes.
package llm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tartil-labs/sanad/core/arabic"
	"github.com/tartil-labs/sanad/core/cache"
	"github.com/tartil-labs/sanad/core/detect"
	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/matcher"
	"github.com/tartil-labs/sanad/core/quran"
)

// Detection methods recorded on each Quote.
const (
	MethodTagged   = "tagged"
	MethodDetected = "detected"
)

// Config controls document processing.
type Config struct {
	// AutoCorrect rewrites misquoted spans with canonical verse text.
	AutoCorrect bool `json:"autoCorrect"`

	// MinConfidence is the floor below which a matched span is still
	// flagged invalid and left untouched.
	MinConfidence float64 `json:"minConfidence"`

	// ScanUntagged additionally runs the quote detector over text outside
	// any tag, catching quotes the model forgot to delimit.
	ScanUntagged bool `json:"scanUntagged"`

	// TagFormat selects the delimiter convention to parse.
	TagFormat TagFormat `json:"tagFormat"`

	// Detect configures the untagged scanner.
	Detect detect.Config `json:"detect"`
}

// DefaultConfig returns the processing defaults.
func DefaultConfig() Config {
	return Config{
		AutoCorrect:   true,
		MinConfidence: 0.85,
		ScanUntagged:  true,
		TagFormat:     TagXML,
		Detect:        detect.DefaultConfig(),
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return errors.NewConfig("minConfidence", strconv.FormatFloat(c.MinConfidence, 'f', -1, 64), "must be within [0,1]")
	}
	if !c.TagFormat.IsValid() {
		return errors.NewConfig("tagFormat", string(c.TagFormat), "unknown tag format")
	}
	return c.Detect.Validate()
}

// Quote is one candidate quotation found in a document, with its verdict.
type Quote struct {
	// Original is the quote text as the document carried it.
	Original string `json:"original"`

	// Corrected is the canonical text substituted for the span, equal to
	// Original when no correction was applied.
	Corrected string `json:"corrected"`

	// WasCorrected reports whether the span was rewritten.
	WasCorrected bool `json:"wasCorrected"`

	// IsValid is the processor's verdict: the span matched a verse with
	// confidence at or above the configured floor. A corrected span counts
	// as valid.
	IsValid bool `json:"isValid"`

	// Method records how the span was found.
	Method string `json:"method"`

	// Start and End are byte offsets of the span in the source document.
	// For tagged quotes they cover the whole delimited region.
	Start int `json:"start"`
	End   int `json:"end"`

	// Validation is the matcher's full result for the span.
	Validation matcher.ValidationResult `json:"validation"`
}

// Result is the outcome of processing one document.
type Result struct {
	// Quotes lists every candidate span in source order.
	Quotes []Quote `json:"quotes"`

	// AllValid is true iff every quote is valid after correction.
	AllValid bool `json:"allValid"`

	// CorrectedText is the document with corrections applied, equal to the
	// input when nothing was corrected.
	CorrectedText string `json:"correctedText"`

	// Diagnostics carries non-fatal problems, such as malformed tags that
	// were skipped.
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Summary is the condensed verdict returned by QuickCheck.
type Summary struct {
	HasQuranContent bool     `json:"hasQuranContent"`
	AllValid        bool     `json:"allValid"`
	Issues          []string `json:"issues,omitempty"`
}

// Processor runs end-to-end validation and correction of documents.
// A Processor is immutable after construction and safe for concurrent use.
type Processor struct {
	m    *matcher.Matcher
	det  *detect.Detector
	cfg  Config
	memo *cache.LRU[string, matcher.ValidationResult]
}

// New returns a Processor over the given matcher, rejecting an invalid
// configuration up front.
func New(m *matcher.Matcher, cfg Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	det, err := detect.New(cfg.Detect)
	if err != nil {
		return nil, err
	}
	return &Processor{
		m:    m,
		det:  det,
		cfg:  cfg,
		memo: cache.NewLRU[string, matcher.ValidationResult](cache.DefaultConfig()),
	}, nil
}

// validate memoizes matcher lookups; documents commonly repeat the same
// quotation many times.
func (p *Processor) validate(text string) matcher.ValidationResult {
	if res, ok := p.memo.Get(text); ok {
		return res
	}
	res := p.m.Validate(text)
	p.memo.Put(text, res)
	return res
}

// SystemPrompt returns the instruction block matching the configured tag
// format, for callers assembling an LLM system prompt.
func (p *Processor) SystemPrompt() string {
	return SystemPrompt(p.cfg.TagFormat)
}

// edit is one pending substitution, in source offsets.
type edit struct {
	start, end  int
	replacement string
}

// Process validates every quotation in text and, when auto-correction is
// enabled, returns the document rewritten with canonical verse text. All
// substitutions are collected against original offsets and applied in one
// left-to-right pass; corrected output is never re-scanned.
func (p *Processor) Process(text string) Result {
	spans, diags := strategyFor(p.cfg.TagFormat).extract(text)
	for _, s := range extractInlineRefs(text) {
		if !overlapsAny(s.Start, s.End, spans) {
			s.inline = true
			spans = append(spans, s)
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	res := Result{AllValid: true}
	for _, d := range diags {
		res.Diagnostics = append(res.Diagnostics, d.Error())
	}

	var edits []edit
	for _, s := range spans {
		q := p.analyzeTagged(s)
		if repl, ok := p.replacementFor(s, q); ok {
			edits = append(edits, edit{start: s.Start, end: s.End, replacement: repl})
		}
		res.Quotes = append(res.Quotes, q)
	}

	if p.cfg.ScanUntagged {
		for _, span := range p.det.Detect(text) {
			if overlapsAny(span.Start, span.End, spans) {
				continue
			}
			q := p.analyzeDetected(span)
			if q.WasCorrected {
				edits = append(edits, edit{start: q.Start, end: q.End, replacement: q.Corrected})
			}
			res.Quotes = append(res.Quotes, q)
		}
	}

	sort.SliceStable(res.Quotes, func(i, j int) bool { return res.Quotes[i].Start < res.Quotes[j].Start })
	for _, q := range res.Quotes {
		if !q.IsValid {
			res.AllValid = false
		}
	}
	res.CorrectedText = applyEdits(text, edits)
	return res
}

// DetectAndValidate runs only the untagged scanner: every Arabic run long
// enough to be a candidate is validated, ignoring any tag delimiters the
// text may carry.
func (p *Processor) DetectAndValidate(text string) Result {
	res := Result{AllValid: true}
	var edits []edit
	for _, span := range p.det.Detect(text) {
		q := p.analyzeDetected(span)
		if q.WasCorrected {
			edits = append(edits, edit{start: q.Start, end: q.End, replacement: q.Corrected})
		}
		if !q.IsValid {
			res.AllValid = false
		}
		res.Quotes = append(res.Quotes, q)
	}
	res.CorrectedText = applyEdits(text, edits)
	return res
}

// QuickCheck gives a condensed verdict on a document without applying
// corrections.
func (p *Processor) QuickCheck(text string) Summary {
	cfg := p.cfg
	cfg.AutoCorrect = false
	check := &Processor{m: p.m, det: p.det, cfg: cfg, memo: p.memo}
	res := check.Process(text)

	var issues []string
	for _, q := range res.Quotes {
		if q.IsValid && q.Validation.MatchType == matcher.MatchExact {
			continue
		}
		status := "invalid"
		if q.IsValid {
			status = "imprecise"
		}
		issue := fmt.Sprintf("quote %q is %s", clip(q.Original, 30), status)
		if ref := q.Validation.Reference(); ref != "" {
			issue += " (should be " + ref + ")"
		}
		issues = append(issues, issue)
	}
	issues = append(issues, res.Diagnostics...)

	return Summary{
		HasQuranContent: len(res.Quotes) > 0,
		AllValid:        res.AllValid,
		Issues:          issues,
	}
}

// analyzeTagged validates one delimited span against its declared
// reference.
func (p *Processor) analyzeTagged(s taggedSpan) Quote {
	q := Quote{
		Original:  s.Text,
		Corrected: s.Text,
		Method:    MethodTagged,
		Start:     s.Start,
		End:       s.End,
	}

	if s.Ref.IsRange() {
		q.Validation = p.validateRange(s.Text, s.Ref)
	} else {
		q.Validation = p.validate(s.Text)
		// A resolved match must agree with the reference the tag declares.
		if q.Validation.IsValid && q.Validation.Ref != nil && !q.Validation.Ref.Contains(s.Ref.Surah, s.Ref.Ayah) {
			q.Validation.IsValid = false
		}
	}

	q.IsValid = q.Validation.IsValid && q.Validation.Confidence >= p.cfg.MinConfidence
	if p.cfg.AutoCorrect && q.IsValid && q.Validation.MatchType != matcher.MatchExact {
		if canonical, ok := p.canonicalText(q.Validation); ok && canonical != s.Text {
			q.Corrected = canonical
			q.WasCorrected = true
		}
	}
	return q
}

// analyzeDetected validates one undelimited Arabic run.
func (p *Processor) analyzeDetected(span detect.Span) Quote {
	q := Quote{
		Original:  span.Text,
		Corrected: span.Text,
		Method:    MethodDetected,
		Start:     span.Start,
		End:       span.End,
	}
	q.Validation = p.validate(span.Text)
	q.IsValid = q.Validation.IsValid && q.Validation.Confidence >= p.cfg.MinConfidence

	if p.cfg.AutoCorrect && q.IsValid && q.Validation.MatchType != matcher.MatchExact {
		if canonical, ok := p.canonicalText(q.Validation); ok && canonical != span.Text {
			q.Corrected = canonical
			q.WasCorrected = true
		}
	}
	return q
}

// validateRange checks a quote against the concatenated text of its
// declared verse range.
func (p *Processor) validateRange(text string, ref quran.Ref) matcher.ValidationResult {
	res := matcher.ValidationResult{MatchType: matcher.MatchNone, Ref: &ref}

	verses, err := p.m.GetVerseRange(ref.Surah, ref.Ayah, ref.AyahEnd)
	if err != nil {
		return res
	}
	canonical := matcher.RangeText(verses)
	res.MatchedVerse = verses[0]

	switch {
	case strings.TrimSpace(text) == canonical:
		res.IsValid = true
		res.MatchType = matcher.MatchExact
		res.Confidence = 1.0
	case p.m.Index().Normalize(text) == p.m.Index().Normalize(canonical):
		res.IsValid = true
		res.MatchType = matcher.MatchNormalized
		res.Confidence = 1.0
		res.Differences = arabic.FindDifferences(text, canonical)
	default:
		sim := arabic.Similarity(p.m.Index().Normalize(text), p.m.Index().Normalize(canonical))
		res.Confidence = sim
		if sim >= p.m.Config().FuzzyThreshold {
			res.IsValid = true
			res.MatchType = matcher.MatchFuzzy
			res.Differences = arabic.FindDifferences(text, canonical)
		}
	}
	return res
}

// canonicalText returns the authoritative text for a validation result,
// concatenating the verse range when the match spans several ayat.
func (p *Processor) canonicalText(v matcher.ValidationResult) (string, bool) {
	if v.MatchedVerse == nil {
		return "", false
	}
	if v.Ref != nil && v.Ref.IsRange() {
		verses, err := p.m.GetVerseRange(v.Ref.Surah, v.Ref.Ayah, v.Ref.AyahEnd)
		if err != nil {
			return "", false
		}
		return matcher.RangeText(verses), true
	}
	return v.MatchedVerse.Text, true
}

// replacementFor renders the substitution for a corrected tagged span. A
// delimited region is re-emitted in its tag syntax with the resolved
// reference; an inline-cited span is replaced by bare canonical text, the
// citation outside the span staying put.
func (p *Processor) replacementFor(s taggedSpan, q Quote) (string, bool) {
	if !q.WasCorrected {
		return "", false
	}
	if s.inline {
		return q.Corrected, true
	}
	ref := s.Ref
	if q.Validation.Ref != nil {
		ref = *q.Validation.Ref
	}
	return formatTag(p.cfg.TagFormat, ref, q.Corrected), true
}

// formatTag renders a quote in the given delimiter syntax.
func formatTag(f TagFormat, ref quran.Ref, text string) string {
	switch f {
	case TagMarkdown:
		return "```quran ref=\"" + ref.String() + "\"\n" + text + "\n```"
	case TagBracket:
		return "[[Q:" + ref.String() + "|" + text + "]]"
	default:
		return `<quran ref="` + ref.String() + `">` + text + `</quran>`
	}
}

// applyEdits rewrites text with all substitutions in one pass. Edits are
// sorted by start offset; any edit overlapping an already-applied one is
// dropped.
func applyEdits(text string, edits []edit) string {
	if len(edits) == 0 {
		return text
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var b strings.Builder
	pos := 0
	for _, e := range edits {
		if e.start < pos {
			continue
		}
		b.WriteString(text[pos:e.start])
		b.WriteString(e.replacement)
		pos = e.end
	}
	b.WriteString(text[pos:])
	return b.String()
}

func overlapsAny(start, end int, spans []taggedSpan) bool {
	for _, s := range spans {
		if start < s.End && end > s.Start {
			return true
		}
	}
	return false
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
