package llm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"

	"github.com/tartil-labs/sanad/core/arabic"
	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/quran"
)

// TagFormat selects the delimiter convention the processor looks for in
// LLM output.
type TagFormat string

const (
	// TagXML wraps quotes in <quran ref="S:A">...</quran> elements.
	TagXML TagFormat = "xml"
	// TagMarkdown wraps quotes in ```quran ref="S:A" fenced blocks.
	TagMarkdown TagFormat = "markdown"
	// TagBracket wraps quotes as [[Q:S:A|...]].
	TagBracket TagFormat = "bracket"
)

// IsValid reports whether f names a known tag format.
func (f TagFormat) IsValid() bool {
	switch f {
	case TagXML, TagMarkdown, TagBracket:
		return true
	}
	return false
}

// taggedSpan is one delimited quote pulled out of a document. Start and
// End are byte offsets of the whole delimited region, including the
// delimiters themselves, so a correction can replace the region wholesale.
type taggedSpan struct {
	Text   string    // quote text between the delimiters, trimmed
	Ref    quran.Ref // reference declared by the tag
	Start  int
	End    int
	inline bool // span is a bare Arabic run cited with a trailing (S:A)
}

// tagStrategy extracts delimited spans for one tag format. Malformed tags
// are reported as diagnostics and skipped; one bad tag never aborts the
// document.
type tagStrategy interface {
	extract(text string) ([]taggedSpan, []error)
}

func strategyFor(f TagFormat) tagStrategy {
	switch f {
	case TagMarkdown:
		return markdownStrategy{}
	case TagBracket:
		return bracketStrategy{}
	default:
		return xmlStrategy{}
	}
}

// xmlStrategy matches <quran ref="...">...</quran>. Offsets are located by
// scanning the raw text; the matched fragment is then handed to an XML
// parser for attribute and text extraction, which tolerates attribute
// quoting and whitespace variations a literal scan would miss.
type xmlStrategy struct{}

const (
	xmlOpen  = "<quran"
	xmlClose = "</quran>"
)

func (xmlStrategy) extract(text string) ([]taggedSpan, []error) {
	var spans []taggedSpan
	var diags []error

	for i := 0; i < len(text); {
		rel := strings.Index(text[i:], xmlOpen)
		if rel < 0 {
			break
		}
		start := i + rel
		openEnd := strings.IndexByte(text[start:], '>')
		if openEnd < 0 {
			diags = append(diags, errors.NewTag(string(TagXML), start, "unterminated opening tag"))
			break
		}
		closeRel := strings.Index(text[start:], xmlClose)
		if closeRel < 0 {
			diags = append(diags, errors.NewTag(string(TagXML), start, "missing closing tag"))
			i = start + openEnd + 1
			continue
		}
		end := start + closeRel + len(xmlClose)
		fragment := text[start:end]

		span, err := parseXMLFragment(fragment, start)
		if err != nil {
			diags = append(diags, err)
		} else {
			span.End = end
			spans = append(spans, span)
		}
		i = end
	}
	return spans, diags
}

func parseXMLFragment(fragment string, offset int) (taggedSpan, error) {
	doc, err := xmlquery.Parse(strings.NewReader(fragment))
	if err != nil {
		return taggedSpan{}, errors.NewTag(string(TagXML), offset, "malformed tag: "+err.Error())
	}
	node := xmlquery.FindOne(doc, "//quran")
	if node == nil {
		return taggedSpan{}, errors.NewTag(string(TagXML), offset, "no quran element in tag")
	}
	refAttr := node.SelectAttr("ref")
	if refAttr == "" {
		return taggedSpan{}, errors.NewTag(string(TagXML), offset, "missing ref attribute")
	}
	ref, err := quran.ParseRef(refAttr)
	if err != nil {
		return taggedSpan{}, errors.NewTag(string(TagXML), offset, "bad ref "+refAttr+": "+err.Error())
	}
	return taggedSpan{
		Text:  strings.TrimSpace(node.InnerText()),
		Ref:   ref,
		Start: offset,
	}, nil
}

// markdownStrategy matches fenced blocks of the form:
//
//	```quran ref="S:A"
//	ARABIC_TEXT
//	```
type markdownStrategy struct{}

const (
	mdOpen  = "```quran"
	mdFence = "```"
)

func (markdownStrategy) extract(text string) ([]taggedSpan, []error) {
	var spans []taggedSpan
	var diags []error

	for i := 0; i < len(text); {
		rel := strings.Index(text[i:], mdOpen)
		if rel < 0 {
			break
		}
		start := i + rel
		headEnd := strings.IndexByte(text[start:], '\n')
		if headEnd < 0 {
			diags = append(diags, errors.NewTag(string(TagMarkdown), start, "fence header has no body"))
			break
		}
		bodyStart := start + headEnd + 1
		closeRel := strings.Index(text[bodyStart:], mdFence)
		if closeRel < 0 {
			diags = append(diags, errors.NewTag(string(TagMarkdown), start, "unterminated fence"))
			i = bodyStart
			continue
		}
		end := bodyStart + closeRel + len(mdFence)

		head := text[start+len(mdOpen) : start+headEnd]
		refText, ok := attrValue(head, "ref")
		if !ok {
			diags = append(diags, errors.NewTag(string(TagMarkdown), start, "missing ref attribute"))
			i = end
			continue
		}
		ref, err := quran.ParseRef(refText)
		if err != nil {
			diags = append(diags, errors.NewTag(string(TagMarkdown), start, "bad ref "+refText+": "+err.Error()))
			i = end
			continue
		}
		spans = append(spans, taggedSpan{
			Text:  strings.TrimSpace(text[bodyStart : bodyStart+closeRel]),
			Ref:   ref,
			Start: start,
			End:   end,
		})
		i = end
	}
	return spans, diags
}

// attrValue finds name=value in a tag header, accepting double quotes,
// single quotes, or a bare token.
func attrValue(head, name string) (string, bool) {
	idx := strings.Index(head, name+"=")
	if idx < 0 {
		return "", false
	}
	rest := head[idx+len(name)+1:]
	if rest == "" {
		return "", false
	}
	if q := rest[0]; q == '"' || q == '\'' {
		stop := strings.IndexByte(rest[1:], q)
		if stop < 0 {
			return "", false
		}
		return rest[1 : 1+stop], true
	}
	if sp := strings.IndexFunc(rest, unicode.IsSpace); sp >= 0 {
		return rest[:sp], true
	}
	return rest, true
}

// bracketStrategy matches [[Q:S:A|ARABIC_TEXT]].
type bracketStrategy struct{}

const (
	brOpen  = "[[Q:"
	brClose = "]]"
)

func (bracketStrategy) extract(text string) ([]taggedSpan, []error) {
	var spans []taggedSpan
	var diags []error

	for i := 0; i < len(text); {
		rel := strings.Index(text[i:], brOpen)
		if rel < 0 {
			break
		}
		start := i + rel
		closeRel := strings.Index(text[start:], brClose)
		if closeRel < 0 {
			diags = append(diags, errors.NewTag(string(TagBracket), start, "unterminated bracket tag"))
			break
		}
		end := start + closeRel + len(brClose)
		inner := text[start+len(brOpen) : start+closeRel]

		pipe := strings.IndexByte(inner, '|')
		if pipe < 0 {
			diags = append(diags, errors.NewTag(string(TagBracket), start, "missing | separator"))
			i = end
			continue
		}
		ref, err := quran.ParseRef(inner[:pipe])
		if err != nil {
			diags = append(diags, errors.NewTag(string(TagBracket), start, "bad ref "+inner[:pipe]+": "+err.Error()))
			i = end
			continue
		}
		spans = append(spans, taggedSpan{
			Text:  strings.TrimSpace(inner[pipe+1:]),
			Ref:   ref,
			Start: start,
			End:   end,
		})
		i = end
	}
	return spans, diags
}

// extractInlineRefs finds Arabic runs immediately followed by a
// parenthesized reference like (1:1) or (2:255-257). These count as tagged
// quotes in every format, since the minimal citation style uses them. The
// returned span covers the Arabic text only, not the parenthetical, so a
// correction leaves the citation in place.
func extractInlineRefs(text string) []taggedSpan {
	var spans []taggedSpan
	for _, seg := range arabic.ExtractSegments(text) {
		ref, ok := refAfter(text, seg.End)
		if !ok {
			continue
		}
		spans = append(spans, taggedSpan{
			Text:  seg.Text,
			Ref:   ref,
			Start: seg.Start,
			End:   seg.End,
		})
	}
	return spans
}

// refAfter parses a "(S:A)" or "(S:A-B)" citation starting at or just
// after byte offset i, separated from the text by at most whitespace.
func refAfter(text string, i int) (quran.Ref, bool) {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	if i >= len(text) || text[i] != '(' {
		return quran.Ref{}, false
	}
	stop := strings.IndexByte(text[i:], ')')
	if stop < 0 {
		return quran.Ref{}, false
	}
	ref, err := quran.ParseRef(text[i+1 : i+stop])
	if err != nil {
		return quran.Ref{}, false
	}
	return ref, true
}
