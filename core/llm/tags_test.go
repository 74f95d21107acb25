package llm

import (
	"strings"
	"testing"

	"github.com/tartil-labs/sanad/core/quran"
)

const basmala = "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ"

func TestXMLExtract(t *testing.T) {
	doc := `Intro. <quran ref="1:1">` + basmala + `</quran> Outro.`

	spans, diags := xmlStrategy{}.extract(doc)
	if len(diags) != 0 {
		t.Fatalf("diags: %v", diags)
	}
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Text != basmala {
		t.Errorf("text = %q", s.Text)
	}
	if s.Ref != (quran.Ref{Surah: 1, Ayah: 1}) {
		t.Errorf("ref = %+v", s.Ref)
	}
	wantStart := strings.Index(doc, "<quran")
	wantEnd := strings.Index(doc, "</quran>") + len("</quran>")
	if s.Start != wantStart || s.End != wantEnd {
		t.Errorf("offsets [%d,%d), want [%d,%d)", s.Start, s.End, wantStart, wantEnd)
	}
}

func TestXMLExtractRangeRef(t *testing.T) {
	doc := `<quran ref="112:1-4">` + basmala + `</quran>`
	spans, _ := xmlStrategy{}.extract(doc)
	if len(spans) != 1 {
		t.Fatalf("got %d spans", len(spans))
	}
	if got := spans[0].Ref; got != (quran.Ref{Surah: 112, Ayah: 1, AyahEnd: 4}) {
		t.Errorf("ref = %+v", got)
	}
}

func TestXMLExtractMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing closing tag", `<quran ref="1:1">` + basmala},
		{"missing ref", `<quran>` + basmala + `</quran>`},
		{"bad ref", `<quran ref="115:1">` + basmala + `</quran>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, diags := xmlStrategy{}.extract(tt.doc)
			if len(spans) != 0 {
				t.Errorf("got %d spans, want 0", len(spans))
			}
			if len(diags) == 0 {
				t.Error("no diagnostic for malformed tag")
			}
		})
	}
}

// One bad tag must not hide the good ones around it.
func TestXMLExtractSkipsBadTagOnly(t *testing.T) {
	doc := `<quran ref="999:1">x</quran> and <quran ref="1:1">` + basmala + `</quran>`
	spans, diags := xmlStrategy{}.extract(doc)
	if len(spans) != 1 || spans[0].Ref.Surah != 1 {
		t.Errorf("spans = %+v", spans)
	}
	if len(diags) != 1 {
		t.Errorf("diags = %v", diags)
	}
}

func TestMarkdownExtract(t *testing.T) {
	doc := "Before.\n```quran ref=\"1:1\"\n" + basmala + "\n```\nAfter."

	spans, diags := markdownStrategy{}.extract(doc)
	if len(diags) != 0 {
		t.Fatalf("diags: %v", diags)
	}
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Text != basmala {
		t.Errorf("text = %q", s.Text)
	}
	if s.Ref != (quran.Ref{Surah: 1, Ayah: 1}) {
		t.Errorf("ref = %+v", s.Ref)
	}
	if doc[s.Start:s.End] != "```quran ref=\"1:1\"\n"+basmala+"\n```" {
		t.Errorf("offsets slice to %q", doc[s.Start:s.End])
	}
}

func TestMarkdownExtractUnterminated(t *testing.T) {
	spans, diags := markdownStrategy{}.extract("```quran ref=\"1:1\"\n" + basmala)
	if len(spans) != 0 || len(diags) == 0 {
		t.Errorf("spans = %v diags = %v", spans, diags)
	}
}

func TestBracketExtract(t *testing.T) {
	doc := "Quote: [[Q:112:1-4|" + basmala + "]] end."

	spans, diags := bracketStrategy{}.extract(doc)
	if len(diags) != 0 {
		t.Fatalf("diags: %v", diags)
	}
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Text != basmala {
		t.Errorf("text = %q", s.Text)
	}
	if s.Ref != (quran.Ref{Surah: 112, Ayah: 1, AyahEnd: 4}) {
		t.Errorf("ref = %+v", s.Ref)
	}
	if doc[s.Start:s.End] != "[[Q:112:1-4|"+basmala+"]]" {
		t.Errorf("offsets slice to %q", doc[s.Start:s.End])
	}
}

func TestBracketExtractMalformed(t *testing.T) {
	spans, diags := bracketStrategy{}.extract("[[Q:1:1|" + basmala)
	if len(spans) != 0 || len(diags) == 0 {
		t.Errorf("spans = %v diags = %v", spans, diags)
	}
	spans, diags = bracketStrategy{}.extract("[[Q:1:1 " + basmala + "]]")
	if len(spans) != 0 || len(diags) == 0 {
		t.Errorf("missing pipe: spans = %v diags = %v", spans, diags)
	}
}

func TestExtractInlineRefs(t *testing.T) {
	doc := "The opening is " + basmala + " (1:1) as revealed."

	spans := extractInlineRefs(doc)
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Text != basmala {
		t.Errorf("text = %q", s.Text)
	}
	if s.Ref != (quran.Ref{Surah: 1, Ayah: 1}) {
		t.Errorf("ref = %+v", s.Ref)
	}
	// The span bounds the Arabic run only, leaving the citation outside.
	if doc[s.Start:s.End] != basmala {
		t.Errorf("offsets slice to %q", doc[s.Start:s.End])
	}
}

func TestExtractInlineRefsIgnoresUncited(t *testing.T) {
	if spans := extractInlineRefs("just " + basmala + " here"); len(spans) != 0 {
		t.Errorf("uncited run produced %d spans", len(spans))
	}
	if spans := extractInlineRefs(basmala + " (not a ref)"); len(spans) != 0 {
		t.Errorf("non-numeric citation produced %d spans", len(spans))
	}
}

func TestSystemPrompt(t *testing.T) {
	for _, f := range []TagFormat{TagXML, TagMarkdown, TagBracket} {
		p := SystemPrompt(f)
		if p == "" {
			t.Errorf("empty prompt for %s", f)
		}
	}
	if !strings.Contains(SystemPrompt(TagXML), `<quran ref=`) {
		t.Error("xml prompt does not show the tag syntax")
	}
	if !strings.Contains(SystemPrompt(TagBracket), "[[Q:") {
		t.Error("bracket prompt does not show the tag syntax")
	}
}
