package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tartil-labs/sanad/internal/corpustest"
)

const basmala = "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ"

// writeFixtureCorpus lays out the test corpus as a loadable directory and
// points the global flags at it.
func writeFixtureCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	c := corpustest.Fixture()

	for name, v := range map[string]interface{}{
		"quran-verses.json": c.Verses,
		"quran-surahs.json": c.Surahs,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	CLI.Corpus = dir
	CLI.Verified = false
	CLI.Threshold = 0.85
	return dir
}

func TestValidateCmd(t *testing.T) {
	writeFixtureCorpus(t)

	cmd := &ValidateCmd{Text: basmala}
	if err := cmd.Run(); err != nil {
		t.Fatalf("valid quote rejected: %v", err)
	}

	cmd = &ValidateCmd{Text: "نص لا علاقة له بالقران الكريم"}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error for unmatched quote")
	}
}

func TestVerseCmd(t *testing.T) {
	writeFixtureCorpus(t)

	if err := (&VerseCmd{Ref: "1:1"}).Run(); err != nil {
		t.Fatalf("verse lookup: %v", err)
	}
	if err := (&VerseCmd{Ref: "112:1-4"}).Run(); err != nil {
		t.Fatalf("range lookup: %v", err)
	}
	if err := (&VerseCmd{Ref: "not-a-ref"}).Run(); err == nil {
		t.Fatal("expected error for malformed reference")
	}
	if err := (&VerseCmd{Ref: "2:2"}).Run(); err == nil {
		t.Fatal("expected error for missing verse")
	}
}

func TestSearchCmd(t *testing.T) {
	writeFixtureCorpus(t)
	if err := (&SearchCmd{Query: basmala, Limit: 3}).Run(); err != nil {
		t.Fatalf("search: %v", err)
	}
}

func TestSurahsCmd(t *testing.T) {
	writeFixtureCorpus(t)
	if err := (&SurahsCmd{}).Run(); err != nil {
		t.Fatalf("list surahs: %v", err)
	}
	if err := (&SurahsCmd{Number: 112}).Run(); err != nil {
		t.Fatalf("show surah: %v", err)
	}
	if err := (&SurahsCmd{Number: 99}).Run(); err == nil {
		t.Fatal("expected error for unknown surah")
	}
}

func TestProcessCmdCorrectsFile(t *testing.T) {
	dir := writeFixtureCorpus(t)

	misquote := "بِسْمِ ٱللَّهِ ٱلرَّحِيمِ ٱلرَّحِيمِ"
	input := filepath.Join(dir, "doc.txt")
	doc := `قال: <quran ref="1:1">` + misquote + `</quran>`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	output := filepath.Join(dir, "out.txt")

	cmd := &ProcessCmd{File: input, Format: "xml", MinConfidence: 0.85, Out: output}
	if err := cmd.Run(); err != nil {
		t.Fatalf("process: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	got := string(data)
	if strings.Contains(got, misquote) {
		t.Error("misquote survived correction")
	}
	if !strings.Contains(got, basmala) {
		t.Errorf("corrected text missing canonical verse:\n%s", got)
	}
}

func TestCheckCmd(t *testing.T) {
	dir := writeFixtureCorpus(t)

	input := filepath.Join(dir, "clean.txt")
	doc := `<quran ref="1:1">` + basmala + `</quran>`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := (&CheckCmd{File: input}).Run(); err != nil {
		t.Fatalf("check clean document: %v", err)
	}
}

func TestPromptCmd(t *testing.T) {
	for _, format := range []string{"xml", "markdown", "bracket", "minimal"} {
		if err := (&PromptCmd{Format: format}).Run(); err != nil {
			t.Errorf("prompt %s: %v", format, err)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	if err := (&VersionCmd{}).Run(); err != nil {
		t.Fatalf("version: %v", err)
	}
}
