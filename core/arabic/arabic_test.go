package arabic

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basmala with full diacritics",
			input: "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ",
			want:  "بسم الله الرحمن الرحيم",
		},
		{
			name:  "alef variants fold to bare alef",
			input: "أإآٱ",
			want:  "اااا",
		},
		{
			name:  "alef maksura folds to yaa",
			input: "موسى",
			want:  "موسي",
		},
		{
			name:  "taa marbuta is preserved",
			input: "رحمة",
			want:  "رحمة",
		},
		{
			name:  "hamza carriers fold",
			input: "مؤمن شئ",
			want:  "مومن شي",
		},
		{
			name:  "tatweel removed",
			input: "كـتـاب",
			want:  "كتاب",
		},
		{
			name:  "whitespace collapsed and trimmed",
			input: "  بسم \t الله\n",
			want:  "بسم الله",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "non-arabic passes through",
			input: "hello  world",
			want:  "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ",
		"قُلْ هُوَ ٱللَّهُ أَحَدٌ",
		"  mixed نص عربي text  ",
		"",
	}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", s, once, twice)
		}
	}
}

func TestNormalizeWithDisabledSteps(t *testing.T) {
	opts := DefaultOptions()
	opts.FoldAlefMaksura = false
	if got := NormalizeWith("موسى", opts); got != "موسى" {
		t.Errorf("alef maksura folded despite being disabled: %q", got)
	}

	opts = DefaultOptions()
	opts.RemoveDiacritics = false
	in := "بِسْمِ"
	if got := NormalizeWith(in, opts); got != in {
		t.Errorf("diacritics removed despite being disabled: %q", got)
	}
}

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"السَّلَامُ عَلَيْكُمُ", "السلام عليكم"},
		{"ٱلرَّحْمَٰنِ", "ٱلرحمن"}, // dagger alef stripped, wasla kept
		{"بسم", "بسم"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RemoveDiacritics(tt.input); got != tt.want {
			t.Errorf("RemoveDiacritics(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestContainsArabic(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"بسم الله", true},
		{"The verse بسم means", true},
		{"hello world", false},
		{"", false},
		{"ﺑﺴﻢ", true}, // presentation forms
	}
	for _, tt := range tests {
		if got := ContainsArabic(tt.input); got != tt.want {
			t.Errorf("ContainsArabic(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("بسم الله الرحمن الرحيم")
	if len(got) != 4 {
		t.Fatalf("Words returned %d words, want 4: %v", len(got), got)
	}
	if got[0] != "بسم" || got[3] != "الرحيم" {
		t.Errorf("unexpected words: %v", got)
	}
	if Words("") != nil {
		t.Error("Words(\"\") should be nil")
	}
}

func FuzzNormalize(f *testing.F) {
	f.Add("بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ")
	f.Add("plain ascii")
	f.Add("")
	f.Add("   ")
	f.Add("كـتـاب، أإآٱ")
	f.Add("\xff\xfe")

	f.Fuzz(func(t *testing.T, s string) {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("not idempotent:\ninput:  %q\nfirst:  %q\nsecond: %q", s, once, twice)
		}
		if strings.Contains(once, "  ") {
			t.Errorf("whitespace not collapsed in %q", once)
		}
	})
}
