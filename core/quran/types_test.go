package quran

import (
	"testing"

	"github.com/tartil-labs/sanad/core/errors"
)

func validCorpus() *Corpus {
	return &Corpus{
		Surahs: []*Surah{
			{Number: 1, Name: "الفاتحة", EnglishName: "Al-Fatiha", VerseCount: 7, RevelationType: Meccan},
			{Number: 112, Name: "الإخلاص", EnglishName: "Al-Ikhlas", VerseCount: 4, RevelationType: Meccan},
		},
		Verses: []*Verse{
			{ID: 1, Surah: 1, Ayah: 1, Text: "بِسْمِ ٱللَّهِ", TextSimple: "بسم الله"},
			{ID: 2, Surah: 1, Ayah: 2, Text: "ٱلْحَمْدُ لِلَّهِ", TextSimple: "الحمد لله"},
			{ID: 3, Surah: 112, Ayah: 1, Text: "قُلْ هُوَ ٱللَّهُ أَحَدٌ", TextSimple: "قل هو الله أحد"},
		},
	}
}

func TestCorpusValidate(t *testing.T) {
	if err := validCorpus().Validate(); err != nil {
		t.Fatalf("valid corpus rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Corpus)
	}{
		{
			name:   "no verses",
			mutate: func(c *Corpus) { c.Verses = nil },
		},
		{
			name:   "no surahs",
			mutate: func(c *Corpus) { c.Surahs = nil },
		},
		{
			name:   "duplicate verse id",
			mutate: func(c *Corpus) { c.Verses[1].ID = 1 },
		},
		{
			name:   "empty verse text",
			mutate: func(c *Corpus) { c.Verses[0].Text = "" },
		},
		{
			name:   "unknown surah",
			mutate: func(c *Corpus) { c.Verses[2].Surah = 99 },
		},
		{
			name:   "ayah beyond surah verse count",
			mutate: func(c *Corpus) { c.Verses[2].Ayah = 5 },
		},
		{
			name: "verses out of canonical order",
			mutate: func(c *Corpus) {
				c.Verses[0], c.Verses[1] = c.Verses[1], c.Verses[0]
			},
		},
		{
			name:   "invalid revelation type",
			mutate: func(c *Corpus) { c.Surahs[0].RevelationType = "Unknown" },
		},
		{
			name:   "duplicate surah number",
			mutate: func(c *Corpus) { c.Surahs[1].Number = 1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCorpus()
			tt.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !errors.Is(err, errors.ErrCorruptCorpus) {
				t.Errorf("error %v should unwrap to ErrCorruptCorpus", err)
			}
		})
	}
}

func TestVerseHelpers(t *testing.T) {
	v := &Verse{ID: 262, Surah: 2, Ayah: 255, Text: "x"}
	if got := v.Key(); got != "2:255" {
		t.Errorf("Key() = %q, want 2:255", got)
	}
	if got := v.Ref(); got != (Ref{Surah: 2, Ayah: 255}) {
		t.Errorf("Ref() = %+v", got)
	}
}

func TestCorpusSurah(t *testing.T) {
	c := validCorpus()
	if s := c.Surah(112); s == nil || s.EnglishName != "Al-Ikhlas" {
		t.Errorf("Surah(112) = %+v", s)
	}
	if s := c.Surah(99); s != nil {
		t.Errorf("Surah(99) = %+v, want nil", s)
	}
}
