package quran

import "testing"

func TestParseRef(t *testing.T) {
	tests := []struct {
		input    string
		expected Ref
		wantErr  bool
	}{
		// Single verse
		{
			input:    "1:1",
			expected: Ref{Surah: 1, Ayah: 1},
		},
		{
			input:    "2:255",
			expected: Ref{Surah: 2, Ayah: 255},
		},
		// Range
		{
			input:    "112:1-4",
			expected: Ref{Surah: 112, Ayah: 1, AyahEnd: 4},
		},
		// Surrounding whitespace tolerated
		{
			input:    "  2:255 ",
			expected: Ref{Surah: 2, Ayah: 255},
		},
		// Errors
		{input: "", wantErr: true},
		{input: "2", wantErr: true},
		{input: "2:", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "2:255-254", wantErr: true},
		{input: "115:1", wantErr: true},
		{input: "0:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRef(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRef(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRefString(t *testing.T) {
	tests := []struct {
		ref  Ref
		want string
	}{
		{Ref{Surah: 1, Ayah: 1}, "1:1"},
		{Ref{Surah: 112, Ayah: 1, AyahEnd: 4}, "112:1-4"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRefRoundTrip(t *testing.T) {
	for _, s := range []string{"1:1", "2:255", "112:1-4", "107:1-3"} {
		ref, err := ParseRef(s)
		if err != nil {
			t.Fatalf("ParseRef(%q): %v", s, err)
		}
		if ref.String() != s {
			t.Errorf("round trip of %q gave %q", s, ref.String())
		}
	}
}

func TestRefContains(t *testing.T) {
	r := Ref{Surah: 112, Ayah: 1, AyahEnd: 4}
	if !r.Contains(112, 1) || !r.Contains(112, 4) {
		t.Error("range should contain its endpoints")
	}
	if r.Contains(112, 5) || r.Contains(1, 1) {
		t.Error("range contains verses outside it")
	}

	single := Ref{Surah: 2, Ayah: 255}
	if !single.Contains(2, 255) || single.Contains(2, 256) {
		t.Error("single-verse containment wrong")
	}
}

func TestRefIsRange(t *testing.T) {
	if (Ref{Surah: 1, Ayah: 1}).IsRange() {
		t.Error("single verse reported as range")
	}
	if !(Ref{Surah: 112, Ayah: 1, AyahEnd: 4}).IsRange() {
		t.Error("range not reported as range")
	}
}
