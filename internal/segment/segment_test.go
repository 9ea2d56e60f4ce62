package segment

import (
	"reflect"
	"testing"
)

func TestPunktSegment(t *testing.T) {
	p, err := NewPunkt()
	if err != nil {
		t.Fatalf("NewPunkt: %v", err)
	}

	got, err := p.Segment("The cat sat. The cat sat on the mat. Dogs bark loudly at cats.")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	want := []string{"The cat sat.", "The cat sat on the mat.", "Dogs bark loudly at cats."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment() = %q, want %q", got, want)
	}

	for _, in := range []string{"", "   \n\t "} {
		got, err := p.Segment(in)
		if err != nil || len(got) != 0 {
			t.Errorf("Segment(%q) = %q, %v; want empty", in, got, err)
		}
	}
}

func TestRegexSegment(t *testing.T) {
	r := NewRegex()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"basic", "One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"trailing fragment", "First sentence. no terminator", []string{"First sentence.", "no terminator"}},
		{"punctuation tail ignored", "Done. ...", []string{"Done."}},
		{"newlines", "Line one.\nLine two.", []string{"Line one.", "Line two."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Segment(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWordsTokenize(t *testing.T) {
	w := NewWords()
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"The cat sat.", []string{"The", "cat", "sat", "."}},
		{"It isn't 3.5 miles!", []string{"It", "isn't", "3", ".", "5", "miles", "!"}},
		{"cat sat mat", []string{"cat", "sat", "mat"}},
	}
	for _, tt := range tests {
		got, err := w.Tokenize(tt.input)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCountWords(t *testing.T) {
	n, err := CountWords([]string{"The cat sat.", "Dogs bark at cats."}, NewWords())
	if err != nil {
		t.Fatal(err)
	}
	if n != 9 {
		t.Errorf("CountWords() = %d, want 9", n)
	}
}
