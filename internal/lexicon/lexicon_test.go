package lexicon_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/alnah/go-promptcraft/internal/lexicon"
)

func TestDefault_Loads(t *testing.T) {
	t.Parallel()

	lex := lexicon.Default()
	if lex == nil {
		t.Fatal("Default() returned nil")
	}
	if lex != lexicon.Default() {
		t.Error("Default() should return the same instance")
	}

	tests := []struct {
		variant string
		want    string
	}{
		{"nneed", "need"},
		{"heelp", "help"},
		{"HEELP", "help"},
		{"teh", "the"},
		{"vaction", "vacation"},
		{"becuase", "because"},
	}
	for _, tt := range tests {
		got, ok := lex.Lookup(tt.variant)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q) = %q, %v; want %q, true", tt.variant, got, ok, tt.want)
		}
	}

	if _, ok := lex.Lookup("need"); ok {
		t.Error("canonical word should not be a variant of itself")
	}
}

func TestDefault_WordList(t *testing.T) {
	t.Parallel()

	lex := lexicon.Default()
	for _, w := range []string{"i", "need", "help", "days", "leave", "vacation", "yes", "no"} {
		if !lex.IsWord(w) {
			t.Errorf("IsWord(%q) = false", w)
		}
	}

	words := lex.Words()
	if !slices.IsSorted(words) {
		t.Error("Words() is not sorted")
	}
	// Canonical words from the variant table are part of the list.
	if !slices.Contains(words, "presentation") {
		t.Error("Words() missing canonical word \"presentation\"")
	}

	words[0] = "zzz"
	if lex.Words()[0] == "zzz" {
		t.Error("Words() exposes internal slice")
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "variants: [unterminated"},
		{"empty canonical", "variants:\n  - canonical: \"\"\n    variants: [x]\n"},
		{"variant claimed twice", "variants:\n  - canonical: need\n    variants: [ned]\n  - canonical: bed\n    variants: [ned]\n"},
		{"variant is a word", "variants:\n  - canonical: need\n    variants: [nead]\nwords: [nead]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := lexicon.Parse([]byte(tt.data))
			if !errors.Is(err, lexicon.ErrInvalid) {
				t.Errorf("Parse() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestNew_NormalizesCase(t *testing.T) {
	t.Parallel()

	lex, err := lexicon.New(
		[]lexicon.Entry{{Canonical: " Help ", Variants: []string{"HEELP", "help", ""}}},
		[]string{"World", ""},
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got, ok := lex.Lookup("heelp"); !ok || got != "help" {
		t.Errorf("Lookup(heelp) = %q, %v", got, ok)
	}
	if lex.VariantCount() != 1 {
		t.Errorf("VariantCount() = %d, want 1", lex.VariantCount())
	}
	if !lex.IsWord("WORLD") || !lex.IsWord("help") {
		t.Error("word list should be case-insensitive and include canonicals")
	}

	entries := lex.Entries()
	entries[0].Variants[0] = "mutated"
	if lex.Entries()[0].Variants[0] != "heelp" {
		t.Error("Entries() exposes internal slices")
	}
}
