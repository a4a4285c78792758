// Package lexicon holds the immutable dictionaries used by the lexical
// correctors: a variant table (misspelling to canonical word) and a flat
// list of common words for edit-distance lookup.
//
// The default lexicon is embedded in the binary and parsed once on first
// use. Callers receive a *Lexicon and inject it into the correctors; there
// is no package-level mutable state.
package lexicon

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultData []byte

// ErrInvalid indicates malformed lexicon data.
var ErrInvalid = errors.New("invalid lexicon")

// Entry pairs a canonical word with its known misspelled forms.
type Entry struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// document is the on-disk YAML layout.
type document struct {
	Variants []Entry  `yaml:"variants"`
	Words    []string `yaml:"words"`
}

// Lexicon is an immutable, validated dictionary.
// All lookups are case-insensitive; keys are stored lowercase.
type Lexicon struct {
	entries  []Entry
	variants map[string]string
	words    []string
	wordSet  map[string]struct{}
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the embedded lexicon, parsing it on first call.
// It panics if the embedded data is invalid, which is a build defect.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		lex, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded data: %v", err))
		}
		defaultLex = lex
	})
	return defaultLex
}

// Parse decodes and validates a YAML lexicon document.
// Canonical words are added to the common word list automatically.
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %v: %w", err, ErrInvalid)
	}
	return New(doc.Variants, doc.Words)
}

// New builds a lexicon from in-memory tables.
// Returns ErrInvalid for empty canonicals or a variant claimed by two words.
func New(entries []Entry, words []string) (*Lexicon, error) {
	lex := &Lexicon{
		variants: make(map[string]string),
		wordSet:  make(map[string]struct{}),
	}

	for i, e := range entries {
		canonical := strings.ToLower(strings.TrimSpace(e.Canonical))
		if canonical == "" {
			return nil, fmt.Errorf("entry %d: empty canonical word: %w", i, ErrInvalid)
		}
		clean := Entry{Canonical: canonical}
		for _, v := range e.Variants {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" || v == canonical {
				continue
			}
			if prev, ok := lex.variants[v]; ok && prev != canonical {
				return nil, fmt.Errorf("variant %q maps to both %q and %q: %w", v, prev, canonical, ErrInvalid)
			}
			lex.variants[v] = canonical
			clean.Variants = append(clean.Variants, v)
		}
		lex.entries = append(lex.entries, clean)
		lex.addWord(canonical)
	}

	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		lex.addWord(w)
	}

	// A variant that is also a listed word would make the two strategies disagree.
	for v, canonical := range lex.variants {
		if _, ok := lex.wordSet[v]; ok {
			return nil, fmt.Errorf("variant %q of %q is also a common word: %w", v, canonical, ErrInvalid)
		}
	}

	slices.Sort(lex.words)
	return lex, nil
}

func (l *Lexicon) addWord(w string) {
	if _, ok := l.wordSet[w]; ok {
		return
	}
	l.wordSet[w] = struct{}{}
	l.words = append(l.words, w)
}

// Lookup returns the canonical form of a known misspelling.
func (l *Lexicon) Lookup(variant string) (string, bool) {
	c, ok := l.variants[strings.ToLower(variant)]
	return c, ok
}

// IsWord reports whether w is in the common word list.
func (l *Lexicon) IsWord(w string) bool {
	_, ok := l.wordSet[strings.ToLower(w)]
	return ok
}

// Words returns the sorted common word list. The slice is a copy.
func (l *Lexicon) Words() []string {
	return slices.Clone(l.words)
}

// Entries returns the variant table in declaration order. The slice is a copy.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = Entry{Canonical: e.Canonical, Variants: slices.Clone(e.Variants)}
	}
	return out
}

// VariantCount returns the number of registered misspellings.
func (l *Lexicon) VariantCount() int {
	return len(l.variants)
}
