package correct

import (
	"context"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/alnah/go-promptcraft/internal/lexicon"
)

// Acceptance thresholds for the nearest candidate.
const (
	shortTokenLen    = 4 // tokens up to this many runes are "short"
	maxShortDistance = 2
	maxLongDistance  = 3
)

// Compile-time interface compliance check.
var _ Local = (*DistanceCorrector)(nil)

// DistanceCorrector replaces unknown tokens with the nearest common word by
// Levenshtein distance, when that word is close enough and unambiguous.
type DistanceCorrector struct {
	lex   *lexicon.Lexicon
	words []string
	lens  []int // rune counts of words
}

// NewDistanceCorrector creates an edit-distance corrector over lex's word list.
func NewDistanceCorrector(lex *lexicon.Lexicon) *DistanceCorrector {
	words := lex.Words()
	lens := make([]int, len(words))
	for i, w := range words {
		lens[i] = utf8.RuneCountInString(w)
	}
	return &DistanceCorrector{lex: lex, words: words, lens: lens}
}

// Apply corrects text. It never fails; on internal error it returns text.
func (c *DistanceCorrector) Apply(text string) string {
	return safeApply(text, func(s string) string {
		return rewrite(s, c.nearest)
	})
}

// Correct implements Corrector. The error is always nil.
func (c *DistanceCorrector) Correct(_ context.Context, text string) (string, error) {
	return c.Apply(text), nil
}

// nearest returns the unique closest word within the threshold.
// Known words and tokens with digits or inner punctuation are skipped.
func (c *DistanceCorrector) nearest(token string) (string, bool) {
	if !isLetters(token) || c.lex.IsWord(token) {
		return "", false
	}

	n := utf8.RuneCountInString(token)
	limit := maxLongDistance
	if n <= shortTokenLen {
		limit = maxShortDistance
	}

	best, bestDist, tie := -1, limit+1, false
	for i, w := range c.words {
		if abs(c.lens[i]-n) > limit {
			continue
		}
		d := levenshtein.ComputeDistance(token, w)
		switch {
		case d < bestDist:
			best, bestDist, tie = i, d, false
		case d == bestDist:
			tie = true
		}
	}

	if best < 0 || tie {
		return "", false
	}
	return c.words[best], true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
