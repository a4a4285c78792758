package correct

import (
	"context"

	"github.com/alnah/go-promptcraft/internal/lexicon"
)

// Compile-time interface compliance check.
var _ Local = (*VariantCorrector)(nil)

// VariantCorrector replaces tokens found in the lexicon's variant table.
// Misses are left unchanged.
type VariantCorrector struct {
	lex *lexicon.Lexicon
}

// NewVariantCorrector creates a variant-table corrector over lex.
func NewVariantCorrector(lex *lexicon.Lexicon) *VariantCorrector {
	return &VariantCorrector{lex: lex}
}

// Apply corrects text. It never fails; on internal error it returns text.
func (c *VariantCorrector) Apply(text string) string {
	return safeApply(text, func(s string) string {
		return rewrite(s, c.lex.Lookup)
	})
}

// Correct implements Corrector. The error is always nil.
func (c *VariantCorrector) Correct(_ context.Context, text string) (string, error) {
	return c.Apply(text), nil
}
