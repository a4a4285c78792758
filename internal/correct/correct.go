// Package correct maps likely-misspelled tokens to canonical dictionary
// words.
//
// Local strategies (variant table, edit distance, or both chained) are total
// functions: they never fail and degrade to the input text on any internal
// error. Remote strategies (OpenAI, LanguageTool) may fail and are meant to
// be wrapped in a Fallback, which pairs them with a local strategy under a
// timeout.
package correct

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-promptcraft/internal/lexicon"
)

// Sentinel errors.
var (
	// ErrUnknownStrategy indicates an unrecognized local strategy name.
	ErrUnknownStrategy = errors.New("unknown correction strategy")

	// ErrEmptyAPIKey indicates a remote corrector was built without credentials.
	ErrEmptyAPIKey = errors.New("API key is required")
)

// Corrector corrects spelling in free text.
// Implementations may block on I/O and must honor ctx.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Local is a Corrector that also offers a synchronous, infallible form.
type Local interface {
	Corrector
	Apply(text string) string
}

// Strategy names a local correction strategy.
type Strategy string

// Local strategy names, as accepted by the "corrector" config key.
const (
	StrategyVariant  Strategy = "variant"
	StrategyDistance Strategy = "distance"
	StrategyBoth     Strategy = "both"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategyVariant

// ParseStrategy validates a strategy name. Empty input yields DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return DefaultStrategy, nil
	case StrategyVariant, StrategyDistance, StrategyBoth:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%q (valid: variant, distance, both): %w", s, ErrUnknownStrategy)
	}
}

// NewLocal builds the local corrector for a strategy over lex.
// A nil lex uses lexicon.Default(). Unknown strategies fall back to variant.
func NewLocal(s Strategy, lex *lexicon.Lexicon) Local {
	if lex == nil {
		lex = lexicon.Default()
	}
	switch s {
	case StrategyDistance:
		return NewDistanceCorrector(lex)
	case StrategyBoth:
		return Chain(NewVariantCorrector(lex), NewDistanceCorrector(lex))
	default:
		return NewVariantCorrector(lex)
	}
}

// ---------------------------------------------------------------------------
// Chain - runs local strategies in sequence
// ---------------------------------------------------------------------------

// Compile-time interface compliance check.
var _ Local = (*chain)(nil)

type chain struct {
	steps []Local
}

// Chain composes local correctors left to right.
func Chain(steps ...Local) Local {
	return &chain{steps: steps}
}

func (c *chain) Apply(text string) string {
	for _, s := range c.steps {
		text = s.Apply(text)
	}
	return text
}

func (c *chain) Correct(_ context.Context, text string) (string, error) {
	return c.Apply(text), nil
}
