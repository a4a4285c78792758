// Package pipeline turns a raw problem description into a prompt pair.
//
// The stages run in a fixed order: lexical correction, style normalization,
// context classification, category-specific transformation, and template
// rendering. Each call is a pure function of its inputs and the injected
// components; nothing propagates out as an error.
package pipeline

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/classify"
	"github.com/alnah/go-promptcraft/internal/correct"
	"github.com/alnah/go-promptcraft/internal/normalize"
	"github.com/alnah/go-promptcraft/internal/template"
	"github.com/alnah/go-promptcraft/internal/tone"
	"github.com/alnah/go-promptcraft/internal/transform"
)

// MaxProblemLength is the longest problem accepted, in runes.
// Longer input is truncated before processing.
const MaxProblemLength = 500

// Result is the outcome of one generation.
type Result struct {
	System   string
	Prompt   string
	Problem  string // final problem text embedded in Prompt
	Category category.Category
	Tone     tone.Tone
	Changed  bool // Problem differs from the trimmed input
}

// Pair returns the system/user prompt pair.
func (r Result) Pair() template.Pair {
	return template.Pair{System: r.System, Prompt: r.Prompt}
}

// IsGuard reports whether r is the empty-input placeholder.
func (r Result) IsGuard() bool {
	return r.Pair() == template.Guard()
}

// ---------------------------------------------------------------------------
// Generator
// ---------------------------------------------------------------------------

// Generator composes the pipeline stages.
type Generator struct {
	local         correct.Local
	remote        correct.Corrector
	remoteTimeout time.Duration
	fallback      *correct.Fallback // nil means local-only
	logger        *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithCorrector sets the local corrector.
// Default: the variant strategy over the embedded lexicon.
func WithCorrector(c correct.Local) Option {
	return func(g *Generator) {
		if c != nil {
			g.local = c
		}
	}
}

// WithRemote sets a remote corrector consulted by GenerateContext.
// It is paired with the local corrector in a correct.Fallback; a
// non-positive timeout uses correct.DefaultRemoteTimeout.
func WithRemote(c correct.Corrector, timeout time.Duration) Option {
	return func(g *Generator) {
		g.remote = c
		g.remoteTimeout = timeout
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		local:  correct.NewLocal(correct.DefaultStrategy, nil),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.remote != nil {
		g.fallback = correct.NewFallback(g.remote, g.local, g.remoteTimeout, g.logger)
	}
	return g
}

// HasRemote reports whether GenerateContext consults a remote corrector.
func (g *Generator) HasRemote() bool {
	return g.fallback != nil
}

// ---------------------------------------------------------------------------
// Generation
// ---------------------------------------------------------------------------

// Answer is one follow-up answer appended to the prompt.
type Answer struct {
	Question string
	Value    string
}

// GenerateOption adjusts a single generation.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	answers []Answer
}

// WithAnswers appends non-empty answers as an "Additional context:" block.
func WithAnswers(answers ...Answer) GenerateOption {
	return func(c *generateConfig) {
		c.answers = append(c.answers, answers...)
	}
}

// GeneratePrompt runs the local pipeline synchronously.
func (g *Generator) GeneratePrompt(problem string, hint category.Category, t tone.Tone, opts ...GenerateOption) Result {
	return g.generate(problem, hint, t, g.local.Apply, opts)
}

// GenerateContext runs the pipeline, consulting the remote corrector when
// one is configured. Remote failures fall back to the local corrector.
func (g *Generator) GenerateContext(ctx context.Context, problem string, hint category.Category, t tone.Tone, opts ...GenerateOption) Result {
	if g.fallback == nil {
		return g.GeneratePrompt(problem, hint, t, opts...)
	}
	fix := func(text string) string {
		// Fallback never fails; it logs and uses the local corrector.
		out, _ := g.fallback.Correct(ctx, text)
		return out
	}
	return g.generate(problem, hint, t, fix, opts)
}

func (g *Generator) generate(problem string, hint category.Category, t tone.Tone, fix func(string) string, opts []GenerateOption) Result {
	var cfg generateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if t.IsZero() {
		t = tone.FriendlyTone
	}

	input := strings.TrimSpace(Truncate(problem))
	if input == "" {
		guard := template.Guard()
		return Result{
			System:   guard.System,
			Prompt:   guard.Prompt,
			Category: hint.OrDefault(),
			Tone:     t,
		}
	}

	text := normalize.Normalize(fix(input))
	c := classify.Classify(text, hint)
	text = transform.Transform(text, c)
	if text == "" {
		text = input
	}

	pair := template.Render(text, c, t)
	prompt := pair.Prompt + contextBlock(cfg.answers)

	g.logger.Debug("prompt generated",
		zap.String("category", c.String()),
		zap.Bool("reclassified", c != hint.OrDefault()),
		zap.String("tone", t.String()),
		zap.Bool("changed", text != input),
	)

	return Result{
		System:   pair.System,
		Prompt:   prompt,
		Problem:  text,
		Category: c,
		Tone:     t,
		Changed:  text != input,
	}
}

// contextBlock renders answers, skipping blank ones.
func contextBlock(answers []Answer) string {
	var b strings.Builder
	for _, a := range answers {
		v := strings.TrimSpace(a.Value)
		if v == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString("\n\nAdditional context:")
		}
		b.WriteString("\n- ")
		if q := strings.TrimSpace(a.Question); q != "" {
			b.WriteString(q)
			b.WriteString(" ")
		}
		b.WriteString(v)
	}
	return b.String()
}

// Truncate cuts s to MaxProblemLength runes.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxProblemLength {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxProblemLength {
			return s[:i]
		}
		n++
	}
	return s
}
