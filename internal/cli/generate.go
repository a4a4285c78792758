package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/history"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/questions"
	"github.com/alnah/go-promptcraft/internal/tone"
)

// generateOptions holds validated options for the generate command.
type generateOptions struct {
	category   category.Category
	tone       tone.Tone
	answers    map[string]string
	asJSON     bool
	promptOnly bool
	noHistory  bool
	verbose    bool
}

// GenerateCmd creates the generate command.
// The env parameter provides injectable dependencies for testing.
func GenerateCmd(env *Env) *cobra.Command {
	var (
		cat        string
		tn         string
		answers    []string
		asJSON     bool
		promptOnly bool
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "generate [problem...]",
		Short: "Turn a rough request into a structured prompt",
		Long: `Turn a rough, possibly misspelled request into a system prompt and a
structured user prompt.

The text is spell-corrected, normalized, classified and rewritten for its
category, then rendered with the chosen tone. Without arguments, or with
"-", the problem is read from stdin. Input longer than 500 characters is
truncated.

Follow-up answers (see "promptcraft questions") are given as --answer id=value
and appended as an "Additional context" block.`,
		Example: `  promptcraft generate "i need 2 days leave for vacation" -t formal
  promptcraft generate -c coding "fix my js func"
  echo "write a blog about go" | promptcraft generate --json
  promptcraft generate "learn go" -a level="Some experience" -a goal="Build a CLI"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseGenerateOptions(cat, tn, answers)
			if err != nil {
				return err
			}
			opts.asJSON, opts.promptOnly, opts.noHistory = asJSON, promptOnly, noHistory
			opts.verbose = verboseFlag(cmd)

			problem, err := readInput(env, args)
			if err != nil {
				return err
			}
			return runGenerate(cmd, env, problem, opts)
		},
	}

	cmd.Flags().StringVarP(&cat, "category", "c", "", "Category hint: "+strings.Join(category.Names(), ", "))
	cmd.Flags().StringVarP(&tn, "tone", "t", tone.Friendly, "Tone: "+strings.Join(tone.Names(), ", "))
	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "Follow-up answer as id=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVarP(&promptOnly, "prompt-only", "p", false, "Print only the user prompt")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not save the prompt to history")
	cmd.MarkFlagsMutuallyExclusive("json", "prompt-only")

	return cmd
}

// parseGenerateOptions validates and parses CLI inputs.
// All parsing happens at the CLI boundary.
func parseGenerateOptions(cat, tn string, answers []string) (generateOptions, error) {
	var opts generateOptions
	var err error

	// Empty category means no hint.
	if cat != "" {
		if opts.category, err = category.Parse(cat); err != nil {
			return generateOptions{}, err
		}
	}

	if opts.tone, err = tone.Parse(tn); err != nil {
		return generateOptions{}, err
	}

	if opts.answers, err = parseAnswers(answers); err != nil {
		return generateOptions{}, err
	}
	return opts, nil
}

// parseAnswers converts id=value pairs into a map. Later pairs win.
func parseAnswers(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		id, value, ok := strings.Cut(p, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("%q (expected id=value): %w", p, ErrInvalidAnswer)
		}
		out[id] = value
	}
	return out, nil
}

// runGenerate executes the generate command with validated options.
func runGenerate(cmd *cobra.Command, env *Env, problem string, opts generateOptions) error {
	ctx := cmd.Context()

	s, err := openSession(env, opts.verbose)
	if err != nil {
		return err
	}
	defer s.Close()

	gen, err := s.generator()
	if err != nil {
		return err
	}

	if utf8.RuneCountInString(strings.TrimSpace(problem)) > pipeline.MaxProblemLength {
		fmt.Fprintf(env.Stderr, "Warning: problem truncated to %d characters\n", pipeline.MaxProblemLength)
	}

	genOpts, err := answerOptions(gen, problem, opts)
	if err != nil {
		return err
	}

	result := gen.GenerateContext(ctx, problem, opts.category, opts.tone, genOpts...)
	if result.IsGuard() {
		fmt.Fprintln(env.Stderr, "Nothing to improve: the problem is empty.")
		return writeResult(env.Stdout, result, opts.asJSON, opts.promptOnly)
	}

	if err := writeResult(env.Stdout, result, opts.asJSON, opts.promptOnly); err != nil {
		return err
	}

	if !opts.asJSON {
		fmt.Fprintf(env.Stderr, "Category: %s, tone: %s\n", result.Category.Label(), result.Tone.Label())
	}

	if opts.noHistory {
		return nil
	}
	h, err := s.history()
	if err != nil {
		s.logger.Warn("prompt not saved to history", zap.Error(err))
		return nil
	}
	h.Record(ctx, history.Entry{
		Problem:  strings.TrimSpace(pipeline.Truncate(problem)),
		Category: result.Category,
		Tone:     result.Tone,
		System:   result.System,
		Prompt:   result.Prompt,
	})
	return nil
}

// answerOptions validates follow-up answers against the questions offered
// for the problem. The category is resolved locally so the remote
// corrector is consulted once.
func answerOptions(gen *pipeline.Generator, problem string, opts generateOptions) ([]pipeline.GenerateOption, error) {
	if len(opts.answers) == 0 {
		return nil, nil
	}
	resolved := gen.GeneratePrompt(problem, opts.category, opts.tone).Category
	sections := questions.For(problem, resolved)
	if len(sections) == 0 {
		return nil, fmt.Errorf("no follow-up questions for a %s request: %w", resolved.Label(), questions.ErrUnknownQuestion)
	}
	answers, err := questions.Answers(sections, opts.answers)
	if err != nil {
		return nil, err
	}
	return []pipeline.GenerateOption{pipeline.WithAnswers(answers...)}, nil
}
