package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/history"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/tone"
)

// Parallelism bounds for batch generation.
const (
	DefaultBatchParallel = 4
	MaxBatchParallel     = 16
)

// batchOptions holds validated options for the batch command.
type batchOptions struct {
	inputPath string
	category  category.Category
	tone      tone.Tone
	parallel  int
	asJSON    bool
	record    bool
	verbose   bool
}

// BatchCmd creates the batch command.
// The env parameter provides injectable dependencies for testing.
func BatchCmd(env *Env) *cobra.Command {
	var (
		cat      string
		tn       string
		parallel int
		asJSON   bool
		record   bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file|->",
		Short: "Generate prompts for every line of a file",
		Long: `Generate one prompt per non-empty line of a file, or of stdin with "-".
Lines starting with # are ignored.

Problems are processed concurrently (--parallel) and printed in input order.
With --json, one JSON object is printed per line.`,
		Example: `  promptcraft batch requests.txt -t formal
  promptcraft batch - --json < requests.txt
  promptcraft batch requests.txt -p 8 --record`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseBatchOptions(args[0], cat, tn, parallel)
			if err != nil {
				return err
			}
			opts.asJSON, opts.record = asJSON, record
			opts.verbose = verboseFlag(cmd)
			return runBatch(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&cat, "category", "c", "", "Category hint applied to every line")
	cmd.Flags().StringVarP(&tn, "tone", "t", tone.Friendly, "Tone: "+strings.Join(tone.Names(), ", "))
	cmd.Flags().IntVarP(&parallel, "parallel", "p", DefaultBatchParallel, fmt.Sprintf("Max concurrent generations (1-%d)", MaxBatchParallel))
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON lines")
	cmd.Flags().BoolVar(&record, "record", false, "Save results to history (only the newest 5 are kept)")

	return cmd
}

// clampParallel constrains parallel generations to [1, MaxBatchParallel].
func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxBatchParallel {
		return MaxBatchParallel
	}
	return n
}

// parseBatchOptions validates and parses CLI inputs.
func parseBatchOptions(inputPath, cat, tn string, parallel int) (batchOptions, error) {
	opts := batchOptions{inputPath: inputPath, parallel: clampParallel(parallel)}
	var err error
	if cat != "" {
		if opts.category, err = category.Parse(cat); err != nil {
			return batchOptions{}, err
		}
	}
	if opts.tone, err = tone.Parse(tn); err != nil {
		return batchOptions{}, err
	}
	return opts, nil
}

// readProblems returns the non-empty, non-comment lines of r.
func readProblems(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading problems: %w", err)
	}
	return out, nil
}

// runBatch executes the batch command with validated options.
func runBatch(cmd *cobra.Command, env *Env, opts batchOptions) error {
	ctx := cmd.Context()

	// === READ INPUT ===

	var in io.Reader = env.Stdin
	if opts.inputPath != "-" {
		// #nosec G304 -- user-provided input file
		f, err := os.Open(opts.inputPath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%s: %w", opts.inputPath, ErrFileNotFound)
			}
			return fmt.Errorf("cannot open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	problems, err := readProblems(in)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		return fmt.Errorf("%s has no problems: %w", opts.inputPath, ErrEmptyInput)
	}

	s, err := openSession(env, opts.verbose)
	if err != nil {
		return err
	}
	defer s.Close()

	gen, err := s.generator()
	if err != nil {
		return err
	}

	// === GENERATE ===

	fmt.Fprintf(env.Stderr, "Generating %d prompts (parallel: %d)...\n", len(problems), opts.parallel)

	results := make([]pipeline.Result, len(problems))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallel)
	for i, problem := range problems {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = gen.GenerateContext(gctx, problem, opts.category, opts.tone)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// === WRITE OUTPUT ===

	if err := writeBatch(env.Stdout, results, opts.asJSON); err != nil {
		return err
	}

	if !opts.record {
		return nil
	}
	h, err := s.history()
	if err != nil {
		s.logger.Warn("prompts not saved to history", zap.Error(err))
		return nil
	}
	for i, r := range results {
		h.Record(ctx, history.Entry{
			Problem:  pipeline.Truncate(problems[i]),
			Category: r.Category,
			Tone:     r.Tone,
			System:   r.System,
			Prompt:   r.Prompt,
		})
	}
	fmt.Fprintf(env.Stderr, "Saved the newest %d to history\n", min(len(results), history.MaxRecords))
	return nil
}

// writeBatch prints results in input order.
func writeBatch(w io.Writer, results []pipeline.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(toJSON(r)); err != nil {
				return err
			}
		}
		return nil
	}

	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w, strings.Repeat("-", 50)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d. %s\n\n", i+1, r.Category.Label()); err != nil {
			return err
		}
		if err := writeResult(w, r, false, false); err != nil {
			return err
		}
	}
	return nil
}
