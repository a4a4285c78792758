package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-promptcraft/internal/format"
	"github.com/alnah/go-promptcraft/internal/history"
)

// previewWidth is the problem width in history listings.
const previewWidth = 60

// exportFormat is a validated export rendering.
type exportFormat string

const (
	formatText     exportFormat = "text"
	formatMarkdown exportFormat = "markdown"
	formatHTML     exportFormat = "html"
)

// parseExportFormat accepts text|txt, markdown|md, html.
func parseExportFormat(s string) (exportFormat, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return formatText, nil
	case "markdown", "md":
		return formatMarkdown, nil
	case "html":
		return formatHTML, nil
	default:
		return "", fmt.Errorf("%q (use text, markdown or html): %w", s, ErrInvalidFormat)
	}
}

func (f exportFormat) ext() string {
	switch f {
	case formatMarkdown:
		return ".md"
	case formatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

func (f exportFormat) accepts(ext string) bool {
	switch f {
	case formatMarkdown:
		return ext == ".md" || ext == ".markdown"
	case formatHTML:
		return ext == ".html" || ext == ".htm"
	default:
		return ext == ".txt"
	}
}

func (f exportFormat) label() string {
	switch f {
	case formatMarkdown:
		return "Markdown"
	case formatHTML:
		return "HTML"
	default:
		return "plain text"
	}
}

// HistoryCmd creates the history command with subcommands.
// The env parameter provides injectable dependencies for testing.
func HistoryCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show, clear or export recent prompts",
		Long: `Manage the prompt history.

The five most recent prompts are kept, newest first, in the configured
store (see "promptcraft config get store").`,
		Example: `  promptcraft history list
  promptcraft history show <id>
  promptcraft history export --format markdown -o prompts.md
  promptcraft history clear`,
	}

	cmd.AddCommand(historyListCmd(env))
	cmd.AddCommand(historyShowCmd(env))
	cmd.AddCommand(historyClearCmd(env))
	cmd.AddCommand(historyExportCmd(env))

	return cmd
}

func historyListCmd(env *Env) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent prompts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, env, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as a JSON array")
	return cmd
}

func historyShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one saved prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, env, args[0])
		},
	}
}

func historyClearCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(cmd, env)
		},
	}
}

func historyExportCmd(env *Env) *cobra.Command {
	var (
		formatName string
		output     string
		save       bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved prompts as text, Markdown or HTML",
		Long: `Export saved prompts.

Without --output or --save the export is printed to stdout. --save writes
promptcraft-history-<date>.<ext> in the current directory. Existing files
are never overwritten.`,
		Example: `  promptcraft history export
  promptcraft history export --format html -o prompts.html
  promptcraft history export --format md --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseExportFormat(formatName)
			if err != nil {
				return err
			}
			return runHistoryExport(cmd, env, f, output, save)
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "text", "Export format: text, markdown, html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "Write to promptcraft-history-<date>.<ext>")
	cmd.MarkFlagsMutuallyExclusive("output", "save")
	return cmd
}

// openHistory opens a session and its history.
func openHistory(cmd *cobra.Command, env *Env) (*session, *history.Store, error) {
	s, err := openSession(env, verboseFlag(cmd))
	if err != nil {
		return nil, nil, err
	}
	h, err := s.history()
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, h, nil
}

// runHistoryList handles the "history list" command.
func runHistoryList(cmd *cobra.Command, env *Env, asJSON bool) error {
	s, h, err := openHistory(cmd, env)
	if err != nil {
		return err
	}
	defer s.Close()

	records := h.List(cmd.Context())
	if asJSON {
		if records == nil {
			records = []history.Record{}
		}
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return writeHistoryList(env.Stdout, records, env.Now())
}

func writeHistoryList(w io.Writer, records []history.Record, now time.Time) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No prompts yet.")
		return err
	}
	for i, r := range records {
		if _, err := fmt.Fprintf(w, "%d. %s · %s · %s\n   %s\n   id: %s\n",
			i+1, typeOrDefault(r), r.Tone, format.Ago(now, r.Timestamp),
			format.Ellipsis(r.Problem, previewWidth), r.ID); err != nil {
			return err
		}
	}
	return nil
}

// typeOrDefault returns the record's label, or "General Help" for old records.
func typeOrDefault(r history.Record) string {
	if r.Type == "" {
		return "General Help"
	}
	return r.Type
}

// runHistoryShow handles the "history show" command.
func runHistoryShow(cmd *cobra.Command, env *Env, id string) error {
	s, h, err := openHistory(cmd, env)
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := h.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Stdout, "%s · %s\nProblem: %s\n\nSystem:\n%s\n\nPrompt:\n%s\n",
		typeOrDefault(r), r.Tone, r.Problem, r.System, r.Prompt)
	return err
}

// runHistoryClear handles the "history clear" command.
func runHistoryClear(cmd *cobra.Command, env *Env) error {
	s, h, err := openHistory(cmd, env)
	if err != nil {
		return err
	}
	defer s.Close()

	n := len(h.List(cmd.Context()))
	h.Clear(cmd.Context())
	fmt.Fprintf(env.Stderr, "Cleared %s\n", format.Count(n, "prompt"))
	return nil
}

// runHistoryExport handles the "history export" command.
func runHistoryExport(cmd *cobra.Command, env *Env, f exportFormat, output string, save bool) error {
	ctx := cmd.Context()

	s, h, err := openHistory(cmd, env)
	if err != nil {
		return err
	}
	defer s.Close()

	var content string
	switch f {
	case formatMarkdown:
		content = h.ExportMarkdown(ctx)
	case formatHTML:
		if content, err = h.ExportHTML(ctx); err != nil {
			return err
		}
	default:
		content = h.Export(ctx)
	}

	if save {
		output = defaultExportFilename(env.Now(), f)
	}
	if output == "" {
		_, err := io.WriteString(env.Stdout, ensureNewline(content))
		return err
	}

	warnExtensionMismatch(env.Stderr, output, f)
	if err := writeFileAtomic(output, ensureNewline(content)); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Exported to %s\n", output)
	return nil
}

// defaultExportFilename returns promptcraft-history-<YYYY-MM-DD>.<ext>.
func defaultExportFilename(now time.Time, f exportFormat) string {
	return "promptcraft-history-" + now.UTC().Format("2006-01-02") + f.ext()
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
