package history

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/alnah/go-promptcraft/internal/category"
)

const (
	exportTitle = "PromptCraft - Exported Prompts"
	exportEmpty = "No prompts to export."

	// generatedLayout renders e.g. "3/14/2025, 2:05:09 PM".
	generatedLayout = "1/2/2006, 3:04:05 PM"
)

// Export renders the history as plain text.
func (s *Store) Export(ctx context.Context) string {
	list := s.List(ctx)
	if len(list) == 0 {
		return exportEmpty
	}

	var b strings.Builder
	b.WriteString(exportTitle + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	for i, r := range list {
		fmt.Fprintf(&b, "%d. %s\n", i+1, typeLabel(r))
		fmt.Fprintf(&b, "Problem: %s\n", r.Problem)
		fmt.Fprintf(&b, "Tone: %s\n", r.Tone)
		fmt.Fprintf(&b, "Generated: %s\n", s.generated(r))
		fmt.Fprintf(&b, "\nSystem Prompt:\n%s\n", r.System)
		fmt.Fprintf(&b, "\nUser Prompt:\n%s\n", r.Prompt)
		b.WriteString(strings.Repeat("-", 50) + "\n\n")
	}
	return b.String()
}

// ExportMarkdown renders the history as a Markdown document.
func (s *Store) ExportMarkdown(ctx context.Context) string {
	list := s.List(ctx)
	if len(list) == 0 {
		return exportEmpty + "\n"
	}

	var b strings.Builder
	b.WriteString("# " + exportTitle + "\n")
	for i, r := range list {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, typeLabel(r))
		fmt.Fprintf(&b, "- **Problem:** %s\n", r.Problem)
		fmt.Fprintf(&b, "- **Tone:** %s\n", r.Tone)
		fmt.Fprintf(&b, "- **Generated:** %s\n", s.generated(r))
		b.WriteString("\n### System Prompt\n\n")
		b.WriteString(fenced(r.System))
		b.WriteString("\n### User Prompt\n\n")
		b.WriteString(fenced(r.Prompt))
	}
	return b.String()
}

// ExportHTML renders the Markdown export to HTML.
func (s *Store) ExportHTML(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s.ExportMarkdown(ctx)), &buf); err != nil {
		return "", fmt.Errorf("render history html: %w", err)
	}
	return buf.String(), nil
}

func (s *Store) generated(r Record) string {
	return r.Timestamp.In(s.loc).Format(generatedLayout)
}

// typeLabel falls back to the category label, then to the general label.
func typeLabel(r Record) string {
	if r.Type != "" {
		return r.Type
	}
	if c, err := category.Parse(r.Category); err == nil {
		return c.Label()
	}
	return category.GeneralCategory.Label()
}

// fenced wraps text in a code fence longer than any backtick run inside it.
func fenced(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", max(3, longest+1))
	return fence + "text\n" + text + "\n" + fence + "\n"
}
