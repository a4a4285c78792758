// Package template renders the system/user prompt pair for a category.
//
// Templates are versioned with the binary; an update requires a rebuild.
// Every user prompt has the same shape: a lead sentence with the problem in
// double quotes, the tone instruction, a checklist, and a closing line.
package template

import (
	"fmt"
	"strings"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/tone"
)

// Guard texts returned for empty input.
const (
	GuardSystem = "Please enter a description of what you need help with."
	GuardPrompt = "Please describe your problem to generate a prompt."
)

// Pair is a rendered system prompt and user prompt.
type Pair struct {
	System string `json:"system"`
	Prompt string `json:"prompt"`
}

// IsZero reports whether both halves are empty.
func (p Pair) IsZero() bool {
	return p.System == "" && p.Prompt == ""
}

// Template is the hand-authored text for one category.
type Template struct {
	System    string   // one-sentence role
	Lead      string   // text before the quoted problem
	Heading   string   // checklist heading, e.g. "Include"
	Checklist []string // one line per bullet
	Closing   string
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// Guard returns the fixed pair shown when there is nothing to render.
func Guard() Pair {
	return Pair{System: GuardSystem, Prompt: GuardPrompt}
}

// Render fills c's template with problem and t's instruction.
// A zero category renders the general template; a zero tone uses friendly.
func Render(problem string, c category.Category, t tone.Tone) Pair {
	tmpl := lookup(c)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: \"%s\".\n", tmpl.Lead, problem)
	b.WriteString(t.Instruction())
	b.WriteString("\n")
	b.WriteString(tmpl.Heading)
	b.WriteString(":\n")
	for _, item := range tmpl.Checklist {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(tmpl.Closing)

	return Pair{System: tmpl.System, Prompt: b.String()}
}

// For returns a copy of the template used for c.
func For(c category.Category) Template {
	tmpl := lookup(c)
	tmpl.Checklist = append([]string(nil), tmpl.Checklist...)
	return tmpl
}

// Get returns the template for a category name.
// Returns ErrUnknown if the name is not a category.
func Get(name string) (Template, error) {
	c, err := category.Parse(name)
	if err != nil {
		return Template{}, fmt.Errorf("template for %q: %w", name, ErrUnknown)
	}
	return For(c), nil
}

func lookup(c category.Category) Template {
	if tmpl, ok := templates[c.String()]; ok {
		return tmpl
	}
	return templates[category.General]
}
