package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/go-promptcraft/internal/format"
	"github.com/alnah/go-promptcraft/internal/pipeline"
)

const emptyPreview = "Start typing to see a live preview."

// refreshPreview re-renders the preview pane content.
func (m *model) refreshPreview() {
	if m.result == nil {
		m.preview.SetContent(m.palette.Hint.Render(emptyPreview))
		return
	}
	wrap := lipgloss.NewStyle().Width(max(m.preview.Width, 20))
	var b strings.Builder
	b.WriteString(m.palette.Label.Render("System"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(m.result.System))
	b.WriteString("\n\n")
	b.WriteString(m.palette.Label.Render("Prompt"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(m.result.Prompt))
	m.preview.SetContent(b.String())
	m.preview.GotoTop()
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	p := m.palette

	var b strings.Builder

	// Header
	header := p.Title.Render("PromptCraft") + p.Hint.Render("  "+string(m.theme)+" theme")
	b.WriteString(header)
	b.WriteString("\n\n")

	// Problem editor
	box := p.Box
	if m.focus == focusProblem {
		box = p.Focused
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n")
	count := fmt.Sprintf("%d/%d", utf8.RuneCountInString(m.input.Value()), pipeline.MaxProblemLength)
	b.WriteString(p.Hint.Render(count))
	b.WriteString("\n")

	// Pickers
	b.WriteString(m.picker("Category", m.categoryLabel(), m.focus == focusCategory))
	b.WriteString("   ")
	b.WriteString(m.picker("Tone", m.tones[m.toneIdx].Label(), m.focus == focusTone))
	b.WriteString("\n\n")

	// Preview
	title := "Live preview"
	if m.result != nil {
		title += " · " + m.result.Category.Label()
		if m.result.Changed {
			title += " · corrected"
		}
	}
	b.WriteString(p.Label.Render(title))
	b.WriteString("\n")
	b.WriteString(p.Box.Render(m.preview.View()))
	b.WriteString("\n")

	if m.showRecent {
		b.WriteString(m.recentView())
	}

	if m.status != "" {
		b.WriteString(p.Hint.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))

	return b.String()
}

func (m *model) categoryLabel() string {
	if m.catIdx == 0 {
		return "Auto-detect"
	}
	return m.categories[m.catIdx-1].Label()
}

func (m *model) picker(label, value string, focused bool) string {
	p := m.palette
	v := "‹ " + value + " ›"
	if focused {
		v = p.Title.Render(v)
	}
	return p.Hint.Render(label+": ") + v
}

func (m *model) recentView() string {
	p := m.palette
	var b strings.Builder
	b.WriteString(p.Label.Render("Recent prompts"))
	b.WriteString("\n")
	if len(m.recent) == 0 {
		b.WriteString(p.Hint.Render("No prompts yet."))
		b.WriteString("\n")
		return b.String()
	}
	width := max(m.width-30, 20)
	now := m.now()
	for i, r := range m.recent {
		label := r.Type
		if label == "" {
			label = "General Help"
		}
		fmt.Fprintf(&b, "%d. %s %s\n   %s\n", i+1,
			label,
			p.Hint.Render("· "+format.Ago(now, r.Timestamp)),
			format.Ellipsis(r.Problem, width))
	}
	return b.String()
}
