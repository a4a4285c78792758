package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors and derived styles for one theme.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Error   lipgloss.Color

	Title     lipgloss.Style
	Label     lipgloss.Style
	Box       lipgloss.Style
	Focused   lipgloss.Style
	Hint      lipgloss.Style
	ErrorText lipgloss.Style
}

// Palette returns the palette for t.
func (t Theme) Palette() Palette {
	if t == Dark {
		return newPalette(
			lipgloss.Color("#A78BFA"),
			lipgloss.Color("#22D3EE"),
			lipgloss.Color("#F9FAFB"),
			lipgloss.Color("#9CA3AF"),
			lipgloss.Color("#4B5563"),
			lipgloss.Color("#F87171"),
		)
	}
	return newPalette(
		lipgloss.Color("#7C3AED"),
		lipgloss.Color("#0891B2"),
		lipgloss.Color("#1F2937"),
		lipgloss.Color("#6B7280"),
		lipgloss.Color("#D1D5DB"),
		lipgloss.Color("#DC2626"),
	)
}

func newPalette(primary, accent, text, muted, border, errColor lipgloss.Color) Palette {
	return Palette{
		Primary: primary,
		Accent:  accent,
		Text:    text,
		Muted:   muted,
		Border:  border,
		Error:   errColor,

		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(text).
			Padding(0, 1),
		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Foreground(text).
			Padding(0, 1),
		Hint: lipgloss.NewStyle().
			Foreground(muted),
		ErrorText: lipgloss.NewStyle().
			Foreground(errColor),
	}
}
