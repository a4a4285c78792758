package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/history"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/preview"
	"github.com/alnah/go-promptcraft/internal/theme"
	"github.com/alnah/go-promptcraft/internal/tone"
)

type focus int

const (
	focusProblem focus = iota
	focusCategory
	focusTone
	focusCount
)

// Messages.
type (
	previewMsg preview.Update
	historyMsg []history.Record
	savedMsg   struct {
		records []history.Record
		guard   bool
	}
	themeMsg struct {
		theme theme.Theme
		err   error
	}
)

type model struct {
	ctx  context.Context
	opts Options
	now  func() time.Time

	// Preview scheduling, wired by Run.
	submit func(preview.Input)
	flush  func()

	input   textarea.Model
	preview viewport.Model
	help    help.Model

	focus   focus
	catIdx  int // 0 is automatic detection
	toneIdx int

	categories []category.Category
	tones      []tone.Tone

	last   preview.Input
	result *pipeline.Result
	recent []history.Record

	theme      theme.Theme
	palette    theme.Palette
	showRecent bool
	status     string

	width, height int
	quitting      bool
}

func newModel(ctx context.Context, opts Options) *model {
	input := textarea.New()
	input.Placeholder = "Describe what you need, e.g. i need 2 days leave for vacation"
	input.CharLimit = pipeline.MaxProblemLength
	input.ShowLineNumbers = false
	input.SetHeight(4)
	input.Focus()

	m := &model{
		ctx:        ctx,
		opts:       opts,
		now:        time.Now,
		submit:     func(preview.Input) {},
		flush:      func() {},
		input:      input,
		preview:    viewport.New(60, 10),
		help:       help.New(),
		categories: category.All(),
		tones:      tone.All(),
	}
	for i, t := range m.tones {
		if t == tone.FriendlyTone {
			m.toneIdx = i
		}
	}
	m.setTheme(opts.Theme.Load(ctx))
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadHistory())
}

func (m *model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		return historyMsg(m.opts.History.List(m.ctx))
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case previewMsg:
		if msg.Result == nil {
			m.result = nil
		} else {
			res := *msg.Result
			m.result = &res
		}
		m.refreshPreview()
		return m, nil

	case historyMsg:
		m.recent = msg
		return m, nil

	case savedMsg:
		if msg.guard {
			m.status = "Nothing to save: the problem is empty."
			return m, nil
		}
		m.recent = msg.records
		m.status = "Saved to recent prompts."
		return m, nil

	case themeMsg:
		if msg.err != nil {
			m.status = "Theme not saved: " + msg.err.Error()
		}
		m.setTheme(msg.theme)
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Focus):
		step := focus(1)
		if msg.String() == "shift+tab" {
			step = focusCount - 1
		}
		m.setFocus((m.focus + step) % focusCount)
		return nil

	case key.Matches(msg, keys.Save):
		return m.save()

	case key.Matches(msg, keys.Preview):
		flush := m.flush
		return func() tea.Msg {
			flush()
			return nil
		}

	case key.Matches(msg, keys.Theme):
		return m.toggleTheme()

	case key.Matches(msg, keys.Recent):
		m.showRecent = !m.showRecent
		return nil

	case key.Matches(msg, keys.Clear):
		if !m.showRecent {
			return nil
		}
		hist := m.opts.History
		ctx := m.ctx
		m.status = "Recent prompts cleared."
		return func() tea.Msg {
			return historyMsg(hist.Clear(ctx))
		}
	}

	if s := msg.String(); s == "pgup" || s == "pgdown" {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	}

	switch m.focus {
	case focusCategory, focusTone:
		return m.handlePicker(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.inputChanged()
		return cmd
	}
}

// handlePicker cycles the focused picker.
func (m *model) handlePicker(msg tea.KeyMsg) tea.Cmd {
	delta := 0
	switch {
	case key.Matches(msg, keys.Prev):
		delta = -1
	case key.Matches(msg, keys.Next):
		delta = 1
	default:
		return nil
	}

	if m.focus == focusCategory {
		n := len(m.categories) + 1
		m.catIdx = (m.catIdx + delta + n) % n
	} else {
		n := len(m.tones)
		m.toneIdx = (m.toneIdx + delta + n) % n
	}
	m.inputChanged()
	return nil
}

func (m *model) setFocus(f focus) {
	m.focus = f
	if f == focusProblem {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// current returns the form as a preview input.
func (m *model) current() preview.Input {
	in := preview.Input{
		Problem: m.input.Value(),
		Tone:    m.tones[m.toneIdx],
	}
	if m.catIdx > 0 {
		in.Category = m.categories[m.catIdx-1]
	}
	return in
}

// inputChanged submits the form when it differs from the last submission.
func (m *model) inputChanged() {
	in := m.current()
	if in == m.last {
		return
	}
	m.last = in
	m.status = ""
	m.submit(in)
}

// save generates the current form and records it.
func (m *model) save() tea.Cmd {
	in := m.current()
	gen, hist, ctx := m.opts.Generator, m.opts.History, m.ctx
	return func() tea.Msg {
		res := gen.GenerateContext(ctx, in.Problem, in.Category, in.Tone)
		if res.IsGuard() {
			return savedMsg{guard: true}
		}
		records := hist.Record(ctx, history.Entry{
			Problem:  strings.TrimSpace(pipeline.Truncate(in.Problem)),
			Category: res.Category,
			Tone:     res.Tone,
			System:   res.System,
			Prompt:   res.Prompt,
		})
		return savedMsg{records: records}
	}
}

func (m *model) toggleTheme() tea.Cmd {
	store, ctx := m.opts.Theme, m.ctx
	return func() tea.Msg {
		t, err := store.Toggle(ctx)
		return themeMsg{theme: t, err: err}
	}
}

func (m *model) setTheme(t theme.Theme) {
	m.theme = t
	m.palette = t.Palette()
	m.refreshPreview()
}

func (m *model) resize(w, h int) {
	m.width, m.height = w, h
	inner := max(w-4, 20)
	m.input.SetWidth(inner)
	m.preview.Width = inner
	m.preview.Height = max(h-16, 5)
	m.help.Width = w
	m.refreshPreview()
}
