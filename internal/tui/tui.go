// Package tui implements the interactive compose screen: a problem editor
// with category and tone pickers, a debounced live preview, and the recent
// prompts list.
package tui

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alnah/go-promptcraft/internal/history"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/preview"
	"github.com/alnah/go-promptcraft/internal/theme"
)

// Options configures the compose screen.
type Options struct {
	Generator *pipeline.Generator
	History   *history.Store
	Theme     *theme.Store
	Debounce  time.Duration
	Logger    *zap.Logger

	// Terminal I/O. Nil means the process's stdin/stdout.
	Input  io.Reader
	Output io.Writer
}

// Run shows the compose screen until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	m := newModel(ctx, opts)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(m, progOpts...)

	d := preview.New(opts.Debounce, preview.FromGenerator(opts.Generator), func(u preview.Update) {
		p.Send(previewMsg(u))
	})
	m.submit = func(in preview.Input) { d.Submit(in) }
	m.flush = func() { d.Flush() }

	watchCtx, stopWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := opts.History.Watch(watchCtx, func(records []history.Record) {
			p.Send(historyMsg(records))
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			opts.Logger.Debug("history watch stopped", zap.Error(err))
		}
	}()

	_, err := p.Run()

	stopWatch()
	d.Stop()
	wg.Wait()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
