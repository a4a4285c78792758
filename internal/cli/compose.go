package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alnah/go-promptcraft/internal/theme"
	"github.com/alnah/go-promptcraft/internal/tui"
)

// ComposeCmd creates the compose command.
// The env parameter provides injectable dependencies for testing.
func ComposeCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "compose",
		Short: "Write a prompt with a live preview",
		Long: `Open the interactive compose screen.

Type a problem and the generated prompt is previewed as you type, after a
short pause (see "promptcraft config set debounce"). Pick a category and a
tone with tab and the arrow keys, save with ctrl+s, toggle the theme with
ctrl+t and show recent prompts with ctrl+r.

The first run follows the terminal background for the theme; the choice is
remembered once toggled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompose(cmd, env, verboseFlag(cmd))
		},
	}
}

func runCompose(cmd *cobra.Command, env *Env, verbose bool) error {
	s, err := openSession(env, verbose)
	if err != nil {
		return err
	}
	defer s.Close()

	gen, err := s.generator()
	if err != nil {
		return err
	}
	s.storeOrMemory()
	h, err := s.history()
	if err != nil {
		return err
	}
	th, err := s.theme(theme.WithFallback(theme.TerminalFallback))
	if err != nil {
		return err
	}

	s.logger.Debug("compose starting", zap.Duration("debounce", s.cfg.Debounce))
	return env.Composer.Compose(cmd.Context(), tui.Options{
		Generator: gen,
		History:   h,
		Theme:     th,
		Debounce:  s.cfg.Debounce,
		Logger:    s.logger,
	})
}
