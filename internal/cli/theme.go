package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-promptcraft/internal/theme"
)

// ThemeCmd creates the theme command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ThemeCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the compose screen theme",
		Long: `Show or change the dark/light theme used by "promptcraft compose".

The preference is kept in the configured store under the "theme" key.
A missing or unreadable value means light.`,
		Example: `  promptcraft theme get
  promptcraft theme set dark
  promptcraft theme toggle`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeGet(cmd, env)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "set <dark|light>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.Dark), string(theme.Light)},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := theme.Parse(args[0])
			if err != nil {
				return err
			}
			return runThemeSet(cmd, env, t)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between dark and light",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeToggle(cmd, env)
		},
	})

	return cmd
}

func openTheme(cmd *cobra.Command, env *Env) (*session, *theme.Store, error) {
	s, err := openSession(env, verboseFlag(cmd))
	if err != nil {
		return nil, nil, err
	}
	ts, err := s.theme()
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, ts, nil
}

// runThemeGet handles the "theme get" command.
func runThemeGet(cmd *cobra.Command, env *Env) error {
	s, ts, err := openTheme(cmd, env)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = fmt.Fprintln(env.Stdout, ts.Load(cmd.Context()))
	return err
}

// runThemeSet handles the "theme set" command.
func runThemeSet(cmd *cobra.Command, env *Env, t theme.Theme) error {
	s, ts, err := openTheme(cmd, env)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := ts.Set(cmd.Context(), t); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Theme set to %s\n", t)
	return nil
}

// runThemeToggle handles the "theme toggle" command.
func runThemeToggle(cmd *cobra.Command, env *Env) error {
	s, ts, err := openTheme(cmd, env)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := ts.Toggle(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.Stdout, t)
	return err
}
