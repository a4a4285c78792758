package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-promptcraft/internal/config"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-promptcraft/config.yaml.
Every setting can be overridden with a PROMPTCRAFT_<KEY> environment
variable (dashes become underscores). OPENAI_API_KEY is only read from
the environment.

Supported settings:
  corrector         Local spelling strategy: variant, distance, both
  remote            Remote corrector: none, openai, languagetool
  remote-timeout    Remote correction budget before local fallback (e.g. 3s)
  openai-model      Model used when remote is openai
  languagetool-url  LanguageTool server when remote is languagetool
  store             History/theme storage: file, sqlite
  store-path        Storage file (default: in the config directory)
  debounce          Live preview delay in compose (e.g. 500ms)
  log-level         debug, info, warn, error`,
		Example: `  promptcraft config set remote languagetool
  promptcraft config get store
  promptcraft config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

The value is validated before it is written.`,
		Example: `  promptcraft config set corrector both
  promptcraft config set store-path ~/promptcraft.db`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the effective value: environment, then file, then default.`,
		Example:   `  promptcraft config get remote-timeout`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Values overridden by the environment are marked "(from env)".`,
		Example: `  promptcraft config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("%q (valid keys: %s): %w", key, strings.Join(config.Keys(), ", "), config.ErrUnknownKey)
	}

	// Store paths expanded for consistency.
	if key == config.KeyStorePath && value != "" {
		value = config.ExpandPath(value)
	}

	if err := config.Save(key, value); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	if env.Getenv(envName(key)) != "" {
		fmt.Fprintf(env.Stderr, "Warning: %s is set and overrides this value\n", envName(key))
	}
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("%q (valid keys: %s): %w", key, strings.Join(config.Keys(), ", "), config.ErrUnknownKey)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}
	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}
	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	for _, key := range config.Keys() {
		suffix := ""
		if env.Getenv(envName(key)) != "" {
			suffix = " (from env)"
		}
		fmt.Fprintf(env.Stdout, "%s=%s%s\n", key, data[key], suffix)
	}
	return nil
}

// envName returns the environment variable overriding key.
func envName(key string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// isValidConfigKey checks if a key is a valid configuration key.
func isValidConfigKey(key string) bool {
	return slices.Contains(config.Keys(), key)
}
