package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/cli"
	"github.com/alnah/go-promptcraft/internal/config"
	"github.com/alnah/go-promptcraft/internal/correct"
	"github.com/alnah/go-promptcraft/internal/history"
	"github.com/alnah/go-promptcraft/internal/kvstore"
	"github.com/alnah/go-promptcraft/internal/questions"
	"github.com/alnah/go-promptcraft/internal/theme"
	"github.com/alnah/go-promptcraft/internal/tone"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()

	if err := newRootCmd(env).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(exitCode(err))
	}
}

func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptcraft",
		Short: "Turn rough requests into structured AI prompts",
		Long: `PromptCraft turns a rough, possibly misspelled request into a system
prompt and a structured user prompt, tuned to the kind of request and the
tone you want.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")

	rootCmd.AddCommand(cli.GenerateCmd(env))
	rootCmd.AddCommand(cli.BatchCmd(env))
	rootCmd.AddCommand(cli.ComposeCmd(env))
	rootCmd.AddCommand(cli.QuestionsCmd(env))
	rootCmd.AddCommand(cli.HistoryCmd(env))
	rootCmd.AddCommand(cli.ThemeCmd(env))
	rootCmd.AddCommand(cli.CategoriesCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	// Setup errors (ExitSetup = 3).
	if errors.Is(err, cli.ErrAPIKeyMissing) || errors.Is(err, correct.ErrEmptyAPIKey) ||
		errors.Is(err, kvstore.ErrUnknownKind) || errors.Is(err, correct.ErrUnknownStrategy) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4).
	if errors.Is(err, category.ErrUnknown) || errors.Is(err, tone.ErrUnknown) ||
		errors.Is(err, theme.ErrInvalid) || errors.Is(err, config.ErrUnknownKey) ||
		errors.Is(err, config.ErrInvalidValue) || errors.Is(err, questions.ErrUnknownQuestion) ||
		errors.Is(err, questions.ErrInvalidOption) || errors.Is(err, history.ErrNotFound) ||
		errors.Is(err, cli.ErrEmptyInput) || errors.Is(err, cli.ErrInvalidAnswer) ||
		errors.Is(err, cli.ErrInvalidFormat) || errors.Is(err, cli.ErrFileNotFound) ||
		errors.Is(err, cli.ErrOutputExists) {
		return ExitValidation
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist, or args to a NoArgs command
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
