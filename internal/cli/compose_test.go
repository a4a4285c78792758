package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-promptcraft/internal/config"
	"github.com/alnah/go-promptcraft/internal/kvstore"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/tui"
)

func TestComposeCmd_PassesDependencies(t *testing.T) {
	t.Parallel()

	env, m := testEnv()
	m.configLoader.LoadFunc = func() (config.Config, error) {
		return config.Config{Corrector: "variant", Remote: config.RemoteNone, Store: "memory", Debounce: 250 * time.Millisecond}, nil
	}

	if err := execute(ComposeCmd(env)); err != nil {
		t.Fatalf("compose unexpected error: %v", err)
	}

	calls := m.composer.Calls()
	if len(calls) != 1 {
		t.Fatalf("Compose called %d times, want 1", len(calls))
	}
	opts := calls[0]
	if opts.Generator == nil || opts.History == nil || opts.Theme == nil || opts.Logger == nil {
		t.Errorf("Compose options missing dependencies: %+v", opts)
	}
	if opts.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", opts.Debounce)
	}
	if got := m.store.store.Closes(); got != 1 {
		t.Errorf("store closed %d times after compose, want 1", got)
	}
}

func TestComposeCmd_Errors(t *testing.T) {
	t.Parallel()

	t.Run("composer error is returned", func(t *testing.T) {
		t.Parallel()
		env, m := testEnv()
		m.composer.ComposeFunc = func(ctx context.Context, _ tui.Options) error {
			return context.Canceled
		}
		if err := execute(ComposeCmd(env)); !errors.Is(err, context.Canceled) {
			t.Errorf("compose error = %v, want context.Canceled", err)
		}
	})

	t.Run("generator failure skips the screen", func(t *testing.T) {
		t.Parallel()
		env, m := testEnv()
		m.generator.NewGeneratorFunc = func(config.Config, string) (*pipeline.Generator, error) {
			return nil, ErrAPIKeyMissing
		}
		if err := execute(ComposeCmd(env)); !errors.Is(err, ErrAPIKeyMissing) {
			t.Errorf("compose error = %v, want ErrAPIKeyMissing", err)
		}
		if len(m.composer.Calls()) != 0 {
			t.Error("Compose called after setup failed")
		}
	})

	t.Run("store failure falls back to memory", func(t *testing.T) {
		t.Parallel()
		env, m := testEnv()
		m.configLoader.LoadFunc = warnConfig
		m.store.OpenFunc = func(config.Config) (kvstore.Store, error) { return nil, errStoreReadOnly }
		if err := execute(ComposeCmd(env)); err != nil {
			t.Fatalf("compose error = %v, want nil when the store cannot be opened", err)
		}
		calls := m.composer.Calls()
		if len(calls) != 1 || calls[0].History == nil || calls[0].Theme == nil {
			t.Fatalf("Compose calls = %+v, want one call with history and theme", calls)
		}
		if !strings.Contains(m.stderr.String(), "keeping history in memory") {
			t.Errorf("stderr = %q, want the fallback warning", m.stderr.String())
		}
	})

	t.Run("no arguments", func(t *testing.T) {
		t.Parallel()
		env, _ := testEnv()
		if err := execute(ComposeCmd(env), "extra"); err == nil {
			t.Error("compose with arguments expected error, got nil")
		}
	})
}
