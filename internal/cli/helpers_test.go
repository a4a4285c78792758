package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader *mockConfigLoader
	store        *mockStoreFactory
	generator    *mockGeneratorFactory
	composer     *mockComposer

	stdout *syncBuffer
	stderr *syncBuffer
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	stdin  io.Reader
	getenv func(string) string
	now    func() time.Time
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

func withTestStdin(s string) testEnvOption {
	return func(o *testEnvOptions) { o.stdin = strings.NewReader(s) }
}

func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) { o.getenv = fn }
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *testMocks) {
	options := &testEnvOptions{
		stdin:  strings.NewReader(""),
		getenv: func(string) string { return "" },
		now:    fixedTime(testNow),
	}
	for _, opt := range opts {
		opt(options)
	}

	mocks := &testMocks{
		configLoader: &mockConfigLoader{},
		store:        newMockStoreFactory(),
		generator:    &mockGeneratorFactory{},
		composer:     &mockComposer{},
		stdout:       &syncBuffer{},
		stderr:       &syncBuffer{},
	}

	env := &Env{
		Stdin:            options.stdin,
		Stdout:           mocks.stdout,
		Stderr:           mocks.stderr,
		Getenv:           options.getenv,
		Now:              options.now,
		ConfigLoader:     mocks.configLoader,
		StoreFactory:     mocks.store,
		GeneratorFactory: mocks.generator,
		Composer:         mocks.composer,
	}
	return env, mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var testNow = time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// testCmd returns a bare command carrying ctx, as cobra does for RunE.
func testCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	return cmd
}

// execute runs cmd with args and returns its error.
func execute(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.ExecuteContext(context.Background())
}
