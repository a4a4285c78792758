package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-promptcraft/internal/config"
	"github.com/alnah/go-promptcraft/internal/correct"
	"github.com/alnah/go-promptcraft/internal/kvstore"
	"github.com/alnah/go-promptcraft/internal/lexicon"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/tui"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	ConfigLoader     ConfigLoader
	StoreFactory     StoreFactory
	GeneratorFactory GeneratorFactory
	Composer         Composer
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// StoreFactory opens the key-value store selected by configuration.
type StoreFactory interface {
	Open(cfg config.Config) (kvstore.Store, error)
}

// GeneratorFactory creates prompt generators.
type GeneratorFactory interface {
	// NewGenerator builds a generator for cfg. apiKey is only used when
	// cfg.Remote is openai.
	NewGenerator(cfg config.Config, apiKey string, logger *zap.Logger) (*pipeline.Generator, error)
}

// Composer runs the interactive compose screen.
type Composer interface {
	Compose(ctx context.Context, opts tui.Options) error
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdin sets the stdin reader.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) {
		e.Stdin = r
	}
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithStoreFactory sets the store factory.
func WithStoreFactory(f StoreFactory) EnvOption {
	return func(e *Env) {
		e.StoreFactory = f
	}
}

// WithGeneratorFactory sets the generator factory.
func WithGeneratorFactory(f GeneratorFactory) EnvOption {
	return func(e *Env) {
		e.GeneratorFactory = f
	}
}

// WithComposer sets the compose screen runner.
func WithComposer(c Composer) EnvOption {
	return func(e *Env) {
		e.Composer = c
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Getenv:           os.Getenv,
		Now:              time.Now,
		ConfigLoader:     &defaultConfigLoader{},
		StoreFactory:     &defaultStoreFactory{},
		GeneratorFactory: &defaultGeneratorFactory{},
		Composer:         &defaultComposer{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultStoreFactory implements StoreFactory using the kvstore package.
type defaultStoreFactory struct{}

func (defaultStoreFactory) Open(cfg config.Config) (kvstore.Store, error) {
	path, err := cfg.StoreFile()
	if err != nil {
		return nil, err
	}
	return kvstore.Open(cfg.Store, path)
}

// defaultGeneratorFactory implements GeneratorFactory with the embedded
// lexicon and the configured remote corrector.
type defaultGeneratorFactory struct{}

func (defaultGeneratorFactory) NewGenerator(cfg config.Config, apiKey string, logger *zap.Logger) (*pipeline.Generator, error) {
	strategy, err := correct.ParseStrategy(cfg.Corrector)
	if err != nil {
		return nil, err
	}
	opts := []pipeline.Option{
		pipeline.WithCorrector(correct.NewLocal(strategy, lexicon.Default())),
		pipeline.WithLogger(logger),
	}

	switch cfg.Remote {
	case config.RemoteOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("%w (set it with: export %s=sk-... or use remote none)", ErrAPIKeyMissing, EnvOpenAIAPIKey)
		}
		remote, err := correct.NewOpenAICorrectorFromKey(apiKey, correct.WithOpenAIModel(cfg.OpenAIModel))
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithRemote(remote, cfg.RemoteTimeout))
	case config.RemoteLanguageTool:
		remote := correct.NewLanguageToolCorrector(correct.WithLanguageToolURL(cfg.LanguageToolURL))
		opts = append(opts, pipeline.WithRemote(remote, cfg.RemoteTimeout))
	}

	return pipeline.New(opts...), nil
}

// defaultComposer implements Composer with the bubbletea compose screen.
type defaultComposer struct{}

func (defaultComposer) Compose(ctx context.Context, opts tui.Options) error {
	return tui.Run(ctx, opts)
}

// Compile-time interface verification.
var (
	_ ConfigLoader     = (*defaultConfigLoader)(nil)
	_ StoreFactory     = (*defaultStoreFactory)(nil)
	_ GeneratorFactory = (*defaultGeneratorFactory)(nil)
	_ Composer         = (*defaultComposer)(nil)
)
