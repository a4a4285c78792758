package cli

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-promptcraft/internal/config"
	"github.com/alnah/go-promptcraft/internal/kvstore"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/tui"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{
		Corrector: "variant",
		Remote:    config.RemoteNone,
		Store:     "memory",
		LogLevel:  "error",
	}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock StoreFactory
// ---------------------------------------------------------------------------

// sharedStore outlives the session that closes it so tests can inspect
// what a command wrote.
type sharedStore struct {
	*kvstore.MemoryStore

	mu     sync.Mutex
	closes int
}

func (s *sharedStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *sharedStore) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

type mockStoreFactory struct {
	OpenFunc func(cfg config.Config) (kvstore.Store, error)

	store *sharedStore

	mu        sync.Mutex
	openCalls int
}

func newMockStoreFactory() *mockStoreFactory {
	return &mockStoreFactory{store: &sharedStore{MemoryStore: kvstore.NewMemoryStore(0)}}
}

func (m *mockStoreFactory) Open(cfg config.Config) (kvstore.Store, error) {
	m.mu.Lock()
	m.openCalls++
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(cfg)
	}
	return m.store, nil
}

func (m *mockStoreFactory) OpenCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openCalls
}

// ---------------------------------------------------------------------------
// Mock GeneratorFactory
// ---------------------------------------------------------------------------

type mockGeneratorFactory struct {
	NewGeneratorFunc func(cfg config.Config, apiKey string) (*pipeline.Generator, error)

	mu      sync.Mutex
	calls   int
	lastKey string
}

func (m *mockGeneratorFactory) NewGenerator(cfg config.Config, apiKey string, logger *zap.Logger) (*pipeline.Generator, error) {
	m.mu.Lock()
	m.calls++
	m.lastKey = apiKey
	m.mu.Unlock()

	if m.NewGeneratorFunc != nil {
		return m.NewGeneratorFunc(cfg, apiKey)
	}
	return pipeline.New(pipeline.WithLogger(logger)), nil
}

func (m *mockGeneratorFactory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockGeneratorFactory) LastKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastKey
}

// ---------------------------------------------------------------------------
// Mock Composer
// ---------------------------------------------------------------------------

type mockComposer struct {
	ComposeFunc func(ctx context.Context, opts tui.Options) error

	mu    sync.Mutex
	calls []tui.Options
}

func (m *mockComposer) Compose(ctx context.Context, opts tui.Options) error {
	m.mu.Lock()
	m.calls = append(m.calls, opts)
	m.mu.Unlock()

	if m.ComposeFunc != nil {
		return m.ComposeFunc(ctx, opts)
	}
	return nil
}

func (m *mockComposer) Calls() []tui.Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tui.Options(nil), m.calls...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader     = (*mockConfigLoader)(nil)
	_ StoreFactory     = (*mockStoreFactory)(nil)
	_ GeneratorFactory = (*mockGeneratorFactory)(nil)
	_ Composer         = (*mockComposer)(nil)
	_ kvstore.Store    = (*sharedStore)(nil)
)
