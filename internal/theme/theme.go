// Package theme persists the dark/light display preference and maps it to
// a terminal palette.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/alnah/go-promptcraft/internal/kvstore"
)

// ErrInvalid indicates a theme name other than dark or light.
var ErrInvalid = errors.New("invalid theme")

// Theme is the display preference.
type Theme string

// Supported themes.
const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse validates a theme name (case-insensitive).
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("%q (expected dark or light): %w", s, ErrInvalid)
	}
}

// String returns the stored representation.
func (t Theme) String() string {
	return string(t)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// ---------------------------------------------------------------------------
// Persistence
// ---------------------------------------------------------------------------

// Store reads the preference once and writes it on every change.
// It is safe for concurrent use.
type Store struct {
	kv       kvstore.Store
	logger   *zap.Logger
	fallback func() Theme

	mu      sync.Mutex
	loaded  bool
	current Theme
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for unreadable values. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFallback sets the theme used when nothing is stored yet.
// Default: Light.
func WithFallback(fn func() Theme) Option {
	return func(s *Store) {
		if fn != nil {
			s.fallback = fn
		}
	}
}

// TerminalFallback picks Dark when the terminal background is dark.
func TerminalFallback() Theme {
	if lipgloss.HasDarkBackground() {
		return Dark
	}
	return Light
}

// NewStore creates a theme store over kv.
func NewStore(kv kvstore.Store, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		logger:   zap.NewNop(),
		fallback: func() Theme { return Light },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored theme. Only the first call reads the store.
// Any stored value other than "dark" yields Light.
func (s *Store) Load(ctx context.Context) Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) Theme {
	if s.loaded {
		return s.current
	}
	s.loaded = true

	raw, err := s.kv.Get(ctx, kvstore.KeyTheme)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		s.current = s.fallback()
	case err != nil:
		s.logger.Warn("theme unreadable, using light", zap.Error(err))
		s.current = Light
	default:
		t, perr := Parse(string(raw))
		if perr != nil {
			s.logger.Warn("stored theme invalid, using light", zap.String("value", string(raw)))
			t = Light
		}
		s.current = t
	}
	return s.current
}

// Set stores t.
func (s *Store) Set(ctx context.Context, t Theme) error {
	t, err := Parse(string(t))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, t)
}

func (s *Store) setLocked(ctx context.Context, t Theme) error {
	if err := s.kv.Set(ctx, kvstore.KeyTheme, []byte(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	s.loaded = true
	s.current = t
	return nil
}

// Toggle flips the theme and stores the result.
func (s *Store) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.loadLocked(ctx).Opposite()
	if err := s.setLocked(ctx, next); err != nil {
		return s.current, err
	}
	return next, nil
}
