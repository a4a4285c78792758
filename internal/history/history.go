// Package history keeps the five most recent generated prompts.
//
// Records are persisted as one JSON array under kvstore.KeyHistory, newest
// first. Storage and decode failures are logged and swallowed: callers
// always get the in-memory list back, even when it could not be saved.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/kvstore"
	"github.com/alnah/go-promptcraft/internal/tone"
)

// MaxRecords bounds the history length.
const MaxRecords = 5

// Sentinel errors.
var (
	// ErrNotFound indicates no record has the requested id.
	ErrNotFound = errors.New("history record not found")

	// ErrWatchUnsupported indicates the backing store cannot report changes.
	ErrWatchUnsupported = errors.New("store does not support watching")
)

// Record is one saved prompt.
type Record struct {
	ID        string    `json:"id"`
	Problem   string    `json:"problem"`
	Category  string    `json:"category"`
	Type      string    `json:"type"` // label of the resolved category
	Tone      string    `json:"tone"`
	System    string    `json:"system"`
	Prompt    string    `json:"prompt"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry is the caller-supplied part of a Record.
type Entry struct {
	Problem  string
	Category category.Category
	Tone     tone.Tone
	System   string
	Prompt   string
}

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// Store is the bounded history over a key-value store.
// It is safe for concurrent use.
type Store struct {
	kv     kvstore.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() (string, error)
	loc    *time.Location

	mu    sync.Mutex
	cache []Record // last known list, used when the store cannot be read
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for swallowed failures. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the timestamp source. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc sets the record id generator. Default: UUIDv7.
func WithIDFunc(fn func() (string, error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLocation sets the zone used by exports. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New creates a history over kv.
func New(kv kvstore.Store, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  newUUIDv7,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Record prepends e, truncates to MaxRecords and persists the list.
// The returned list reflects the new record even if saving failed.
func (s *Store) Record(ctx context.Context, e Entry) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		s.logger.Warn("uuid v7 generation failed, using v4", zap.Error(err))
		id = uuid.NewString()
	}
	c := e.Category.OrDefault()
	t := e.Tone
	if t.IsZero() {
		t = tone.FriendlyTone
	}
	rec := Record{
		ID:        id,
		Problem:   e.Problem,
		Category:  c.String(),
		Type:      c.Label(),
		Tone:      t.String(),
		System:    e.System,
		Prompt:    e.Prompt,
		Timestamp: s.now().UTC(),
	}

	list := append([]Record{rec}, s.load(ctx)...)
	if len(list) > MaxRecords {
		list = list[:MaxRecords]
	}
	s.cache = list
	s.save(ctx, list)

	s.logger.Debug("prompt recorded",
		zap.String("id", rec.ID),
		zap.String("category", rec.Category),
		zap.Int("size", len(list)),
	)
	return slices.Clone(list)
}

// List returns the saved records, newest first.
func (s *Store) List(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.load(ctx))
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	for _, r := range s.List(ctx) {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("%q: %w", id, ErrNotFound)
}

// Clear removes every record and returns the empty list.
func (s *Store) Clear(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = nil
	if err := s.kv.Delete(ctx, kvstore.KeyHistory); err != nil {
		s.logger.Warn("history clear failed", zap.Error(err))
	}
	return []Record{}
}

// Watch calls fn with the reloaded list whenever the backing store changes,
// including writes by other processes, until ctx is done.
func (s *Store) Watch(ctx context.Context, fn func([]Record)) error {
	w, ok := s.kv.(kvstore.Watcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return w.Watch(ctx, func() {
		fn(s.List(ctx))
	})
}

// load reads the list from the store. Callers hold mu.
func (s *Store) load(ctx context.Context) []Record {
	raw, err := s.kv.Get(ctx, kvstore.KeyHistory)
	if errors.Is(err, kvstore.ErrNotFound) {
		s.cache = nil
		return nil
	}
	if err != nil {
		s.logger.Warn("history read failed, using cached list", zap.Error(err))
		return s.cache
	}

	var list []Record
	if err := json.Unmarshal(raw, &list); err != nil {
		s.logger.Warn("history decode failed, ignoring stored list",
			zap.Error(err),
			zap.Int("bytes", len(raw)),
		)
		return s.cache
	}
	if len(list) > MaxRecords {
		list = list[:MaxRecords]
	}
	s.cache = list
	return list
}

// save persists list. Callers hold mu.
func (s *Store) save(ctx context.Context, list []Record) {
	raw, err := json.Marshal(list)
	if err != nil {
		s.logger.Warn("history encode failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, kvstore.KeyHistory, raw); err != nil {
		s.logger.Warn("history save failed, keeping in-memory list",
			zap.Error(err),
			zap.Int("bytes", len(raw)),
		)
	}
}
