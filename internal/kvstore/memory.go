package kvstore

import (
	"context"
	"fmt"
	"sync"
)

// Compile-time interface compliance checks.
var (
	_ Store   = (*MemoryStore)(nil)
	_ Watcher = (*MemoryStore)(nil)
)

// MemoryStore is an in-process Store.
// With a positive quota, a Set that would push the total size of keys and
// values past quota fails with ErrQuotaExceeded and leaves the store as is.
type MemoryStore struct {
	quota int

	mu        sync.Mutex
	data      map[string][]byte
	closed    bool
	listeners map[int]chan struct{}
	nextID    int
}

// NewMemoryStore creates an empty store. quota <= 0 means unlimited.
func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{
		quota:     quota,
		data:      map[string][]byte{},
		listeners: map[int]chan struct{}{},
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if s.quota > 0 {
		size := s.size() - s.entrySize(key) + len(key) + len(value)
		if size > s.quota {
			return fmt.Errorf("%q needs %d of %d bytes: %w", key, size, s.quota, ErrQuotaExceeded)
		}
	}
	s.data[key] = append([]byte(nil), value...)
	s.notify()
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.notify()
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Watch calls onChange after each Set or Delete until ctx is done.
// Bursts may be coalesced into one call.
func (s *MemoryStore) Watch(ctx context.Context, onChange func()) error {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			onChange()
		}
	}
}

// notify wakes every watcher without blocking. Callers hold mu.
func (s *MemoryStore) notify() {
	for _, ch := range s.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *MemoryStore) size() int {
	n := 0
	for k, v := range s.data {
		n += len(k) + len(v)
	}
	return n
}

func (s *MemoryStore) entrySize(key string) int {
	v, ok := s.data[key]
	if !ok {
		return 0
	}
	return len(key) + len(v)
}
