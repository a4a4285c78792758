// Package kvstore provides small string-keyed persistence backends.
//
// Three implementations share the Store interface: FileStore keeps a JSON
// object in one file, SQLiteStore keeps a three-column table, and
// MemoryStore lives in process memory with an optional byte quota.
package kvstore

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotFound indicates the key has no value.
	ErrNotFound = errors.New("key not found")

	// ErrQuotaExceeded indicates a write would exceed the store's capacity.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrClosed indicates the store was used after Close.
	ErrClosed = errors.New("store is closed")

	// ErrUnknownKind indicates an unrecognized backend name.
	ErrUnknownKind = errors.New("unknown store kind")
)

// Well-known keys.
const (
	KeyHistory = "promptHistory"
	KeyTheme   = "theme"
)

// Store is a string-keyed value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Watcher is implemented by stores that can report outside changes.
// Watch blocks, calling onChange after each change, until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Backend names accepted by Open and the "store" config key.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Open creates the backend named kind at path.
// An empty kind opens a FileStore.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "", KindFile:
		return NewFileStore(path)
	case KindSQLite:
		return OpenSQLite(path)
	case KindMemory:
		return NewMemoryStore(0), nil
	default:
		return nil, fmt.Errorf("%q (valid: file, sqlite, memory): %w", kind, ErrUnknownKind)
	}
}
