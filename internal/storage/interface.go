package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/wellness/internal/migration"
)

var (
	// ErrNotFound is returned by GetItem when the key has never been written
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'wellness init' first")
	// ErrAlreadyInitialized is returned by Init when the backing store already exists
	ErrAlreadyInitialized = errors.New("storage already initialized")
)

// Provider is a string key-value store. Values are opaque text blobs.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by SQL backends with a versioned schema
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	MigrationStatus() (migration.Status, error)
}

// Pinger is implemented by backends with a live connection to check
type Pinger interface {
	Ping(ctx context.Context) error
}
