package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// ErrCorrupt is returned by LoadJSON when a stored value cannot be decoded.
// The offending key has already been deleted when it is returned.
var ErrCorrupt = errors.New("store: corrupt value")

// Store is a flat namespaced key-value store. Values are opaque bytes,
// JSON by convention.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and configures a Store backend.
type Config struct {
	Backend string `mapstructure:"backend"`

	// DBPath is the SQLite database file for the sqlite backend.
	DBPath string `mapstructure:"db_path"`

	// DataDir holds one JSON file per key for the file backend.
	DataDir string `mapstructure:"data_dir"`

	Redis RedisConfig `mapstructure:"redis"`
}

// Opened bundles a Store with the event log that lives alongside it.
type Opened struct {
	Store  Store
	Events EventRepo
}

// Close releases the underlying store.
func (o *Opened) Close() error {
	return o.Store.Close()
}

// Open builds the configured backend. SQLite stores keep the LLM request
// log in the same database; other backends log in memory.
func Open(ctx context.Context, cfg Config) (*Opened, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		path := cfg.DBPath
		if path == "" {
			var err error
			if path, err = DefaultDBPath(); err != nil {
				return nil, err
			}
		}
		s, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return &Opened{Store: s, Events: s.EventRepo()}, nil
	case BackendFile:
		dir := cfg.DataDir
		if dir == "" {
			var err error
			if dir, err = DefaultDataDir(); err != nil {
				return nil, err
			}
		}
		s, err := OpenFile(dir)
		if err != nil {
			return nil, err
		}
		return &Opened{Store: s, Events: NewMemoryEventRepo()}, nil
	case BackendRedis:
		s, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &Opened{Store: s, Events: NewMemoryEventRepo()}, nil
	case BackendMemory:
		return &Opened{Store: NewMemory(), Events: NewMemoryEventRepo()}, nil
	}
	return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
}
