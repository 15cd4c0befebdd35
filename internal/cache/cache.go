// Package cache persists the record store as a single wholesale
// snapshot in an embedded BadgerDB, stamped with its creation time. A
// snapshot from last school year must not silently serve this year's
// lookups, so reads apply an academic-year staleness rule.
package cache

import (
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/classroom-roster/internal/roster"
)

var (
	// ErrNoSnapshot indicates no roster has been imported yet.
	ErrNoSnapshot = errors.New("cache: no roster snapshot, run import first")
	// ErrStaleSnapshot indicates the snapshot predates the current
	// academic year and must be rebuilt from fresh CSV exports.
	ErrStaleSnapshot = errors.New("cache: stale roster snapshot, re-import from CSV")
)

var snapshotKey = []byte("roster/snapshot")

// Cache is a snapshot store on one Badger directory.
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) the cache directory.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Save writes the store as a single snapshot, replacing any previous
// one. There is no partial or incremental persistence.
func (c *Cache) Save(store *roster.Store) error {
	blob, err := Encode(store)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, blob)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot back, failing with ErrStaleSnapshot when the
// academic-year heuristic says it belongs to last school year.
func (c *Cache) Load(now time.Time) (*roster.Store, error) {
	var blob []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	store, err := Decode(blob)
	if err != nil {
		return nil, err
	}
	if Stale(store.CreatedAt, now) {
		return nil, ErrStaleSnapshot
	}
	return store, nil
}

// Stale reports whether a snapshot created at created is from a
// previous academic year as seen from now: during the fall term
// (September-November) a snapshot built in the previous spring
// (January-June) belongs to last year's roster. This is a school-year
// rollover heuristic, not a general freshness policy.
func Stale(created, now time.Time) bool {
	fall := now.Month() >= time.September && now.Month() <= time.November
	spring := created.Month() >= time.January && created.Month() <= time.June
	return fall && spring
}
