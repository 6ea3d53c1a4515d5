package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

const keyPrefix = "versions/"

// BadgerVersionCacheRepository persists version listings in a badger
// database below the cache directory. The database is opened on first use
// so commands that never touch the network do not take the directory lock.
type BadgerVersionCacheRepository struct {
	path     string
	inMemory bool

	mu sync.Mutex
	db *badger.DB
}

// NewBadgerVersionCacheRepository creates a cache stored in settings.CacheDir.
func NewBadgerVersionCacheRepository(settings *entities.Settings) *BadgerVersionCacheRepository {
	return &BadgerVersionCacheRepository{path: settings.CacheDir}
}

// NewInMemoryVersionCacheRepository creates a cache that lives only as long
// as the process.
func NewInMemoryVersionCacheRepository() *BadgerVersionCacheRepository {
	return &BadgerVersionCacheRepository{inMemory: true}
}

func (r *BadgerVersionCacheRepository) open() (*badger.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}

	opts := badger.DefaultOptions(r.path)
	if r.inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := os.MkdirAll(r.path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %q: %w", r.path, err)
	}
	opts.Logger = &badgerLogAdapter{}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open version cache: %w", err)
	}
	r.db = db
	logger.Debugf("[cache] opened version cache at %q", r.path)
	return db, nil
}

// Get returns the cached listing for key. The boolean is false when there
// is no entry.
func (r *BadgerVersionCacheRepository) Get(_ context.Context, key entities.VersionKey) (entities.CachedVersions, bool, error) {
	db, err := r.open()
	if err != nil {
		return entities.CachedVersions{}, false, err
	}

	var entry entities.CachedVersions
	err = db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(cacheKey(key))
		if getErr != nil {
			return getErr
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return entities.CachedVersions{}, false, nil
	}
	if err != nil {
		return entities.CachedVersions{}, false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	return entry, true, nil
}

// Set stores entry under key, replacing any previous listing.
func (r *BadgerVersionCacheRepository) Set(_ context.Context, key entities.VersionKey, entry entities.CachedVersions) error {
	db, err := r.open()
	if err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize cache entry %s: %w", key, err)
	}
	if updateErr := db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(key), data)
	}); updateErr != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, updateErr)
	}
	return nil
}

// Clear removes every entry for all component kinds.
func (r *BadgerVersionCacheRepository) Clear(_ context.Context) error {
	db, err := r.open()
	if err != nil {
		return err
	}
	if dropErr := db.DropPrefix([]byte(keyPrefix)); dropErr != nil {
		return fmt.Errorf("failed to clear version cache: %w", dropErr)
	}
	return nil
}

// Close releases the database if it was opened.
func (r *BadgerVersionCacheRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func cacheKey(key entities.VersionKey) []byte {
	return []byte(keyPrefix + key.String())
}

// badgerLogAdapter routes badger's logger to logrus, demoting its chatty
// info messages to debug.
type badgerLogAdapter struct{}

func (l *badgerLogAdapter) Errorf(format string, args ...any) {
	logger.Errorf("[cache] badger: "+format, args...)
}

func (l *badgerLogAdapter) Warningf(format string, args ...any) {
	logger.Warnf("[cache] badger: "+format, args...)
}

func (l *badgerLogAdapter) Infof(format string, args ...any) {
	logger.Debugf("[cache] badger: "+format, args...)
}

func (l *badgerLogAdapter) Debugf(format string, args ...any) {
	logger.Tracef("[cache] badger: "+format, args...)
}
