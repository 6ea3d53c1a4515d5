package cache

import (
	"context"
	"fmt"
	"slices"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// CachedVersionRepository serves listings of a version source from the
// cache while they are younger than the staleness window. Concurrent
// misses for the same key share one remote call.
type CachedVersionRepository struct {
	source  repositories.VersionRepository
	cache   repositories.VersionCacheRepository
	window  time.Duration
	nowFunc func() time.Time
	group   singleflight.Group
}

// NewCachedVersionRepository wraps source with cache.
func NewCachedVersionRepository(
	source repositories.VersionRepository,
	cache repositories.VersionCacheRepository,
	window time.Duration,
) *CachedVersionRepository {
	return NewCachedVersionRepositoryWithClock(source, cache, window, time.Now)
}

// NewCachedVersionRepositoryWithClock is NewCachedVersionRepository with an
// injectable clock.
func NewCachedVersionRepositoryWithClock(
	source repositories.VersionRepository,
	cache repositories.VersionCacheRepository,
	window time.Duration,
	nowFunc func() time.Time,
) *CachedVersionRepository {
	return &CachedVersionRepository{
		source:  source,
		cache:   cache,
		window:  window,
		nowFunc: nowFunc,
	}
}

func (r *CachedVersionRepository) Kind() entities.ComponentKind { return r.source.Kind() }

// FetchVersions returns the cached listing for key when it is fresh, and
// otherwise asks the source and stores the result.
func (r *CachedVersionRepository) FetchVersions(ctx context.Context, key entities.VersionKey) ([]string, error) {
	if tags, ok := r.lookup(ctx, key); ok {
		return tags, nil
	}

	result, err, shared := r.group.Do(key.String(), func() (any, error) {
		// another caller may have refreshed the entry while we waited
		if tags, ok := r.lookup(ctx, key); ok {
			return tags, nil
		}

		tags, fetchErr := r.source.FetchVersions(ctx, key)
		if fetchErr != nil {
			return nil, fetchErr
		}
		entry := entities.CachedVersions{Tags: tags, FetchedAt: r.nowFunc()}
		if setErr := r.cache.Set(ctx, key, entry); setErr != nil {
			logger.Warnf("[cache] %s: %v", key, setErr)
		}
		return tags, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch versions of %s: %w", key, err)
	}
	if shared {
		logger.Debugf("[cache] %s: shared in-flight fetch", key)
	}
	return slices.Clone(result.([]string)), nil
}

func (r *CachedVersionRepository) lookup(ctx context.Context, key entities.VersionKey) ([]string, bool) {
	entry, found, err := r.cache.Get(ctx, key)
	if err != nil {
		logger.Warnf("[cache] %s: %v", key, err)
		return nil, false
	}
	if !found || entry.IsStale(r.nowFunc(), r.window) {
		return nil, false
	}
	logger.Debugf("[cache] %s: %d tags from cache", key, len(entry.Tags))
	return slices.Clone(entry.Tags), true
}
