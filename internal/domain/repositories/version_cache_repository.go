package repositories

import (
	"context"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// VersionCacheRepository persists version listings between invocations.
type VersionCacheRepository interface {
	// Get returns the stored entry for key, if any, regardless of its age.
	Get(ctx context.Context, key entities.VersionKey) (entities.CachedVersions, bool, error)

	// Set stores or replaces the entry for key.
	Set(ctx context.Context, key entities.VersionKey, entry entities.CachedVersions) error

	// Clear drops every entry of every kind before returning.
	Clear(ctx context.Context) error
}
