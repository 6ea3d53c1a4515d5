package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// ClearCache is the interface for the clear-cache command.
type ClearCache interface {
	Execute(ctx context.Context) error
}

// ClearCacheCommand drops every cached version listing.
type ClearCacheCommand struct {
	cache repositories.VersionCacheRepository
}

// NewClearCacheCommand creates a new ClearCacheCommand.
func NewClearCacheCommand(cache repositories.VersionCacheRepository) *ClearCacheCommand {
	return &ClearCacheCommand{cache: cache}
}

// Execute clears the cache for all component kinds.
func (it *ClearCacheCommand) Execute(ctx context.Context) error {
	if err := it.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear version cache: %w", err)
	}
	logger.Info("[cache] Version cache cleared")
	return nil
}
