package internal

import (
	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/cache"
)

// AppInternal holds the controllers exposed as subcommands and the
// resources that must be released on exit.
type AppInternal struct {
	controllers  []entities.Controller
	versionCache *cache.BadgerVersionCacheRepository
}

// NewAppInternal creates the application context.
func NewAppInternal(
	controllers *[]entities.Controller,
	versionCache *cache.BadgerVersionCacheRepository,
) *AppInternal {
	return &AppInternal{controllers: *controllers, versionCache: versionCache}
}

// GetControllers returns every registered controller.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// Close releases the version cache.
func (it *AppInternal) Close() error {
	return it.versionCache.Close()
}
