package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/componentupdate/internal/domain/repositories"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/cache"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/dockerhub"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/process"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/pypi"
	hclStore "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store/hcl"
	tomlStore "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store/toml"
	yamlStore "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store/yaml"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register store registry with all config formats, YAML being the default
	if err := container.Provide(func() *StoreRegistry {
		reg := NewStoreRegistry(yamlStore.NewComponentStoreRepository())
		reg.Register(hclStore.NewComponentStoreRepository())
		reg.Register(tomlStore.NewComponentStoreRepository())
		return reg
	}); err != nil {
		return err
	}

	// Register the version cache shared by all sources
	if err := container.Provide(cache.NewBadgerVersionCacheRepository); err != nil {
		return err
	}
	if err := container.Provide(func(impl *cache.BadgerVersionCacheRepository) domainRepos.VersionCacheRepository {
		return impl
	}); err != nil {
		return err
	}

	// Register version registry with one cached source per component kind
	if err := container.Provide(func(
		settings *entities.Settings,
		versionCache domainRepos.VersionCacheRepository,
	) *VersionRegistry {
		reg := NewVersionRegistry()
		for _, source := range []domainRepos.VersionRepository{
			dockerhub.NewVersionRepository(settings),
			pypi.NewVersionRepository(settings),
		} {
			reg.Register(cache.NewCachedVersionRepository(source, versionCache, settings.StalenessWindow))
		}
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(process.NewTestRunnerRepository); err != nil {
		return err
	}
	if err := container.Provide(git.NewVCSRepository); err != nil {
		return err
	}

	return nil
}
