package commands

import (
	"errors"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	infraRepos "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories"
)

// loadConfig builds a Config from the declaration file. A missing file
// yields an empty config so that ad-hoc components can still be checked.
func loadConfig(stores *infraRepos.StoreRegistry, configFile string) (*entities.Config, error) {
	cfg := entities.NewConfig(configFile)
	if configFile == "" {
		return cfg, nil
	}

	info, err := os.Stat(configFile)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Config file %q does not exist, starting with no components", configFile)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file %q: %w", configFile, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: config file %q is a directory", entities.ErrConfiguration, configFile)
	}

	store, err := stores.ForPath(configFile)
	if err != nil {
		return nil, err
	}
	declarations, err := store.Load(configFile)
	if err != nil {
		return nil, err
	}

	for _, named := range declarations {
		component, buildErr := entities.ComponentFromDeclaration(named.Name, named.Declaration)
		if buildErr != nil {
			return nil, buildErr
		}
		cfg.Add(component)
	}
	logger.Debugf("Loaded %d components from %s", len(cfg.Components), configFile)
	return cfg, nil
}

// saveConfig writes the declarations to the destination file, or back to
// the config file. Nothing is written in dry-run mode. It returns the path
// that was written, if any.
func saveConfig(
	stores *infraRepos.StoreRegistry,
	cfg *entities.Config,
	opts entities.UpdateOptions,
) (string, error) {
	if opts.DryRun {
		return "", nil
	}

	target := opts.DestinationFile
	if target == "" {
		target = cfg.ConfigFile
	}
	if target == "" {
		return "", nil
	}

	store, err := stores.ForPath(target)
	if err != nil {
		return "", err
	}
	if saveErr := store.Save(target, cfg.Declarations()); saveErr != nil {
		return "", saveErr
	}
	return target, nil
}

// renderConfig serializes the declarations in the format of the config
// file, falling back to YAML.
func renderConfig(stores *infraRepos.StoreRegistry, cfg *entities.Config) ([]byte, error) {
	store, err := stores.ForPath(cfg.ConfigFile)
	if err != nil {
		store = stores.Default()
	}
	return store.Render(cfg.Declarations())
}
