package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	infraRepos "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories"
)

// Check is the interface for the check command.
type Check interface {
	Execute(ctx context.Context, opts CheckOptions) (*CheckOutput, error)
}

// AdhocComponent describes a component given on the command line instead
// of in the config file.
type AdhocComponent struct {
	Kind              string
	Name              string
	Repository        string
	CurrentVersionTag string
}

// CheckOptions holds runtime options for the check command.
type CheckOptions struct {
	entities.UpdateOptions

	ConfigFile string
	Adhoc      *AdhocComponent
}

// CheckOutput is what the check command reports back to the controller.
type CheckOutput struct {
	Config   *entities.Config
	Checked  int
	ToUpdate int
	Rendered []byte
}

// CheckCommand refreshes the next version of every component and saves the
// result without touching any tracked file.
type CheckCommand struct {
	stores   *infraRepos.StoreRegistry
	versions *infraRepos.VersionRegistry
	settings *entities.Settings
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(
	stores *infraRepos.StoreRegistry,
	versions *infraRepos.VersionRegistry,
	settings *entities.Settings,
) *CheckCommand {
	return &CheckCommand{stores: stores, versions: versions, settings: settings}
}

// Execute loads the config, checks every component and saves the result.
func (it *CheckCommand) Execute(ctx context.Context, opts CheckOptions) (*CheckOutput, error) {
	cfg, err := loadConfig(it.stores, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if opts.Adhoc != nil {
		component, buildErr := entities.NewComponent(opts.Adhoc.Kind, entities.ComponentParams{
			Name:              opts.Adhoc.Name,
			CurrentVersionTag: opts.Adhoc.CurrentVersionTag,
			Repository:        opts.Adhoc.Repository,
		})
		if buildErr != nil {
			return nil, buildErr
		}
		cfg.Add(component)
	}

	logger.Infof("[check] %d components to check", len(cfg.Components))
	toUpdate, err := cfg.CountComponentsNeedingUpdate(ctx, it.versions, it.settings.Workers)
	if err != nil {
		return nil, err
	}
	logger.Infof("[check] %d components to update", toUpdate)

	if _, saveErr := saveConfig(it.stores, cfg, opts.UpdateOptions); saveErr != nil {
		return nil, fmt.Errorf("failed to save config: %w", saveErr)
	}

	output := &CheckOutput{Config: cfg, Checked: len(cfg.Components), ToUpdate: toUpdate}
	if opts.PrintConfig {
		rendered, renderErr := renderConfig(it.stores, cfg)
		if renderErr != nil {
			return nil, renderErr
		}
		output.Rendered = rendered
	}
	return output, nil
}
