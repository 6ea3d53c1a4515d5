package entities

import (
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(LoadSettings)
}

// LoadSettings loads the settings file found in the default locations, or
// only the environment and defaults when there is none.
func LoadSettings() (*Settings, error) {
	path, err := FindSettingsFile()
	if err != nil {
		path = ""
	} else {
		logger.Debugf("Using settings file: %s", path)
	}
	return NewSettings(path)
}
