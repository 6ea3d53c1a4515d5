package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	settingsEnvPrefix = "COMPONENTUPDATE"

	// DefaultStalenessWindow is how long fetched version lists stay valid.
	DefaultStalenessWindow = 72 * time.Hour
	// DefaultHTTPTimeout bounds every request to a version source.
	DefaultHTTPTimeout = 30 * time.Second

	DefaultDockerAuthURL     = "https://auth.docker.io/token"
	DefaultDockerRegistryURL = "https://index.docker.io"
	DefaultDockerService     = "registry.docker.io"
	DefaultPypiURL           = "https://pypi.org"
)

// Settings holds the application settings that are not part of the
// component declarations.
type Settings struct {
	CacheDir          string
	StalenessWindow   time.Duration
	HTTPTimeout       time.Duration
	Workers           int
	DockerAuthURL     string
	DockerRegistryURL string
	DockerService     string
	PypiURL           string
}

// NewSettings reads settings from the optional file at path, then lets
// COMPONENTUPDATE_* environment variables override individual keys.
func NewSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(settingsEnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("cache_dir", DefaultCacheDir())
	v.SetDefault("staleness_window", DefaultStalenessWindow)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("docker_auth_url", DefaultDockerAuthURL)
	v.SetDefault("docker_registry_url", DefaultDockerRegistryURL)
	v.SetDefault("docker_service", DefaultDockerService)
	v.SetDefault("pypi_url", DefaultPypiURL)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
		}
	}

	settings := &Settings{
		CacheDir:          v.GetString("cache_dir"),
		StalenessWindow:   v.GetDuration("staleness_window"),
		HTTPTimeout:       v.GetDuration("http_timeout"),
		Workers:           v.GetInt("workers"),
		DockerAuthURL:     v.GetString("docker_auth_url"),
		DockerRegistryURL: v.GetString("docker_registry_url"),
		DockerService:     v.GetString("docker_service"),
		PypiURL:           v.GetString("pypi_url"),
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		CacheDir:          DefaultCacheDir(),
		StalenessWindow:   DefaultStalenessWindow,
		HTTPTimeout:       DefaultHTTPTimeout,
		Workers:           DefaultWorkers,
		DockerAuthURL:     DefaultDockerAuthURL,
		DockerRegistryURL: DefaultDockerRegistryURL,
		DockerService:     DefaultDockerService,
		PypiURL:           DefaultPypiURL,
	}
}

// DefaultCacheDir returns the per-user cache directory of the tool.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "componentupdate")
}

// FindSettingsFile searches for a settings file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindSettingsFile() (string, error) {
	locations := []string{".", ".config"}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".componentupdate.yaml",
		".componentupdate.yml",
		"componentupdate.yaml",
		"componentupdate.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("settings file not found in default locations")
}

func validateSettings(settings *Settings) error {
	if settings.CacheDir == "" {
		return errors.New("cache_dir is required")
	}
	if settings.StalenessWindow <= 0 {
		return fmt.Errorf("staleness_window must be positive, got %s", settings.StalenessWindow)
	}
	if settings.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", settings.HTTPTimeout)
	}
	if settings.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", settings.Workers)
	}
	return nil
}
