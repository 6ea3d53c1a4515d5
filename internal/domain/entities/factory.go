package entities

import (
	"fmt"
	"slices"
)

// ComponentParams carries everything needed to build a component.
// Empty optional fields fall back to the defaults of the kind.
type ComponentParams struct {
	Name              string
	CurrentVersionTag string
	Repository        string
	Prefix            string
	Filter            string
	VersionPattern    string
	ExcludeVersions   []string
	Files             []string
}

// NewComponent builds a component of the given kind. It either returns a
// fully valid component or an error wrapping ErrConfiguration.
func NewComponent(kind string, params ComponentParams) (*Component, error) {
	parsedKind, err := ParseComponentKind(kind)
	if err != nil {
		return nil, err
	}

	switch parsedKind {
	case KindDockerImage:
		return newDockerImageComponent(params)
	case KindPypi:
		return newPypiComponent(params)
	default:
		return nil, fmt.Errorf("%w: component type %q is not implemented", ErrConfiguration, kind)
	}
}

func newDockerImageComponent(params ComponentParams) (*Component, error) {
	if params.Repository == "" {
		params.Repository = DefaultDockerRepository
	}
	return newComponent(KindDockerImage, params)
}

func newPypiComponent(params ComponentParams) (*Component, error) {
	params.Repository = ""
	return newComponent(KindPypi, params)
}

func newComponent(kind ComponentKind, params ComponentParams) (*Component, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: %s component without a name", ErrConfiguration, kind)
	}
	if params.CurrentVersionTag == "" {
		return nil, fmt.Errorf("%w: component %q has no current version", ErrConfiguration, params.Name)
	}

	component := &Component{
		kind:              kind,
		Name:              params.Name,
		Repository:        params.Repository,
		CurrentVersionTag: params.CurrentVersionTag,
		NextVersionTag:    params.CurrentVersionTag,
		Prefix:            params.Prefix,
		VersionPattern:    params.VersionPattern,
		ExcludeVersions:   slices.Clone(params.ExcludeVersions),
		Files:             slices.Clone(params.Files),
	}
	if component.VersionPattern == "" {
		component.VersionPattern = kind.defaultVersionPattern()
	}
	if err := component.SetFilter(params.Filter); err != nil {
		return nil, err
	}
	for _, file := range component.Files {
		if file == "" {
			return nil, fmt.Errorf("%w: component %q lists an empty file path", ErrConfiguration, params.Name)
		}
	}

	if !component.IsLatest() {
		current, err := ParseVersion(params.CurrentVersionTag)
		if err != nil {
			return nil, fmt.Errorf("%w: component %q: %w", ErrConfiguration, params.Name, err)
		}
		component.CurrentVersion = current
		component.NextVersion = current
	}

	return component, nil
}
