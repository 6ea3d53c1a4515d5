package entities

import "slices"

// ComponentDeclaration is the persisted record of one component.
// Optional fields are omitted when they hold the default of the kind.
type ComponentDeclaration struct {
	ComponentType   string   `yaml:"component-type"             toml:"component-type"`
	CurrentVersion  string   `yaml:"current-version"            toml:"current-version"`
	NextVersion     string   `yaml:"next-version,omitempty"     toml:"next-version,omitempty"`
	DockerRepo      string   `yaml:"docker-repo,omitempty"      toml:"docker-repo,omitempty"`
	Prefix          string   `yaml:"prefix,omitempty"           toml:"prefix,omitempty"`
	Filter          string   `yaml:"filter,omitempty"           toml:"filter,omitempty"`
	Files           []string `yaml:"files,omitempty"            toml:"files,omitempty"`
	ExcludeVersions []string `yaml:"exclude-versions,omitempty" toml:"exclude-versions,omitempty"`
	VersionPattern  string   `yaml:"version-pattern,omitempty"  toml:"version-pattern,omitempty"`
}

// NamedDeclaration pairs a declaration with its component name, keeping the
// order in which components were declared.
type NamedDeclaration struct {
	Name        string
	Declaration ComponentDeclaration
}

// Declaration returns the persistable record of the component.
func (c *Component) Declaration() ComponentDeclaration {
	decl := ComponentDeclaration{
		ComponentType:  c.kind.String(),
		CurrentVersion: c.CurrentVersionTag,
		NextVersion:    c.NextVersionTag,
		Prefix:         c.Prefix,
	}
	if c.kind == KindDockerImage {
		decl.DockerRepo = c.Repository
	}
	if c.filter != DefaultFilter {
		decl.Filter = c.filter
	}
	if len(c.Files) > 0 {
		decl.Files = slices.Clone(c.Files)
	}
	if len(c.ExcludeVersions) > 0 {
		decl.ExcludeVersions = slices.Clone(c.ExcludeVersions)
	}
	if c.VersionPattern != c.kind.defaultVersionPattern() {
		decl.VersionPattern = c.VersionPattern
	}
	return decl
}

// ComponentFromDeclaration builds a component from a persisted record.
func ComponentFromDeclaration(name string, decl ComponentDeclaration) (*Component, error) {
	return NewComponent(decl.ComponentType, ComponentParams{
		Name:              name,
		CurrentVersionTag: decl.CurrentVersion,
		Repository:        decl.DockerRepo,
		Prefix:            decl.Prefix,
		Filter:            decl.Filter,
		VersionPattern:    decl.VersionPattern,
		ExcludeVersions:   decl.ExcludeVersions,
		Files:             decl.Files,
	})
}
