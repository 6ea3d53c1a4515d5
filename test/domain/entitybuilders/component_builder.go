//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// ComponentBuilder helps create test components with a fluent interface.
type ComponentBuilder struct {
	*testkit.BaseBuilder
	kind   string
	params entities.ComponentParams
}

// NewComponentBuilder creates a new component builder with sensible defaults.
func NewComponentBuilder() *ComponentBuilder {
	return &ComponentBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		kind:        string(entities.KindDockerImage),
		params:      defaultParams(),
	}
}

func defaultParams() entities.ComponentParams {
	return entities.ComponentParams{
		Name:              "nginx",
		CurrentVersionTag: "1.0",
	}
}

// WithKind sets the component type.
func (b *ComponentBuilder) WithKind(kind entities.ComponentKind) *ComponentBuilder {
	b.kind = string(kind)
	return b
}

// WithName sets the component name.
func (b *ComponentBuilder) WithName(name string) *ComponentBuilder {
	b.params.Name = name
	return b
}

// WithCurrentVersion sets the current version tag.
func (b *ComponentBuilder) WithCurrentVersion(tag string) *ComponentBuilder {
	b.params.CurrentVersionTag = tag
	return b
}

// WithRepository sets the Docker repository.
func (b *ComponentBuilder) WithRepository(repository string) *ComponentBuilder {
	b.params.Repository = repository
	return b
}

// WithPrefix sets the prefix prepended to new version tags.
func (b *ComponentBuilder) WithPrefix(prefix string) *ComponentBuilder {
	b.params.Prefix = prefix
	return b
}

// WithFilter sets the tag filter.
func (b *ComponentBuilder) WithFilter(filter string) *ComponentBuilder {
	b.params.Filter = filter
	return b
}

// WithVersionPattern sets the marker pattern.
func (b *ComponentBuilder) WithVersionPattern(pattern string) *ComponentBuilder {
	b.params.VersionPattern = pattern
	return b
}

// WithExcludeVersions sets the excluded tags.
func (b *ComponentBuilder) WithExcludeVersions(tags ...string) *ComponentBuilder {
	b.params.ExcludeVersions = tags
	return b
}

// WithFiles sets the tracked files.
func (b *ComponentBuilder) WithFiles(files ...string) *ComponentBuilder {
	b.params.Files = files
	return b
}

// Build creates the component (satisfies testkit.Builder interface).
func (b *ComponentBuilder) Build() interface{} {
	return b.BuildComponent()
}

// BuildComponent creates the component with a concrete return type. It
// panics on invalid parameters, which is a bug in the test.
func (b *ComponentBuilder) BuildComponent() *entities.Component {
	component, err := entities.NewComponent(b.kind, b.params)
	if err != nil {
		panic(err)
	}
	return component
}

// Reset clears the builder state, allowing it to be reused.
func (b *ComponentBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.kind = string(entities.KindDockerImage)
	b.params = defaultParams()
	return b
}

// Clone creates a deep copy of the ComponentBuilder.
func (b *ComponentBuilder) Clone() testkit.Builder {
	params := b.params
	params.ExcludeVersions = append([]string(nil), b.params.ExcludeVersions...)
	params.Files = append([]string(nil), b.params.Files...)
	return &ComponentBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		kind:        b.kind,
		params:      params,
	}
}
