//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

func TestNewComponent(t *testing.T) {
	t.Parallel()

	t.Run("should build a docker image in the library repository by default", func(t *testing.T) {
		t.Parallel()

		// given
		params := entities.ComponentParams{Name: "nginx", CurrentVersionTag: "1.25.3"}

		// when
		component, err := entities.NewComponent("docker-image", params)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.KindDockerImage, component.Kind())
		assert.Equal(t, entities.DefaultDockerRepository, component.Repository)
		assert.Equal(t, "{component}:{version}", component.VersionPattern)
		assert.Equal(t, entities.DefaultFilter, component.Filter())
		assert.Equal(t, "1.25.3", component.NextVersionTag)
	})

	t.Run("should build a pypi package without a repository", func(t *testing.T) {
		t.Parallel()

		// given
		params := entities.ComponentParams{Name: "requests", CurrentVersionTag: "2.31.0", Repository: "ignored"}

		// when
		component, err := entities.NewComponent("pypi", params)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.KindPypi, component.Kind())
		assert.Empty(t, component.Repository)
		assert.Equal(t, "{component}=={version}", component.VersionPattern)
		assert.Equal(t, entities.VersionKey{Kind: entities.KindPypi, Name: "requests"}, component.Key())
	})

	t.Run("should accept the latest sentinel as current version", func(t *testing.T) {
		t.Parallel()

		// given
		params := entities.ComponentParams{Name: "redis", CurrentVersionTag: "latest"}

		// when
		component, err := entities.NewComponent("docker-image", params)

		// then
		require.NoError(t, err)
		assert.True(t, component.IsLatest())
	})

	t.Run("should accept a suffixed image tag as current version", func(t *testing.T) {
		t.Parallel()

		// given
		params := entities.ComponentParams{Name: "python", CurrentVersionTag: "3.11-slim", Filter: `-slim$`}

		// when
		component, err := entities.NewComponent("docker-image", params)

		// then
		require.NoError(t, err)
		assert.True(t, component.CurrentVersion.IsLegacy())
		assert.Equal(t, "3.11-slim", component.NextVersionTag)
	})

	tests := []struct {
		name   string
		kind   string
		params entities.ComponentParams
	}{
		{
			name:   "unknown kind",
			kind:   "npm",
			params: entities.ComponentParams{Name: "left-pad", CurrentVersionTag: "1.0.0"},
		},
		{
			name:   "missing name",
			kind:   "pypi",
			params: entities.ComponentParams{CurrentVersionTag: "1.0.0"},
		},
		{
			name:   "missing current version",
			kind:   "pypi",
			params: entities.ComponentParams{Name: "requests"},
		},
		{
			name:   "unparsable current version",
			kind:   "docker-image",
			params: entities.ComponentParams{Name: "nginx", CurrentVersionTag: "stable"},
		},
		{
			name:   "invalid filter",
			kind:   "docker-image",
			params: entities.ComponentParams{Name: "nginx", CurrentVersionTag: "1.0", Filter: "(unclosed"},
		},
		{
			name:   "empty file path",
			kind:   "docker-image",
			params: entities.ComponentParams{Name: "nginx", CurrentVersionTag: "1.0", Files: []string{""}},
		},
	}

	for _, test := range tests {
		t.Run("should reject "+test.name, func(t *testing.T) {
			t.Parallel()

			// when
			component, err := entities.NewComponent(test.kind, test.params)

			// then
			require.ErrorIs(t, err, entities.ErrConfiguration)
			assert.Nil(t, component)
		})
	}

	t.Run("should name the offending kind", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewComponent("helm-chart", entities.ComponentParams{Name: "x", CurrentVersionTag: "1"})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"helm-chart"`)
	})
}

func TestComponentDeclaration(t *testing.T) {
	t.Parallel()

	t.Run("should omit fields holding the kind defaults", func(t *testing.T) {
		t.Parallel()

		// given
		component, err := entities.NewComponent("docker-image", entities.ComponentParams{
			Name:              "nginx",
			CurrentVersionTag: "1.0",
			Files:             []string{"Dockerfile"},
		})
		require.NoError(t, err)

		// when
		decl := component.Declaration()

		// then
		assert.Equal(t, entities.ComponentDeclaration{
			ComponentType:  "docker-image",
			CurrentVersion: "1.0",
			NextVersion:    "1.0",
			DockerRepo:     "library",
			Files:          []string{"Dockerfile"},
		}, decl)
	})

	t.Run("should build the same component back from its declaration", func(t *testing.T) {
		t.Parallel()

		// given
		original, err := entities.NewComponent("pypi", entities.ComponentParams{
			Name:              "django",
			CurrentVersionTag: "4.2.0",
			Filter:            `/4\..*/`,
			VersionPattern:    "Django=={version}",
			ExcludeVersions:   []string{"4.2.1"},
			Files:             []string{"requirements.txt"},
		})
		require.NoError(t, err)

		// when
		rebuilt, err := entities.ComponentFromDeclaration("django", original.Declaration())

		// then
		require.NoError(t, err)
		assert.Equal(t, original.Declaration(), rebuilt.Declaration())
		assert.Equal(t, original.Filter(), rebuilt.Filter())
	})
}
