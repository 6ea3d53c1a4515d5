//go:build unit

package toml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	tomlStore "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store/toml"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "components.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestComponentStoreRepository(t *testing.T) {
	t.Parallel()

	t.Run("should keep the table order through a round trip", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeFile(t, `[zookeeper]
component-type = "docker-image"
current-version = "3.8"
files = ["compose.yaml"]

[alpine]
component-type = "docker-image"
current-version = "3.19"
exclude-versions = ["3.20"]
`)
		store := tomlStore.NewComponentStoreRepository()

		// when
		loaded, err := store.Load(path)
		require.NoError(t, err)
		require.NoError(t, store.Save(path, loaded))
		reloaded, reloadErr := store.Load(path)

		// then
		require.NoError(t, reloadErr)
		require.Len(t, reloaded, 2)
		assert.Equal(t, "zookeeper", reloaded[0].Name)
		assert.Equal(t, "alpine", reloaded[1].Name)
		assert.Equal(t, []string{"compose.yaml"}, reloaded[0].Declaration.Files)
		assert.Equal(t, []string{"3.20"}, reloaded[1].Declaration.ExcludeVersions)
		assert.Equal(t, loaded, reloaded)
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeFile(t, "[nginx]\ncomponent-type = \"docker-image\"\ncurrent-version = \"1.25\"\nregistry = \"quay.io\"\n")

		// when
		_, err := tomlStore.NewComponentStoreRepository().Load(path)

		// then
		require.ErrorIs(t, err, entities.ErrConfiguration)
		assert.Contains(t, err.Error(), "registry")
	})

	t.Run("should reject invalid syntax", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeFile(t, "[nginx\n")

		// when
		_, err := tomlStore.NewComponentStoreRepository().Load(path)

		// then
		assert.ErrorIs(t, err, entities.ErrConfiguration)
	})
}
