//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/componentupdate/internal/domain/commands"
	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	infraRepos "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories"
	yamlStore "github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store/yaml"
	doubles "github.com/rios0rios0/componentupdate/test/infrastructure/repositorydoubles"
)

func newCheckCommand(sources ...*doubles.StubVersionRepository) *commands.CheckCommand {
	versions := infraRepos.NewVersionRegistry()
	for _, source := range sources {
		versions.Register(source)
	}
	stores := infraRepos.NewStoreRegistry(yamlStore.NewComponentStoreRepository())
	return commands.NewCheckCommand(stores, versions, entities.DefaultSettings())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "components.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should store the next version in the config file", func(t *testing.T) {
		t.Parallel()

		// given
		configFile := writeConfig(t, myimageConfig)
		source := &doubles.StubVersionRepository{
			ComponentKind: entities.KindDockerImage,
			Tags:          map[string][]string{"myimage": {"v1.0", "v1.1", "latest"}},
		}
		command := newCheckCommand(source)

		// when
		output, err := command.Execute(context.Background(), commands.CheckOptions{ConfigFile: configFile})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, output.Checked)
		assert.Equal(t, 1, output.ToUpdate)
		assert.Nil(t, output.Rendered)
		assert.Equal(t, "v1.1", output.Config.Components[0].NextVersionTag)
		assert.Equal(t, "v1.0", output.Config.Components[0].CurrentVersionTag)
		assert.Equal(t, []entities.VersionKey{
			{Kind: entities.KindDockerImage, Name: "myimage", Repository: "acme"},
		}, source.Calls())

		saved, readErr := os.ReadFile(configFile)
		require.NoError(t, readErr)
		assert.Contains(t, string(saved), "next-version: v1.1")
		assert.Contains(t, string(saved), "current-version: v1.0")
	})

	t.Run("should check an ad-hoc component without a config file", func(t *testing.T) {
		t.Parallel()

		// given
		source := &doubles.StubVersionRepository{
			ComponentKind: entities.KindPypi,
			Tags:          map[string][]string{"requests": {"2.30.0", "2.31.0", "3.0.0rc1"}},
		}
		command := newCheckCommand(source)

		// when
		output, err := command.Execute(context.Background(), commands.CheckOptions{
			UpdateOptions: entities.UpdateOptions{PrintConfig: true},
			Adhoc: &commands.AdhocComponent{
				Kind:              "pypi",
				Name:              "requests",
				CurrentVersionTag: "2.30.0",
			},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, output.ToUpdate)
		assert.Equal(t, "3.0.0rc1", output.Config.Components[0].NextVersionTag)
		assert.Contains(t, string(output.Rendered), "requests:")
	})

	t.Run("should leave the config file alone in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		configFile := writeConfig(t, myimageConfig)
		source := &doubles.StubVersionRepository{
			ComponentKind: entities.KindDockerImage,
			Tags:          map[string][]string{"myimage": {"v1.0", "v1.1"}},
		}
		command := newCheckCommand(source)

		// when
		_, err := command.Execute(context.Background(), commands.CheckOptions{
			UpdateOptions: entities.UpdateOptions{DryRun: true},
			ConfigFile:    configFile,
		})

		// then
		require.NoError(t, err)
		saved, readErr := os.ReadFile(configFile)
		require.NoError(t, readErr)
		assert.Equal(t, myimageConfig, string(saved))
	})

	t.Run("should reject an ad-hoc component of an unknown type", func(t *testing.T) {
		t.Parallel()

		// given
		command := newCheckCommand()

		// when
		_, err := command.Execute(context.Background(), commands.CheckOptions{
			Adhoc: &commands.AdhocComponent{Kind: "npm", Name: "left-pad", CurrentVersionTag: "1.0.0"},
		})

		// then
		assert.ErrorIs(t, err, entities.ErrConfiguration)
	})

	t.Run("should propagate remote fetch failures", func(t *testing.T) {
		t.Parallel()

		// given
		configFile := writeConfig(t, myimageConfig)
		source := &doubles.StubVersionRepository{
			ComponentKind: entities.KindDockerImage,
			FetchErr:      errors.Join(entities.ErrRemoteFetch, errors.New("503")),
		}
		command := newCheckCommand(source)

		// when
		output, err := command.Execute(context.Background(), commands.CheckOptions{ConfigFile: configFile})

		// then
		require.ErrorIs(t, err, entities.ErrRemoteFetch)
		assert.Nil(t, output)
	})
}
