//go:build unit

package controllers_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/componentupdate/internal/domain/commands"
	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/controllers"
	"github.com/rios0rios0/componentupdate/test/domain/commanddoubles"
)

func TestCheckControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should print the summary and the available versions", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubCheckCommand{Output: &commands.CheckOutput{
			Config:   checkedConfig(t),
			Checked:  1,
			ToUpdate: 1,
		}}
		controller := controllers.NewCheckController(command, &commanddoubles.StubClearCacheCommand{})
		configFile := filepath.Join(t.TempDir(), "components.yaml")
		cmd, out := newCobraCommand(t, controller, "--file", configFile, "--verbose", "--dry-run")

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, command.ExecuteCallCount)
		assert.Equal(t, configFile, command.LastOpts.ConfigFile)
		assert.True(t, command.LastOpts.DryRun)
		assert.Nil(t, command.LastOpts.Adhoc)
		assert.Equal(t,
			"1 components to check\n1 components to update\nnginx - current: 1.24.0 next: 1.25.0 (minor)\n",
			out.String(),
		)
	})

	t.Run("should pass an ad-hoc component from the flags", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubCheckCommand{Output: &commands.CheckOutput{
			Config:   entities.NewConfig(""),
			Rendered: []byte("requests: {}\n"),
		}}
		controller := controllers.NewCheckController(command, &commanddoubles.StubClearCacheCommand{})
		cmd, out := newCobraCommand(t, controller,
			"--type", "pypi", "--component", "requests", "--version-tag", "2.30.0", "--print")

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, &commands.AdhocComponent{
			Kind:              "pypi",
			Name:              "requests",
			CurrentVersionTag: "2.30.0",
		}, command.LastOpts.Adhoc)
		assert.True(t, command.LastOpts.PrintConfig)
		assert.Contains(t, out.String(), "requests: {}\n")
	})

	t.Run("should only clear the cache when asked to", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubCheckCommand{}
		clearCache := &commanddoubles.StubClearCacheCommand{}
		controller := controllers.NewCheckController(command, clearCache)
		cmd, _ := newCobraCommand(t, controller, "--clear-cache")

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, clearCache.ExecuteCallCount)
		assert.Equal(t, 0, command.ExecuteCallCount)
	})

	t.Run("should return the command error", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubCheckCommand{ExecuteErr: entities.ErrRemoteFetch}
		controller := controllers.NewCheckController(command, &commanddoubles.StubClearCacheCommand{})
		cmd, out := newCobraCommand(t, controller)

		// when
		err := controller.Execute(cmd, nil)

		// then
		assert.True(t, errors.Is(err, entities.ErrRemoteFetch))
		assert.Empty(t, out.String())
	})
}
