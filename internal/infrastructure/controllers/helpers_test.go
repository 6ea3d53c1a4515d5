//go:build unit

package controllers_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/controllers"
	"github.com/rios0rios0/componentupdate/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/componentupdate/test/infrastructure/repositorydoubles"
)

//nolint:gochecknoinits // plain output for string assertions
func init() {
	color.NoColor = true
}

// newCobraCommand binds controller to a command with the persistent and
// controller flags parsed from args.
func newCobraCommand(t *testing.T, controller entities.Controller, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{Use: controller.GetBind().Use}
	controllers.AddPersistentFlags(cmd)
	if binder, ok := controller.(controllers.FlagsBinder); ok {
		binder.AddFlags(cmd)
	}
	require.NoError(t, cmd.ParseFlags(args))

	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

// checkedConfig returns a config whose nginx component has 1.25 available.
func checkedConfig(t *testing.T) *entities.Config {
	t.Helper()

	cfg := entities.NewConfig("")
	cfg.Add(entitybuilders.NewComponentBuilder().
		WithName("nginx").
		WithCurrentVersion("1.24.0").
		BuildComponent())
	source := &doubles.StubVersionRepository{
		ComponentKind: entities.KindDockerImage,
		Tags:          map[string][]string{"nginx": {"1.24.0", "1.25.0"}},
	}
	_, err := cfg.Check(context.Background(), source, 1)
	require.NoError(t, err)
	return cfg
}
