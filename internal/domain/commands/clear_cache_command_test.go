//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/componentupdate/internal/domain/commands"
	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/cache"
)

func TestClearCacheCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should drop every cached listing", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		versionCache := cache.NewInMemoryVersionCacheRepository()
		t.Cleanup(func() { _ = versionCache.Close() })
		keys := []entities.VersionKey{
			{Kind: entities.KindDockerImage, Name: "nginx", Repository: "library"},
			{Kind: entities.KindPypi, Name: "requests"},
		}
		for _, key := range keys {
			require.NoError(t, versionCache.Set(ctx, key, entities.CachedVersions{
				Tags:      []string{"1.0"},
				FetchedAt: time.Now(),
			}))
		}
		command := commands.NewClearCacheCommand(versionCache)

		// when
		err := command.Execute(ctx)

		// then
		require.NoError(t, err)
		for _, key := range keys {
			_, found, getErr := versionCache.Get(ctx, key)
			require.NoError(t, getErr)
			assert.False(t, found, key.String())
		}
	})
}
