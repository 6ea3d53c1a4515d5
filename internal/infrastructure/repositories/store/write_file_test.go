//go:build unit

package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("should replace the file and leave no temporary files behind", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		path := filepath.Join(dir, "components.yaml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		// when
		err := store.WriteFile(path, []byte("new"))

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "new", string(content))
		entries, dirErr := os.ReadDir(dir)
		require.NoError(t, dirErr)
		assert.Len(t, entries, 1)
	})

	t.Run("should fail when the directory does not exist", func(t *testing.T) {
		t.Parallel()

		// when
		err := store.WriteFile(filepath.Join(t.TempDir(), "missing", "components.yaml"), []byte("new"))

		// then
		assert.Error(t, err)
	})
}
