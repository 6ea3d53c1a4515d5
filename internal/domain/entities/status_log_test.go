//go:build unit

package entities_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// fixedClock returns a clock advancing one second per call.
func fixedClock() func() time.Time {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestStatusLog(t *testing.T) {
	t.Parallel()

	t.Run("should keep entries in append order per component", func(t *testing.T) {
		t.Parallel()

		// given
		log := entities.NewStatusLogWithClock(fixedClock())

		// when
		log.Append("nginx", entities.StateUpdateStarted, "started")
		log.Append("redis", entities.StateUpdateSkipped, "skipped")
		log.Append("nginx", entities.StateFilesUpdated, "files")

		// then
		expected := []entities.StatusEntry{
			{Timestamp: time.Date(2024, 1, 1, 12, 0, 1, 0, time.UTC), State: entities.StateUpdateStarted, Message: "started"},
			{Timestamp: time.Date(2024, 1, 1, 12, 0, 3, 0, time.UTC), State: entities.StateFilesUpdated, Message: "files"},
		}
		if diff := cmp.Diff(expected, log.Entries("nginx")); diff != "" {
			t.Errorf("unexpected entries (-want +got):\n%s", diff)
		}
		assert.Equal(t, []string{"nginx", "redis"}, log.Names())
	})

	t.Run("should not expose its internal slices", func(t *testing.T) {
		t.Parallel()

		// given
		log := entities.NewStatusLog()
		log.Append("nginx", entities.StateUpdateStarted, "started")

		// when
		entries := log.Entries("nginx")
		entries[0].State = entities.StateUpdateDone

		// then
		last, ok := log.Last("nginx")
		assert.True(t, ok)
		assert.Equal(t, entities.StateUpdateStarted, last.State)
	})

	t.Run("should report no last entry for an unknown component", func(t *testing.T) {
		t.Parallel()

		// given
		log := entities.NewStatusLog()

		// when
		_, ok := log.Last("nginx")

		// then
		assert.False(t, ok)
		assert.Empty(t, log.States("nginx"))
	})

	t.Run("should render every message grouped by component", func(t *testing.T) {
		t.Parallel()

		// given
		log := entities.NewStatusLogWithClock(fixedClock())
		log.Append("nginx", entities.StateUpdateStarted, "UPDATE_STARTED for nginx in version 1.0")

		// when
		rendered := log.String()

		// then
		assert.Equal(t, "nginx:\n    2024-01-01T12:00:01Z  UPDATE_STARTED for nginx in version 1.0\n", rendered)
	})
}
