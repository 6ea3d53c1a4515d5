//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// StubVersionRepository implements repositories.VersionRepository and
// entities.VersionFetcher with canned tag lists keyed by component name.
type StubVersionRepository struct {
	ComponentKind entities.ComponentKind

	// --- FetchVersions ---
	Tags     map[string][]string // component name -> tags
	FetchErr error
	// Release, when set, blocks every fetch until it is closed.
	Release chan struct{}

	mu    sync.Mutex
	calls []entities.VersionKey
}

var (
	_ repositories.VersionRepository = (*StubVersionRepository)(nil)
	_ entities.VersionFetcher        = (*StubVersionRepository)(nil)
)

func (s *StubVersionRepository) Kind() entities.ComponentKind { return s.ComponentKind }

func (s *StubVersionRepository) FetchVersions(ctx context.Context, key entities.VersionKey) ([]string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, key)
	s.mu.Unlock()

	if s.Release != nil {
		select {
		case <-s.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return s.Tags[key.Name], nil
}

// Calls returns the keys requested so far.
func (s *StubVersionRepository) Calls() []entities.VersionKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.VersionKey(nil), s.calls...)
}

// CallCount returns how many fetches were made.
func (s *StubVersionRepository) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
