//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
type SpyVCSRepository struct {
	// --- DiffNames ---
	Changed map[string]bool
	DiffErr error

	// --- Add ---
	AddErr error
	Added  []string

	// --- Commit ---
	CommitErr error
	Commits   []string
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (s *SpyVCSRepository) DiffNames(_ context.Context, _ string) (map[string]bool, error) {
	return s.Changed, s.DiffErr
}

func (s *SpyVCSRepository) Add(_ context.Context, _, path string) error {
	s.Added = append(s.Added, path)
	return s.AddErr
}

func (s *SpyVCSRepository) Commit(_ context.Context, _, message string) error {
	s.Commits = append(s.Commits, message)
	return s.CommitErr
}
