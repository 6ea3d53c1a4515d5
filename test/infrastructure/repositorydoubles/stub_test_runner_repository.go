//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// TestRunCall records a single invocation of Run.
type TestRunCall struct {
	Command []string
	Dir     string
}

// StubTestRunnerRepository implements repositories.TestRunnerRepository.
type StubTestRunnerRepository struct {
	RunErr error
	Calls  []TestRunCall
}

var _ repositories.TestRunnerRepository = (*StubTestRunnerRepository)(nil)

func (s *StubTestRunnerRepository) Run(_ context.Context, command []string, dir string) error {
	s.Calls = append(s.Calls, TestRunCall{Command: command, Dir: dir})
	return s.RunErr
}
