//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/componentupdate/internal/domain/commands"
)

// StubCheckCommand is a stub implementation of commands.Check.
type StubCheckCommand struct {
	ExecuteCallCount int
	Output           *commands.CheckOutput
	ExecuteErr       error
	LastOpts         commands.CheckOptions
}

var _ commands.Check = (*StubCheckCommand)(nil)

func (s *StubCheckCommand) Execute(_ context.Context, opts commands.CheckOptions) (*commands.CheckOutput, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Output, s.ExecuteErr
}

// StubUpdateCommand is a stub implementation of commands.Update.
type StubUpdateCommand struct {
	ExecuteCallCount int
	Output           *commands.UpdateOutput
	ExecuteErr       error
	LastOpts         commands.UpdateCommandOptions
}

var _ commands.Update = (*StubUpdateCommand)(nil)

func (s *StubUpdateCommand) Execute(
	_ context.Context,
	opts commands.UpdateCommandOptions,
) (*commands.UpdateOutput, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Output, s.ExecuteErr
}

// StubClearCacheCommand is a stub implementation of commands.ClearCache.
type StubClearCacheCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
}

var _ commands.ClearCache = (*StubClearCacheCommand)(nil)

func (s *StubClearCacheCommand) Execute(_ context.Context) error {
	s.ExecuteCallCount++
	return s.ExecuteErr
}
