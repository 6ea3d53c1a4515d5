package repositories

import "context"

// TestRunnerRepository runs the verification command after files were rewritten.
type TestRunnerRepository interface {
	// Run executes command in dir. A non-zero exit is returned as an error
	// wrapping entities.ErrExternalProcess.
	Run(ctx context.Context, command []string, dir string) error
}
