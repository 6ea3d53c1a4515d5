package repositories

import "context"

// VCSRepository stages and commits the files changed by an update.
type VCSRepository interface {
	// DiffNames returns the paths, relative to dir, that differ from HEAD
	// in the working tree containing dir.
	DiffNames(ctx context.Context, dir string) (map[string]bool, error)

	// Add stages path, relative to dir.
	Add(ctx context.Context, dir, path string) error

	// Commit records the staged changes with message.
	Commit(ctx context.Context, dir, message string) error
}
