package repositories

import (
	"context"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
)

// VersionRepository lists the tags published upstream for one component kind.
type VersionRepository interface {
	// Kind returns the component kind served by this source.
	Kind() entities.ComponentKind

	// FetchVersions returns every known tag. Non-success responses are
	// returned as errors wrapping entities.ErrRemoteFetch.
	FetchVersions(ctx context.Context, key entities.VersionKey) ([]string, error)
}
