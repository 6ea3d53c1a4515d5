package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// VersionRegistry manages the version sources, one per component kind.
// It satisfies entities.VersionFetcher by dispatching on the key's kind.
type VersionRegistry struct {
	sources map[entities.ComponentKind]domainRepos.VersionRepository
}

// NewVersionRegistry creates an empty version registry.
func NewVersionRegistry() *VersionRegistry {
	return &VersionRegistry{
		sources: make(map[entities.ComponentKind]domainRepos.VersionRepository),
	}
}

// Register adds a source under the kind it serves.
func (r *VersionRegistry) Register(source domainRepos.VersionRepository) {
	r.sources[source.Kind()] = source
}

// Get returns the source for kind.
func (r *VersionRegistry) Get(kind entities.ComponentKind) (domainRepos.VersionRepository, error) {
	source, ok := r.sources[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no version source for %q", entities.ErrConfiguration, kind)
	}
	return source, nil
}

// FetchVersions lists the upstream tags of the component identified by key.
func (r *VersionRegistry) FetchVersions(ctx context.Context, key entities.VersionKey) ([]string, error) {
	source, err := r.Get(key.Kind)
	if err != nil {
		return nil, err
	}
	return source.FetchVersions(ctx, key)
}

// Kinds returns the registered component kinds in sorted order.
func (r *VersionRegistry) Kinds() []entities.ComponentKind {
	kinds := make([]entities.ComponentKind, 0, len(r.sources))
	for kind := range r.sources {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
