package repositories

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// StoreRegistry maps config file extensions to the stores that read and
// write them.
type StoreRegistry struct {
	stores       map[string]domainRepos.ComponentStoreRepository
	defaultStore domainRepos.ComponentStoreRepository
}

// NewStoreRegistry creates a registry whose fallback store is defaultStore.
func NewStoreRegistry(defaultStore domainRepos.ComponentStoreRepository) *StoreRegistry {
	reg := &StoreRegistry{
		stores:       make(map[string]domainRepos.ComponentStoreRepository),
		defaultStore: defaultStore,
	}
	reg.Register(defaultStore)
	return reg
}

// Register adds a store under every extension it handles.
func (r *StoreRegistry) Register(store domainRepos.ComponentStoreRepository) {
	for _, ext := range store.Extensions() {
		r.stores[strings.ToLower(ext)] = store
	}
}

// ForPath returns the store matching the extension of path.
func (r *StoreRegistry) ForPath(path string) (domainRepos.ComponentStoreRepository, error) {
	ext := strings.ToLower(filepath.Ext(path))
	store, ok := r.stores[ext]
	if !ok {
		return nil, fmt.Errorf(
			"%w: unsupported config file extension %q (supported: %s)",
			entities.ErrConfiguration, ext, strings.Join(r.Extensions(), ", "),
		)
	}
	return store, nil
}

// Default returns the fallback store.
func (r *StoreRegistry) Default() domainRepos.ComponentStoreRepository {
	return r.defaultStore
}

// Extensions returns the registered extensions in sorted order.
func (r *StoreRegistry) Extensions() []string {
	exts := make([]string, 0, len(r.stores))
	for ext := range r.stores {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
