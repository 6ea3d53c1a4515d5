package repositories

import "github.com/rios0rios0/componentupdate/internal/domain/entities"

// ComponentStoreRepository loads and saves component declarations in one
// file format. Declaration order is preserved in both directions.
type ComponentStoreRepository interface {
	// Extensions returns the file extensions handled by the store (".yaml").
	Extensions() []string

	Load(path string) ([]entities.NamedDeclaration, error)
	Save(path string, declarations []entities.NamedDeclaration) error

	// Render returns the serialized form without touching the disk.
	Render(declarations []entities.NamedDeclaration) ([]byte, error)
}
