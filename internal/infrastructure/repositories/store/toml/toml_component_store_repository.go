package toml

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store"
)

// ComponentStoreRepository reads and writes declarations as TOML tables,
// one table per component name.
type ComponentStoreRepository struct{}

// NewComponentStoreRepository creates a TOML store.
func NewComponentStoreRepository() repositories.ComponentStoreRepository {
	return &ComponentStoreRepository{}
}

func (s *ComponentStoreRepository) Extensions() []string { return []string{".toml"} }

// Load decodes every table and uses the decoder metadata to recover the
// order in which the tables were written.
func (s *ComponentStoreRepository) Load(path string) ([]entities.NamedDeclaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var tables map[string]entities.ComponentDeclaration
	meta, err := toml.Decode(string(data), &tables)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %q: %w", entities.ErrConfiguration, path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys in %q: %v", entities.ErrConfiguration, path, undecoded)
	}

	declarations := make([]entities.NamedDeclaration, 0, len(tables))
	for _, key := range meta.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]
		declarations = append(declarations, entities.NamedDeclaration{Name: name, Declaration: tables[name]})
	}
	return declarations, nil
}

func (s *ComponentStoreRepository) Save(path string, declarations []entities.NamedDeclaration) error {
	content, err := s.Render(declarations)
	if err != nil {
		return err
	}
	return store.WriteFile(path, content)
}

// Render encodes the tables one at a time, since the encoder sorts map keys.
func (s *ComponentStoreRepository) Render(declarations []entities.NamedDeclaration) ([]byte, error) {
	var buffer bytes.Buffer
	for i, named := range declarations {
		if i > 0 {
			buffer.WriteString("\n")
		}
		encoder := toml.NewEncoder(&buffer)
		encoder.Indent = ""
		table := map[string]entities.ComponentDeclaration{named.Name: named.Declaration}
		if err := encoder.Encode(table); err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", named.Name, err)
		}
	}
	return buffer.Bytes(), nil
}
