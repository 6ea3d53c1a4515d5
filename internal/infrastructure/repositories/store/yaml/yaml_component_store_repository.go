package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store"
)

// ComponentStoreRepository reads and writes declarations as a YAML mapping
// keyed by component name.
type ComponentStoreRepository struct{}

// NewComponentStoreRepository creates a YAML store.
func NewComponentStoreRepository() repositories.ComponentStoreRepository {
	return &ComponentStoreRepository{}
}

func (s *ComponentStoreRepository) Extensions() []string { return []string{".yaml", ".yml"} }

// Load decodes the mapping node by node so the declaration order survives.
func (s *ComponentStoreRepository) Load(path string) ([]entities.NamedDeclaration, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var document yaml.Node
	if decodeErr := yaml.NewDecoder(bytes.NewReader(content)).Decode(&document); decodeErr != nil {
		if errors.Is(decodeErr, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to parse %q: %w", entities.ErrConfiguration, path, decodeErr)
	}
	if len(document.Content) == 0 {
		return nil, nil
	}

	root := document.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q must hold a mapping of component names", entities.ErrConfiguration, path)
	}

	declarations := make([]entities.NamedDeclaration, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var decl entities.ComponentDeclaration
		if valueErr := root.Content[i+1].Decode(&decl); valueErr != nil {
			return nil, fmt.Errorf(
				"%w: invalid declaration of %q in %q: %w",
				entities.ErrConfiguration, name, path, valueErr,
			)
		}
		declarations = append(declarations, entities.NamedDeclaration{Name: name, Declaration: decl})
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

func (s *ComponentStoreRepository) Render(declarations []entities.NamedDeclaration) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, named := range declarations {
		value := &yaml.Node{}
		if err := value.Encode(named.Declaration); err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", named.Name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: named.Name},
			value,
		)
	}

	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to render declarations: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to render declarations: %w", err)
	}
	return buffer.Bytes(), nil
}
