package hcl

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
	"github.com/rios0rios0/componentupdate/internal/infrastructure/repositories/store"
)

const blockType = "component"

// attribute names, shared with the YAML and TOML keys
const (
	attrComponentType   = "component-type"
	attrCurrentVersion  = "current-version"
	attrNextVersion     = "next-version"
	attrDockerRepo      = "docker-repo"
	attrPrefix          = "prefix"
	attrFilter          = "filter"
	attrFiles           = "files"
	attrExcludeVersions = "exclude-versions"
	attrVersionPattern  = "version-pattern"
)

// ComponentStoreRepository reads and writes declarations as labeled HCL
// blocks:
//
//	component "nginx" {
//	  component-type  = "docker-image"
//	  current-version = "1.25.3"
//	}
type ComponentStoreRepository struct{}

// NewComponentStoreRepository creates an HCL store.
func NewComponentStoreRepository() repositories.ComponentStoreRepository {
	return &ComponentStoreRepository{}
}

func (s *ComponentStoreRepository) Extensions() []string { return []string{".hcl"} }

func (s *ComponentStoreRepository) Load(path string) ([]entities.NamedDeclaration, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %q: %s", entities.ErrConfiguration, path, diags.Error())
	}

	bodyContent, diags := file.Body.Content(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: blockType, LabelNames: []string{"name"}},
		},
	})
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: invalid %q: %s", entities.ErrConfiguration, path, diags.Error())
	}

	declarations := make([]entities.NamedDeclaration, 0, len(bodyContent.Blocks))
	for _, block := range bodyContent.Blocks {
		name := block.Labels[0]
		decl, declErr := decodeBlock(block)
		if declErr != nil {
			return nil, fmt.Errorf("%w: invalid declaration of %q in %q: %w", entities.ErrConfiguration, name, path, declErr)
		}
		declarations = append(declarations, entities.NamedDeclaration{Name: name, Declaration: decl})
	}
	return declarations, nil
}

func decodeBlock(block *hcl.Block) (entities.ComponentDeclaration, error) {
	var decl entities.ComponentDeclaration

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return decl, diags
	}

	stringAttrs := map[string]*string{
		attrComponentType:  &decl.ComponentType,
		attrCurrentVersion: &decl.CurrentVersion,
		attrNextVersion:    &decl.NextVersion,
		attrDockerRepo:     &decl.DockerRepo,
		attrPrefix:         &decl.Prefix,
		attrFilter:         &decl.Filter,
		attrVersionPattern: &decl.VersionPattern,
	}
	listAttrs := map[string]*[]string{
		attrFiles:           &decl.Files,
		attrExcludeVersions: &decl.ExcludeVersions,
	}

	// sorted for deterministic error messages
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, valueDiags := attrs[name].Expr.Value(&hcl.EvalContext{})
		if valueDiags.HasErrors() {
			return decl, valueDiags
		}

		if target, ok := stringAttrs[name]; ok {
			converted, err := convert.Convert(value, cty.String)
			if err != nil || converted.IsNull() {
				return decl, fmt.Errorf("attribute %q must be a string", name)
			}
			*target = converted.AsString()
			continue
		}
		if target, ok := listAttrs[name]; ok {
			items, err := stringList(value)
			if err != nil {
				return decl, fmt.Errorf("attribute %q must be a list of strings", name)
			}
			*target = items
			continue
		}
		return decl, fmt.Errorf("unknown attribute %q", name)
	}
	return decl, nil
}

func stringList(value cty.Value) ([]string, error) {
	converted, err := convert.Convert(value, cty.List(cty.String))
	if err != nil {
		return nil, err
	}
	if converted.IsNull() || converted.LengthInt() == 0 {
		return nil, nil
	}
	items := make([]string, 0, converted.LengthInt())
	for _, item := range converted.AsValueSlice() {
		items = append(items, item.AsString())
	}
	return items, nil
}

func (s *ComponentStoreRepository) Save(path string, declarations []entities.NamedDeclaration) error {
	content, err := s.Render(declarations)
	if err != nil {
		return err
	}
	return store.WriteFile(path, content)
}

func (s *ComponentStoreRepository) Render(declarations []entities.NamedDeclaration) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	for i, named := range declarations {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock(blockType, []string{named.Name}).Body()
		decl := named.Declaration

		block.SetAttributeValue(attrComponentType, cty.StringVal(decl.ComponentType))
		block.SetAttributeValue(attrCurrentVersion, cty.StringVal(decl.CurrentVersion))
		setOptionalString(block, attrNextVersion, decl.NextVersion)
		setOptionalString(block, attrDockerRepo, decl.DockerRepo)
		setOptionalString(block, attrPrefix, decl.Prefix)
		setOptionalString(block, attrFilter, decl.Filter)
		setOptionalList(block, attrFiles, decl.Files)
		setOptionalList(block, attrExcludeVersions, decl.ExcludeVersions)
		setOptionalString(block, attrVersionPattern, decl.VersionPattern)
	}
	return hclwrite.Format(file.Bytes()), nil
}

func setOptionalString(body *hclwrite.Body, name, value string) {
	if value == "" {
		return
	}
	body.SetAttributeValue(name, cty.StringVal(value))
}

func setOptionalList(body *hclwrite.Body, name string, values []string) {
	if len(values) == 0 {
		return
	}
	items := make([]cty.Value, 0, len(values))
	for _, value := range values {
		items = append(items, cty.StringVal(value))
	}
	body.SetAttributeValue(name, cty.ListVal(items))
}
