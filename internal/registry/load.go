package registry

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/voidcase/reagraph/internal/graph"
)

//go:embed schema.cue
var schemaCUE string

// definitionFile is the YAML shape of a type definition file. The CUE
// schema in schema.cue is the authoritative constraint set; these structs
// only carry the already-validated data.
type definitionFile struct {
	Components    []componentDef    `yaml:"components"`
	EntityTypes   []entityTypeDef   `yaml:"entity_types"`
	RelationTypes []relationTypeDef `yaml:"relation_types"`
}

type componentDef struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Properties  []propertyDef `yaml:"properties"`
}

type entityTypeDef struct {
	Name        string         `yaml:"name"`
	Group       string         `yaml:"group"`
	Description string         `yaml:"description"`
	Components  []string       `yaml:"components"`
	Properties  []propertyDef  `yaml:"properties"`
	Extensions  []extensionDef `yaml:"extensions"`
}

type relationTypeDef struct {
	Name         string         `yaml:"name"`
	OutboundType string         `yaml:"outbound_type"`
	InboundType  string         `yaml:"inbound_type"`
	Group        string         `yaml:"group"`
	Description  string         `yaml:"description"`
	Components   []string       `yaml:"components"`
	Properties   []propertyDef  `yaml:"properties"`
	Extensions   []extensionDef `yaml:"extensions"`
}

type propertyDef struct {
	Name       string `yaml:"name"`
	DataType   string `yaml:"data_type"`
	SocketType string `yaml:"socket_type"`
}

type extensionDef struct {
	Name      string `yaml:"name"`
	Extension any    `yaml:"extension"`
}

// LoadFile reads, validates, and registers the type definitions in a YAML
// file. Definitions are validated against the embedded CUE schema first;
// on success every definition in the file is registered.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read type definitions: %w", err)
	}
	return r.Load(path, data)
}

// Load validates and registers the type definitions in YAML source.
// filename is used for error positions only.
func (r *Registry) Load(filename string, data []byte) error {
	if err := validateDefinitions(filename, data); err != nil {
		return err
	}

	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode type definitions: %w", err)
	}

	for _, def := range file.Components {
		r.RegisterComponent(&Component{
			Name:        def.Name,
			Description: def.Description,
			Properties:  propertyTypes(def.Properties),
		})
	}
	for _, def := range file.EntityTypes {
		extensions, err := extensionValues(def.Extensions)
		if err != nil {
			return fmt.Errorf("entity type %q: %w", def.Name, err)
		}
		r.RegisterEntityType(graph.NewEntityType(
			def.Name, def.Group, def.Description,
			def.Components, propertyTypes(def.Properties), extensions,
		))
	}
	for _, def := range file.RelationTypes {
		extensions, err := extensionValues(def.Extensions)
		if err != nil {
			return fmt.Errorf("relation type %q: %w", def.Name, err)
		}
		r.RegisterRelationType(graph.NewRelationType(
			def.OutboundType, def.Name, def.InboundType,
			def.Group, def.Description,
			def.Components, propertyTypes(def.Properties), extensions,
		))
	}
	return nil
}

// validateDefinitions unifies the YAML source with the embedded CUE schema
// and reports the first failing constraint.
func validateDefinitions(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile definition schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parse type definitions: %w", err)
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return fmt.Errorf("build type definitions: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("invalid type definitions: %w", err)
	}
	return nil
}

func propertyTypes(defs []propertyDef) []graph.PropertyType {
	properties := make([]graph.PropertyType, 0, len(defs))
	for _, def := range defs {
		socket := graph.SocketType(def.SocketType)
		if socket == "" {
			socket = graph.SocketTypeNone
		}
		properties = append(properties, graph.PropertyType{
			Name:       def.Name,
			DataType:   graph.DataType(def.DataType),
			SocketType: socket,
		})
	}
	return properties
}

func extensionValues(defs []extensionDef) ([]graph.Extension, error) {
	extensions := make([]graph.Extension, 0, len(defs))
	for _, def := range defs {
		value, err := graph.FromAny(def.Extension)
		if err != nil {
			return nil, fmt.Errorf("extension %q: %w", def.Name, err)
		}
		extensions = append(extensions, graph.Extension{Name: def.Name, Extension: value})
	}
	return extensions, nil
}
