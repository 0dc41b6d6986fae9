package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/flowplan/errors"
)

// definitionSchema is the JSON Schema every portable pipeline definition
// must satisfy before graph construction is attempted.
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Pipeline Definition",
  "type": "object",
  "required": ["name", "nodes"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "nodes": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "kind"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "kind": {
            "type": "string",
            "enum": [
              "impulse", "sequence-source", "create-values", "file-read",
              "native-source", "file-watch", "map-fn", "filter-fn",
              "group-by-key", "combine", "flatten", "window-into", "file-write"
            ]
          },
          "config": {"type": "object"}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "source", "target"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "source": {"type": "string", "minLength": 1},
          "target": {"type": "string", "minLength": 1},
          "boundedness": {"type": "string", "enum": ["bounded", "unbounded"]},
          "windowing": {
            "type": "object",
            "required": ["kind"],
            "additionalProperties": false,
            "properties": {
              "kind": {"type": "string", "enum": ["fixed", "sliding", "session"]},
              "size": {"type": "string"},
              "slide": {"type": "string"},
              "gap": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

// Definition is the portable JSON form of a pipeline graph
type Definition struct {
	Name  string    `json:"name"`
	Nodes []NodeDef `json:"nodes"`
	Edges []EdgeDef `json:"edges,omitempty"`
}

// NodeDef is the JSON form of a transform node
type NodeDef struct {
	ID     string         `json:"id"`
	Name   string         `json:"name,omitempty"`
	Kind   string         `json:"kind"`
	Config map[string]any `json:"config,omitempty"`
}

// EdgeDef is the JSON form of a collection edge. Durations inside the
// windowing block use Go duration syntax ("1h", "30s").
type EdgeDef struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	Target      string        `json:"target"`
	Boundedness string        `json:"boundedness,omitempty"`
	Windowing   *WindowingDef `json:"windowing,omitempty"`
}

// WindowingDef is the JSON form of a windowing strategy
type WindowingDef struct {
	Kind  string `json:"kind"`
	Size  string `json:"size,omitempty"`
	Slide string `json:"slide,omitempty"`
	Gap   string `json:"gap,omitempty"`
}

// ParseDefinition validates a JSON pipeline definition against the schema
// and builds a Graph from it. The returned graph has passed Validate.
func ParseDefinition(data []byte) (*Graph, error) {
	schemaLoader := gojsonschema.NewStringLoader(definitionSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Definition", "ParseDefinition", "schema validation")
	}
	if !result.Valid() {
		errMsg := "definition schema validation failed:"
		for _, desc := range result.Errors() {
			errMsg += fmt.Sprintf("\n  - %s: %s", desc.Field(), desc.Description())
		}
		return nil, errors.WrapInvalid(fmt.Errorf("%s", errMsg), "Definition", "ParseDefinition", "schema validation")
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.WrapInvalid(err, "Definition", "ParseDefinition", "definition decoding")
	}
	return def.Build()
}

// Build constructs a validated Graph from the definition
func (d *Definition) Build() (*Graph, error) {
	graph := NewGraph()

	for _, nd := range d.Nodes {
		name := nd.Name
		if name == "" {
			name = nd.ID
		}
		node := &Node{
			ID:     nd.ID,
			Name:   name,
			Kind:   Kind(nd.Kind),
			Config: nd.Config,
		}
		if err := graph.AddNode(node); err != nil {
			return nil, err
		}
	}

	for _, ed := range d.Edges {
		windowing, err := ed.Windowing.toWindowing()
		if err != nil {
			return nil, errors.WrapInvalid(
				fmt.Errorf("edge '%s': %w", ed.ID, err), "Definition", "Build", "windowing parsing")
		}
		edge := &Edge{
			ID:          ed.ID,
			Source:      ed.Source,
			Target:      ed.Target,
			Boundedness: Boundedness(ed.Boundedness),
			Windowing:   windowing,
		}
		if err := graph.AddEdge(edge); err != nil {
			return nil, err
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

func (wd *WindowingDef) toWindowing() (*Windowing, error) {
	if wd == nil {
		return nil, nil
	}
	w := &Windowing{Kind: WindowKind(wd.Kind)}

	parse := func(field, value string) (time.Duration, error) {
		if value == "" {
			return 0, nil
		}
		dur, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s duration %q: %w", field, value, err)
		}
		return dur, nil
	}

	var err error
	if w.Size, err = parse("size", wd.Size); err != nil {
		return nil, err
	}
	if w.Slide, err = parse("slide", wd.Slide); err != nil {
		return nil, err
	}
	if w.Gap, err = parse("gap", wd.Gap); err != nil {
		return nil, err
	}
	return w, nil
}
