// Package document is the external collaborator (spec.md §1, §6) that
// turns on-disk YAML into the core's model.Document boundary type. The
// core never parses YAML/JSON itself — this package is exercised only by
// cmd/tiacad, grounded on the teacher's normalizeYAML helper shape
// (loading into a generic map, normalizing non-string-keyed nodes) and its
// own line/column-tracking pattern for source-position-aware errors.
package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Load reads path, parses it as YAML, and returns a model.Document with
// the source position of each parameter and of each sketch/part/operation/
// reference entry recorded; nested values inside an entry carry no
// position of their own (spec.md §7: "errors also carry (file, line,
// column)").
func Load(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data (YAML source) into a model.Document, attributing
// source positions to file.
func Parse(data []byte, file string) (*model.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	doc := model.NewDocument()
	if len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: document root must be a mapping", file)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value
		val := top.Content[i+1]
		switch key {
		case "parameters":
			decodeParamSection(val, doc, file)
		case "sketches":
			decodeSpecSection(val, doc.Sketches, "sketch", doc, file)
		case "parts":
			decodeSpecSection(val, doc.Parts, "part", doc, file)
		case "operations":
			decodeSpecSection(val, doc.Operations, "operation", doc, file)
		case "references":
			decodeSpecSection(val, doc.References, "reference", doc, file)
		case "export":
			decodeExport(val, doc)
		}
	}
	return doc, nil
}

func decodeParamSection(val *yaml.Node, doc *model.Document, file string) {
	if val.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(val.Content); i += 2 {
		name := val.Content[i].Value
		v := val.Content[i+1]
		doc.Parameters[name] = decodeValue(v)
		doc.Positions["parameter:"+name] = posOf(v, file)
	}
}

func decodeSpecSection(val *yaml.Node, into map[string]model.Spec, kind string, doc *model.Document, file string) {
	if val.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(val.Content); i += 2 {
		name := val.Content[i].Value
		v := val.Content[i+1]
		m, _ := decodeValue(v).(map[string]any)
		into[name] = m
		doc.Positions[kind+":"+name] = posOf(v, file)
	}
}

func decodeExport(val *yaml.Node, doc *model.Document) {
	m, _ := decodeValue(val).(map[string]any)
	if m == nil {
		return
	}
	doc.Export.DefaultPart, _ = m["default_part"].(string)
	doc.Export.ColorMode, _ = m["color_mode"].(string)
	doc.Export.DefaultColor, _ = m["default_color"].(string)
	if formats, ok := m["formats"].([]any); ok {
		for _, f := range formats {
			if s, ok := f.(string); ok {
				doc.Export.Formats = append(doc.Export.Formats, s)
			}
		}
	}
}

// decodeValue turns a yaml.Node into a plain Go value using only
// map[string]any / []any / string / float64 / bool / nil — the shape
// model.RawValue expects, normalizing YAML's node-per-scalar
// representation the way the teacher's normalizeYAML normalizes
// map[interface{}]interface{} nodes into map[string]interface{}.
func decodeValue(n *yaml.Node) any {
	switch n.Kind {
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			out[n.Content[i].Value] = decodeValue(n.Content[i+1])
		}
		return out
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, decodeValue(c))
		}
		return out
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return v
	case yaml.AliasNode:
		return decodeValue(n.Alias)
	default:
		return nil
	}
}

func posOf(n *yaml.Node, file string) model.SourcePos {
	return model.SourcePos{File: file, Line: n.Line, Column: n.Column}
}
