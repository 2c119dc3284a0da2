package dag

import (
	"regexp"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// referenceFields lists the operation spec fields that induce part/operation
// edges (spec §4.4's node-kind table, "operation" row).
var referenceFields = []string{"input", "base", "tool"}

// referenceListFields lists the operation spec fields holding lists of
// part/operation references.
var referenceListFields = []string{"inputs", "parts", "subtract", "union"}

// identPattern matches a bare identifier inside an expression fragment —
// used to harvest parameter names out of "${a + b * 2}"-shaped strings
// (spec §4.4 phase 2a: "harvesting identifiers that resolve to parameter
// names").
var identPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// exprPattern matches one ${...} occurrence, mirroring internal/expr's
// whole-string/embedded detection without depending on that package (C4
// only needs the identifiers inside, not evaluation).
var exprPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// Build constructs the dependency graph for doc: phase 1 inserts one node
// per declaration with its content hash, phase 2 extracts edges per the
// kind-specific reference rules, phase 3 rejects any cycle (spec §4.4).
func Build(doc *model.Document) (*Graph, error) {
	g := New()

	paramNames := make(map[string]bool, len(doc.Parameters))
	for name := range doc.Parameters {
		paramNames[name] = true
	}

	for name, raw := range doc.Parameters {
		spec := map[string]any{"value": raw}
		if err := addNode(g, KindParameter, name, spec); err != nil {
			return nil, err
		}
	}
	for name, spec := range doc.Sketches {
		if err := addNode(g, KindSketch, name, spec); err != nil {
			return nil, err
		}
	}
	for name, spec := range doc.Parts {
		if err := addNode(g, KindPart, name, spec); err != nil {
			return nil, err
		}
	}
	for name, spec := range doc.Operations {
		n, err := nodeFor(KindOperation, name, spec)
		if err != nil {
			return nil, err
		}
		n.IsPattern = isPatternOp(spec)
		g.AddNode(n)
	}
	for name, spec := range doc.References {
		if err := addNode(g, KindReference, name, spec); err != nil {
			return nil, err
		}
	}

	for name, raw := range doc.Parameters {
		id := ID(KindParameter, name)
		for _, ref := range harvestExprIdentifiers(raw, paramNames) {
			if ref != name {
				g.AddEdge(id, ID(KindParameter, ref))
			}
		}
	}
	for name, spec := range doc.Sketches {
		id := ID(KindSketch, name)
		addParamEdges(g, id, spec, paramNames)
	}
	for name, spec := range doc.Parts {
		id := ID(KindPart, name)
		addParamEdges(g, id, spec, paramNames)
		if sk, ok := spec["sketch"].(string); ok && sk != "" {
			g.AddEdge(id, ID(KindSketch, sk))
		}
	}
	for name, spec := range doc.Operations {
		id := ID(KindOperation, name)
		addParamEdges(g, id, spec, paramNames)
		for _, field := range referenceFields {
			if ref, ok := spec[field].(string); ok && ref != "" {
				g.AddEdge(id, resolvePartOrOperation(doc, ref))
			}
		}
		for _, field := range referenceListFields {
			for _, ref := range stringListField(spec[field]) {
				g.AddEdge(id, resolvePartOrOperation(doc, ref))
			}
		}
	}
	for name, spec := range doc.References {
		id := ID(KindReference, name)
		addParamEdges(g, id, spec, paramNames)
		if ref, ok := spec["part"].(string); ok && ref != "" {
			g.AddEdge(id, resolvePartOrOperation(doc, ref))
		}
	}

	if cyc := g.FindCycle(); cyc != nil {
		return nil, builderrors.New(builderrors.CircularDependency, traceString(cyc))
	}
	return g, nil
}

func addNode(g *Graph, kind Kind, name string, spec map[string]any) error {
	n, err := nodeFor(kind, name, spec)
	if err != nil {
		return err
	}
	g.AddNode(n)
	return nil
}

func nodeFor(kind Kind, name string, spec map[string]any) (*Node, error) {
	hash, err := ContentHash(spec)
	if err != nil {
		return nil, builderrors.New(builderrors.InvalidSpec, name).WithCause(err).WithNode(string(ID(kind, name)))
	}
	return &Node{ID: ID(kind, name), Kind: kind, Name: name, Spec: spec, Hash: hash}, nil
}

func isPatternOp(spec map[string]any) bool {
	t, _ := spec["type"].(string)
	switch t {
	case "pattern", "circular", "linear", "grid":
		return true
	default:
		return false
	}
}

// resolvePartOrOperation picks the node id a bare reference name denotes:
// a part if one exists by that name, else an operation (spec §4.4: "part or
// operation nodes" — pattern-producing operations are named by the
// operation, not by any one of their emitted parts).
func resolvePartOrOperation(doc *model.Document, name string) NodeID {
	if _, ok := doc.Parts[name]; ok {
		return ID(KindPart, name)
	}
	return ID(KindOperation, name)
}

func addParamEdges(g *Graph, id NodeID, spec map[string]any, paramNames map[string]bool) {
	for _, ref := range harvestExprIdentifiers(spec, paramNames) {
		g.AddEdge(id, ID(KindParameter, ref))
	}
}

// harvestExprIdentifiers walks value (scalar/string/list/map) looking for
// ${...} fragments and returns the set of identifiers inside them that are
// known parameter names (spec §4.4 phase 2a).
func harvestExprIdentifiers(value any, paramNames map[string]bool) []string {
	found := map[string]bool{}
	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			for _, m := range exprPattern.FindAllStringSubmatch(t, -1) {
				for _, id := range identPattern.FindAllString(m[1], -1) {
					if paramNames[id] {
						found[id] = true
					}
				}
			}
		case []any:
			for _, e := range t {
				walk(e)
			}
		case map[string]any:
			for _, e := range t {
				walk(e)
			}
		}
	}
	walk(value)
	out := make([]string, 0, len(found))
	for id := range found {
		out = append(out, id)
	}
	return out
}

func stringListField(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		switch t := e.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if p, ok := t["pattern"].(string); ok {
				out = append(out, p)
			}
			if r, ok := t["range"].(string); ok {
				out = append(out, r)
			}
		}
	}
	return out
}
