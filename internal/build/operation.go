package build

import (
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Boolean dispatches an operation of type "boolean" to Union/Difference/
// Intersection by its "op" field (spec §4.5.4's three variants), or by the
// "operation" shorthand that names the variant directly with no "type"/"op"
// field at all (spec.md's hole-pattern scenario).
func Boolean(c *Context, name string, spec model.Spec) ([]string, error) {
	op, _ := spec["op"].(string)
	if op == "" {
		op, _ = spec["operation"].(string)
	}
	switch op {
	case "union":
		return Union(c, name, spec)
	case "difference":
		return Difference(c, name, spec)
	case "intersection":
		return Intersection(c, name, spec)
	default:
		return nil, builderrors.New(builderrors.InvalidSpec, op).WithNode(nodeID("operation", name)).
			WithCause(unsupportedKind("boolean op must be union, difference, or intersection"))
	}
}

// Dispatch is the operation type -> BuilderFunc table (spec §4.6 step 4,
// SPEC_FULL.md §4.6: "Builder dispatch is a map[string]BuilderFunc keyed by
// operation type, populated once"), grounded on the teacher's sequential-
// dispatch-with-error-collection TransformerMatchPlan.Execute
// (internal/core/match.go), adapted here to a single ordered build rather
// than a plan over many resources.
func Dispatch() map[string]BuilderFunc {
	return map[string]BuilderFunc{
		"primitive": Primitive,
		"boolean":   Boolean,
		"transform": Transform,
		"pattern":   Pattern,
		"finishing": Finishing,
		"extrude":   Extrude,
		"revolve":   Revolve,
		"loft":      Loft,
		"hull":      Hull,
		"sweep":     Sweep,
		"text-op":   TextOp,
	}
}
