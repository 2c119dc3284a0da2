package model

// Metadata is the free-form key/value map attached to every Part. Two
// disjoint key sets are defined by spec §4.7.
type Metadata map[string]any

// PropagatingKeys are appearance keys that flow from a source part to a
// derived part unless explicitly overridden.
var PropagatingKeys = map[string]bool{
	"color":        true,
	"material":     true,
	"transparency": true,
	"texture":      true,
	"finish":       true,
}

// OperationKeys are written fresh by the producing operation and never
// propagate from a source part.
var OperationKeys = map[string]bool{
	"primitive_type": true,
	"source":         true,
	"operation_type": true,
	"boolean_op":     true,
	"pattern_type":   true,
	"pattern_index":  true,
	"grid_position":  true,
	"angle":          true,
}

// Clone returns a shallow copy of m (safe against later mutation of the map
// itself; callers storing mutable values such as slices must clone those
// separately).
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Propagate builds the metadata for a newly produced part: operation-specific
// fields supplied by the builder, unioned with the propagating (appearance)
// subset of source, with explicit overrides in overrides taking precedence over
// both (spec §4.7: "with explicit user-provided overrides taking highest
// precedence").
func Propagate(source Metadata, operationSpecific Metadata, overrides Metadata) Metadata {
	out := make(Metadata, len(operationSpecific)+len(source)+len(overrides))
	for k, v := range operationSpecific {
		out[k] = v
	}
	for k, v := range source {
		if PropagatingKeys[k] {
			out[k] = v
		}
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// AppendFinishingOp appends a finishing-op record to m's finishing_ops list,
// creating the list if absent (spec §4.5.6, §8: "P's finishing_ops metadata
// grows by exactly one entry").
func (m Metadata) AppendFinishingOp(record map[string]any) {
	existing, _ := m["finishing_ops"].([]map[string]any)
	m["finishing_ops"] = append(existing, record)
}
