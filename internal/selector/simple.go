// Package selector implements the feature selector and point/spatial
// reference resolver (C3, spec §4.3), grounded on
// original_source/tiacad_core/selector_resolver.py for the simple-selector
// token set and and/or/not combinator semantics.
package selector

import (
	"fmt"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
)

// Axis is one of the three coordinate axes a simple selector operates
// against (spec §4.3.1).
type Axis string

const (
	AxisX Axis = "X"
	AxisY Axis = "Y"
	AxisZ Axis = "Z"
)

// SimpleOp is the single-character selector operator (spec §4.3.1).
type SimpleOp string

const (
	OpMax           SimpleOp = ">"
	OpMin           SimpleOp = "<"
	OpParallel      SimpleOp = "|"
	OpPerpendicular SimpleOp = "#"
)

// Simple is a two-character feature selector token: one of {>,<,|,#}
// followed by one of {X,Y,Z} (spec §4.3.1).
type Simple struct {
	Op   SimpleOp
	Axis Axis
}

func (s Simple) String() string { return string(s.Op) + string(s.Axis) }

// allSimpleTokens enumerates every valid Simple selector, used to compute
// the universe a "not" combinator complements against.
var allSimpleTokens = func() []Simple {
	ops := []SimpleOp{OpMax, OpMin, OpParallel, OpPerpendicular}
	axes := []Axis{AxisX, AxisY, AxisZ}
	out := make([]Simple, 0, len(ops)*len(axes))
	for _, op := range ops {
		for _, ax := range axes {
			out = append(out, Simple{Op: op, Axis: ax})
		}
	}
	return out
}()

// ParseSimple parses a two-character simple selector token (spec §4.3.1).
func ParseSimple(s string) (Simple, error) {
	if len(s) != 2 {
		return Simple{}, builderrors.New(builderrors.SelectorError, s).
			WithCause(fmt.Errorf("simple selector must be exactly two characters"))
	}
	op := SimpleOp(s[0:1])
	axis := Axis(s[1:2])
	switch op {
	case OpMax, OpMin, OpParallel, OpPerpendicular:
	default:
		return Simple{}, builderrors.New(builderrors.SelectorError, s).
			WithCause(fmt.Errorf("unknown selector operator %q, expected one of > < | #", s[0:1]))
	}
	switch axis {
	case AxisX, AxisY, AxisZ:
	default:
		return Simple{}, builderrors.New(builderrors.SelectorError, s).
			WithCause(fmt.Errorf("unknown selector axis %q, expected one of X Y Z", s[1:2]))
	}
	return Simple{Op: op, Axis: axis}, nil
}
