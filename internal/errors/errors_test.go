//nolint:revive // Package name matches the package it tests
package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

func TestBuildErrorMessageIncludesNodeAndExpr(t *testing.T) {
	err := New(UnknownName, "width * 2").WithNode("parameter:area")

	msg := err.Error()
	assert.Contains(t, msg, "UnknownName")
	assert.Contains(t, msg, "parameter:area")
	assert.Contains(t, msg, "width * 2")
}

func TestBuildErrorKnownNames(t *testing.T) {
	err := New(PartNotFound, "platform").WithKnownNames([]string{"base", "lid"})

	assert.Contains(t, err.Error(), "base")
	assert.Contains(t, err.Error(), "lid")
}

func TestBuildErrorUnwrap(t *testing.T) {
	err := Wrap(BackendError, "operation:union1", ErrDegenerateGeometry)

	assert.True(t, stderrors.Is(err, ErrDegenerateGeometry))
	assert.Equal(t, ErrDegenerateGeometry, err.Unwrap())
}

func TestKindAbort(t *testing.T) {
	assert.True(t, CircularDependency.Abort())
	assert.True(t, DuplicateName.Abort())
	assert.False(t, SelectorError.Abort())
	assert.False(t, BackendError.Abort())
}

func TestRenderWithSourceContext(t *testing.T) {
	src := []string{
		"parameters:",
		"  a: 1",
		"  b: ${c}",
		"  c: 2",
		"parts: {}",
	}
	err := New(UnknownName, "c").WithPos(model.SourcePos{File: "doc.yaml", Line: 3, Column: 6})

	rendered := Render(err, src)

	require.Contains(t, rendered, "doc.yaml:3:6")
	assert.Contains(t, rendered, "b: ${c}")
	assert.Contains(t, rendered, "^")
}

func TestRenderWithoutPositionFallsBackToPlainMessage(t *testing.T) {
	err := New(DivisionByZero, "x / 0")
	assert.Equal(t, err.Error(), Render(err, nil))
}
