package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
)

func TestResolveParameterChain(t *testing.T) {
	r := NewResolver(map[string]any{
		"a": 10,
		"b": "${a*2}",
		"c": "${b+a}",
	})

	all, err := r.ResolveAll()
	require.NoError(t, err)

	assert.Equal(t, 10, all["a"])
	assert.Equal(t, 20, all["b"])
	assert.Equal(t, 30, all["c"])
}

func TestResolveWholeStringExpressionReturnsTypedResult(t *testing.T) {
	r := NewResolver(map[string]any{"width": 4, "height": 5})

	v, err := r.Get("width")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	result, err := r.Resolve("${width * height}")
	require.NoError(t, err)
	assert.Equal(t, 20, result)
}

func TestResolveEmbeddedExpressionSubstitutesIntoString(t *testing.T) {
	r := NewResolver(map[string]any{"name": "bracket", "width": 10})

	result, err := r.Resolve("${name}-${width}mm")
	require.NoError(t, err)
	assert.Equal(t, "bracket-10mm", result)
}

func TestResolveDivisionByZeroSurfacesExpression(t *testing.T) {
	r := NewResolver(map[string]any{"x": 1})

	_, err := r.Resolve("${x / 0}")
	require.Error(t, err)

	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.DivisionByZero, buildErr.Kind)
	assert.Contains(t, buildErr.Expr, "x / 0")
}

func TestResolveCircularReferenceSurfacesAsUnknownName(t *testing.T) {
	r := NewResolver(map[string]any{
		"a": "${b}",
		"b": "${a}",
	})

	_, err := r.Get("a")
	require.Error(t, err)

	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.UnknownName, buildErr.Kind)
}

func TestResolveUnknownParameterSurfacesKnownNames(t *testing.T) {
	r := NewResolver(map[string]any{"width": 10})

	_, err := r.Get("height")
	require.Error(t, err)

	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.UnknownName, buildErr.Kind)
	assert.Contains(t, buildErr.KnownNames, "width")
}

func TestResolveListsAndMapsRecurse(t *testing.T) {
	r := NewResolver(map[string]any{"base": 2})

	result, err := r.Resolve([]any{"${base}", "${base*2}", map[string]any{"n": "${base*3}"}})
	require.NoError(t, err)

	list, ok := result.([]any)
	require.True(t, ok)
	assert.Equal(t, 2, list[0])
	assert.Equal(t, 4, list[1])

	nested, ok := list[2].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 6, nested["n"])
}

func TestResolveScalarsAndNilPassThrough(t *testing.T) {
	r := NewResolver(nil)

	v, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = r.Resolve(true)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = r.Resolve(3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	v, err = r.Resolve("plain string")
	require.NoError(t, err)
	assert.Equal(t, "plain string", v)
}

func TestEvalFunctionsAndComparisons(t *testing.T) {
	env := mapEnv{"a": 3.0, "b": 4.0}

	v, err := Eval("sqrt(a*a + b*b)", env)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = Eval("max(a, b) > min(a, b)", env)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Eval("a >= 3 && b <= 4", env)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestEvalUnknownFunctionIsEvalError(t *testing.T) {
	_, err := Eval("bogus(1)", mapEnv{})
	require.Error(t, err)

	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.EvalError, buildErr.Kind)
}

func TestEvalSyntaxErrorIsParseError(t *testing.T) {
	_, err := Eval("1 + * 2", mapEnv{})
	require.Error(t, err)

	var buildErr *builderrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, builderrors.ParseError, buildErr.Kind)
}

func TestEvalUnaryMinusBindsLooserThanPower(t *testing.T) {
	v, err := Eval("-2**2", mapEnv{})
	require.NoError(t, err)
	assert.Equal(t, -4, v)
}
