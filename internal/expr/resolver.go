package expr

import (
	"regexp"
	"strconv"
	"strings"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
)

// exprPattern matches a ${...} expression, mirroring
// parameter_resolver.py's EXPR_PATTERN.
var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Resolver resolves ${...} expressions against a fixed set of raw parameter
// values, caching resolved results and tracking an in-flight resolution
// stack so a parameter referencing itself (directly or transitively)
// surfaces as an UnknownName rather than recursing forever — grounded on
// parameter_resolver.py's ParameterResolver (resolution_stack /
// _build_names_dict / get_parameter).
type Resolver struct {
	raw      map[string]any
	resolved map[string]any
	stack    []string
}

// NewResolver builds a Resolver over raw parameter values. raw is not
// mutated and is not retained by reference beyond construction.
func NewResolver(raw map[string]any) *Resolver {
	r := &Resolver{
		raw:      make(map[string]any, len(raw)),
		resolved: make(map[string]any),
	}
	for k, v := range raw {
		r.raw[k] = v
	}
	return r
}

// Lookup implements Env over the set of parameters resolvable without
// entering a cycle: in-flight names are excluded so a self- or
// mutually-referencing chain fails with UnknownName instead of looping.
func (r *Resolver) Lookup(name string) (any, bool) {
	if r.onStack(name) {
		return nil, false
	}
	if v, ok := r.resolved[name]; ok {
		return v, true
	}
	if _, ok := r.raw[name]; !ok {
		return nil, false
	}
	v, err := r.Get(name)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (r *Resolver) onStack(name string) bool {
	for _, s := range r.stack {
		if s == name {
			return true
		}
	}
	return false
}

// Get returns the resolved value of the named parameter, resolving and
// caching it on first access (spec §4.1 get_parameter).
func (r *Resolver) Get(name string) (any, error) {
	if v, ok := r.resolved[name]; ok {
		return v, nil
	}
	raw, ok := r.raw[name]
	if !ok {
		names := make([]string, 0, len(r.raw))
		for k := range r.raw {
			names = append(names, k)
		}
		return nil, builderrors.New(builderrors.UnknownName, name).WithKnownNames(names)
	}
	if r.onStack(name) {
		cycle := append(append([]string(nil), r.stack...), name)
		return nil, builderrors.New(builderrors.CircularDependency, strings.Join(cycle, " -> "))
	}

	r.stack = append(r.stack, name)
	resolved, err := r.Resolve(raw)
	r.stack = r.stack[:len(r.stack)-1]
	if err != nil {
		return nil, err
	}
	r.resolved[name] = resolved
	return resolved, nil
}

// Resolve recursively resolves ${...} expressions in value: strings are
// expression-substituted, lists and maps are resolved element-wise, and
// scalars/bools/nil pass through unchanged (spec §4.1).
func (r *Resolver) Resolve(value any) (any, error) {
	switch v := value.(type) {
	case nil, bool, int, int64, float64, float32:
		return v, nil
	case string:
		return r.resolveString(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			resolved, err := r.Resolve(item)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			resolved, err := r.Resolve(item)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

func (r *Resolver) resolveString(value string) (any, error) {
	matches := exprPattern.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return value, nil
	}

	// Whole string is a single ${...} expression: return the typed result.
	if len(matches) == 1 {
		m := matches[0]
		if m[0] == 0 && m[1] == len(value) {
			inner := strings.TrimSpace(value[m[2]:m[3]])
			return Eval(inner, r)
		}
	}

	// Mixed text or multiple expressions: substitute each, left to right,
	// building the output incrementally (equivalent to the Python
	// implementation's reverse-order splice, without index invalidation).
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		inner := strings.TrimSpace(value[m[2]:m[3]])
		if v, ok := r.Lookup(inner); ok {
			if s, isStr := v.(string); isStr {
				b.WriteString(value[last:start])
				b.WriteString(s)
				last = end
				continue
			}
		}
		result, err := Eval(inner, r)
		if err != nil {
			return nil, err
		}
		b.WriteString(value[last:start])
		b.WriteString(formatSubstitution(result))
		last = end
	}
	b.WriteString(value[last:])
	return b.String(), nil
}

func formatSubstitution(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		return ""
	}
}

// ResolveAll resolves every parameter in the raw set and returns the
// resulting name → value map (spec §4.1 resolve_all).
func (r *Resolver) ResolveAll() (map[string]any, error) {
	out := make(map[string]any, len(r.raw))
	for name := range r.raw {
		v, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}
