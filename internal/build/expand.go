package build

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
)

// rangeExpr matches "name[a..b]" and "name[*]" (spec §4.5.4).
var rangeExpr = regexp.MustCompile(`^(.+)\[(\*|-?\d+\.\.-?\d+)\]$`)

// ExpandPartRefs expands one list-of-part-references field into the
// literal, existence-checked registry names it denotes (spec §4.5.4:
// "Expansion is performed before validation"). entries is the raw (already
// parameter-resolved) list value; numeric-suffix entries from a wildcard or
// range sort in numeric order.
func ExpandPartRefs(parts *Registry, entries []any) ([]string, error) {
	var out []string
	for _, e := range entries {
		names, err := expandOne(parts, e)
		if err != nil {
			return nil, err
		}
		out = append(out, names...)
	}
	return out, nil
}

func expandOne(parts *Registry, e any) ([]string, error) {
	switch t := e.(type) {
	case string:
		if strings.HasSuffix(t, "*") || strings.HasPrefix(t, "*") {
			return expandWildcard(parts, t)
		}
		if !parts.Exists(t) {
			return nil, builderrors.New(builderrors.PartNotFound, t).WithKnownNames(parts.List())
		}
		return []string{t}, nil
	case map[string]any:
		if pattern, ok := t["pattern"].(string); ok {
			return expandWildcard(parts, pattern+"_*")
		}
		if rng, ok := t["range"].(string); ok {
			return expandRange(parts, rng)
		}
		return nil, builderrors.New(builderrors.InvalidSpec, "part reference").WithCause(errBadListEntry)
	default:
		return nil, builderrors.New(builderrors.InvalidSpec, "part reference").WithCause(errBadListEntry)
	}
}

var errBadListEntry = unsupportedKind("part reference must be a name, wildcard, {pattern:}, or {range:}")

func expandWildcard(parts *Registry, pattern string) ([]string, error) {
	var prefix, suffix string
	if strings.HasSuffix(pattern, "*") {
		prefix = strings.TrimSuffix(pattern, "*")
	} else if strings.HasPrefix(pattern, "*") {
		suffix = strings.TrimPrefix(pattern, "*")
	}
	var matches []string
	for _, name := range parts.List() {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		} else if suffix != "" && strings.HasSuffix(name, suffix) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return nil, builderrors.New(builderrors.PatternExpansionEmpty, pattern).WithKnownNames(parts.List())
	}
	sortNumericSuffix(matches)
	return matches, nil
}

func expandRange(parts *Registry, rng string) ([]string, error) {
	m := rangeExpr.FindStringSubmatch(rng)
	if m == nil {
		return nil, builderrors.New(builderrors.InvalidSpec, rng).WithCause(errBadListEntry)
	}
	base := m[1]
	if m[2] == "*" {
		return expandWildcard(parts, base+"_*")
	}
	bounds := strings.SplitN(m[2], "..", 2)
	a, errA := strconv.Atoi(bounds[0])
	b, errB := strconv.Atoi(bounds[1])
	if errA != nil || errB != nil || a > b {
		return nil, builderrors.New(builderrors.InvalidSpec, rng).WithCause(errBadListEntry)
	}
	out := make([]string, 0, b-a+1)
	for i := a; i <= b; i++ {
		name := base + "_" + strconv.Itoa(i)
		if !parts.Exists(name) {
			return nil, builderrors.New(builderrors.PartNotFound, name).WithKnownNames(parts.List())
		}
		out = append(out, name)
	}
	return out, nil
}

// sortNumericSuffix sorts names so that a trailing "_<digits>" suffix
// compares numerically rather than lexically (spec §4.5.4: "numeric suffix
// sort prefers numeric order").
func sortNumericSuffix(names []string) {
	sort.Slice(names, func(i, j int) bool {
		ni, oki := numericSuffix(names[i])
		nj, okj := numericSuffix(names[j])
		if oki && okj {
			return ni < nj
		}
		return names[i] < names[j]
	})
}

func numericSuffix(name string) (int, bool) {
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
