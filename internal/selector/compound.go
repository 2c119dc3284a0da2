package selector

import (
	"fmt"
	"strings"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
)

// Kind is the feature kind a selector string resolves against (spec
// §4.3.1: "∈ {face, edge, vertex}").
type Kind = backend.FeatureKind

// Resolve resolves a (possibly compound) selector string against h on the
// given backend, returning the matched features of kind (spec §4.3.1).
// Grounded on selector_resolver.py's SelectorResolver.resolve: a "not"
// prefix, a single "and", a single "or", or else a bare simple token.
func Resolve(b backend.Backend, h backend.Handle, kind Kind, selector string) ([]backend.Feature, error) {
	s := strings.TrimSpace(selector)

	if rest, ok := strings.CutPrefix(s, "not "); ok {
		return resolveNot(b, h, kind, strings.TrimSpace(rest), s)
	}
	if parts := splitOnce(s, " and "); parts != nil {
		return resolveAnd(b, h, kind, parts[0], parts[1], s)
	}
	if parts := splitOnce(s, " or "); parts != nil {
		return resolveOr(b, h, kind, parts[0], parts[1], s)
	}
	return resolveSimple(b, h, kind, s)
}

// splitOnce splits s on sep exactly once; returns nil if sep does not
// appear exactly once (spec §4.3.1: "single `and` only; multiple ands are
// rejected").
func splitOnce(s, sep string) []string {
	if strings.Count(s, sep) != 1 {
		return nil
	}
	idx := strings.Index(s, sep)
	return []string{strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):])}
}

func resolveSimple(b backend.Backend, h backend.Handle, kind Kind, token string) ([]backend.Feature, error) {
	simple, err := ParseSimple(token)
	if err != nil {
		return nil, err
	}
	out, err := selectFromBackend(b, h, kind, simple.String())
	if err != nil {
		return nil, err
	}
	return mustNonEmpty(out, token)
}

func selectFromBackend(b backend.Backend, h backend.Handle, kind Kind, token string) ([]backend.Feature, error) {
	switch kind {
	case backend.FeatureFace:
		return b.SelectFaces(h, token)
	case backend.FeatureEdge:
		return b.SelectEdges(h, token)
	case backend.FeatureVertex:
		return b.SelectVertices(h, token)
	default:
		return nil, builderrors.New(builderrors.SelectorError, token).
			WithCause(fmt.Errorf("unknown feature kind %q", kind))
	}
}

func resolveAnd(b backend.Backend, h backend.Handle, kind Kind, left, right, original string) ([]backend.Feature, error) {
	l, err := Resolve(b, h, kind, left)
	if err != nil {
		return nil, err
	}
	r, err := Resolve(b, h, kind, right)
	if err != nil {
		return nil, err
	}
	rset := featureSet(r)
	var out []backend.Feature
	for _, f := range l {
		if rset[f.HandleID()] {
			out = append(out, f)
		}
	}
	return mustNonEmpty(out, original)
}

func resolveOr(b backend.Backend, h backend.Handle, kind Kind, left, right, original string) ([]backend.Feature, error) {
	l, err := Resolve(b, h, kind, left)
	if err != nil {
		return nil, err
	}
	r, err := Resolve(b, h, kind, right)
	if err != nil {
		return nil, err
	}
	seen := featureSet(l)
	out := append([]backend.Feature(nil), l...)
	for _, f := range r {
		if !seen[f.HandleID()] {
			out = append(out, f)
			seen[f.HandleID()] = true
		}
	}
	return mustNonEmpty(out, original)
}

func resolveNot(b backend.Backend, h backend.Handle, kind Kind, inner, original string) ([]backend.Feature, error) {
	matching, err := Resolve(b, h, kind, inner)
	if err != nil {
		return nil, err
	}
	matchSet := featureSet(matching)

	var universe []backend.Feature
	for _, tok := range allSimpleTokens {
		fs, err := selectFromBackend(b, h, kind, tok.String())
		if err != nil {
			return nil, err
		}
		universe = append(universe, fs...)
	}

	seen := map[string]bool{}
	var out []backend.Feature
	for _, f := range universe {
		if matchSet[f.HandleID()] || seen[f.HandleID()] {
			continue
		}
		seen[f.HandleID()] = true
		out = append(out, f)
	}
	return mustNonEmpty(out, original)
}

func featureSet(fs []backend.Feature) map[string]bool {
	set := make(map[string]bool, len(fs))
	for _, f := range fs {
		set[f.HandleID()] = true
	}
	return set
}

func mustNonEmpty(out []backend.Feature, original string) ([]backend.Feature, error) {
	if len(out) == 0 {
		return nil, builderrors.New(builderrors.NoMatchingFeature, original)
	}
	return out, nil
}
