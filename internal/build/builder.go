// Package build implements the component builders (C5, spec.md §4.5): one
// per operation kind, each validating its spec, resolving parameters via
// internal/expr, resolving references via internal/selector, calling
// internal/backend, and writing results to the Registry with propagated
// metadata — grounded on the teacher's typed-resource-construction shape in
// internal/core (component -> typed resource, adapted from Kubernetes
// manifests to CAD parts).
package build

import (
	"sync"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/selector"
)

// Registry is the name -> Part mapping (spec §3 "Part Registry"):
// enforces uniqueness, insertion-order iteration, lookup/exists/list.
type Registry struct {
	mu    sync.RWMutex
	parts map[string]*model.Part
	order []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{parts: map[string]*model.Part{}}
}

// Put inserts p, rejecting a duplicate name (spec §3: "enforces
// uniqueness").
func (r *Registry) Put(p *model.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.parts[p.Name]; exists {
		return builderrors.New(builderrors.DuplicateName, p.Name)
	}
	r.parts[p.Name] = p
	r.order = append(r.order, p.Name)
	return nil
}

// Replace overwrites an existing part in place (finishing operations mutate
// rather than insert, spec §4.5.6).
func (r *Registry) Replace(p *model.Part) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.parts[p.Name]; !exists {
		r.order = append(r.order, p.Name)
	}
	r.parts[p.Name] = p
}

// Get returns the part named name.
func (r *Registry) Get(name string) (*model.Part, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parts[name]
	return p, ok
}

// Exists reports whether a part named name is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns all part names in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// PartHandle implements selector.PartSource so the point/selector resolvers
// can look up a part's backend handle by name.
func (r *Registry) PartHandle(name string) (backend.Handle, bool) {
	p, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	return p.Handle, true
}

// PartNames implements selector.PartSource.
func (r *Registry) PartNames() []string {
	return r.List()
}

var _ selector.PartSource = (*Registry)(nil)

// Sketches is the name -> compiled Sketch mapping, separate from the part
// registry since sketches are not Parts (spec §3: a Sketch has no backend
// handle of its own — it is consumed by extrude/revolve/loft).
type Sketches struct {
	mu      sync.RWMutex
	sketches map[string]model.Sketch
}

// NewSketches returns an empty Sketches table.
func NewSketches() *Sketches {
	return &Sketches{sketches: map[string]model.Sketch{}}
}

func (s *Sketches) Put(sk model.Sketch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sketches[sk.Name] = sk
}

func (s *Sketches) Get(name string) (model.Sketch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sk, ok := s.sketches[name]
	return sk, ok
}

// Context is the shared state every builder closes over: the backend, the
// part/sketch registries, a named-point table (external bindings for the
// point resolver), and a resolved-parameters environment.
type Context struct {
	Backend     backend.Backend
	Parts       *Registry
	Sketches    *Sketches
	NamedPoints map[string]model.Vec3
	References  map[string]model.SpatialRef
	Params      Env
}

// Env resolves a raw spec value (scalar/string/list/map, possibly
// containing ${...} expressions) to its fully evaluated form — satisfied by
// internal/expr.Resolver (kept as an interface here so build doesn't import
// expr's concrete type into every builder signature).
type Env interface {
	Resolve(value any) (any, error)
}

// PointResolver returns a selector.PointResolver bound to this context's
// backend, parts, and named points (constructed per call since
// NamedPoints may grow as references are built).
func (c *Context) PointResolver() *selector.PointResolver {
	return &selector.PointResolver{
		Backend:     c.Backend,
		Parts:       c.Parts,
		NamedPoints: c.NamedPoints,
	}
}

// ResolveSpec resolves every ${...} value in spec via c.Params, returning a
// new map with the same shape but fully evaluated leaves.
func (c *Context) ResolveSpec(spec model.Spec) (model.Spec, error) {
	resolved, err := c.Params.Resolve(map[string]any(spec))
	if err != nil {
		return nil, err
	}
	out, ok := resolved.(map[string]any)
	if !ok {
		return nil, builderrors.New(builderrors.InvalidSpec, "spec").WithCause(err)
	}
	return model.Spec(out), nil
}

// BuilderFunc builds one operation node: spec is the raw (unresolved)
// operation spec, name is the node's declared name. Returns the names of
// every part written to the registry (more than one for pattern builders).
type BuilderFunc func(c *Context, name string, spec model.Spec) ([]string, error)
