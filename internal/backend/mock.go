package backend

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Operation is one recorded call against the Mock backend.
type Operation struct {
	Name string
	Args map[string]any
}

type solid struct {
	kind   string
	bounds BoundingBox
}

type mockHandle struct{ id string }

func (h mockHandle) HandleID() string { return h.id }

// Mock is an in-memory recording backend (spec.md §4.2: "a mock backend
// that records operations for tests"). Every call appends an Operation to
// Log and synthesizes a deterministic handle id. Primitive solids carry an
// analytic bounding box so BoundingBox/Center/TessellateVertices return
// concrete geometry without a real kernel; combined/transformed solids
// propagate a best-effort bounding box (union, translation, or the input's
// box unchanged) sufficient for assertions in tests, not for production
// geometric fidelity.
type Mock struct {
	mu      sync.Mutex
	solids  map[string]*solid
	counter uint64
	Log     []Operation
}

var _ Backend = (*Mock)(nil)

// NewMock constructs an empty Mock backend.
func NewMock() *Mock {
	return &Mock{solids: make(map[string]*solid)}
}

func (m *Mock) nextID(prefix string) string {
	n := atomic.AddUint64(&m.counter, 1)
	return fmt.Sprintf("%s-%d", prefix, n)
}

func (m *Mock) record(name string, args map[string]any) {
	m.Log = append(m.Log, Operation{Name: name, Args: args})
}

func (m *Mock) put(id string, s *solid) Handle {
	m.solids[id] = s
	return mockHandle{id: id}
}

func (m *Mock) get(h Handle) (*solid, error) {
	s, ok := m.solids[h.HandleID()]
	if !ok {
		return nil, builderrors.New(builderrors.BackendError, h.HandleID()).WithCause(fmt.Errorf("unknown handle"))
	}
	return s, nil
}

func (m *Mock) CreatePrimitive(p PrimitiveParams) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("createPrimitive", map[string]any{"kind": p.Kind})

	var box BoundingBox
	switch p.Kind {
	case "box":
		half := model.Vec3{X: p.Box.X / 2, Y: p.Box.Y / 2, Z: p.Box.Z / 2}
		box = BoundingBox{Min: model.Vec3{X: -half.X, Y: -half.Y, Z: -half.Z}, Max: half}
	case "cylinder", "cone":
		r := p.Radius
		if p.Radius2 > r {
			r = p.Radius2
		}
		box = BoundingBox{
			Min: model.Vec3{X: -r, Y: -r, Z: 0},
			Max: model.Vec3{X: r, Y: r, Z: p.Height},
		}
	case "sphere":
		box = BoundingBox{
			Min: model.Vec3{X: -p.Radius, Y: -p.Radius, Z: -p.Radius},
			Max: model.Vec3{X: p.Radius, Y: p.Radius, Z: p.Radius},
		}
	case "torus":
		outer := p.Radius + p.MinorRadius
		box = BoundingBox{
			Min: model.Vec3{X: -outer, Y: -outer, Z: -p.MinorRadius},
			Max: model.Vec3{X: outer, Y: outer, Z: p.MinorRadius},
		}
	case "text":
		half := p.Size * float64(max(1, len(p.Text))) / 2
		box = BoundingBox{
			Min: model.Vec3{X: -half, Y: -p.Size / 2, Z: 0},
			Max: model.Vec3{X: half, Y: p.Size / 2, Z: p.Height},
		}
	default:
		return nil, builderrors.New(builderrors.InvalidSpec, p.Kind).WithCause(fmt.Errorf("unknown primitive kind"))
	}

	id := m.nextID(p.Kind)
	return m.put(id, &solid{kind: p.Kind, bounds: box}), nil
}

func (m *Mock) Combine(op CombineOp, base, tool Handle) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(string(op), map[string]any{"base": base.HandleID(), "tool": tool.HandleID()})

	a, err := m.get(base)
	if err != nil {
		return nil, err
	}
	b, err := m.get(tool)
	if err != nil {
		return nil, err
	}

	var box BoundingBox
	switch op {
	case OpUnion:
		box = unionBox(a.bounds, b.bounds)
	default:
		box = a.bounds
	}
	id := m.nextID(string(op))
	return m.put(id, &solid{kind: "combined", bounds: box}), nil
}

func unionBox(a, b BoundingBox) BoundingBox {
	return BoundingBox{
		Min: model.Vec3{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: model.Vec3{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}

func (m *Mock) Translate(h Handle, offset model.Vec3) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("translate", map[string]any{"handle": h.HandleID(), "offset": offset})
	s, err := m.get(h)
	if err != nil {
		return nil, err
	}
	moved := &solid{kind: s.kind, bounds: BoundingBox{Min: s.bounds.Min.Add(offset), Max: s.bounds.Max.Add(offset)}}
	return m.put(m.nextID("translate"), moved), nil
}

func (m *Mock) Rotate(h Handle, axisStart, axisEnd model.Vec3, angleDegrees float64) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("rotate", map[string]any{"handle": h.HandleID(), "angle": angleDegrees})
	s, err := m.get(h)
	if err != nil {
		return nil, err
	}
	return m.put(m.nextID("rotate"), &solid{kind: s.kind, bounds: s.bounds}), nil
}

func (m *Mock) Fillet(h Handle, edges []Feature, radius float64) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("fillet", map[string]any{"handle": h.HandleID(), "edges": len(edges), "radius": radius})
	s, err := m.get(h)
	if err != nil {
		return nil, err
	}
	return m.put(m.nextID("fillet"), &solid{kind: s.kind, bounds: s.bounds}), nil
}

func (m *Mock) Chamfer(h Handle, edges []Feature, length, length2 float64) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("chamfer", map[string]any{"handle": h.HandleID(), "edges": len(edges), "length": length, "length2": length2})
	s, err := m.get(h)
	if err != nil {
		return nil, err
	}
	return m.put(m.nextID("chamfer"), &solid{kind: s.kind, bounds: s.bounds}), nil
}

func (m *Mock) Extrude(sketch Handle, distance float64, direction model.Vec3, taper float64) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("extrude", map[string]any{"sketch": sketch.HandleID(), "distance": distance})
	s, err := m.get(sketch)
	if err != nil {
		return nil, err
	}
	box := s.bounds
	box.Max.Z += distance
	return m.put(m.nextID("extrude"), &solid{kind: "extruded", bounds: box}), nil
}

func (m *Mock) Revolve(sketch Handle, axis model.Vec3, angleDegrees float64, origin model.Vec3) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("revolve", map[string]any{"sketch": sketch.HandleID(), "angle": angleDegrees})
	s, err := m.get(sketch)
	if err != nil {
		return nil, err
	}
	return m.put(m.nextID("revolve"), &solid{kind: "revolved", bounds: s.bounds}), nil
}

func (m *Mock) Loft(profiles []Handle, zOffsets []float64, ruled bool) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("loft", map[string]any{"profiles": len(profiles), "ruled": ruled})
	if len(profiles) == 0 {
		return nil, builderrors.New(builderrors.BackendError, "loft").WithCause(fmt.Errorf("no profiles"))
	}
	first, err := m.get(profiles[0])
	if err != nil {
		return nil, err
	}
	box := first.bounds
	for i, off := range zOffsets {
		_ = i
		if off > box.Max.Z {
			box.Max.Z = off
		}
	}
	return m.put(m.nextID("loft"), &solid{kind: "lofted", bounds: box}), nil
}

func (m *Mock) Sweep(profile Handle, path []model.Vec3) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("sweep", map[string]any{"profile": profile.HandleID(), "points": len(path)})
	s, err := m.get(profile)
	if err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, builderrors.New(builderrors.BackendError, "sweep").WithCause(fmt.Errorf("path requires at least two points"))
	}
	box := s.bounds
	for _, p := range path {
		box.Min = model.Vec3{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y), Z: math.Min(box.Min.Z, p.Z)}
		box.Max = model.Vec3{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y), Z: math.Max(box.Max.Z, p.Z)}
	}
	return m.put(m.nextID("sweep"), &solid{kind: "swept", bounds: box}), nil
}

func (m *Mock) Hull(inputs []Handle) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("hull", map[string]any{"inputs": len(inputs)})
	if len(inputs) == 0 {
		return nil, builderrors.New(builderrors.BackendError, "hull").WithCause(fmt.Errorf("no inputs"))
	}
	box, err := m.get(inputs[0])
	if err != nil {
		return nil, err
	}
	acc := box.bounds
	for _, h := range inputs[1:] {
		s, err := m.get(h)
		if err != nil {
			return nil, err
		}
		acc = unionBox(acc, s.bounds)
	}
	return m.put(m.nextID("hull"), &solid{kind: "hulled", bounds: acc}), nil
}

// selectByAxis synthesizes a single deterministic feature per selector
// token and registers it as its own solid, with a bounding box collapsed
// against the solid's box along the requested axis (> collapses to the
// max face, < to the min face; | and # retain the full extent, since
// parallel/perpendicular selection does not identify a single face plane
// without real kernel geometry). This gives BoundingBox/Center on a
// returned Feature concrete, deterministic answers for tests.
func (m *Mock) selectByAxis(h Handle, kind FeatureKind, simple string) ([]Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("select"+string(kind), map[string]any{"handle": h.HandleID(), "selector": simple})
	s, err := m.get(h)
	if err != nil {
		return nil, err
	}
	if len(simple) != 2 {
		return nil, builderrors.New(builderrors.SelectorError, simple).WithCause(fmt.Errorf("expected a two-character simple selector"))
	}

	box := s.bounds
	axis := simple[1]
	switch simple[0] {
	case '>':
		switch axis {
		case 'X':
			box.Min.X = box.Max.X
		case 'Y':
			box.Min.Y = box.Max.Y
		case 'Z':
			box.Min.Z = box.Max.Z
		}
	case '<':
		switch axis {
		case 'X':
			box.Max.X = box.Min.X
		case 'Y':
			box.Max.Y = box.Min.Y
		case 'Z':
			box.Max.Z = box.Min.Z
		}
	}

	id := h.HandleID() + ":" + simple
	m.put(id, &solid{kind: "feature", bounds: box})
	return []Feature{{id: id, kind: kind}}, nil
}

func (m *Mock) SelectFaces(h Handle, simple string) ([]Feature, error) {
	return m.selectByAxis(h, FeatureFace, simple)
}

func (m *Mock) SelectEdges(h Handle, simple string) ([]Feature, error) {
	return m.selectByAxis(h, FeatureEdge, simple)
}

func (m *Mock) SelectVertices(h Handle, simple string) ([]Feature, error) {
	return m.selectByAxis(h, FeatureVertex, simple)
}

func (m *Mock) BoundingBox(h Handle) (BoundingBox, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("boundingBox", map[string]any{"handle": h.HandleID()})
	s, err := m.get(h)
	if err != nil {
		return BoundingBox{}, err
	}
	return s.bounds, nil
}

func (m *Mock) Center(h Handle) (model.Vec3, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("center", map[string]any{"handle": h.HandleID()})
	s, err := m.get(h)
	if err != nil {
		return model.Vec3{}, err
	}
	return s.bounds.Center(), nil
}

func (m *Mock) TessellateVertices(h Handle) ([]model.Vec3, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("tessellateVertices", map[string]any{"handle": h.HandleID()})
	s, err := m.get(h)
	if err != nil {
		return nil, err
	}
	b := s.bounds
	return []model.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
	}, nil
}

func (m *Mock) Clone(h Handle) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("clone", map[string]any{"handle": h.HandleID()})
	s, err := m.get(h)
	if err != nil {
		return nil, err
	}
	return m.put(m.nextID("clone"), &solid{kind: s.kind, bounds: s.bounds}), nil
}

func (m *Mock) ExportSTL(h Handle, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("exportSTL", map[string]any{"handle": h.HandleID(), "path": path})
	_, err := m.get(h)
	return err
}

func (m *Mock) ExportSTEP(h Handle, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("exportSTEP", map[string]any{"handle": h.HandleID(), "path": path})
	_, err := m.get(h)
	return err
}
