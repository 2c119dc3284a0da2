package dag

import "sort"

// Cycle is a strongly connected component of size > 1, or a single node
// with a self-edge — a readable trace through the offending nodes (spec
// §4.4 phase 3: "reject on any cycle with a readable trace through one of
// them").
type Cycle []NodeID

// FindCycle returns the first non-trivial strongly connected component
// found, or nil if the graph is acyclic. Uses Tarjan's algorithm.
func (g *Graph) FindCycle() Cycle {
	t := &tarjan{
		g:       g,
		index:   map[NodeID]int{},
		lowlink: map[NodeID]int{},
		onStack: map[NodeID]bool{},
	}
	for _, n := range g.Nodes() {
		if _, visited := t.index[n.ID]; !visited {
			if c := t.strongconnect(n.ID); c != nil {
				return c
			}
		}
	}
	return nil
}

type tarjan struct {
	g       *Graph
	counter int
	index   map[NodeID]int
	lowlink map[NodeID]int
	onStack map[NodeID]bool
	stack   []NodeID
}

func (t *tarjan) strongconnect(v NodeID) Cycle {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.Successors(v) {
		if _, visited := t.index[w]; !visited {
			if c := t.strongconnect(w); c != nil {
				return c
			}
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] != t.index[v] {
		return nil
	}

	var scc Cycle
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}

	if len(scc) > 1 {
		return scc
	}
	// A single-node SCC is only a cycle if it has a self-edge.
	for _, w := range t.g.Successors(v) {
		if w == v {
			return scc
		}
	}
	return nil
}

func traceString(c Cycle) string {
	out := ""
	for i, id := range c {
		if i > 0 {
			out += " -> "
		}
		out += string(id)
	}
	if len(c) > 0 {
		out += " -> " + string(c[0])
	}
	return out
}

// TopoSort returns all nodes in an order where every node precedes its
// dependents (spec §4.4: "topological sort of all or of a subset"). The
// graph must already be acyclic (Build guarantees this).
func (g *Graph) TopoSort() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	g.mu.RLock()
	for id := range g.nodes {
		ids = append(ids, id)
	}
	g.mu.RUnlock()
	return g.TopoSortSubset(ids)
}

// TopoSortSubset returns the subset ids in topological order, restricted
// to dependency edges whose endpoints are both within the subset.
func (g *Graph) TopoSortSubset(ids []NodeID) []NodeID {
	inSubset := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		inSubset[id] = true
	}

	visited := map[NodeID]bool{}
	var order []NodeID
	var visit func(id NodeID)
	visit = func(id NodeID) {
		if visited[id] {
			return
		}
		visited[id] = true
		deps := g.Successors(id)
		sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
		for _, dep := range deps {
			if inSubset[dep] {
				visit(dep)
			}
		}
		order = append(order, id)
	}

	sorted := append([]NodeID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, id := range sorted {
		visit(id)
	}
	return order
}

// MaxDepth returns the length of the longest dependency chain in the graph
// (spec §4.4: "max depth (longest path)").
func (g *Graph) MaxDepth() int {
	memo := map[NodeID]int{}
	var depth func(id NodeID) int
	depth = func(id NodeID) int {
		if d, ok := memo[id]; ok {
			return d
		}
		best := 0
		for _, dep := range g.Successors(id) {
			if d := depth(dep) + 1; d > best {
				best = d
			}
		}
		memo[id] = best
		return best
	}
	best := 0
	for _, n := range g.Nodes() {
		if d := depth(n.ID); d > best {
			best = d
		}
	}
	return best
}

// IndependentGroups partitions all nodes into topologically-ordered groups
// where every node in group i has all its dependencies in groups < i, and
// no two nodes within the same group depend on each other — nodes within a
// group may be built concurrently by a caller (SPEC_FULL.md §5's optional
// coarse-parallelism supplement; the reference orchestrator does not use
// this, spec.md §5 requires no implementation to exploit it).
func (g *Graph) IndependentGroups() [][]NodeID {
	order := g.TopoSort()
	level := map[NodeID]int{}
	maxLevel := 0
	for _, id := range order {
		best := 0
		for _, dep := range g.Successors(id) {
			if level[dep]+1 > best {
				best = level[dep] + 1
			}
		}
		level[id] = best
		if best > maxLevel {
			maxLevel = best
		}
	}
	groups := make([][]NodeID, maxLevel+1)
	for _, id := range order {
		l := level[id]
		groups[l] = append(groups[l], id)
	}
	return groups
}
