package classify

import (
	"fmt"
	"sort"

	"github.com/dshills/legoclassify/pkg/candidate"
)

// digraph is the classifier dependency graph: one node per declared
// label, one directed edge per Requires() entry (dependency -> this
// classifier). It mirrors pkg/graph.Graph's adjacency-list shape
// (AddRoom/AddConnector/GetCycles/GetReachable), generalized from
// rooms-and-connectors to labels-and-dependencies.
type digraph struct {
	nodes     map[candidate.Label]bool
	adjacency map[candidate.Label][]candidate.Label // label -> labels that depend on it
}

func newDigraph() *digraph {
	return &digraph{
		nodes:     make(map[candidate.Label]bool),
		adjacency: make(map[candidate.Label][]candidate.Label),
	}
}

// addNode registers a label, initializing its adjacency list.
func (g *digraph) addNode(label candidate.Label) error {
	if g.nodes[label] {
		return fmt.Errorf("classify: label %q declared as Output by more than one classifier", label)
	}
	g.nodes[label] = true
	if g.adjacency[label] == nil {
		g.adjacency[label] = []candidate.Label{}
	}
	return nil
}

// addEdge records that "to" depends on "from": from must be scored
// before to.
func (g *digraph) addEdge(from, to candidate.Label) error {
	if !g.nodes[from] {
		return fmt.Errorf("classify: label %q required by %q is not declared as any classifier's Output", from, to)
	}
	if !g.nodes[to] {
		return fmt.Errorf("classify: label %q is not declared as any classifier's Output", to)
	}
	g.adjacency[from] = append(g.adjacency[from], to)
	return nil
}

// getCycles detects all cycles in the graph, mirroring
// pkg/graph.Graph.GetCycles's DFS-with-recursion-stack approach.
func (g *digraph) getCycles() [][]candidate.Label {
	var cycles [][]candidate.Label
	visited := make(map[candidate.Label]bool)
	recStack := make(map[candidate.Label]bool)
	parent := make(map[candidate.Label]candidate.Label)

	var dfs func(candidate.Label) []candidate.Label
	dfs = func(node candidate.Label) []candidate.Label {
		visited[node] = true
		recStack[node] = true

		for _, neighbor := range g.adjacency[node] {
			if !visited[neighbor] {
				parent[neighbor] = node
				if cycle := dfs(neighbor); cycle != nil {
					return cycle
				}
			} else if recStack[neighbor] {
				cycle := []candidate.Label{neighbor}
				for curr := node; curr != neighbor; curr = parent[curr] {
					cycle = append([]candidate.Label{curr}, cycle...)
				}
				cycle = append(cycle, neighbor)
				return cycle
			}
		}

		recStack[node] = false
		return nil
	}

	labels := g.sortedLabels()
	for _, label := range labels {
		if !visited[label] {
			if cycle := dfs(label); cycle != nil {
				cycles = append(cycles, cycle)
				visited = make(map[candidate.Label]bool)
				recStack = make(map[candidate.Label]bool)
				parent = make(map[candidate.Label]candidate.Label)
			}
		}
	}

	return cycles
}

func (g *digraph) sortedLabels() []candidate.Label {
	out := make([]candidate.Label, 0, len(g.nodes))
	for label := range g.nodes {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// topologicalOrder returns a deterministic topological ordering of
// every label: Kahn's algorithm with the ready set broken
// alphabetically at every step, so the same classifier set always
// yields the same order. Returns an error if a cycle exists (callers
// should run getCycles first for a descriptive error).
func (g *digraph) topologicalOrder(requiresOf map[candidate.Label][]candidate.Label) ([]candidate.Label, error) {
	indegree := make(map[candidate.Label]int, len(g.nodes))
	for label := range g.nodes {
		indegree[label] = len(requiresOf[label])
	}

	var order []candidate.Label
	for len(order) < len(g.nodes) {
		var ready []candidate.Label
		for label, deg := range indegree {
			if deg == 0 {
				ready = append(ready, label)
			}
		}
		if len(ready) == 0 {
			return nil, fmt.Errorf("classify: dependency cycle detected among: %v", g.getCycles())
		}
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

		next := ready[0]
		order = append(order, next)
		delete(indegree, next)
		for _, dependent := range g.adjacency[next] {
			if _, ok := indegree[dependent]; ok {
				indegree[dependent]--
			}
		}
	}

	return order, nil
}
