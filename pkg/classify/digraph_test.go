package classify

import (
	"testing"

	"github.com/dshills/legoclassify/pkg/candidate"
)

type label = candidate.Label

func toCandidateRequires(m map[label][]label) map[candidate.Label][]candidate.Label {
	return m
}

func TestDigraphDetectsCycle(t *testing.T) {
	g := newDigraph()
	if err := g.addNode("A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.addNode("B"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.addEdge("A", "B"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.addEdge("B", "A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cycles := g.getCycles(); len(cycles) == 0 {
		t.Fatal("expected a cycle to be detected")
	}
}

func TestDigraphTopologicalOrderIsAlphabeticalAmongReady(t *testing.T) {
	g := newDigraph()
	for _, n := range []string{"C", "B", "A"} {
		if err := g.addNode(label(n)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	requiresOf := map[label][]label{"A": nil, "B": nil, "C": nil}

	order, err := g.topologicalOrder(toCandidateRequires(requiresOf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order[0] != "A" || order[1] != "B" || order[2] != "C" {
		t.Fatalf("expected alphabetical order among independent nodes, got %v", order)
	}
}

func TestDigraphTopologicalOrderRespectsDependencies(t *testing.T) {
	g := newDigraph()
	for _, n := range []string{"Page", "PageNumber"} {
		if err := g.addNode(label(n)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := g.addEdge("PageNumber", "Page"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requiresOf := map[label][]label{"Page": {"PageNumber"}, "PageNumber": nil}

	order, err := g.topologicalOrder(toCandidateRequires(requiresOf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order[0] != "PageNumber" || order[1] != "Page" {
		t.Fatalf("expected PageNumber before Page, got %v", order)
	}
}
