// Package constraint implements a small CP-SAT-style boolean
// satisfaction and optimization model: decision variables over
// classifier candidates, linear implication constraints declared by
// classifiers and auto-generated from the element schema, and a
// weighted-objective solver with a build-retry loop.
package constraint

import (
	"fmt"
	"sort"

	"github.com/dshills/legoclassify/pkg/candidate"
)

// Var is a boolean decision variable: whether candidate ID is
// selected.
type Var = candidate.ID

// kind identifies a declared constraint's shape.
type kind int

const (
	kindAtMostOne kind = iota
	kindExactlyOne
	kindIfSelectedThen
	kindIfAnySelectedThenOneOf
	kindMutuallyExclusive
)

// rule is one declared constraint. Cardinality bounds [min, max] apply
// to kindIfSelectedThen: how many of children must be selected
// whenever parent is.
type rule struct {
	kind     kind
	vars     []Var
	parent   Var
	children []Var
	min, max int
}

// Model accumulates decision variables, declared constraints, and
// per-variable objective weights for one page's solve.
type Model struct {
	vars      map[Var]bool
	weights   map[Var]float64
	rules     []rule
	blockVars map[int][]Var // block ID -> candidates that would consume it
}

// NewModel constructs an empty model.
func NewModel() *Model {
	return &Model{
		vars:      make(map[Var]bool),
		weights:   make(map[Var]float64),
		blockVars: make(map[int][]Var),
	}
}

// AddVar registers a decision variable with its objective weight
// (typically the candidate's intrinsic score).
func (m *Model) AddVar(id Var, weight float64) {
	m.vars[id] = true
	m.weights[id] = weight
}

// HasVar reports whether id has been registered.
func (m *Model) HasVar(id Var) bool {
	return m.vars[id]
}

// Vars returns every registered variable, sorted ascending for
// deterministic iteration.
func (m *Model) Vars() []Var {
	out := make([]Var, 0, len(m.vars))
	for v := range m.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AtMostOne declares that at most one of vars may be selected.
func (m *Model) AtMostOne(vars ...Var) {
	m.rules = append(m.rules, rule{kind: kindAtMostOne, vars: append([]Var(nil), vars...)})
}

// ExactlyOne declares that exactly one of vars must be selected.
func (m *Model) ExactlyOne(vars ...Var) {
	m.rules = append(m.rules, rule{kind: kindExactlyOne, vars: append([]Var(nil), vars...)})
}

// MutuallyExclusive is an alias of AtMostOne kept distinct for callers
// that want to express "these two interpretations of the same block
// cannot coexist" rather than "pick at most one of a label's
// candidates" — the semantics are identical.
func (m *Model) MutuallyExclusive(vars ...Var) {
	m.rules = append(m.rules, rule{kind: kindMutuallyExclusive, vars: append([]Var(nil), vars...)})
}

// IfSelectedThen declares parent ⇒ between min and max of children
// selected. Used for required/optional/sequence child cardinality.
func (m *Model) IfSelectedThen(parent Var, children []Var, min, max int) {
	m.rules = append(m.rules, rule{
		kind:     kindIfSelectedThen,
		parent:   parent,
		children: append([]Var(nil), children...),
		min:      min,
		max:      max,
	})
}

// IfAnySelectedThenOneOf declares that if any of children is selected,
// at least one of parents must also be selected (the no-orphan rule:
// a child requiring a parent cannot be selected standalone).
func (m *Model) IfAnySelectedThenOneOf(children []Var, parents []Var) {
	m.rules = append(m.rules, rule{
		kind:     kindIfAnySelectedThenOneOf,
		children: append([]Var(nil), children...),
		vars:     append([]Var(nil), parents...),
	})
}

// AddBlockExclusivityConstraints registers that candidate id would
// consume blockIDs, and emits an AtMostOne across every other
// registered candidate that claims any of the same blocks. Call once
// per candidate after all candidates for the page have been added.
func (m *Model) AddBlockExclusivityConstraints(id Var, blockIDs []int) {
	for _, b := range blockIDs {
		for _, other := range m.blockVars[b] {
			m.rules = append(m.rules, rule{kind: kindAtMostOne, vars: []Var{id, other}})
		}
		m.blockVars[b] = append(m.blockVars[b], id)
	}
}

// Satisfied reports whether assignment (id -> selected) satisfies
// every rule given the current (possibly partial) assignment. partial
// means unassigned variables are treated as "not yet decided" and
// rules involving them are not evaluated as violated, only as
// not-yet-satisfiable; complete must be true once every variable in
// the model has been assigned.
func (m *Model) Satisfied(assignment map[Var]bool, complete bool) bool {
	for _, r := range m.rules {
		if !r.holds(assignment, complete) {
			return false
		}
	}
	return true
}

func (r rule) holds(assignment map[Var]bool, complete bool) bool {
	switch r.kind {
	case kindAtMostOne, kindMutuallyExclusive:
		count := 0
		for _, v := range r.vars {
			if assignment[v] {
				count++
			}
		}
		return count <= 1
	case kindExactlyOne:
		count, unknown := 0, 0
		for _, v := range r.vars {
			val, ok := assignment[v]
			if !ok {
				unknown++
				continue
			}
			if val {
				count++
			}
		}
		if count > 1 {
			return false
		}
		if complete {
			return count == 1
		}
		return count+unknown >= 1
	case kindIfSelectedThen:
		if !assignment[r.parent] {
			return true
		}
		count, unknown := 0, 0
		for _, c := range r.children {
			val, ok := assignment[c]
			if !ok {
				unknown++
				continue
			}
			if val {
				count++
			}
		}
		if count > r.max {
			return false
		}
		if complete {
			return count >= r.min && count <= r.max
		}
		return count+unknown >= r.min
	case kindIfAnySelectedThenOneOf:
		anyChild := false
		for _, c := range r.children {
			if assignment[c] {
				anyChild = true
				break
			}
		}
		if !anyChild {
			return true
		}
		count, unknown := 0, 0
		for _, p := range r.vars {
			val, ok := assignment[p]
			if !ok {
				unknown++
				continue
			}
			if val {
				count++
			}
		}
		if complete {
			return count >= 1
		}
		return count+unknown >= 1
	default:
		panic(fmt.Sprintf("constraint: unknown rule kind %d", r.kind))
	}
}
