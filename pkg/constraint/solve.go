package constraint

import (
	"context"
	"sort"
	"time"

	"github.com/dshills/legoclassify/pkg/candidate"
)

// Solution is the result of one Solve call: which variables were
// selected and the objective value achieved.
type Solution struct {
	Selected  map[Var]bool
	Objective float64
	TimedOut  bool
}

// consumption maps each variable to the blocks it would consume if
// selected, used to compute the unconsumed-block penalty term.
type consumption map[Var][]int

// Solve searches for the variable assignment satisfying every declared
// constraint that maximizes total selected score minus
// cfg.UnconsumedPenalty times the number of blocks left unconsumed.
// excluded lists variables forced to false (candidates that already
// failed Build on a previous retry); Solve is re-invoked with a larger
// excluded set by the build-retry loop in pkg/classify.
func Solve(ctx context.Context, m *Model, blocks consumption, totalBlockCount int, cfg *SolverConfig, excluded map[Var]bool) (Solution, error) {
	vars := m.Vars()
	order := make([]Var, 0, len(vars))
	for _, v := range vars {
		if !excluded[v] {
			order = append(order, v)
		}
	}
	// Deterministic order: descending weight, ascending variable ID to
	// break ties. search keeps the first-found best on an exact tie
	// (obj > s.best.Objective, strict), so the branch order itself picks
	// which member of an equal-objective optimum set wins; this must be
	// reproducible rather than seeded, matching candidate.ByScoreThenID's
	// score-then-ID discipline for the same reason.
	sort.Slice(order, func(i, j int) bool {
		wi, wj := m.weights[order[i]], m.weights[order[j]]
		if wi != wj {
			return wi > wj
		}
		return order[i] < order[j]
	})

	s := &searcher{
		model:     m,
		blocks:    blocks,
		totalBlks: totalBlockCount,
		penalty:   cfg.UnconsumedPenalty,
		order:     order,
		excluded:  excluded,
		best:      Solution{Selected: map[Var]bool{}, Objective: negInf},
	}

	deadline := time.Now()
	if cfg.PerPageTimeoutMillis > 0 {
		deadline = deadline.Add(time.Duration(cfg.PerPageTimeoutMillis) * time.Millisecond)
		s.hasDeadline = true
		s.deadline = deadline
	}

	assignment := make(map[Var]bool, len(vars))
	for v := range excluded {
		assignment[v] = false
	}
	s.search(ctx, assignment, 0, 0, consumedSet{})

	if s.best.Objective == negInf {
		s.best = Solution{Selected: map[Var]bool{}, Objective: -cfg.UnconsumedPenalty * float64(totalBlockCount)}
	}
	s.best.TimedOut = s.timedOut
	return s.best, nil
}

const negInf = -1e18

type consumedSet map[int]bool

func (c consumedSet) clone() consumedSet {
	out := make(consumedSet, len(c))
	for k := range c {
		out[k] = true
	}
	return out
}

type searcher struct {
	model       *Model
	blocks      consumption
	totalBlks   int
	penalty     float64
	order       []Var
	excluded    map[Var]bool
	best        Solution
	hasDeadline bool
	deadline    time.Time
	timedOut    bool
}

// search performs a branch-and-bound DFS: at each step try selecting
// then rejecting the next unassigned variable, pruning a branch once
// its upper bound (current score + remaining positive weight - the
// minimum possible penalty) cannot beat the best found so far.
func (s *searcher) search(ctx context.Context, assignment map[Var]bool, idx int, score float64, consumed consumedSet) {
	if s.hasDeadline && time.Now().After(s.deadline) {
		s.timedOut = true
		return
	}
	select {
	case <-ctx.Done():
		s.timedOut = true
		return
	default:
	}

	if idx == len(s.order) {
		if !s.model.Satisfied(assignment, true) {
			return
		}
		unconsumed := s.totalBlks - len(consumed)
		obj := score - s.penalty*float64(unconsumed)
		if obj > s.best.Objective {
			s.best = Solution{Selected: cloneBoolMap(assignment), Objective: obj}
		}
		return
	}

	if !s.model.Satisfied(assignment, false) {
		return
	}

	// Upper bound: best case is every remaining variable selected and
	// zero unconsumed blocks.
	remaining := 0.0
	for _, v := range s.order[idx:] {
		if w := s.model.weights[v]; w > 0 {
			remaining += w
		}
	}
	if score+remaining < s.best.Objective {
		return
	}

	v := s.order[idx]

	assignment[v] = true
	nextConsumed := consumed
	if len(s.blocks[v]) > 0 {
		nextConsumed = consumed.clone()
		for _, b := range s.blocks[v] {
			nextConsumed[b] = true
		}
	}
	s.search(ctx, assignment, idx+1, score+s.model.weights[v], nextConsumed)

	assignment[v] = false
	s.search(ctx, assignment, idx+1, score, consumed)

	delete(assignment, v)
}

func cloneBoolMap(m map[Var]bool) map[Var]bool {
	out := make(map[Var]bool, len(m))
	for k, v := range m {
		if v {
			out[k] = true
		}
	}
	return out
}

// ApplySolution transitions every candidate in result according to
// sol: selected variables become StatusSelected, every other
// registered variable becomes StatusRejected.
func ApplySolution(result *candidate.ClassificationResult, m *Model, sol Solution) {
	for _, v := range m.Vars() {
		if sol.Selected[v] {
			result.SetStatus(v, candidate.StatusSelected)
		} else {
			result.SetStatus(v, candidate.StatusRejected)
		}
	}
}
