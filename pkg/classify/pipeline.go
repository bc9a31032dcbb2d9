package classify

import (
	"context"
	"fmt"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/hints"
	"github.com/dshills/legoclassify/pkg/schema"
	"github.com/dshills/legoclassify/pkg/spatial"
)

// Pipeline drives the classify -> solve -> build control flow for one
// page at a time. Construction validates the full classifier set once;
// RunPage is then safe to call repeatedly, once per page.
type Pipeline struct {
	classifiers map[candidate.Label]Classifier
	order       []candidate.Label
	cfg         *constraint.SolverConfig

	// SpatialAssigner names the pkg/spatial strategy used to resolve
	// `assignment:"spatial"` fields once the solve and build phases
	// complete. Defaults to "hungarian".
	SpatialAssigner string
}

// NewPipeline validates classifiers and returns a Pipeline ready to
// run pages. Validation mirrors spec.md §4.1: every label is exactly
// one classifier's Output; every Requires reference is a declared
// label; the requires digraph has no cycle.
func NewPipeline(classifiers []Classifier, cfg *constraint.SolverConfig) (*Pipeline, error) {
	g := newDigraph()
	byLabel := make(map[candidate.Label]Classifier, len(classifiers))
	requiresOf := make(map[candidate.Label][]candidate.Label, len(classifiers))

	for _, c := range classifiers {
		label := c.Output()
		if err := g.addNode(label); err != nil {
			return nil, err
		}
		byLabel[label] = c
		requiresOf[label] = c.Requires()
	}

	for _, c := range classifiers {
		for _, dep := range c.Requires() {
			if err := g.addEdge(dep, c.Output()); err != nil {
				return nil, err
			}
		}
	}

	if cycles := g.getCycles(); len(cycles) > 0 {
		return nil, fmt.Errorf("classify: dependency cycle(s) found: %v", cycles)
	}

	order, err := g.topologicalOrder(requiresOf)
	if err != nil {
		return nil, err
	}

	return &Pipeline{classifiers: byLabel, order: order, cfg: cfg, SpatialAssigner: "hungarian"}, nil
}

// Order returns the deterministic topological label order this
// pipeline will Score and Build in.
func (p *Pipeline) Order() []candidate.Label {
	return append([]candidate.Label(nil), p.order...)
}

// RunPage runs one page through Score, solve, and Build, returning the
// assembled root Page element and the ClassificationResult carrying
// every candidate, selection, and diagnostic for reporting.
func (p *Pipeline) RunPage(ctx context.Context, pd *block.PageData, docHints hints.DocumentHints) (element.Page, *candidate.ClassificationResult, error) {
	if !pd.Frozen() {
		return element.Page{}, nil, fmt.Errorf("classify: page %d is not frozen", pd.PageIndex)
	}

	result := candidate.NewClassificationResult()
	pc := PageContext{Page: pd, Hints: docHints}

	for _, label := range p.order {
		if err := ctx.Err(); err != nil {
			return element.Page{}, nil, err
		}
		c := p.classifiers[label]
		if err := c.Score(ctx, pc, result); err != nil {
			return element.Page{}, nil, fmt.Errorf("classify: scoring %q: %w", label, err)
		}
	}

	excluded := make(map[constraint.Var]bool)
	var page element.Page

	for attempt := 0; attempt <= p.cfg.BuildRetryBudget; attempt++ {
		m := p.buildModel(result)
		sol, err := constraint.Solve(ctx, m, p.blockConsumption(result), len(pd.Blocks), p.cfg, excluded)
		if err != nil {
			return element.Page{}, nil, fmt.Errorf("classify: solving: %w", err)
		}
		if sol.TimedOut {
			result.Warn("solver timed out on page %d after attempt %d; returning best effort", pd.PageIndex, attempt)
		}
		constraint.ApplySolution(result, m, sol)

		failed, buildErr := p.buildSelected(ctx, result)
		if buildErr != nil {
			return element.Page{}, nil, buildErr
		}
		if len(failed) == 0 {
			page = p.assemblePage(result)
			page, err = p.applySpatial(result, page)
			if err != nil {
				return element.Page{}, nil, err
			}
			return page, result, nil
		}

		for _, id := range failed {
			excluded[id] = true
			result.SetStatus(id, candidate.StatusBuildFailed)
			result.Warn("candidate %d failed to build and was excluded from retry %d", id, attempt+1)
		}
	}

	result.Warn("page %d: build-retry budget exhausted; returning best-effort page", pd.PageIndex)
	page, err := p.applySpatial(result, p.assemblePage(result))
	if err != nil {
		return element.Page{}, nil, err
	}
	return page, result, nil
}

// applySpatial resolves every `assignment:"spatial"` field left empty
// by the solve/build phases (Step.Diagram/Arrows/SubAssemblies,
// ProgressBar.Indicators, Page.StandaloneArrows) via spatial.Apply.
func (p *Pipeline) applySpatial(result *candidate.ClassificationResult, page element.Page) (element.Page, error) {
	name := p.SpatialAssigner
	if name == "" {
		name = "hungarian"
	}
	return spatial.Apply(result, page, name)
}

// buildModel assembles the per-page constraint model: one variable per
// candidate, block-exclusivity constraints, schema-generated
// structural constraints, and each classifier's declared semantic
// constraints.
func (p *Pipeline) buildModel(result *candidate.ClassificationResult) *constraint.Model {
	m := constraint.NewModel()
	for _, c := range result.AllCandidates() {
		m.AddVar(c.ID(), c.Score())
	}
	for _, c := range result.AllCandidates() {
		if len(c.SourceBlocks()) > 0 {
			m.AddBlockExclusivityConstraints(c.ID(), c.SourceBlocks())
		}
	}

	schema.Generate(m, result, element.AllSamples())

	for _, label := range p.order {
		p.classifiers[label].DeclareConstraints(m, result)
	}

	return m
}

// blockConsumption maps each candidate to the blocks it would consume,
// for the solver's unconsumed-block penalty term.
func (p *Pipeline) blockConsumption(result *candidate.ClassificationResult) map[constraint.Var][]int {
	out := make(map[constraint.Var][]int)
	for _, c := range result.AllCandidates() {
		out[c.ID()] = c.SourceBlocks()
	}
	return out
}

// buildSelected invokes Build for every selected candidate in
// topological order, so composites can resolve already-built children.
// Returns the IDs of any candidates whose Build failed.
func (p *Pipeline) buildSelected(ctx context.Context, result *candidate.ClassificationResult) ([]candidate.ID, error) {
	var failed []candidate.ID

	for _, label := range p.order {
		for _, c := range result.CandidatesByLabel(label) {
			if result.Status(c.ID()) != candidate.StatusSelected {
				continue
			}
			el, err := p.classifiers[label].Build(ctx, c.ID(), result)
			if err != nil {
				failed = append(failed, c.ID())
				continue
			}
			if err := result.MarkConsumed(c.ID(), c.SourceBlocks()); err != nil {
				failed = append(failed, c.ID())
				continue
			}
			result.SetBuilt(c.ID(), el)
		}
	}

	return failed, nil
}

// assemblePage collects every built Page-kind candidate into the root
// element. Exactly one selected, built Page candidate is expected in a
// well-formed run; if none built (e.g. every Page candidate failed),
// an empty root is returned with a warning already recorded.
func (p *Pipeline) assemblePage(result *candidate.ClassificationResult) element.Page {
	for _, c := range result.CandidatesByLabel("Page") {
		if result.Status(c.ID()) == candidate.StatusBuilt {
			if page, ok := result.BuiltElement(c.ID()).(element.Page); ok {
				return page
			}
		}
	}
	result.Warn("no Page candidate was built; returning empty page")
	return element.Page{}
}
