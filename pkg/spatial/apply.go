package spatial

import (
	"math"
	"sort"

	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/element"
)

// Per-step capacity for the sequence-valued spatial slots. A page
// layout with more than this many arrows or sub-assemblies clustered
// around one step is not a shape these diagrams take in practice;
// anything beyond the cap is left for a later step or standalone.
const (
	arrowsPerStep        = 4
	subAssembliesPerStep = 4
)

// unbounded is the maxCost passed to Assigner calls that should never
// reject a match on distance alone — classifiers have already scoped
// candidates to the page, so any match beats no match.
const unbounded = math.MaxFloat64

// Apply fills every `assignment:"spatial"` field on page using the
// strategy named by assignerName (normally "hungarian"): Step.Diagram,
// Step.Arrows, and Step.SubAssemblies are matched from leftover built
// candidates of the corresponding kind, whatever Arrow candidates no
// Step claims become Page.StandaloneArrows, and every built
// ProgressBarIndicator is attached to the page's ProgressBar sorted
// left to right.
func Apply(result *candidate.ClassificationResult, page element.Page, assignerName string) (element.Page, error) {
	assigner, err := Get(assignerName)
	if err != nil {
		return page, err
	}

	diagrams := builtElements(result, "Diagram")
	arrows := builtElements(result, "Arrow")
	subAssemblies := builtElements(result, "SubAssembly")
	indicators := builtElements(result, "ProgressBarIndicator")

	stepSlots := make([]Slot, len(page.Steps))
	for i, s := range page.Steps {
		stepSlots[i] = Slot{BBox: s.BBox}
	}

	diagramItems := make([]Item, len(diagrams))
	for i, d := range diagrams {
		diagramItems[i] = Item{BBox: d.Bounds()}
	}
	diagramAssign := assigner.AssignOne(stepSlots, diagramItems, unbounded)
	for i, j := range diagramAssign {
		if j < 0 {
			continue
		}
		d, ok := diagrams[j].(element.Diagram)
		if !ok {
			continue
		}
		page.Steps[i].Diagram = &d
	}

	arrowItems := make([]Item, len(arrows))
	for i, a := range arrows {
		arrowItems[i] = Item{BBox: a.Bounds()}
	}
	arrowAssign := assigner.AssignMany(stepSlots, arrowItems, arrowsPerStep, unbounded)
	usedArrows := make(map[int]bool)
	for i, js := range arrowAssign {
		for _, j := range js {
			if a, ok := arrows[j].(element.Arrow); ok {
				page.Steps[i].Arrows = append(page.Steps[i].Arrows, a)
				usedArrows[j] = true
			}
		}
	}
	for j, a := range arrows {
		if usedArrows[j] {
			continue
		}
		if arrow, ok := a.(element.Arrow); ok {
			page.StandaloneArrows = append(page.StandaloneArrows, arrow)
		}
	}

	subItems := make([]Item, len(subAssemblies))
	for i, s := range subAssemblies {
		subItems[i] = Item{BBox: s.Bounds()}
	}
	subAssign := assigner.AssignMany(stepSlots, subItems, subAssembliesPerStep, unbounded)
	for i, js := range subAssign {
		for _, j := range js {
			if s, ok := subAssemblies[j].(element.SubAssembly); ok {
				page.Steps[i].SubAssemblies = append(page.Steps[i].SubAssemblies, s)
			}
		}
	}

	if page.ProgressBar != nil {
		ticks := make([]element.ProgressBarIndicator, 0, len(indicators))
		for _, el := range indicators {
			if t, ok := el.(element.ProgressBarIndicator); ok {
				ticks = append(ticks, t)
			}
		}
		sort.Slice(ticks, func(i, j int) bool { return ticks[i].BBox.X0 < ticks[j].BBox.X0 })
		page.ProgressBar.Indicators = ticks
	}

	return page, nil
}

// builtElements returns, in candidate-ID order, the built element for
// every candidate under label that reached StatusBuilt. Candidates
// still Scored or Rejected (never selected by the solver) are not
// leftover — they simply lost.
func builtElements(result *candidate.ClassificationResult, label candidate.Label) []element.LegoPageElement {
	var out []element.LegoPageElement
	for _, c := range result.CandidatesByLabel(label) {
		if result.Status(c.ID()) != candidate.StatusBuilt {
			continue
		}
		if el := result.BuiltElement(c.ID()); el != nil {
			out = append(out, el)
		}
	}
	return out
}
