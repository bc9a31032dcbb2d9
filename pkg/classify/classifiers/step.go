package classifiers

import (
	"context"
	"fmt"

	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// Step pairs each StepNumber with the most plausible nearby PartsList.
// Diagram, Arrows, and SubAssemblies are intentionally left unbound
// here: they carry `assignment:"spatial"` and are resolved by
// pkg/spatial after the solve picks which Step candidates survive.
type Step struct{}

type stepDetails struct {
	bbox      geometry.BBox
	number    candidate.ID
	partsList candidate.ID // zero if none
}

func (d stepDetails) ChildRefs() []candidate.ID {
	refs := []candidate.ID{d.number}
	if d.partsList != 0 {
		refs = append(refs, d.partsList)
	}
	return refs
}

func (Step) Output() candidate.Label     { return "Step" }
func (Step) Requires() []candidate.Label { return []candidate.Label{"StepNumber", "PartsList"} }

const stepPartsListRadius = 300.0

func (Step) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	numbers := result.CandidatesByLabel("StepNumber")
	lists := result.CandidatesByLabel("PartsList")

	for _, nc := range numbers {
		numBox := nc.ScoreDetails().(stepNumberDetails).bbox

		score := 0.6
		details := stepDetails{bbox: numBox, number: nc.ID()}

		var bestList candidate.AnyCandidate
		bestDist := stepPartsListRadius
		for _, lc := range lists {
			listBox := lc.ScoreDetails().(partsListDetails).bbox
			dist := numBox.Center().Distance(listBox.Center())
			if dist <= bestDist {
				bestList, bestDist = lc, dist
			}
		}
		if bestList != nil {
			details.partsList = bestList.ID()
			details.bbox = unionBBox(details.bbox, bestList.ScoreDetails().(partsListDetails).bbox)
			score += 0.2
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.Step](id, "Step", clampScore(score), details, nil))
	}
	return nil
}

func (Step) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(stepDetails)

	numberEl, ok := result.BuiltElement(d.number).(element.StepNumber)
	if !ok {
		return nil, fmt.Errorf("classify: step %d: number candidate %d not built", id, d.number)
	}

	step := element.Step{BBox: d.bbox, Number: numberEl}
	if d.partsList != 0 {
		if pl, ok := result.BuiltElement(d.partsList).(element.PartsList); ok {
			step.PartsList = &pl
		}
	}
	return step, nil
}

// DeclareConstraints prevents two Step candidates from both claiming
// the same PartsList (StepNumber duplication is already excluded by
// construction: Score emits exactly one Step per StepNumber
// candidate).
func (Step) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	byPartsList := make(map[candidate.ID][]candidate.ID)
	for _, c := range result.CandidatesByLabel("Step") {
		d := c.ScoreDetails().(stepDetails)
		if d.partsList != 0 {
			byPartsList[d.partsList] = append(byPartsList[d.partsList], c.ID())
		}
	}
	declareUniqueByValue(m, byPartsList)
}

func init() {
	classify.Register(Step{})
}
