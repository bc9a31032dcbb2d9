package classifiers

import (
	"context"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// SubstepNumber scores Text blocks that look like a single-letter
// sub-step marker ("a", "b", ...) used to sequence a nested insertion
// within a Step.
type SubstepNumber struct{}

type substepNumberDetails struct {
	value string
	bbox  geometry.BBox
}

func (SubstepNumber) Output() candidate.Label     { return "SubstepNumber" }
func (SubstepNumber) Requires() []candidate.Label { return nil }

func (SubstepNumber) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindText) {
		if !substepPattern.MatchString(b.Text) {
			continue
		}
		score := 0.4 + 0.4*fontProximity(b.FontSize, pc.Hints.StepNumberSize*0.6)

		id := result.NextID()
		result.AddCandidate(candidate.New[element.SubstepNumber](
			id, "SubstepNumber", clampScore(score), substepNumberDetails{value: b.Text, bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (SubstepNumber) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(substepNumberDetails)
	return element.SubstepNumber{BBox: d.bbox, Value: d.value}, nil
}

// DeclareConstraints forces every SubstepNumber candidate unselected:
// no composite in this classifier set builds a SubStep element yet
// (spec.md §4.2 lists no SubStep classifier, only the text-pattern
// SubstepNumber itself), so declareNoOrphans' parent lookup is always
// empty and the implication can never be satisfied.
func (SubstepNumber) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	declareNoOrphans(m, result, "SubstepNumber")
}

func init() {
	classify.Register(SubstepNumber{})
}
