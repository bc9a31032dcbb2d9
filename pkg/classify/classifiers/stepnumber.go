package classifiers

import (
	"context"
	"strconv"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// StepNumber scores Text blocks that look like a step's large numeral:
// a bare integer away from the bottom page-number band, near the
// document's step-number font size (typically much larger than body
// text).
type StepNumber struct{}

type stepNumberDetails struct {
	value int
	bbox  geometry.BBox
}

func (StepNumber) Output() candidate.Label     { return "StepNumber" }
func (StepNumber) Requires() []candidate.Label { return nil }

func (StepNumber) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindText) {
		if !integerPattern.MatchString(b.Text) {
			continue
		}
		if bottomBand(b.BBox, pc.Page.Height, 0.12) {
			continue // reserved for PageNumber
		}
		value, err := strconv.Atoi(b.Text)
		if err != nil {
			continue
		}

		score := 0.4 + 0.4*fontProximity(b.FontSize, pc.Hints.StepNumberSize)

		id := result.NextID()
		result.AddCandidate(candidate.New[element.StepNumber](
			id, "StepNumber", clampScore(score), stepNumberDetails{value: value, bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (StepNumber) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(stepNumberDetails)
	return element.StepNumber{BBox: d.bbox, Value: d.value}, nil
}

// DeclareConstraints enforces uniqueness by value (spec.md §4.3
// unique_by): two StepNumber candidates reporting the same integer
// cannot both be selected, matching scenario S2's expectation that the
// better font-size match wins a tie.
func (StepNumber) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	byValue := make(map[int][]candidate.ID)
	for _, c := range result.CandidatesByLabel("StepNumber") {
		d := c.ScoreDetails().(stepNumberDetails)
		byValue[d.value] = append(byValue[d.value], c.ID())
	}
	declareUniqueByValue(m, byValue)
	declareNoOrphans(m, result, "StepNumber")
}

func init() {
	classify.Register(StepNumber{})
}
