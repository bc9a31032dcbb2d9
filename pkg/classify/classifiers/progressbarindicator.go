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

// ProgressBarIndicator scores small Drawing blocks that look like one
// tick of a ProgressBar: near-square, small, filled (lit) or unfilled
// (dim).
type ProgressBarIndicator struct{}

type progressBarIndicatorDetails struct {
	filled bool
	bbox   geometry.BBox
}

func (ProgressBarIndicator) Output() candidate.Label     { return "ProgressBarIndicator" }
func (ProgressBarIndicator) Requires() []candidate.Label { return []candidate.Label{"ProgressBar"} }

func (ProgressBarIndicator) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	bars := result.CandidatesByLabel("ProgressBar")
	if len(bars) == 0 {
		return nil
	}
	var barBoxes []geometry.BBox
	for _, c := range bars {
		barBoxes = append(barBoxes, c.ScoreDetails().(progressBarDetails).bbox)
	}

	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		ar := aspectRatio(b.BBox)
		if ar < 0.5 || ar > 2 {
			continue
		}
		if b.BBox.Width() > pc.Page.Width*0.05 {
			continue
		}
		if !fullyInsideAny(b.BBox.Expand(2), barBoxes) {
			continue
		}

		score := 0.7
		filled := isLight(b.FillColor) == false && b.FillColor != nil

		id := result.NextID()
		result.AddCandidate(candidate.New[element.ProgressBarIndicator](
			id, "ProgressBarIndicator", clampScore(score),
			progressBarIndicatorDetails{filled: filled, bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (ProgressBarIndicator) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(progressBarIndicatorDetails)
	return element.ProgressBarIndicator{BBox: d.bbox, Filled: d.filled}, nil
}

// DeclareConstraints is a no-op: placement into a ProgressBar's
// Indicators slot is resolved spatially, not by a boolean implication.
func (ProgressBarIndicator) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(ProgressBarIndicator{})
}
