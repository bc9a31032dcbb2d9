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

// ProgressBar scores Drawing blocks that look like the strip of step
// indicators running along a page edge: a long, thin drawing hugging
// the top or bottom band, less extreme in aspect ratio than a Divider
// since it has visible internal segmentation.
type ProgressBar struct{}

type progressBarDetails struct {
	bbox geometry.BBox
}

func (ProgressBar) Output() candidate.Label     { return "ProgressBar" }
func (ProgressBar) Requires() []candidate.Label { return nil }

func (ProgressBar) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		ar := aspectRatio(b.BBox)
		if ar < 3 || ar > 30 {
			continue
		}
		onEdge := bottomBand(b.BBox, pc.Page.Height, 0.08) || topBand(b.BBox, pc.Page.Height, 0.08)
		if !onEdge {
			continue
		}
		if b.BBox.Width() < pc.Page.Width*0.3 {
			continue
		}

		score := 0.6
		if len(b.Paths) > 0 {
			score += 0.2
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.ProgressBar](
			id, "ProgressBar", clampScore(score), progressBarDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (ProgressBar) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(progressBarDetails)
	return element.ProgressBar{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: ProgressBar.Indicators is tagged
// `assignment:"spatial"`, so pkg/schema skips it and pkg/spatial binds
// selected ProgressBarIndicator candidates into it post-solve, the
// same as Step.Diagram.
func (ProgressBar) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(ProgressBar{})
}
