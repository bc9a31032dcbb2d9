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

// RotationSymbol scores Drawing blocks that look like the small
// circular-arrow glyph marking a required sub-assembly rotation:
// roughly square, small, away from the page edges where Background
// and ProgressBar live.
type RotationSymbol struct{}

type rotationSymbolDetails struct {
	bbox geometry.BBox
}

func (RotationSymbol) Output() candidate.Label     { return "RotationSymbol" }
func (RotationSymbol) Requires() []candidate.Label { return nil }

func (RotationSymbol) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		ar := aspectRatio(b.BBox)
		if ar < 0.7 || ar > 1.4 {
			continue
		}
		if b.BBox.Width() < pc.Page.Width*0.01 || b.BBox.Width() > pc.Page.Width*0.08 {
			continue
		}
		if bottomBand(b.BBox, pc.Page.Height, 0.08) || topBand(b.BBox, pc.Page.Height, 0.08) {
			continue
		}

		score := 0.5
		if len(b.Paths) >= 2 {
			score += 0.2
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.RotationSymbol](
			id, "RotationSymbol", clampScore(score), rotationSymbolDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (RotationSymbol) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(rotationSymbolDetails)
	return element.RotationSymbol{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: RotationSymbol has no declared parent
// field in the element tree; it is detected for reporting/spatial-cost
// purposes, not attached into the Page tree.
func (RotationSymbol) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(RotationSymbol{})
}
