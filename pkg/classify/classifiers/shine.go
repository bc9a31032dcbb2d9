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

// Shine scores tiny, bright, star-like Drawing blocks that highlight a
// newly-placed part in a Diagram.
type Shine struct{}

type shineDetails struct {
	bbox geometry.BBox
}

func (Shine) Output() candidate.Label     { return "Shine" }
func (Shine) Requires() []candidate.Label { return nil }

func (Shine) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		if b.BBox.Width() > pc.Page.Width*0.03 || b.BBox.Height() > pc.Page.Height*0.03 {
			continue
		}
		ar := aspectRatio(b.BBox)
		if ar < 0.5 || ar > 2 {
			continue
		}

		score := 0.4
		if isBright(b.FillColor) {
			score += 0.3
		}
		if len(b.Paths) >= 3 {
			score += 0.1 // star/burst glyphs tend to have several short paths
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.Shine](
			id, "Shine", clampScore(score), shineDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (Shine) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(shineDetails)
	return element.Shine{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: Shine has no declared parent field
// in the element tree; it is detected for reporting purposes only.
func (Shine) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(Shine{})
}
