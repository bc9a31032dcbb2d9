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

// Arrow scores Drawing blocks that look like a directional placement
// glyph: elongated but modestly sized, away from the page edges.
type Arrow struct{}

type arrowDetails struct {
	bbox geometry.BBox
}

func (Arrow) Output() candidate.Label     { return "Arrow" }
func (Arrow) Requires() []candidate.Label { return nil }

func (Arrow) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		ar := aspectRatio(b.BBox)
		elongated := ar >= 1.8 || (ar > 0 && ar <= 1.0/1.8)
		if !elongated {
			continue
		}
		if b.BBox.Width() > pc.Page.Width*0.3 || b.BBox.Height() > pc.Page.Height*0.3 {
			continue // too large to be a single arrow glyph
		}
		if bottomBand(b.BBox, pc.Page.Height, 0.08) || topBand(b.BBox, pc.Page.Height, 0.08) {
			continue
		}

		score := 0.5
		if len(b.Paths) > 0 {
			score += 0.2
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.Arrow](
			id, "Arrow", clampScore(score), arrowDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (Arrow) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(arrowDetails)
	return element.Arrow{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: Arrow is placed into either a
// selected Step's spatially-assigned Arrows slot or the Page's
// StandaloneArrows overflow by pkg/spatial after solving (spec.md
// scenario S5); there is no boolean implication to declare here.
func (Arrow) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(Arrow{})
}
