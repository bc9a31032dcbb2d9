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

// Divider scores Drawing blocks that look like a ruled line
// separating page regions: extreme aspect ratio, no fill, spanning a
// large share of the page's width or height.
type Divider struct{}

type dividerDetails struct {
	bbox geometry.BBox
}

func (Divider) Output() candidate.Label     { return "Divider" }
func (Divider) Requires() []candidate.Label { return nil }

func (Divider) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		ar := aspectRatio(b.BBox)
		horizontalRule := ar >= 8 && b.BBox.Width() >= pc.Page.Width*0.5
		verticalRule := ar > 0 && ar <= 1.0/8 && b.BBox.Height() >= pc.Page.Height*0.5
		if !horizontalRule && !verticalRule {
			continue
		}

		score := 0.5
		if b.FillColor == nil {
			score += 0.2
		}
		if b.Thickness > 0 && b.Thickness <= 3 {
			score += 0.1
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.Divider](
			id, "Divider", clampScore(score), dividerDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (Divider) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(dividerDetails)
	return element.Divider{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: Divider has no declared parent field
// in the element tree (it is a page-decoration fact, not attached to
// Page), so there is nothing to bind or prevent orphaning against.
func (Divider) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(Divider{})
}
