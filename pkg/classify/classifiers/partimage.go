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

// PartImage scores every raster Image block as a candidate part
// thumbnail. Size and position disambiguate a part thumbnail from a
// Diagram (much larger) and from Background (page-covering), so the
// only filter here is an upper size bound; the constraint solver and
// pkg/schema handle which candidates actually get consumed by a Part.
type PartImage struct{}

type partImageDetails struct {
	bbox geometry.BBox
}

func (PartImage) Output() candidate.Label     { return "PartImage" }
func (PartImage) Requires() []candidate.Label { return nil }

func (PartImage) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindImage) {
		if b.BBox.Width() > pc.Page.Width*0.4 || b.BBox.Height() > pc.Page.Height*0.4 {
			continue // too large to be a part thumbnail; leave for Diagram
		}

		score := 0.6
		area := b.BBox.Area()
		if area > 0 && area < pc.Page.Width*pc.Page.Height*0.08 {
			score += 0.1 // small images read more confidently as part thumbnails
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.PartImage](
			id, "PartImage", clampScore(score), partImageDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (PartImage) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(partImageDetails)
	return element.PartImage{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: Part.Diagram is a required
// child, so pkg/schema's auto-wiring already forces exactly one
// PartImage selected per selected Part via the Part candidate's
// ChildRefs.
func (PartImage) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(PartImage{})
}
