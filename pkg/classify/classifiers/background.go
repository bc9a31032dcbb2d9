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

// Background scores Drawing blocks that look like the page's full-
// bleed backdrop: a large, light-filled rectangle covering most of the
// page area.
type Background struct{}

type backgroundDetails struct {
	bbox geometry.BBox
}

func (Background) Output() candidate.Label     { return "Background" }
func (Background) Requires() []candidate.Label { return nil }

func (Background) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	pageArea := pc.Page.Width * pc.Page.Height
	if pageArea <= 0 {
		return nil
	}

	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		coverage := b.BBox.Area() / pageArea
		if coverage < 0.6 {
			continue
		}

		score := 0.3 + 0.4*coverage
		if isLight(b.FillColor) {
			score += 0.2
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.Background](
			id, "Background", clampScore(score), backgroundDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (Background) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(backgroundDetails)
	return element.Background{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: Background is an optional Page field
// with at most one instance structurally implied once the solver's
// single root Page candidate is forced selected (see page.go).
func (Background) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(Background{})
}
