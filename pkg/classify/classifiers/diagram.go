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

// Diagram scores large Image or Drawing blocks as candidate assembly
// diagrams: the main illustration a Step's parts get placed into. Size
// is the only real signal at classify time — a Diagram is never paired
// with a Step here, since which Step it belongs to (if any) is decided
// by pkg/spatial's post-solve minimum-cost matching against the
// Step.Diagram slot, not by this classifier.
type Diagram struct{}

type diagramDetails struct {
	bbox geometry.BBox
}

func (Diagram) Output() candidate.Label     { return "Diagram" }
func (Diagram) Requires() []candidate.Label { return nil }

func (Diagram) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	minArea := pc.Page.Width * pc.Page.Height * 0.08

	score := func(b block.Block) float64 {
		s := 0.5
		if b.BBox.Area() > pc.Page.Width*pc.Page.Height*0.2 {
			s += 0.2 // a dominant block on the page reads more confidently as the diagram
		}
		return clampScore(s)
	}

	for _, b := range pc.Page.OfKind(block.KindImage) {
		if b.BBox.Width() < pc.Page.Width*0.4 && b.BBox.Height() < pc.Page.Height*0.4 {
			continue // too small; leave for PartImage
		}
		if b.BBox.Area() < minArea {
			continue
		}
		id := result.NextID()
		result.AddCandidate(candidate.New[element.Diagram](
			id, "Diagram", score(b), diagramDetails{bbox: b.BBox}, []int{b.ID},
		))
	}

	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		if b.BBox.Area() < minArea {
			continue
		}
		ar := aspectRatio(b.BBox)
		if ar > 1.8 || ar < 1/1.8 {
			continue // reads as an Arrow or divider line, not a diagram panel
		}
		id := result.NextID()
		result.AddCandidate(candidate.New[element.Diagram](
			id, "Diagram", score(b)-0.1, diagramDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (Diagram) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(diagramDetails)
	return element.Diagram{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: Diagram is never referenced through
// ChildRefs (it is a spatial-assignment target, not a schema child), so
// there is nothing for the solver to wire here. Block exclusivity
// alone prevents two selected candidates from claiming the same
// source block.
func (Diagram) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(Diagram{})
}
