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

// LoosePartSymbol scores Drawing blocks that look like the small
// dashed-outline or asterisk glyph flagging a part not yet attached to
// the model: small, roughly square, and not confused with a
// ProgressBarIndicator by requiring it sit outside any ProgressBar.
type LoosePartSymbol struct{}

type loosePartSymbolDetails struct {
	bbox geometry.BBox
}

func (LoosePartSymbol) Output() candidate.Label     { return "LoosePartSymbol" }
func (LoosePartSymbol) Requires() []candidate.Label { return []candidate.Label{"ProgressBar"} }

func (LoosePartSymbol) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	var barBoxes []geometry.BBox
	for _, c := range result.CandidatesByLabel("ProgressBar") {
		barBoxes = append(barBoxes, c.ScoreDetails().(progressBarDetails).bbox)
	}

	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		ar := aspectRatio(b.BBox)
		if ar < 0.6 || ar > 1.6 {
			continue
		}
		if b.BBox.Width() < pc.Page.Width*0.015 || b.BBox.Width() > pc.Page.Width*0.06 {
			continue
		}
		if fullyInsideAny(b.BBox, barBoxes) {
			continue
		}

		score := 0.45
		if len(b.Paths) >= 1 {
			score += 0.15
		}
		if b.FillColor == nil {
			score += 0.1 // dashed/outline glyphs are typically unfilled
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.LoosePartSymbol](
			id, "LoosePartSymbol", clampScore(score), loosePartSymbolDetails{bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (LoosePartSymbol) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(loosePartSymbolDetails)
	return element.LoosePartSymbol{BBox: d.bbox}, nil
}

// DeclareConstraints is a no-op: LoosePartSymbol has no declared
// parent field in the element tree; it is detected for reporting
// purposes only.
func (LoosePartSymbol) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(LoosePartSymbol{})
}
