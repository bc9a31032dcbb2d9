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

// PartNumber scores Text blocks that look like a manufacturer part
// number: a longer run of digits than a part count or piece length,
// typically printed small near a PartImage.
type PartNumber struct{}

type partNumberDetails struct {
	value string
	bbox  geometry.BBox
}

func (PartNumber) Output() candidate.Label     { return "PartNumber" }
func (PartNumber) Requires() []candidate.Label { return nil }

func (PartNumber) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindText) {
		if !partNumberPattern.MatchString(b.Text) {
			continue
		}
		score := 0.4 + 0.4*fontProximity(b.FontSize, pc.Hints.PartNumberSize)

		id := result.NextID()
		result.AddCandidate(candidate.New[element.PartNumber](
			id, "PartNumber", clampScore(score), partNumberDetails{value: b.Text, bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (PartNumber) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(partNumberDetails)
	return element.PartNumber{BBox: d.bbox, Value: d.value}, nil
}

// DeclareConstraints is a no-op: PartNumber is an optional Part field,
// so an unreferenced candidate staying unselected costs nothing and is
// left to the solver's own score/penalty tradeoff rather than a hard
// no-orphan rule.
func (PartNumber) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(PartNumber{})
}
