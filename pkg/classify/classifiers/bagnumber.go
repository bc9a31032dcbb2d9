package classifiers

import (
	"context"
	"strconv"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// BagNumber scores Text blocks that look like the numbered-bag label
// printed near an OpenBag glyph, typically top-left of the page.
type BagNumber struct{}

type bagNumberDetails struct {
	value int
	bbox  geometry.BBox
}

func (BagNumber) Output() candidate.Label     { return "BagNumber" }
func (BagNumber) Requires() []candidate.Label { return nil }

func (BagNumber) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindText) {
		if !integerPattern.MatchString(b.Text) {
			continue
		}
		value, err := strconv.Atoi(b.Text)
		if err != nil {
			continue
		}

		score := 0.4 + 0.3*fontProximity(b.FontSize, pc.Hints.PartNumberSize)
		if topBand(b.BBox, pc.Page.Height, 0.15) && leftBand(b.BBox, pc.Page.Width, 0.2) {
			score += 0.3
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.BagNumber](
			id, "BagNumber", clampScore(score), bagNumberDetails{value: value, bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (BagNumber) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(bagNumberDetails)
	return element.BagNumber{BBox: d.bbox, Value: d.value}, nil
}

// DeclareConstraints enforces the no-orphan rule: a BagNumber only
// means something when some selected OpenBag (required bag number) or
// PartsList (optional bag number) references it.
func (BagNumber) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	declareNoOrphans(m, result, "BagNumber")
}

func init() {
	classify.Register(BagNumber{})
}
