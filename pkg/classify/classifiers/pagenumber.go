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

// PageNumber scores Text blocks that look like the printed page index:
// a bare 1-3 digit integer sitting in a bottom corner, near the
// document's page-number font size.
type PageNumber struct{}

type pageNumberDetails struct {
	value int
	bbox  geometry.BBox
}

func (PageNumber) Output() candidate.Label     { return "PageNumber" }
func (PageNumber) Requires() []candidate.Label { return nil }

func (PageNumber) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindText) {
		if !integerPattern.MatchString(b.Text) {
			continue
		}
		value, err := strconv.Atoi(b.Text)
		if err != nil {
			continue
		}

		score := 0.4 + 0.4*fontProximity(b.FontSize, pc.Hints.PageNumberSize)
		inCorner := bottomBand(b.BBox, pc.Page.Height, 0.12) &&
			(leftBand(b.BBox, pc.Page.Width, 0.2) || rightBand(b.BBox, pc.Page.Width, 0.2))
		if inCorner {
			score += 0.2
		}
		if value == pc.Page.PageIndex+1 {
			score += 0.1
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.PageNumber](
			id, "PageNumber", clampScore(score), pageNumberDetails{value: value, bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (PageNumber) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(pageNumberDetails)
	return element.PageNumber{BBox: d.bbox, Value: d.value}, nil
}

// DeclareConstraints is a no-op: at-most-one-per-page is already
// implied structurally, since Page.PageNumber is an optional field and
// exactly one Page candidate is always selected (see page.go).
func (PageNumber) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(PageNumber{})
}
