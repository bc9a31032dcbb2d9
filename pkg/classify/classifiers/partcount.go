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

// PartCount scores Text blocks that look like a part's "Nx" multiplier
// label, e.g. "2x" or "12×".
type PartCount struct{}

type partCountDetails struct {
	value int
	bbox  geometry.BBox
}

func (PartCount) Output() candidate.Label     { return "PartCount" }
func (PartCount) Requires() []candidate.Label { return nil }

func (PartCount) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindText) {
		m := countPattern.FindStringSubmatch(b.Text)
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		score := 0.4 + 0.4*fontProximity(b.FontSize, pc.Hints.PartCountSize)

		id := result.NextID()
		result.AddCandidate(candidate.New[element.PartCount](
			id, "PartCount", clampScore(score), partCountDetails{value: value, bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (PartCount) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(partCountDetails)
	return element.PartCount{BBox: d.bbox, Value: d.value}, nil
}

// DeclareConstraints enforces the no-orphan rule: a PartCount only
// means something when some Part selects it as its required count.
func (PartCount) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	declareNoOrphans(m, result, "PartCount")
}

func init() {
	classify.Register(PartCount{})
}
