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

// PieceLength scores Text blocks that look like a stud-length
// annotation for elongated parts, e.g. "6L".
type PieceLength struct{}

type pieceLengthDetails struct {
	value int
	bbox  geometry.BBox
}

func (PieceLength) Output() candidate.Label     { return "PieceLength" }
func (PieceLength) Requires() []candidate.Label { return nil }

func (PieceLength) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	for _, b := range pc.Page.OfKind(block.KindText) {
		m := pieceLengthPattern.FindStringSubmatch(b.Text)
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		score := 0.4 + 0.4*fontProximity(b.FontSize, pc.Hints.PartNumberSize)

		id := result.NextID()
		result.AddCandidate(candidate.New[element.PieceLength](
			id, "PieceLength", clampScore(score), pieceLengthDetails{value: value, bbox: b.BBox}, []int{b.ID},
		))
	}
	return nil
}

func (PieceLength) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(pieceLengthDetails)
	return element.PieceLength{BBox: d.bbox, Value: d.value}, nil
}

// DeclareConstraints is a no-op: PieceLength is an optional Part
// field, same reasoning as PartNumber.
func (PieceLength) DeclareConstraints(*constraint.Model, *candidate.ClassificationResult) {}

func init() {
	classify.Register(PieceLength{})
}
