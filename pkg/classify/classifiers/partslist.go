package classifiers

import (
	"context"
	"fmt"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// PartsList scores each vector Drawing that could be a parts tray: a
// container whose bbox fully encloses one or more Part candidates,
// plus an optional BagNumber sitting inside it.
type PartsList struct{}

type partsListDetails struct {
	bbox      geometry.BBox
	parts     []candidate.ID
	bagNumber candidate.ID // zero if none
}

func (d partsListDetails) ChildRefs() []candidate.ID {
	refs := append([]candidate.ID(nil), d.parts...)
	if d.bagNumber != 0 {
		refs = append(refs, d.bagNumber)
	}
	return refs
}

func (PartsList) Output() candidate.Label     { return "PartsList" }
func (PartsList) Requires() []candidate.Label { return []candidate.Label{"Part", "BagNumber"} }

func (PartsList) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	parts := result.CandidatesByLabel("Part")
	bagNumbers := result.CandidatesByLabel("BagNumber")

	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		var contained []candidate.ID
		coverage := 0.0
		for _, p := range parts {
			pbox := p.ScoreDetails().(partDetails).bbox
			if !pbox.FullyInside(b.BBox) {
				continue
			}
			contained = append(contained, p.ID())
			coverage += pbox.Area()
		}
		if len(contained) == 0 {
			continue
		}
		if b.BBox.Area() > 0 {
			coverage /= b.BBox.Area()
		}

		score := 0.5 + 0.2*clampScore(float64(len(contained))/4) + 0.2*clampScore(coverage)
		details := partsListDetails{bbox: b.BBox, parts: contained}

		if bn := nearestBagNumberInside(bagNumbers, b.BBox); bn != nil {
			details.bagNumber = bn.ID()
			score += 0.1
		}

		id := result.NextID()
		result.AddCandidate(candidate.New[element.PartsList](id, "PartsList", clampScore(score), details, nil))
	}
	return nil
}

func nearestBagNumberInside(cands []candidate.AnyCandidate, box geometry.BBox) candidate.AnyCandidate {
	for _, c := range cands {
		d := c.ScoreDetails().(bagNumberDetails)
		if d.bbox.FullyInside(box) {
			return c
		}
	}
	return nil
}

func (PartsList) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(partsListDetails)

	pl := element.PartsList{BBox: d.bbox}
	for _, pid := range d.parts {
		part, ok := result.BuiltElement(pid).(element.Part)
		if !ok {
			continue // not selected; schema's cardinality constraint already bounds how many can be missing
		}
		pl.Parts = append(pl.Parts, part)
	}
	if len(pl.Parts) == 0 {
		return nil, fmt.Errorf("classify: parts list %d: no selected Part children built", id)
	}
	if d.bagNumber != 0 {
		if bn, ok := result.BuiltElement(d.bagNumber).(element.BagNumber); ok {
			pl.BagNumber = &bn
		}
	}
	return pl, nil
}

// DeclareConstraints enforces invariant 6 (spec.md §3): a selected
// PartsList must have at least one selected Part child. pkg/schema
// already emits the upper-bound side of the sequence cardinality; this
// adds the lower bound pkg/schema does not (sequence fields are
// 0..len(matching) there since an empty sequence is usually valid).
func (PartsList) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	for _, c := range result.CandidatesByLabel("PartsList") {
		d := c.ScoreDetails().(partsListDetails)
		if len(d.parts) == 0 {
			continue
		}
		m.IfSelectedThen(c.ID(), d.parts, 1, len(d.parts))
	}
}

func init() {
	classify.Register(PartsList{})
}
