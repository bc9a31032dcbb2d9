package classifiers

import (
	"context"
	"fmt"
	"sort"

	"github.com/dshills/legoclassify/pkg/block"
	"github.com/dshills/legoclassify/pkg/candidate"
	"github.com/dshills/legoclassify/pkg/classify"
	"github.com/dshills/legoclassify/pkg/constraint"
	"github.com/dshills/legoclassify/pkg/element"
	"github.com/dshills/legoclassify/pkg/geometry"
)

// OpenBag detects the circular "open bag N" glyph and pairs it with
// the nearest BagNumber. For the set of Part candidates near the
// glyph it emits two variant candidates instead of picking a radius
// by fiat: a conservative one including only Parts within a tight
// radius of the glyph's center, and a greedy one including every Part
// within a wider radius. Neither variant looks at direction.
// The solver picks at most one per glyph via a mutual-exclusion
// constraint, since both variants would otherwise double-claim the
// same Parts.
type OpenBag struct{}

type openBagDetails struct {
	bbox      geometry.BBox
	bagNumber candidate.ID
	parts     []candidate.ID
}

func (d openBagDetails) ChildRefs() []candidate.ID {
	return append([]candidate.ID{d.bagNumber}, d.parts...)
}

func (OpenBag) Output() candidate.Label     { return "OpenBag" }
func (OpenBag) Requires() []candidate.Label { return []candidate.Label{"BagNumber", "Part"} }

const (
	openBagConservativeRadius = 80.0
	openBagGreedyRadius       = 220.0
)

func (OpenBag) Score(_ context.Context, pc classify.PageContext, result *candidate.ClassificationResult) error {
	bagNumbers := result.CandidatesByLabel("BagNumber")
	parts := result.CandidatesByLabel("Part")

	for _, b := range pc.Page.OfKind(block.KindDrawing) {
		ar := aspectRatio(b.BBox)
		if ar < 0.8 || ar > 1.25 {
			continue // glyph reads as roughly circular
		}
		if b.BBox.Width() < pc.Page.Width*0.02 || b.BBox.Width() > pc.Page.Width*0.12 {
			continue
		}

		bn := nearestBagNumberTo(bagNumbers, b.BBox)
		if bn == nil {
			continue
		}

		conservative := partsWithinRadius(parts, b.BBox, openBagConservativeRadius)
		greedy := partsWithinRadius(parts, b.BBox, openBagGreedyRadius)

		// OpenBag is a composite referencing BagNumber/Part children
		// (ChildRefs), so sourceBlocks stays empty even though the
		// glyph's own Drawing anchors its geometry (candidate.New's
		// double-claim safeguard forbids setting both).
		if len(conservative) > 0 {
			id := result.NextID()
			result.AddCandidate(candidate.New[element.OpenBag](
				id, "OpenBag", 0.55,
				openBagDetails{bbox: b.BBox, bagNumber: bn.ID(), parts: conservative}, nil,
			))
		}
		if len(greedy) > len(conservative) {
			id := result.NextID()
			result.AddCandidate(candidate.New[element.OpenBag](
				id, "OpenBag", 0.45,
				openBagDetails{bbox: b.BBox, bagNumber: bn.ID(), parts: greedy}, nil,
			))
		}
	}
	return nil
}

func nearestBagNumberTo(bagNumbers []candidate.AnyCandidate, glyph geometry.BBox) candidate.AnyCandidate {
	var best candidate.AnyCandidate
	bestDist := -1.0
	for _, c := range bagNumbers {
		box := c.ScoreDetails().(bagNumberDetails).bbox
		dist := glyph.Center().Distance(box.Center())
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func partsWithinRadius(parts []candidate.AnyCandidate, glyph geometry.BBox, radius float64) []candidate.ID {
	var out []candidate.ID
	for _, p := range parts {
		box := p.ScoreDetails().(partDetails).bbox
		if glyph.Center().Distance(box.Center()) <= radius {
			out = append(out, p.ID())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (OpenBag) Build(_ context.Context, id candidate.ID, result *candidate.ClassificationResult) (element.LegoPageElement, error) {
	d := result.ByID(id).ScoreDetails().(openBagDetails)

	bagNumberEl, ok := result.BuiltElement(d.bagNumber).(element.BagNumber)
	if !ok {
		return nil, fmt.Errorf("classify: open bag %d: bag number candidate %d not built", id, d.bagNumber)
	}

	bag := element.OpenBag{BBox: d.bbox, BagNumber: bagNumberEl}
	for _, pid := range d.parts {
		if part, ok := result.BuiltElement(pid).(element.Part); ok {
			bag.Parts = append(bag.Parts, part)
		}
	}
	return bag, nil
}

// openBagGlyph groups the conservative/greedy variants emitted for the
// same physical glyph: same anchor bbox, same paired BagNumber.
type openBagGlyph struct {
	bbox      geometry.BBox
	bagNumber candidate.ID
}

// DeclareConstraints ties each glyph's two radius variants together
// with MutuallyExclusive so at most one is ever selected; without
// this a solve could select both and double-claim the overlapping
// Parts, which block exclusivity alone would catch only when the two
// variants' part sets actually overlap in consumed blocks.
func (OpenBag) DeclareConstraints(m *constraint.Model, result *candidate.ClassificationResult) {
	byGlyph := make(map[openBagGlyph][]candidate.ID)
	for _, c := range result.CandidatesByLabel("OpenBag") {
		d := c.ScoreDetails().(openBagDetails)
		key := openBagGlyph{bbox: d.bbox, bagNumber: d.bagNumber}
		byGlyph[key] = append(byGlyph[key], c.ID())
	}
	for _, ids := range byGlyph {
		if len(ids) > 1 {
			m.MutuallyExclusive(ids...)
		}
	}
}

func init() {
	classify.Register(OpenBag{})
}
